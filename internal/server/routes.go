package server

import (
	"io/fs"
	"net/http"

	"folio/internal/auth"
	"folio/internal/comments"
	"folio/internal/files"
	"folio/internal/guard"
	"folio/internal/media"
	"folio/internal/posts"
	"folio/internal/settings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes builds the router. The guard is installed with Use so that
// it also runs for paths that match no route.
func (s *Server) RegisterRoutes() http.Handler {
	if s.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	secure := s.cfg.IsProduction()

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware())
	r.Use(MetricsMiddleware())
	if len(s.cfg.CORSOrigins) > 0 {
		r.Use(CORSMiddleware(s.cfg.CORSOrigins))
	}
	r.Use(guard.Middleware(guard.New(s.deps.Tokens), guard.Options{SecureCookie: secure}))

	staticFS, _ := fs.Sub(assets, "static")
	r.StaticFS("/static", http.FS(staticFS))

	r.GET("/health", s.healthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.registerPages(r)
	s.registerAPI(r.Group("/api"), secure)

	r.NoRoute(s.pages.notFound)
	return r
}

func (s *Server) registerAPI(api *gin.RouterGroup, secure bool) {
	authHandler := auth.NewHandler(s.deps.Auth, s.deps.Tokens, secure)
	postsHandler := posts.NewHandler(s.deps.Posts)
	commentsHandler := comments.NewHandler(s.deps.Comments)
	settingsHandler := settings.NewHandler(s.deps.Settings)

	auth.RegisterRoutes(api.Group("/auth"), authHandler)
	posts.RegisterPublicRoutes(api, postsHandler)
	comments.RegisterPublicRoutes(api, commentsHandler)

	admin := api.Group("/admin")
	admin.Use(auth.RequireAdmin(s.deps.Tokens, secure))
	{
		posts.RegisterAdminRoutes(admin, postsHandler)
		comments.RegisterAdminRoutes(admin, commentsHandler)
		files.RegisterRoutes(admin, files.NewHandler(s.deps.Files))
	}

	media.RegisterRoutes(api, admin, s.deps.Media)
	settings.RegisterRoutes(api, admin, settingsHandler)
}

func (s *Server) registerPages(r *gin.Engine) {
	p := s.pages

	r.GET("/", p.home)
	r.GET("/about", p.about)
	r.GET("/portfolio", p.portfolio)
	r.GET("/resume", p.resume)
	r.GET("/sponsorship", p.sponsorship)
	r.GET("/blog", p.blog)
	r.GET("/blog/:slug", p.post)
	r.GET("/gallery", p.gallery)

	r.GET(guard.AdminPath, p.dashboard)
	r.GET(guard.LoginPath, p.login)
}
