// Package server assembles the site: global middleware, the route guard, the
// JSON API, server-rendered pages, health and metrics.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"folio/internal/auth"
	"folio/internal/cache"
	"folio/internal/comments"
	"folio/internal/config"
	"folio/internal/database"
	"folio/internal/files"
	"folio/internal/media"
	"folio/internal/posts"
	"folio/internal/settings"
	"folio/internal/storage"
	"folio/internal/token"
)

// Deps holds everything the HTTP layer needs. Cache and Storage may be nil.
type Deps struct {
	Config *config.Config

	DB      database.Service
	Cache   cache.Store
	Storage storage.Service
	Tokens  *token.Manager

	Auth     auth.Service
	Posts    *posts.Service
	Media    *media.Service
	Comments comments.Service
	Settings *settings.Service
	Files    *files.Service
}

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg   *config.Config
	deps  Deps
	pages *pages
}

// New validates deps and parses the page templates.
func New(deps Deps) (*Server, error) {
	if deps.Config == nil {
		return nil, fmt.Errorf("server: config is required")
	}
	if deps.Tokens == nil {
		return nil, fmt.Errorf("server: token manager is required")
	}

	p, err := newPages(deps.Posts, deps.Media, deps.Comments, deps.Settings)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	return &Server{cfg: deps.Config, deps: deps, pages: p}, nil
}

// HTTPServer wraps the router in an http.Server using the configured timeouts.
func (s *Server) HTTPServer() *http.Server {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.RegisterRoutes(),
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	slog.Info("HTTP server configured", "port", s.cfg.Port, "env", s.cfg.Env)
	return server
}
