package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"folio/internal/comments"
	"folio/internal/guard"
	"folio/internal/media"
	"folio/internal/posts"
	"folio/internal/settings"
	"folio/internal/token"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html static/*
var assets embed.FS

type postSource interface {
	ListPublished(ctx context.Context, f posts.ListFilter) (*posts.PaginatedPostsResponse, error)
	ListAll(ctx context.Context, f posts.ListFilter) (*posts.PaginatedPostsResponse, error)
	GetPublishedPost(ctx context.Context, slug string) (*posts.Post, error)
}

type gallerySource interface {
	List(ctx context.Context, kind media.Kind, category string) ([]media.Item, error)
}

type commentSource interface {
	ListApproved(ctx context.Context, slug string) ([]comments.Comment, error)
	ListForModeration(ctx context.Context, status comments.Status) ([]comments.Comment, error)
}

type settingsSource interface {
	All(ctx context.Context) (map[string]string, error)
}

var siteDefaults = map[string]string{
	settings.KeySiteTitle: "Folio",
	settings.KeyTagline:   "Writing, photography and video",
}

// view is the data every page template receives.
type view struct {
	Site  map[string]string
	Title string
	Path  string
	Data  any
}

type pages struct {
	posts     postSource
	galleries gallerySource
	comments  commentSource
	settings  settingsSource

	templates map[string]*template.Template
}

var pageNames = []string{
	"home", "about", "portfolio", "resume", "sponsorship",
	"blog", "post", "gallery", "dashboard", "login", "error",
}

var templateFuncs = template.FuncMap{
	"date": func(v any) string {
		switch t := v.(type) {
		case time.Time:
			return t.Format("January 2, 2006")
		case *time.Time:
			if t == nil {
				return ""
			}
			return t.Format("January 2, 2006")
		}
		return ""
	},
	"join": strings.Join,
	"paragraphs": func(s string) []string {
		var out []string
		for _, p := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	},
}

func newPages(p postSource, g gallerySource, c commentSource, s settingsSource) (*pages, error) {
	tpl := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(templateFuncs).
			ParseFS(assets, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		tpl[name] = t
	}
	return &pages{posts: p, galleries: g, comments: c, settings: s, templates: tpl}, nil
}

func (p *pages) render(c *gin.Context, status int, name, title string, data any) {
	site := make(map[string]string, len(siteDefaults))
	for k, v := range siteDefaults {
		site[k] = v
	}
	if p.settings != nil {
		all, err := p.settings.All(c.Request.Context())
		if err != nil {
			slog.Warn("Failed to load settings for page", "error", err, "request_id", c.GetString("request_id"))
		}
		for k, v := range all {
			if v != "" {
				site[k] = v
			}
		}
	}

	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	err := p.templates[name].ExecuteTemplate(c.Writer, "layout", view{
		Site:  site,
		Title: title,
		Path:  c.Request.URL.Path,
		Data:  data,
	})
	if err != nil {
		slog.Error("Failed to render page", "page", name, "error", err, "request_id", c.GetString("request_id"))
	}
}

func (p *pages) serverError(c *gin.Context, err error, what string) {
	slog.Error("Failed to load "+what, "error", err, "path", c.Request.URL.Path, "request_id", c.GetString("request_id"))
	p.render(c, http.StatusInternalServerError, "error", "Something went wrong", gin.H{
		"Message": "Something went wrong on our side. Please try again later.",
	})
}

func (p *pages) notFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Not found"})
		return
	}
	p.render(c, http.StatusNotFound, "error", "Not found", gin.H{
		"Message": "The page you are looking for does not exist.",
	})
}

func (p *pages) home(c *gin.Context) {
	ctx := c.Request.Context()

	latest, err := p.posts.ListPublished(ctx, posts.ListFilter{Page: 1, PageSize: 3})
	if err != nil {
		p.serverError(c, err, "latest posts")
		return
	}
	photos, err := p.galleries.List(ctx, media.KindPhoto, "")
	if err != nil {
		p.serverError(c, err, "photos")
		return
	}
	if len(photos) > 6 {
		photos = photos[:6]
	}

	p.render(c, http.StatusOK, "home", "", gin.H{"Posts": latest.Posts, "Photos": photos})
}

func (p *pages) about(c *gin.Context) {
	p.render(c, http.StatusOK, "about", "About", nil)
}

func (p *pages) resume(c *gin.Context) {
	p.render(c, http.StatusOK, "resume", "Resume", nil)
}

func (p *pages) sponsorship(c *gin.Context) {
	p.render(c, http.StatusOK, "sponsorship", "Sponsorship", nil)
}

func (p *pages) portfolio(c *gin.Context) {
	ctx := c.Request.Context()

	photos, err := p.galleries.List(ctx, media.KindPhoto, "portfolio")
	if err != nil {
		p.serverError(c, err, "portfolio photos")
		return
	}
	videos, err := p.galleries.List(ctx, media.KindVideo, "")
	if err != nil {
		p.serverError(c, err, "videos")
		return
	}

	p.render(c, http.StatusOK, "portfolio", "Portfolio", gin.H{"Photos": photos, "Videos": videos})
}

func (p *pages) gallery(c *gin.Context) {
	category := c.Query("category")
	photos, err := p.galleries.List(c.Request.Context(), media.KindPhoto, category)
	if err != nil {
		p.serverError(c, err, "gallery")
		return
	}
	p.render(c, http.StatusOK, "gallery", "Gallery", gin.H{"Photos": photos, "Category": category})
}

func (p *pages) blog(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	resp, err := p.posts.ListPublished(c.Request.Context(), posts.ListFilter{
		Page:     page,
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
	})
	if err != nil {
		p.serverError(c, err, "posts")
		return
	}

	data := gin.H{"Page": resp}
	if resp.Page > 1 {
		data["Prev"] = resp.Page - 1
	}
	if resp.Page < resp.TotalPages {
		data["Next"] = resp.Page + 1
	}
	p.render(c, http.StatusOK, "blog", "Blog", data)
}

func (p *pages) post(c *gin.Context) {
	slug := c.Param("slug")
	post, err := p.posts.GetPublishedPost(c.Request.Context(), slug)
	if errors.Is(err, posts.ErrPostNotFound) {
		p.notFound(c)
		return
	}
	if err != nil {
		p.serverError(c, err, "post")
		return
	}

	list, err := p.comments.ListApproved(c.Request.Context(), slug)
	if err != nil {
		slog.Warn("Failed to load comments", "slug", slug, "error", err, "request_id", c.GetString("request_id"))
		list = nil
	}

	p.render(c, http.StatusOK, "post", post.Title, gin.H{"Post": post, "Comments": list})
}

// dashboard is only reached after the guard allowed an admin.
func (p *pages) dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	var email string
	if v, ok := c.Get(guard.ContextClaims); ok {
		if claims, ok := v.(*token.Claims); ok {
			email = claims.Email
		}
	}

	all, err := p.posts.ListAll(ctx, posts.ListFilter{Page: 1, PageSize: 20})
	if err != nil {
		p.serverError(c, err, "admin posts")
		return
	}
	pending, err := p.comments.ListForModeration(ctx, comments.StatusPending)
	if err != nil {
		p.serverError(c, err, "pending comments")
		return
	}

	p.render(c, http.StatusOK, "dashboard", "Admin", gin.H{
		"Email":   email,
		"Posts":   all,
		"Pending": pending,
	})
}

func (p *pages) login(c *gin.Context) {
	p.render(c, http.StatusOK, "login", "Sign in", nil)
}
