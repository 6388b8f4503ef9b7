package posts

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for posts
type Handler struct {
	service *Service
}

// NewHandler creates a new posts handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListPublished handles GET /api/posts?page&page_size&category&tag
func (h *Handler) ListPublished(c *gin.Context) {
	resp, err := h.service.ListPublished(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		h.fail(c, err, "Failed to retrieve posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    resp,
	})
}

// GetPublished handles GET /api/posts/:slug
func (h *Handler) GetPublished(c *gin.Context) {
	post, err := h.service.GetPublishedPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err, "Failed to retrieve post")
		return
	}

	c.JSON(http.StatusOK, PostResponse{Success: true, Data: post})
}

// ListCategories handles GET /api/categories
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to retrieve categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    categories,
	})
}

// ListAll handles GET /api/admin/posts
func (h *Handler) ListAll(c *gin.Context) {
	resp, err := h.service.ListAll(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		h.fail(c, err, "Failed to retrieve posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    resp,
	})
}

// CreatePost handles POST /api/admin/posts
func (h *Handler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid request body: " + err.Error(),
		})
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Failed to create post")
		return
	}

	c.JSON(http.StatusCreated, PostResponse{
		Success: true,
		Message: "Post created successfully",
		Data:    post,
	})
}

// GetPost handles GET /api/admin/posts/:id
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	post, err := h.service.GetPost(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to retrieve post")
		return
	}

	c.JSON(http.StatusOK, PostResponse{Success: true, Data: post})
}

// UpdatePost handles PATCH /api/admin/posts/:id
func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid request body: " + err.Error(),
		})
		return
	}

	post, err := h.service.UpdatePost(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, "Failed to update post")
		return
	}

	c.JSON(http.StatusOK, PostResponse{
		Success: true,
		Message: "Post updated successfully",
		Data:    post,
	})
}

// DeletePost handles DELETE /api/admin/posts/:id
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Failed to delete post")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Post deleted successfully",
	})
}

// CreateCategory handles POST /api/admin/categories
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid request body: " + err.Error(),
		})
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    category,
	})
}

// DeleteCategory handles DELETE /api/admin/categories/:id
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Failed to delete category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category deleted successfully",
	})
}

// fail maps service errors onto HTTP statuses.
func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrPostNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Success: false, Error: "Post not found"})
	case errors.Is(err, ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Success: false, Error: "Category not found"})
	case errors.Is(err, ErrSlugExists):
		c.JSON(http.StatusConflict, ErrorResponse{Success: false, Error: "Slug already in use"})
	case errors.Is(err, ErrInvalidSlug):
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "A title or slug with letters or digits is required"})
	default:
		slog.Error(fallback, "error", err, "request_id", c.GetString("request_id"))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Success: false, Error: fallback})
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid ID",
		})
		return 0, false
	}
	return id, true
}

func filterFromQuery(c *gin.Context) ListFilter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))

	return ListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
	}.Normalize()
}
