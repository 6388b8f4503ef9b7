package media

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler serves one gallery kind.
type Handler struct {
	kind    Kind
	service *Service
}

// NewHandler creates a handler bound to kind.
func NewHandler(kind Kind, service *Service) *Handler {
	return &Handler{kind: kind, service: service}
}

// RegisterRoutes mounts every gallery: public listings on api and management
// endpoints on admin.
func RegisterRoutes(api, admin *gin.RouterGroup, service *Service) {
	for _, kind := range Kinds {
		h := NewHandler(kind, service)
		api.GET("/"+kind.Plural(), h.List)

		g := admin.Group("/" + kind.Plural())
		{
			g.POST("", h.Create)
			g.PATCH("/:id", h.Update)
			g.DELETE("/:id", h.Delete)
		}
	}
}

// List handles GET /api/{photos,videos}?category=
func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), h.kind, c.Query("category"))
	if err != nil {
		h.fail(c, err, "Failed to retrieve "+h.kind.Plural())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}

// Create handles POST /api/admin/{photos,videos}
func (h *Handler) Create(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "Invalid request body: " + err.Error()})
		return
	}

	it, err := h.service.Create(c.Request.Context(), h.kind, req)
	if err != nil {
		h.fail(c, err, "Failed to create "+string(h.kind))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    it,
	})
}

// Update handles PATCH /api/admin/{photos,videos}/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "Invalid request body: " + err.Error()})
		return
	}

	it, err := h.service.Update(c.Request.Context(), h.kind, id, req)
	if err != nil {
		h.fail(c, err, "Failed to update "+string(h.kind))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    it,
	})
}

// Delete handles DELETE /api/admin/{photos,videos}/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), h.kind, id); err != nil {
		h.fail(c, err, "Failed to delete "+string(h.kind))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Deleted successfully",
	})
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	if errors.Is(err, ErrItemNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Success: false, Error: "Item not found"})
		return
	}
	slog.Error(msg, "kind", string(h.kind), "error", err, "request_id", c.GetString("request_id"))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Success: false, Error: msg})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "Invalid ID"})
		return 0, false
	}
	return id, true
}
