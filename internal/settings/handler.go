package settings

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Handler serves the settings endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts GET /settings on api and PUT /settings on admin.
func RegisterRoutes(api, admin *gin.RouterGroup, h *Handler) {
	api.GET("/settings", h.Get)
	admin.PUT("/settings", h.Update)
}

// Get handles GET /api/settings
func (h *Handler) Get(c *gin.Context) {
	values, err := h.service.All(c.Request.Context())
	if err != nil {
		slog.Error("Failed to load settings", "error", err, "request_id", c.GetString("request_id"))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Success: false, Error: "Failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": values})
}

// Update handles PUT /api/admin/settings with a flat JSON object body.
func (h *Handler) Update(c *gin.Context) {
	var values map[string]string
	if err := c.ShouldBindJSON(&values); err != nil || len(values) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "Body must be a non-empty object of string values"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), values)
	if err != nil {
		if errors.Is(err, ErrInvalidKey) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: err.Error()})
			return
		}
		slog.Error("Failed to update settings", "error", err, "request_id", c.GetString("request_id"))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Success: false, Error: "Failed to update settings"})
		return
	}

	slog.Info("Settings updated", "keys", len(values), "user_id", c.GetString("user_id"))
	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}
