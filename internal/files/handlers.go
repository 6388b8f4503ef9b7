package files

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for files service
type Handler struct {
	service *Service
}

// NewHandler creates a new files handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the file endpoints on the authenticated admin group.
func RegisterRoutes(admin *gin.RouterGroup, h *Handler) {
	filesGroup := admin.Group("/files")
	{
		filesGroup.POST("/upload-url", h.GenerateUploadURL)
		filesGroup.POST("/download-url", h.GenerateDownloadURL)
		filesGroup.DELETE("/*key", h.DeleteFile) // keys contain a folder prefix
	}
}

// GenerateUploadURL handles POST /api/admin/files/upload-url
func (h *Handler) GenerateUploadURL(c *gin.Context) {
	var req GenerateUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid request body",
			Code:    "INVALID_REQUEST",
			Details: err.Error(),
		})
		return
	}

	response, err := h.service.GenerateUploadURL(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err, "Failed to generate upload URL", "GENERATION_FAILED")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GenerateDownloadURL handles POST /api/admin/files/download-url
func (h *Handler) GenerateDownloadURL(c *gin.Context) {
	var req GenerateDownloadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid request body",
			Code:    "INVALID_REQUEST",
			Details: err.Error(),
		})
		return
	}

	response, err := h.service.GenerateDownloadURL(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err, "Failed to generate download URL", "GENERATION_FAILED")
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteFile handles DELETE /api/admin/files/*key
func (h *Handler) DeleteFile(c *gin.Context) {
	fileKey := strings.TrimPrefix(c.Param("key"), "/")
	if fileKey == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "File key is required",
			Code:    "INVALID_FILE_KEY",
		})
		return
	}

	if err := h.service.DeleteFile(c.Request.Context(), fileKey); err != nil {
		h.fail(c, err, "Failed to delete file", "DELETE_FAILED")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "File deleted successfully",
		"file_key": fileKey,
	})
}

func (h *Handler) fail(c *gin.Context, err error, msg, code string) {
	switch {
	case errors.Is(err, ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Success: false,
			Error:   "Storage service is not available",
			Code:    "STORAGE_UNAVAILABLE",
		})
	case errors.Is(err, ErrInvalidFile):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   msg,
			Code:    "INVALID_FILE",
			Details: err.Error(),
		})
	default:
		slog.Error(msg, "error", err, "request_id", c.GetString("request_id"))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   msg,
			Code:    code,
		})
	}
}
