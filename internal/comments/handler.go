package comments

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"folio/internal/posts"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler { return &Handler{svc: svc} }

// POST /api/posts/:slug/comments
func (h *Handler) Create(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "Invalid request body: " + err.Error()})
		return
	}

	comment, err := h.svc.Submit(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		h.fail(c, err, "Failed to submit comment")
		return
	}

	slog.Info("Comment submitted for moderation",
		"comment_id", comment.ID,
		"post_id", comment.PostID,
		"request_id", c.GetString("request_id"),
	)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Comment is awaiting moderation",
		"data":    comment,
	})
}

// GET /api/posts/:slug/comments
func (h *Handler) List(c *gin.Context) {
	comments, err := h.svc.ListApproved(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err, "Failed to retrieve comments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": comments})
}

// GET /api/admin/comments?status=pending|approved|all
func (h *Handler) Moderation(c *gin.Context) {
	comments, err := h.svc.ListForModeration(c.Request.Context(), ParseStatus(c.Query("status")))
	if err != nil {
		h.fail(c, err, "Failed to retrieve comments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": comments})
}

// PATCH /api/admin/comments/:id/approve
func (h *Handler) Approve(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	comment, err := h.svc.Approve(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to approve comment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": comment})
}

// DELETE /api/admin/comments/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Failed to delete comment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Comment deleted"})
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, posts.ErrPostNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Success: false, Error: "Post not found"})
	case errors.Is(err, ErrCommentNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Success: false, Error: "Comment not found"})
	case errors.Is(err, ErrEmptyBody):
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "Name and comment are required"})
	default:
		slog.Error(msg, "error", err, "request_id", c.GetString("request_id"))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Success: false, Error: msg})
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "Invalid ID"})
		return 0, false
	}
	return id, true
}
