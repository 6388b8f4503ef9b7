package comments

import "time"

// Comment is a reader comment on a post. New comments wait for moderation.
type Comment struct {
	ID          int64     `json:"id"`
	PostID      int64     `json:"post_id"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email,omitempty"`
	Body        string    `json:"body"`
	Approved    bool      `json:"approved"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCommentRequest is the body for POST /api/posts/:slug/comments
type CreateCommentRequest struct {
	AuthorName  string `json:"author_name" binding:"required,max=100"`
	AuthorEmail string `json:"author_email" binding:"omitempty,email,max=254"`
	Body        string `json:"body" binding:"required,max=5000"`
}

// Status filters the moderation queue.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusAll      Status = "all"
)

// ParseStatus maps a query value onto a Status. Unknown values mean pending.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusApproved, StatusAll:
		return Status(s)
	default:
		return StatusPending
	}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
