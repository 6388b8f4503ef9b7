package media

import (
	"fmt"
	"time"
)

// Kind selects the gallery an item belongs to.
type Kind string

const (
	KindPhoto Kind = "photo"
	KindVideo Kind = "video"
)

// Kinds lists every gallery kind.
var Kinds = []Kind{KindPhoto, KindVideo}

// table is the backing table. Only known kinds map to a table, so the value
// is safe to interpolate into SQL.
func (k Kind) table() (string, error) {
	switch k {
	case KindPhoto:
		return "photos", nil
	case KindVideo:
		return "videos", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
	}
}

// Plural is the URL segment for the kind ("photos", "videos").
func (k Kind) Plural() string {
	return string(k) + "s"
}

// Item is a gallery entry. URL is either an external link (e.g. a video
// host) or a storage object key.
type Item struct {
	ID           int64     `json:"id"`
	Kind         Kind      `json:"kind"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Category     string    `json:"category"`
	SortOrder    int       `json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateItemRequest is the body for POST /api/admin/{photos,videos}
type CreateItemRequest struct {
	Title        string `json:"title" binding:"required,max=200"`
	Description  string `json:"description" binding:"max=2000"`
	URL          string `json:"url" binding:"required"`
	ThumbnailURL string `json:"thumbnail_url"`
	Category     string `json:"category" binding:"max=100"`
	SortOrder    int    `json:"sort_order"`
}

// UpdateItemRequest is the body for PATCH /api/admin/{photos,videos}/:id
type UpdateItemRequest struct {
	Title        *string `json:"title,omitempty" binding:"omitempty,max=200"`
	Description  *string `json:"description,omitempty" binding:"omitempty,max=2000"`
	URL          *string `json:"url,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	Category     *string `json:"category,omitempty" binding:"omitempty,max=100"`
	SortOrder    *int    `json:"sort_order,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
