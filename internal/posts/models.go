package posts

import "time"

// Post is a blog article. Drafts (Published=false) are only visible in the
// admin area.
type Post struct {
	ID          int64      `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	CoverImage  string     `json:"cover_image"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Category groups posts. Posts reference categories by slug.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePostRequest represents the request body for creating a new post.
// Slug is derived from Title when empty.
type CreatePostRequest struct {
	Title      string   `json:"title" binding:"required,max=200"`
	Slug       string   `json:"slug" binding:"omitempty,max=200"`
	Excerpt    string   `json:"excerpt" binding:"max=500"`
	Content    string   `json:"content"`
	CoverImage string   `json:"cover_image"` // Can be file_key from storage or full URL
	Category   string   `json:"category"`
	Tags       []string `json:"tags"`
	Published  bool     `json:"published"`
}

// UpdatePostRequest represents the request body for updating a post. Nil
// fields are left unchanged.
type UpdatePostRequest struct {
	Title      *string   `json:"title,omitempty" binding:"omitempty,max=200"`
	Slug       *string   `json:"slug,omitempty" binding:"omitempty,max=200"`
	Excerpt    *string   `json:"excerpt,omitempty" binding:"omitempty,max=500"`
	Content    *string   `json:"content,omitempty"`
	CoverImage *string   `json:"cover_image,omitempty"`
	Category   *string   `json:"category,omitempty"`
	Tags       *[]string `json:"tags,omitempty"`
	Published  *bool     `json:"published,omitempty"`
}

// CreateCategoryRequest is the body for POST /api/admin/categories
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Slug string `json:"slug" binding:"omitempty,max=100"`
}

// ListFilter selects a page of posts.
type ListFilter struct {
	Page          int
	PageSize      int
	Category      string
	Tag           string
	PublishedOnly bool
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
	// MaxPage bounds the OFFSET sent to Postgres and the number of cached
	// listing pages.
	MaxPage = 1000
)

// Normalize clamps pagination to sane bounds.
func (f ListFilter) Normalize() ListFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Page > MaxPage {
		f.Page = MaxPage
	}
	if f.PageSize < 1 || f.PageSize > maxPageSize {
		f.PageSize = defaultPageSize
	}
	return f
}

// PaginatedPostsResponse represents paginated posts response
type PaginatedPostsResponse struct {
	Posts      []Post `json:"posts"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalCount int64  `json:"total_count"`
	TotalPages int    `json:"total_pages"`
}

// PostResponse is a standard response wrapper
type PostResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    *Post  `json:"data,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
