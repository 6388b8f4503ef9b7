package posts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"folio/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrSlugExists       = errors.New("slug already in use")
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidSlug      = errors.New("slug is empty after normalization")
)

const uniqueViolation = "23505"

// Repository persists posts and categories.
type Repository interface {
	Create(ctx context.Context, p *Post) (*Post, error)
	GetByID(ctx context.Context, id int64) (*Post, error)
	GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*Post, error)
	List(ctx context.Context, f ListFilter) ([]Post, int64, error)
	Update(ctx context.Context, id int64, req UpdatePostRequest) (*Post, error)
	Delete(ctx context.Context, id int64) (*Post, error)

	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, name, slug string) (*Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type pgRepository struct {
	db database.Service
}

// NewRepository creates a new posts repository
func NewRepository(db database.Service) Repository {
	return &pgRepository{db: db}
}

const postColumns = `id, slug, title, excerpt, content, cover_image, category, tags, published, published_at, created_at, updated_at`

func scanPost(row pgx.Row) (*Post, error) {
	p := &Post{}
	err := row.Scan(
		&p.ID,
		&p.Slug,
		&p.Title,
		&p.Excerpt,
		&p.Content,
		&p.CoverImage,
		&p.Category,
		&p.Tags,
		&p.Published,
		&p.PublishedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Create inserts a new post into the database
func (r *pgRepository) Create(ctx context.Context, p *Post) (*Post, error) {
	query := `
		INSERT INTO posts (slug, title, excerpt, content, cover_image, category, tags, published, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING ` + postColumns

	post, err := scanPost(r.db.QueryRow(ctx, query,
		p.Slug, p.Title, p.Excerpt, p.Content, p.CoverImage, p.Category, p.Tags, p.Published, p.PublishedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugExists
		}
		slog.Error("Error creating post", "error", err)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// GetByID retrieves a single post by ID, drafts included
func (r *pgRepository) GetByID(ctx context.Context, id int64) (*Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// GetBySlug retrieves a post by slug
func (r *pgRepository) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE slug = $1`
	if publishedOnly {
		query += ` AND published`
	}

	post, err := scanPost(r.db.QueryRow(ctx, query, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// List returns a page of posts, newest first, and the total matching count.
func (r *pgRepository) List(ctx context.Context, f ListFilter) ([]Post, int64, error) {
	f = f.Normalize()

	var conds []string
	var args []any
	if f.PublishedOnly {
		conds = append(conds, "published")
	}
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Tag != "" {
		args = append(args, f.Tag)
		conds = append(conds, fmt.Sprintf("$%d = ANY(tags)", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`+where, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	offset := (f.Page - 1) * f.PageSize
	query := fmt.Sprintf(`SELECT %s FROM posts%s
		ORDER BY COALESCE(published_at, created_at) DESC, id DESC
		LIMIT $%d OFFSET $%d`, postColumns, where, len(args)+1, len(args)+2)
	args = append(args, f.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, totalCount, nil
}

// Update applies the non-nil fields of req. Publishing a draft for the first
// time stamps published_at.
func (r *pgRepository) Update(ctx context.Context, id int64, req UpdatePostRequest) (*Post, error) {
	var sets []string
	var args []any
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if req.Title != nil {
		set("title", *req.Title)
	}
	if req.Slug != nil {
		set("slug", *req.Slug)
	}
	if req.Excerpt != nil {
		set("excerpt", *req.Excerpt)
	}
	if req.Content != nil {
		set("content", *req.Content)
	}
	if req.CoverImage != nil {
		set("cover_image", *req.CoverImage)
	}
	if req.Category != nil {
		set("category", *req.Category)
	}
	if req.Tags != nil {
		set("tags", *req.Tags)
	}
	if req.Published != nil {
		set("published", *req.Published)
		// The right-hand side of SET sees the old row, so reuse the new flag.
		sets = append(sets, fmt.Sprintf(
			"published_at = CASE WHEN $%d AND published_at IS NULL THEN NOW() ELSE published_at END", len(args)))
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE posts SET %s, updated_at = NOW() WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), postColumns)

	post, err := scanPost(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugExists
		}
		slog.Error("Error updating post", "post_id", id, "error", err)
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

// Delete removes a post and returns what was deleted.
func (r *pgRepository) Delete(ctx context.Context, id int64) (*Post, error) {
	query := `DELETE FROM posts WHERE id = $1 RETURNING ` + postColumns

	post, err := scanPost(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}
	return post, nil
}

func (r *pgRepository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, slug, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *pgRepository) CreateCategory(ctx context.Context, name, slug string) (*Category, error) {
	query := `
		INSERT INTO categories (name, slug) VALUES ($1, $2)
		RETURNING id, name, slug, created_at
	`

	var c Category
	err := r.db.QueryRow(ctx, query, name, slug).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &c, nil
}

func (r *pgRepository) DeleteCategory(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
