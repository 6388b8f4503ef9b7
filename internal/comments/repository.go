package comments

import (
	"context"
	"errors"
	"fmt"

	"folio/internal/database"

	"github.com/jackc/pgx/v5"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrEmptyBody       = errors.New("comment body is empty")
)

// Repository persists comments.
type Repository interface {
	Create(ctx context.Context, c *Comment) (*Comment, error)
	ListByPost(ctx context.Context, postID int64, approvedOnly bool) ([]Comment, error)
	List(ctx context.Context, status Status) ([]Comment, error)
	Approve(ctx context.Context, id int64) (*Comment, error)
	Delete(ctx context.Context, id int64) (*Comment, error)
}

type pgRepository struct {
	db database.Service
}

// NewRepository creates a comments repository backed by Postgres.
func NewRepository(db database.Service) Repository {
	return &pgRepository{db: db}
}

const commentColumns = `id, post_id, author_name, author_email, body, approved, created_at`

func scanComment(row pgx.Row) (*Comment, error) {
	c := &Comment{}
	if err := row.Scan(&c.ID, &c.PostID, &c.AuthorName, &c.AuthorEmail, &c.Body, &c.Approved, &c.CreatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *pgRepository) Create(ctx context.Context, c *Comment) (*Comment, error) {
	const q = `
		INSERT INTO comments (post_id, author_name, author_email, body, approved)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + commentColumns

	out, err := scanComment(r.db.QueryRow(ctx, q, c.PostID, c.AuthorName, c.AuthorEmail, c.Body, c.Approved))
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return out, nil
}

func (r *pgRepository) ListByPost(ctx context.Context, postID int64, approvedOnly bool) ([]Comment, error) {
	q := `SELECT ` + commentColumns + ` FROM comments WHERE post_id = $1`
	if approvedOnly {
		q += ` AND approved`
	}
	q += ` ORDER BY created_at ASC, id ASC`

	return r.collect(ctx, q, postID)
}

func (r *pgRepository) List(ctx context.Context, status Status) ([]Comment, error) {
	q := `SELECT ` + commentColumns + ` FROM comments`
	switch status {
	case StatusPending:
		q += ` WHERE NOT approved`
	case StatusApproved:
		q += ` WHERE approved`
	}
	q += ` ORDER BY created_at DESC, id DESC`

	return r.collect(ctx, q)
}

func (r *pgRepository) collect(ctx context.Context, q string, args ...any) ([]Comment, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	out := []Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *pgRepository) Approve(ctx context.Context, id int64) (*Comment, error) {
	q := `UPDATE comments SET approved = TRUE WHERE id = $1 RETURNING ` + commentColumns

	c, err := scanComment(r.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("approve comment: %w", err)
	}
	return c, nil
}

func (r *pgRepository) Delete(ctx context.Context, id int64) (*Comment, error) {
	q := `DELETE FROM comments WHERE id = $1 RETURNING ` + commentColumns

	c, err := scanComment(r.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete comment: %w", err)
	}
	return c, nil
}
