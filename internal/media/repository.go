package media

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"folio/internal/database"

	"github.com/jackc/pgx/v5"
)

var (
	ErrItemNotFound = errors.New("media item not found")
	ErrUnknownKind  = errors.New("unknown media kind")
)

// Repository persists gallery items of every kind.
type Repository interface {
	List(ctx context.Context, kind Kind, category string) ([]Item, error)
	GetByID(ctx context.Context, kind Kind, id int64) (*Item, error)
	Create(ctx context.Context, item *Item) (*Item, error)
	Update(ctx context.Context, kind Kind, id int64, req UpdateItemRequest) (*Item, error)
	Delete(ctx context.Context, kind Kind, id int64) (*Item, error)
}

type pgRepository struct {
	db database.Service
}

// NewRepository creates a Postgres-backed media repository.
func NewRepository(db database.Service) Repository {
	return &pgRepository{db: db}
}

const itemColumns = `id, title, description, url, thumbnail_url, category, sort_order, created_at`

func scanItem(row pgx.Row, kind Kind) (*Item, error) {
	it := &Item{Kind: kind}
	err := row.Scan(&it.ID, &it.Title, &it.Description, &it.URL, &it.ThumbnailURL, &it.Category, &it.SortOrder, &it.CreatedAt)
	if err != nil {
		return nil, err
	}
	return it, nil
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrItemNotFound
	}
	return err
}

func (r *pgRepository) List(ctx context.Context, kind Kind, category string) ([]Item, error) {
	table, err := kind.table()
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + itemColumns + ` FROM ` + table
	var args []any
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY sort_order, created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		it, err := scanItem(rows, kind)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", kind, err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (r *pgRepository) GetByID(ctx context.Context, kind Kind, id int64) (*Item, error) {
	table, err := kind.table()
	if err != nil {
		return nil, err
	}

	it, err := scanItem(r.db.QueryRow(ctx, `SELECT `+itemColumns+` FROM `+table+` WHERE id = $1`, id), kind)
	if err != nil {
		return nil, notFound(err)
	}
	return it, nil
}

func (r *pgRepository) Create(ctx context.Context, item *Item) (*Item, error) {
	table, err := item.Kind.table()
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO ` + table + ` (title, description, url, thumbnail_url, category, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + itemColumns

	it, err := scanItem(r.db.QueryRow(ctx, query,
		item.Title, item.Description, item.URL, item.ThumbnailURL, item.Category, item.SortOrder,
	), item.Kind)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", item.Kind, err)
	}
	return it, nil
}

func (r *pgRepository) Update(ctx context.Context, kind Kind, id int64, req UpdateItemRequest) (*Item, error) {
	table, err := kind.table()
	if err != nil {
		return nil, err
	}

	var sets []string
	var args []any
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if req.Title != nil {
		set("title", *req.Title)
	}
	if req.Description != nil {
		set("description", *req.Description)
	}
	if req.URL != nil {
		set("url", *req.URL)
	}
	if req.ThumbnailURL != nil {
		set("thumbnail_url", *req.ThumbnailURL)
	}
	if req.Category != nil {
		set("category", *req.Category)
	}
	if req.SortOrder != nil {
		set("sort_order", *req.SortOrder)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, kind, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d RETURNING %s`,
		table, strings.Join(sets, ", "), len(args), itemColumns)

	it, err := scanItem(r.db.QueryRow(ctx, query, args...), kind)
	if err != nil {
		return nil, notFound(err)
	}
	return it, nil
}

func (r *pgRepository) Delete(ctx context.Context, kind Kind, id int64) (*Item, error) {
	table, err := kind.table()
	if err != nil {
		return nil, err
	}

	it, err := scanItem(r.db.QueryRow(ctx, `DELETE FROM `+table+` WHERE id = $1 RETURNING `+itemColumns, id), kind)
	if err != nil {
		return nil, notFound(err)
	}
	return it, nil
}
