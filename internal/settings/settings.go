// Package settings stores site-wide text such as the title, bio and
// sponsorship copy as key/value rows.
package settings

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"folio/internal/cache"
	"folio/internal/database"
)

const (
	cacheKey = "settings:all"
	cacheTTL = 10 * time.Minute

	MaxValueLength = 10000
)

// Well-known keys rendered by the public pages.
const (
	KeySiteTitle       = "site_title"
	KeyTagline         = "tagline"
	KeyBio             = "bio"
	KeyResumeURL       = "resume_url"
	KeySponsorshipText = "sponsorship_text"
	KeyContactEmail    = "contact_email"
)

var ErrInvalidKey = errors.New("invalid settings key")

var keyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)

// ValidKey reports whether k may be stored.
func ValidKey(k string) bool {
	return keyPattern.MatchString(k)
}

// Repository persists settings.
type Repository interface {
	All(ctx context.Context) (map[string]string, error)
	Upsert(ctx context.Context, values map[string]string) error
}

type pgRepository struct {
	db database.Service
}

// NewRepository creates a settings repository backed by Postgres.
func NewRepository(db database.Service) Repository {
	return &pgRepository{db: db}
}

func (r *pgRepository) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.Query(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

func (r *pgRepository) Upsert(ctx context.Context, values map[string]string) error {
	const q = `
		INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	for k, v := range values {
		if _, err := r.db.Exec(ctx, q, k, v); err != nil {
			return fmt.Errorf("upsert setting %s: %w", k, err)
		}
	}
	return nil
}

// Service reads and writes settings through the cache.
type Service struct {
	repo  Repository
	cache cache.Store
}

// NewService creates a settings service. store may be nil.
func NewService(repo Repository, store cache.Store) *Service {
	return &Service{repo: repo, cache: store}
}

// All returns every setting.
func (s *Service) All(ctx context.Context) (map[string]string, error) {
	var out map[string]string
	if cache.GetJSON(ctx, s.cache, cacheKey, &out) {
		return out, nil
	}

	out, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	cache.SetJSON(ctx, s.cache, cacheKey, out, cacheTTL)
	return out, nil
}

// Get returns one setting, or fallback when it is unset or unreadable.
func (s *Service) Get(ctx context.Context, key, fallback string) string {
	all, err := s.All(ctx)
	if err != nil {
		return fallback
	}
	if v, ok := all[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Update stores values and returns the full set afterwards.
func (s *Service) Update(ctx context.Context, values map[string]string) (map[string]string, error) {
	for k, v := range values {
		if !ValidKey(k) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKey, k)
		}
		if len(v) > MaxValueLength {
			return nil, fmt.Errorf("%w: value for %q is too long", ErrInvalidKey, k)
		}
	}

	if err := s.repo.Upsert(ctx, values); err != nil {
		return nil, err
	}
	cache.Invalidate(ctx, s.cache, []string{cacheKey})
	return s.All(ctx)
}
