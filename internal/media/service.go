// Package media runs the photo and video galleries. Both kinds share one
// repository, service and handler; only the backing table differs.
package media

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"folio/internal/cache"
	"folio/internal/storage"
)

const listTTL = 5 * time.Minute

func listKey(kind Kind, category string) string {
	return fmt.Sprintf("media:%s:list:%s", kind, category)
}

// ObjectStore is the subset of storage.Service the galleries need.
type ObjectStore interface {
	DeleteFile(ctx context.Context, key string) error
	PublicURL(key string) string
}

// Service handles gallery business logic.
type Service struct {
	repo    Repository
	cache   cache.Store
	objects ObjectStore
}

// NewService creates a media service. store and objects may be nil.
func NewService(repo Repository, store cache.Store, objects ObjectStore) *Service {
	return &Service{repo: repo, cache: store, objects: objects}
}

// List returns the items of a gallery with storage keys resolved to public
// URLs.
func (s *Service) List(ctx context.Context, kind Kind, category string) ([]Item, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	key := listKey(kind, category)

	var items []Item
	if !cache.GetJSON(ctx, s.cache, key, &items) {
		var err error
		items, err = s.repo.List(ctx, kind, category)
		if err != nil {
			return nil, err
		}
		cache.SetJSON(ctx, s.cache, key, items, listTTL)
	}

	for i := range items {
		s.resolve(&items[i])
	}
	return items, nil
}

// Create adds an item to a gallery.
func (s *Service) Create(ctx context.Context, kind Kind, req CreateItemRequest) (*Item, error) {
	if _, err := kind.table(); err != nil {
		return nil, err
	}

	it, err := s.repo.Create(ctx, &Item{
		Kind:         kind,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		URL:          strings.TrimSpace(req.URL),
		ThumbnailURL: strings.TrimSpace(req.ThumbnailURL),
		Category:     strings.ToLower(strings.TrimSpace(req.Category)),
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, kind)
	s.resolve(it)
	return it, nil
}

// Update applies a partial update. Replaced storage objects are removed.
func (s *Service) Update(ctx context.Context, kind Kind, id int64, req UpdateItemRequest) (*Item, error) {
	before, err := s.repo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if req.Category != nil {
		c := strings.ToLower(strings.TrimSpace(*req.Category))
		req.Category = &c
	}

	it, err := s.repo.Update(ctx, kind, id, req)
	if err != nil {
		return nil, err
	}

	if before.URL != it.URL {
		s.deleteObject(ctx, before.URL)
	}
	if before.ThumbnailURL != it.ThumbnailURL {
		s.deleteObject(ctx, before.ThumbnailURL)
	}

	s.invalidate(ctx, kind)
	s.resolve(it)
	return it, nil
}

// Delete removes an item and the storage objects it owns.
func (s *Service) Delete(ctx context.Context, kind Kind, id int64) error {
	it, err := s.repo.Delete(ctx, kind, id)
	if err != nil {
		return err
	}

	s.deleteObject(ctx, it.URL)
	s.deleteObject(ctx, it.ThumbnailURL)
	s.invalidate(ctx, kind)
	return nil
}

// deleteObject removes ref from storage when it is one of our object keys.
// A failure leaves an orphaned object and is only logged.
func (s *Service) deleteObject(ctx context.Context, ref string) {
	if s.objects == nil || !storage.IsObjectKey(ref) {
		return
	}
	if err := s.objects.DeleteFile(ctx, ref); err != nil {
		slog.Warn("Failed to delete media object", "key", ref, "error", err)
	}
}

func (s *Service) resolve(it *Item) {
	if s.objects == nil {
		return
	}
	if storage.IsObjectKey(it.URL) {
		it.URL = s.objects.PublicURL(it.URL)
	}
	if storage.IsObjectKey(it.ThumbnailURL) {
		it.ThumbnailURL = s.objects.PublicURL(it.ThumbnailURL)
	}
}

func (s *Service) invalidate(ctx context.Context, kind Kind) {
	cache.Invalidate(ctx, s.cache, nil, fmt.Sprintf("media:%s:list:*", kind))
}
