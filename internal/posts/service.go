package posts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"folio/internal/cache"
)

const (
	postTTL       = 5 * time.Minute
	listTTL       = 2 * time.Minute
	categoriesTTL = 10 * time.Minute

	listPattern   = "posts:list:*"
	categoriesKey = "categories:all"
)

func postKey(slug string) string { return "post:" + slug }

func listKey(f ListFilter) string {
	return fmt.Sprintf("posts:list:page:%d:size:%d:cat:%s:tag:%s", f.Page, f.PageSize, f.Category, f.Tag)
}

// Service handles business logic for posts. Public reads go through the
// cache; admin reads never do, so drafts are not cached.
type Service struct {
	repo  Repository
	cache cache.Store
	now   func() time.Time
}

// NewService creates a posts service. A nil store disables caching.
func NewService(repo Repository, store cache.Store) *Service {
	return &Service{repo: repo, cache: store, now: time.Now}
}

// CreatePost creates a post, deriving the slug from the title when needed.
func (s *Service) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	slug := Slugify(req.Slug)
	if slug == "" {
		slug = Slugify(req.Title)
	}
	if slug == "" {
		return nil, ErrInvalidSlug
	}

	p := &Post{
		Slug:       slug,
		Title:      strings.TrimSpace(req.Title),
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		Category:   Slugify(req.Category),
		Tags:       NormalizeTags(req.Tags),
		Published:  req.Published,
	}
	if p.Published {
		now := s.now().UTC()
		p.PublishedAt = &now
	}

	post, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	s.invalidateLists(ctx)
	return post, nil
}

// GetPublishedPost returns a published post by slug, cached.
func (s *Service) GetPublishedPost(ctx context.Context, slug string) (*Post, error) {
	var cached Post
	if cache.GetJSON(ctx, s.cache, postKey(slug), &cached) {
		return &cached, nil
	}

	post, err := s.repo.GetBySlug(ctx, slug, true)
	if err != nil {
		return nil, err
	}

	cache.SetJSON(ctx, s.cache, postKey(slug), post, postTTL)
	return post, nil
}

// GetPost returns any post by ID, drafts included.
func (s *Service) GetPost(ctx context.Context, id int64) (*Post, error) {
	return s.repo.GetByID(ctx, id)
}

// ListPublished returns a page of published posts, cached.
func (s *Service) ListPublished(ctx context.Context, f ListFilter) (*PaginatedPostsResponse, error) {
	f = f.Normalize()
	f.PublishedOnly = true
	f.Category = Slugify(f.Category)
	f.Tag = Slugify(f.Tag)

	key := listKey(f)
	var cached PaginatedPostsResponse
	if cache.GetJSON(ctx, s.cache, key, &cached) {
		return &cached, nil
	}

	resp, err := s.list(ctx, f)
	if err != nil {
		return nil, err
	}

	cache.SetJSON(ctx, s.cache, key, resp, listTTL)
	return resp, nil
}

// ListAll returns a page of all posts for the admin area.
func (s *Service) ListAll(ctx context.Context, f ListFilter) (*PaginatedPostsResponse, error) {
	f = f.Normalize()
	f.PublishedOnly = false
	return s.list(ctx, f)
}

func (s *Service) list(ctx context.Context, f ListFilter) (*PaginatedPostsResponse, error) {
	posts, totalCount, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	totalPages := int(totalCount) / f.PageSize
	if int(totalCount)%f.PageSize != 0 {
		totalPages++
	}

	return &PaginatedPostsResponse{
		Posts:      posts,
		Page:       f.Page,
		PageSize:   f.PageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}, nil
}

// UpdatePost applies a partial update and invalidates affected caches.
func (s *Service) UpdatePost(ctx context.Context, id int64, req UpdatePostRequest) (*Post, error) {
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil {
		slug := Slugify(*req.Slug)
		if slug == "" {
			return nil, ErrInvalidSlug
		}
		req.Slug = &slug
	}
	if req.Category != nil {
		cat := Slugify(*req.Category)
		req.Category = &cat
	}
	if req.Tags != nil {
		tags := NormalizeTags(*req.Tags)
		req.Tags = &tags
	}

	post, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.invalidatePost(ctx, before.Slug, post.Slug)
	return post, nil
}

// DeletePost removes a post and invalidates caches.
func (s *Service) DeletePost(ctx context.Context, id int64) error {
	post, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	s.invalidatePost(ctx, post.Slug)
	return nil
}

// ListCategories returns all categories, cached.
func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	var cached []Category
	if cache.GetJSON(ctx, s.cache, categoriesKey, &cached) {
		return cached, nil
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	cache.SetJSON(ctx, s.cache, categoriesKey, categories, categoriesTTL)
	return categories, nil
}

// CreateCategory adds a category, deriving its slug from the name if needed.
func (s *Service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	slug := Slugify(req.Slug)
	if slug == "" {
		slug = Slugify(req.Name)
	}
	if slug == "" {
		return nil, ErrInvalidSlug
	}

	c, err := s.repo.CreateCategory(ctx, strings.TrimSpace(req.Name), slug)
	if err != nil {
		return nil, err
	}

	cache.Invalidate(ctx, s.cache, []string{categoriesKey})
	return c, nil
}

// DeleteCategory removes a category. Posts keep their category slug.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	cache.Invalidate(ctx, s.cache, []string{categoriesKey})
	return nil
}

func (s *Service) invalidatePost(ctx context.Context, slugs ...string) {
	keys := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		keys = append(keys, postKey(slug))
	}
	cache.Invalidate(ctx, s.cache, keys, listPattern)
}

func (s *Service) invalidateLists(ctx context.Context) {
	cache.Invalidate(ctx, s.cache, nil, listPattern)
}
