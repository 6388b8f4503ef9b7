package posts

import (
	"context"
	"sort"
	"sync"
	"time"
)

// memRepository is an in-memory Repository for service and handler tests.
type memRepository struct {
	mu         sync.Mutex
	nextID     int64
	posts      map[int64]*Post
	categories map[int64]*Category
	listCalls  int
	slugCalls  int
}

func newMemRepository() *memRepository {
	return &memRepository{posts: map[int64]*Post{}, categories: map[int64]*Category{}}
}

func (m *memRepository) slugTaken(slug string, except int64) bool {
	for id, p := range m.posts {
		if p.Slug == slug && id != except {
			return true
		}
	}
	return false
}

func (m *memRepository) Create(ctx context.Context, p *Post) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slugTaken(p.Slug, 0) {
		return nil, ErrSlugExists
	}
	m.nextID++
	cp := *p
	cp.ID = m.nextID
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.posts[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memRepository) GetByID(ctx context.Context, id int64) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memRepository) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slugCalls++
	for _, p := range m.posts {
		if p.Slug == slug && (!publishedOnly || p.Published) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrPostNotFound
}

func (m *memRepository) List(ctx context.Context, f ListFilter) ([]Post, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	f = f.Normalize()

	var matched []Post
	for _, p := range m.posts {
		if f.PublishedOnly && !p.Published {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Tag != "" && !contains(p.Tags, f.Tag) {
			continue
		}
		matched = append(matched, *p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	start := (f.Page - 1) * f.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + f.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return append([]Post{}, matched[start:end]...), int64(len(matched)), nil
}

func (m *memRepository) Update(ctx context.Context, id int64, req UpdatePostRequest) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, ErrPostNotFound
	}
	if req.Slug != nil {
		if m.slugTaken(*req.Slug, id) {
			return nil, ErrSlugExists
		}
		p.Slug = *req.Slug
	}
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Excerpt != nil {
		p.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		p.Content = *req.Content
	}
	if req.CoverImage != nil {
		p.CoverImage = *req.CoverImage
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Tags != nil {
		p.Tags = *req.Tags
	}
	if req.Published != nil {
		p.Published = *req.Published
		if p.Published && p.PublishedAt == nil {
			now := time.Now()
			p.PublishedAt = &now
		}
	}
	cp := *p
	return &cp, nil
}

func (m *memRepository) Delete(ctx context.Context, id int64) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, ErrPostNotFound
	}
	delete(m.posts, id)
	return p, nil
}

func (m *memRepository) ListCategories(ctx context.Context) ([]Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Category{}
	for _, c := range m.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memRepository) CreateCategory(ctx context.Context, name, slug string) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.Slug == slug {
			return nil, ErrSlugExists
		}
	}
	m.nextID++
	c := &Category{ID: m.nextID, Name: name, Slug: slug, CreatedAt: time.Now()}
	m.categories[c.ID] = c
	cp := *c
	return &cp, nil
}

func (m *memRepository) DeleteCategory(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
