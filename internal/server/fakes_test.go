package server

import (
	"context"
	"sort"
	"sync"
	"time"

	"folio/internal/auth"
	"folio/internal/comments"
	"folio/internal/media"
	"folio/internal/posts"
)

type fakePosts struct {
	mu    sync.Mutex
	posts []posts.Post
}

func (f *fakePosts) Create(ctx context.Context, p *posts.Post) (*posts.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	cp.ID = int64(len(f.posts) + 1)
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	f.posts = append(f.posts, cp)
	return &cp, nil
}

func (f *fakePosts) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, posts.ErrPostNotFound
}

func (f *fakePosts) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*posts.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.Slug == slug && (p.Published || !publishedOnly) {
			cp := p
			return &cp, nil
		}
	}
	return nil, posts.ErrPostNotFound
}

func (f *fakePosts) List(ctx context.Context, filter posts.ListFilter) ([]posts.Post, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []posts.Post{}
	for _, p := range f.posts {
		if filter.PublishedOnly && !p.Published {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakePosts) Update(ctx context.Context, id int64, req posts.UpdatePostRequest) (*posts.Post, error) {
	return nil, posts.ErrPostNotFound
}

func (f *fakePosts) Delete(ctx context.Context, id int64) (*posts.Post, error) {
	return nil, posts.ErrPostNotFound
}

func (f *fakePosts) ListCategories(ctx context.Context) ([]posts.Category, error) {
	return []posts.Category{}, nil
}

func (f *fakePosts) CreateCategory(ctx context.Context, name, slug string) (*posts.Category, error) {
	return &posts.Category{ID: 1, Name: name, Slug: slug}, nil
}

func (f *fakePosts) DeleteCategory(ctx context.Context, id int64) error {
	return posts.ErrCategoryNotFound
}

type fakeMedia struct {
	mu    sync.Mutex
	items []media.Item
}

func (f *fakeMedia) List(ctx context.Context, kind media.Kind, category string) ([]media.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []media.Item{}
	for _, it := range f.items {
		if it.Kind == kind && (category == "" || it.Category == category) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (f *fakeMedia) GetByID(ctx context.Context, kind media.Kind, id int64) (*media.Item, error) {
	return nil, media.ErrItemNotFound
}

func (f *fakeMedia) Create(ctx context.Context, item *media.Item) (*media.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *item
	cp.ID = int64(len(f.items) + 1)
	f.items = append(f.items, cp)
	return &cp, nil
}

func (f *fakeMedia) Update(ctx context.Context, kind media.Kind, id int64, req media.UpdateItemRequest) (*media.Item, error) {
	return nil, media.ErrItemNotFound
}

func (f *fakeMedia) Delete(ctx context.Context, kind media.Kind, id int64) (*media.Item, error) {
	return nil, media.ErrItemNotFound
}

type fakeComments struct {
	mu       sync.Mutex
	comments []comments.Comment
}

func (f *fakeComments) Create(ctx context.Context, c *comments.Comment) (*comments.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	cp.ID = int64(len(f.comments) + 1)
	cp.CreatedAt = time.Now()
	f.comments = append(f.comments, cp)
	return &cp, nil
}

func (f *fakeComments) ListByPost(ctx context.Context, postID int64, approvedOnly bool) ([]comments.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []comments.Comment{}
	for _, c := range f.comments {
		if c.PostID == postID && (c.Approved || !approvedOnly) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeComments) List(ctx context.Context, status comments.Status) ([]comments.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []comments.Comment{}
	for _, c := range f.comments {
		if status == comments.StatusAll || c.Approved == (status == comments.StatusApproved) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeComments) Approve(ctx context.Context, id int64) (*comments.Comment, error) {
	return nil, comments.ErrCommentNotFound
}

func (f *fakeComments) Delete(ctx context.Context, id int64) (*comments.Comment, error) {
	return nil, comments.ErrCommentNotFound
}

type fakeSettings map[string]string

func (f fakeSettings) All(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out, nil
}

func (f fakeSettings) Upsert(ctx context.Context, values map[string]string) error {
	for k, v := range values {
		f[k] = v
	}
	return nil
}

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Create(ctx context.Context, user *auth.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Email]; ok {
		return auth.ErrEmailExists
	}
	f.users[user.Email] = user
	return nil
}

func (f *fakeUsers) UpdatePassword(ctx context.Context, email, passwordHash string, role string) error {
	return auth.ErrUserNotFound
}
