package comments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"folio/internal/cache"
	"folio/internal/posts"
)

const approvedTTL = 5 * time.Minute

func approvedKey(postID int64) string {
	return fmt.Sprintf("comments:post:%d", postID)
}

// PostLookup resolves a public slug to a published post.
type PostLookup interface {
	GetPublishedPost(ctx context.Context, slug string) (*posts.Post, error)
}

// Service handles comment submission and moderation.
type Service interface {
	Submit(ctx context.Context, slug string, req CreateCommentRequest) (*Comment, error)
	ListApproved(ctx context.Context, slug string) ([]Comment, error)
	ListForModeration(ctx context.Context, status Status) ([]Comment, error)
	Approve(ctx context.Context, id int64) (*Comment, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo  Repository
	posts PostLookup
	cache cache.Store
}

// NewService creates a comments service. store may be nil.
func NewService(repo Repository, lookup PostLookup, store cache.Store) Service {
	return &service{repo: repo, posts: lookup, cache: store}
}

// Submit stores a pending comment on a published post.
func (s *service) Submit(ctx context.Context, slug string, req CreateCommentRequest) (*Comment, error) {
	post, err := s.posts.GetPublishedPost(ctx, slug)
	if err != nil {
		return nil, err
	}

	body := strings.TrimSpace(req.Body)
	name := strings.TrimSpace(req.AuthorName)
	if body == "" || name == "" {
		return nil, ErrEmptyBody
	}

	return s.repo.Create(ctx, &Comment{
		PostID:      post.ID,
		AuthorName:  name,
		AuthorEmail: strings.ToLower(strings.TrimSpace(req.AuthorEmail)),
		Body:        body,
	})
}

// ListApproved returns the approved comments of a published post, oldest
// first. Author emails are not exposed.
func (s *service) ListApproved(ctx context.Context, slug string) ([]Comment, error) {
	post, err := s.posts.GetPublishedPost(ctx, slug)
	if err != nil {
		return nil, err
	}

	key := approvedKey(post.ID)
	var out []Comment
	if cache.GetJSON(ctx, s.cache, key, &out) {
		return out, nil
	}

	out, err = s.repo.ListByPost(ctx, post.ID, true)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].AuthorEmail = ""
	}

	cache.SetJSON(ctx, s.cache, key, out, approvedTTL)
	return out, nil
}

func (s *service) ListForModeration(ctx context.Context, status Status) ([]Comment, error) {
	return s.repo.List(ctx, status)
}

func (s *service) Approve(ctx context.Context, id int64) (*Comment, error) {
	c, err := s.repo.Approve(ctx, id)
	if err != nil {
		return nil, err
	}
	cache.Invalidate(ctx, s.cache, []string{approvedKey(c.PostID)})
	return c, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	c, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	cache.Invalidate(ctx, s.cache, []string{approvedKey(c.PostID)})
	return nil
}
