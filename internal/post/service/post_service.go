package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"portfolio/backend/internal/platform/cache"
	"portfolio/backend/internal/platform/httpx"
	"portfolio/backend/internal/post/domain"
	"portfolio/backend/internal/post/repository"
)

const cachePrefix = "post:"

// ListResult is one page of posts and its pagination meta.
type ListResult struct {
	Data []*domain.Post `json:"data"`
	Meta httpx.Meta     `json:"meta"`
}

// PostService implements post reads and the protected writes. Reads by id go
// through the cache; every write invalidates the entry it touches.
type PostService struct {
	repo  repository.Repository
	cache *cache.Cache
	now   func() time.Time
}

// NewPostService returns a service backed by repo. c may be nil.
func NewPostService(repo repository.Repository, c *cache.Cache) *PostService {
	return &PostService{repo: repo, cache: c, now: func() time.Time { return time.Now().UTC() }}
}

// List returns the requested page, newest first.
func (s *PostService) List(ctx context.Context, page httpx.Page) (*ListResult, error) {
	posts, err := s.repo.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &ListResult{
		Data: posts,
		Meta: httpx.Meta{Total: total, Page: page.Page, Limit: page.Limit},
	}, nil
}

// Get returns the post with id or domain.ErrNotFound.
func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	var cached domain.Post
	if s.cache.Get(ctx, cachePrefix+id, &cached) {
		return &cached, nil
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	s.cache.Set(cachePrefix+id, p)
	return p, nil
}

// Create validates in, fills defaults and stores a new post.
func (s *PostService) Create(ctx context.Context, in domain.Input) (*domain.Post, error) {
	p := domain.New(uuid.NewString(), in, s.now())
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies patch to the post with id and re-validates the result.
func (s *PostService) Update(ctx context.Context, id string, patch domain.Patch) (*domain.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	p.Apply(patch, s.now())
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.cache.Delete(cachePrefix + id)
	return p, nil
}

// Delete removes the post with id.
func (s *PostService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(cachePrefix + id)
	return nil
}
