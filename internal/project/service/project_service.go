package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"portfolio/backend/internal/platform/cache"
	"portfolio/backend/internal/platform/httpx"
	"portfolio/backend/internal/project/domain"
	"portfolio/backend/internal/project/repository"
)

const cachePrefix = "project:"

// ListResult is one page of projects and its pagination meta.
type ListResult struct {
	Data []*domain.Project `json:"data"`
	Meta httpx.Meta        `json:"meta"`
}

// ProjectService implements project reads and the protected writes. Reads by
// id are cached; writes invalidate the cached entry.
type ProjectService struct {
	repo  repository.Repository
	cache *cache.Cache
	now   func() time.Time
}

// NewProjectService returns a service backed by repo. c may be nil.
func NewProjectService(repo repository.Repository, c *cache.Cache) *ProjectService {
	return &ProjectService{repo: repo, cache: c, now: func() time.Time { return time.Now().UTC() }}
}

// List returns the requested page, newest first.
func (s *ProjectService) List(ctx context.Context, page httpx.Page) (*ListResult, error) {
	projects, err := s.repo.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &ListResult{
		Data: projects,
		Meta: httpx.Meta{Total: total, Page: page.Page, Limit: page.Limit},
	}, nil
}

// Get returns the project with id or domain.ErrNotFound.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	var cached domain.Project
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

// Create validates in, fills defaults and stores a new project.
func (s *ProjectService) Create(ctx context.Context, in domain.Input) (*domain.Project, error) {
	p := domain.New(uuid.NewString(), in, s.now())
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies patch to the project with id and re-validates the result.
func (s *ProjectService) Update(ctx context.Context, id string, patch domain.Patch) (*domain.Project, error) {
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

// Delete removes the project with id.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(cachePrefix + id)
	return nil
}
