package repository

import (
	"context"

	"portfolio/backend/internal/project/domain"
)

// Repository defines persistence for projects.
type Repository interface {
	// List returns up to limit projects, newest first, skipping offset.
	List(ctx context.Context, limit, offset int) ([]*domain.Project, error)
	Count(ctx context.Context) (int, error)
	// GetByID returns the project for id, or nil if not found.
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, p *domain.Project) error
	// Update returns domain.ErrNotFound if the project no longer exists.
	Update(ctx context.Context, p *domain.Project) error
	// Delete returns domain.ErrNotFound if the project does not exist.
	Delete(ctx context.Context, id string) error
}
