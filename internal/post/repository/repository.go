package repository

import (
	"context"

	"portfolio/backend/internal/post/domain"
)

// Repository defines persistence for posts.
type Repository interface {
	// List returns up to limit posts, newest first, skipping offset.
	List(ctx context.Context, limit, offset int) ([]*domain.Post, error)
	Count(ctx context.Context) (int, error)
	// GetByID returns the post for id, or nil if not found.
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	Create(ctx context.Context, p *domain.Post) error
	// Update overwrites the stored post. Returns domain.ErrNotFound if it no longer exists.
	Update(ctx context.Context, p *domain.Post) error
	// Delete removes the post. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}
