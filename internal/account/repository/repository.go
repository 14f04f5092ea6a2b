package repository

import (
	"context"

	"portfolio/backend/internal/account/domain"
)

// Repository defines persistence for accounts (the credential store).
type Repository interface {
	// GetByEmail returns the account with the given normalized email, or nil if not found.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	// Create inserts a. Returns domain.ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, a *domain.Account) error
}
