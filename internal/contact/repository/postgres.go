package repository

import (
	"context"

	"github.com/samber/oops"

	"portfolio/backend/internal/contact/domain"
	"portfolio/backend/internal/db"
)

// Repository stores contact messages.
type Repository interface {
	Create(ctx context.Context, m *domain.Message) error
}

type PostgresRepository struct {
	db db.DBTX
}

func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

func (r *PostgresRepository) Create(ctx context.Context, m *domain.Message) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO messages (id, sender, email, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, m.ID, m.Sender, m.Email, m.Content, m.CreatedAt)
	if err != nil {
		return oops.Code("MESSAGE_CREATE_FAILED").With("id", m.ID).Wrap(err)
	}
	return nil
}
