package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"portfolio/backend/internal/db"
	"portfolio/backend/internal/post/domain"
)

const postColumns = `id, title, content, image_url, author_name, author_image, tags, created_at, updated_at`

type PostgresRepository struct {
	db db.DBTX
}

// NewPostgresRepository returns a post repository backed by conn.
func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*domain.Post, error) {
	rows, err := r.db.Query(ctx, `SELECT `+postColumns+` FROM posts ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, oops.Code("POST_LIST_FAILED").With("limit", limit).With("offset", offset).Wrap(err)
	}
	defer rows.Close()
	posts := make([]*domain.Post, 0, limit)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, oops.Code("POST_LIST_FAILED").With("operation", "scan").Wrap(err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("POST_LIST_FAILED").Wrap(err)
	}
	return posts, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&n); err != nil {
		return 0, oops.Code("POST_COUNT_FAILED").Wrap(err)
	}
	return n, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	p, err := scanPost(r.db.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, oops.Code("POST_GET_FAILED").With("id", id).Wrap(err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *domain.Post) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO posts (id, title, content, image_url, author_name, author_image, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.ID, p.Title, p.Content, p.ImageURL, p.AuthorName, p.AuthorImage, p.Tags, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return oops.Code("POST_CREATE_FAILED").With("id", p.ID).Wrap(err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *domain.Post) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE posts
		SET title = $2, content = $3, image_url = $4, author_name = $5, author_image = $6, tags = $7, updated_at = $8
		WHERE id = $1
	`, p.ID, p.Title, p.Content, p.ImageURL, p.AuthorName, p.AuthorImage, p.Tags, p.UpdatedAt)
	if err != nil {
		return oops.Code("POST_UPDATE_FAILED").With("id", p.ID).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return oops.Code("POST_DELETE_FAILED").With("id", id).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var p domain.Post
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.ImageURL, &p.AuthorName, &p.AuthorImage, &p.Tags, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return &p, nil
}
