package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"portfolio/backend/internal/db"
	"portfolio/backend/internal/project/domain"
)

const projectColumns = `id, title, description, image_url, live_link, github_link, tech_stack, role, year, client, is_featured, created_at, updated_at`

type PostgresRepository struct {
	db db.DBTX
}

// NewPostgresRepository returns a project repository backed by conn.
func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*domain.Project, error) {
	rows, err := r.db.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, oops.Code("PROJECT_LIST_FAILED").With("limit", limit).With("offset", offset).Wrap(err)
	}
	defer rows.Close()
	projects := make([]*domain.Project, 0, limit)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, oops.Code("PROJECT_LIST_FAILED").With("operation", "scan").Wrap(err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("PROJECT_LIST_FAILED").Wrap(err)
	}
	return projects, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n); err != nil {
		return 0, oops.Code("PROJECT_COUNT_FAILED").Wrap(err)
	}
	return n, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	p, err := scanProject(r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, oops.Code("PROJECT_GET_FAILED").With("id", id).Wrap(err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *domain.Project) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO projects (`+projectColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, p.ID, p.Title, p.Description, p.ImageURL, p.LiveLink, p.GithubLink, p.TechStack,
		p.Role, p.Year, p.Client, p.IsFeatured, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return oops.Code("PROJECT_CREATE_FAILED").With("id", p.ID).Wrap(err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *domain.Project) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE projects
		SET title = $2, description = $3, image_url = $4, live_link = $5, github_link = $6,
		    tech_stack = $7, role = $8, year = $9, client = $10, is_featured = $11, updated_at = $12
		WHERE id = $1
	`, p.ID, p.Title, p.Description, p.ImageURL, p.LiveLink, p.GithubLink, p.TechStack,
		p.Role, p.Year, p.Client, p.IsFeatured, p.UpdatedAt)
	if err != nil {
		return oops.Code("PROJECT_UPDATE_FAILED").With("id", p.ID).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return oops.Code("PROJECT_DELETE_FAILED").With("id", id).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.LiveLink, &p.GithubLink, &p.TechStack,
		&p.Role, &p.Year, &p.Client, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	return &p, nil
}
