package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/backend/internal/contact/domain"
)

func TestPostgresRepository_Create(t *testing.T) {
	m := &domain.Message{ID: "m-1", Sender: "Bob", Email: "bob@example.com", Content: "Hi", CreatedAt: time.Now().UTC()}

	tests := []struct {
		name    string
		execErr error
	}{
		{name: "inserted"},
		{name: "failure", execErr: errors.New("connection refused")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			exp := mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO messages`)).
				WithArgs(m.ID, m.Sender, m.Email, m.Content, m.CreatedAt)
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(pgxmock.NewResult("INSERT", 1))
			}

			err = NewPostgresRepository(mock).Create(context.Background(), m)
			if tt.execErr != nil {
				assert.ErrorIs(t, err, tt.execErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
