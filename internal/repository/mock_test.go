package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/contacts/internal/repository"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestContactRepository_CountPropagatesError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewContactRepository(db)

	mock.ExpectQuery(`(?s)^SELECT COUNT\(\*\) FROM contacts WHERE contacts\.show = \$1`).
		WithArgs(true).
		WillReturnError(errors.New("db down"))

	_, err := repo.Count(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_OwnedPushesPredicateIntoQuery(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewContactRepository(db)

	mock.ExpectQuery(`(?s)FROM contacts LEFT JOIN categories .* WHERE contacts\.id = \$1 AND contacts\.owner_id = \$2 AND contacts\.show = \$3`).
		WithArgs(int64(7), int64(3), true).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Owned(context.Background(), 3, 7)
	assert.ErrorIs(t, err, repository.ErrContactNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_SearchEscapesWildcards(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewContactRepository(db)

	mock.ExpectQuery(`(?s)^SELECT COUNT\(\*\) FROM contacts WHERE contacts\.show = \$1 AND contacts\.search LIKE \$2 ESCAPE`).
		WithArgs(true, `%50\%\_off%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	count, err := repo.Count(context.Background(), "50%_OFF")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
