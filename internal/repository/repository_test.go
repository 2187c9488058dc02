package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"pokemedquest/internal/database"
)

// setupTestDB wraps a sqlmock connection in the sqlite dialect
func setupTestDB(t *testing.T) (*database.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	wrapped := &database.DB{DB: db, Dialect: database.NewSQLiteDialect()}

	cleanup := func() {
		db.Close()
	}

	return wrapped, mock, cleanup
}

// setupPostgresTestDB wraps a sqlmock connection in the postgres dialect
func setupPostgresTestDB(t *testing.T) (*database.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return &database.DB{DB: db, Dialect: database.NewPostgresDialect()}, mock, func() { db.Close() }
}

