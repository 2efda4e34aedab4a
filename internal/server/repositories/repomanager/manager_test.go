package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/playerprofile/internal/dbx"
	"github.com/dmitrijs2005/playerprofile/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/playerprofile/internal/server/repositories/careers"
	"github.com/dmitrijs2005/playerprofile/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/playerprofile/internal/server/repositories/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestFactories_ReturnSQLRepos(t *testing.T) {
	db := newDB(t)
	var m RepositoryManager = NewSQLRepositoryManager(dbx.Postgres)

	assert.Equal(t, dbx.Postgres, m.Dialect())
	assert.IsType(t, &accounts.SQLRepository{}, m.Accounts(db))
	assert.IsType(t, &profiles.SQLRepository{}, m.Profiles(db))
	assert.IsType(t, &careers.SQLRepository{}, m.Careers(db))
	assert.IsType(t, &sessions.SQLRepository{}, m.Sessions(db))
}

func TestRunMigrations_PassesDialect(t *testing.T) {
	db := newDB(t)

	orig := migrateUp
	t.Cleanup(func() { migrateUp = orig })

	var got dbx.Dialect
	migrateUp = func(ctx context.Context, db *sql.DB, d dbx.Dialect) (int, error) {
		got = d
		return 3, nil
	}

	require.NoError(t, NewSQLRepositoryManager(dbx.SQLite).RunMigrations(context.Background(), db))
	assert.Equal(t, dbx.SQLite, got)
}

func TestRunMigrations_Error(t *testing.T) {
	db := newDB(t)

	orig := migrateUp
	t.Cleanup(func() { migrateUp = orig })
	migrateUp = func(context.Context, *sql.DB, dbx.Dialect) (int, error) {
		return 0, errors.New("boom")
	}

	err := NewSQLRepositoryManager(dbx.Postgres).RunMigrations(context.Background(), db)
	require.EqualError(t, err, "boom")
}
