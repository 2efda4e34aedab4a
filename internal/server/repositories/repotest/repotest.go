// Package repotest provides migrated throwaway databases for repository and
// service tests.
package repotest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/playerprofile/internal/dbx"
	"github.com/dmitrijs2005/playerprofile/internal/server/migrations"
	"github.com/dmitrijs2005/playerprofile/internal/server/models"
	"github.com/stretchr/testify/require"
)

// NewSQLite opens a file-backed SQLite database in t.TempDir with every
// migration applied. It is closed when the test ends.
func NewSQLite(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := dbx.Open(ctx, dbx.SQLite, filepath.Join(t.TempDir(), "profiles.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = migrations.Up(ctx, db, dbx.SQLite)
	require.NoError(t, err)

	return db
}

// InsertAccount writes a minimal account row directly and returns it.
func InsertAccount(t *testing.T, db dbx.DBTX, id, username string) *models.Account {
	t.Helper()
	a := &models.Account{
		ID:          id,
		Username:    username,
		FirstName:   "First",
		LastName:    "Last",
		DateOfBirth: "2000-01-01",
		City:        "Riga",
		Country:     "Latvia",
		Email:       username + "@example.com",
		SecretSalt:  []byte("salt"),
		SecretHash:  []byte("hash"),
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO accounts (id, username, first_name, last_name, date_of_birth, city, country, email, secret_salt, secret_hash, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Username, a.FirstName, a.LastName, a.DateOfBirth, a.City, a.Country, a.Email,
		a.SecretSalt, a.SecretHash, dbx.ToMillis(a.CreatedAt))
	require.NoError(t, err)
	return a
}
