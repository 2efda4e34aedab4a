// Package repomanager vends repositories bound to a dbx.DBTX for one SQL
// dialect and applies the embedded schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/playerprofile/internal/dbx"
	"github.com/dmitrijs2005/playerprofile/internal/server/migrations"
	"github.com/dmitrijs2005/playerprofile/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/playerprofile/internal/server/repositories/careers"
	"github.com/dmitrijs2005/playerprofile/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/playerprofile/internal/server/repositories/sessions"
)

type RepositoryManager interface {
	Dialect() dbx.Dialect
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Careers(db dbx.DBTX) careers.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}

// migrateUp is a seam for testing migrations.Up.
var migrateUp = migrations.Up

// SQLRepositoryManager vends the SQL repository implementations.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

func NewSQLRepositoryManager(dialect dbx.Dialect) *SQLRepositoryManager {
	return &SQLRepositoryManager{dialect: dialect}
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

func (m *SQLRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Profiles(db dbx.DBTX) profiles.Repository {
	return profiles.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Careers(db dbx.DBTX) careers.Repository {
	return careers.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	return sessions.NewSQLRepository(db, m.dialect)
}

// RunMigrations applies pending migrations for the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	_, err := migrateUp(ctx, db, m.dialect)
	return err
}
