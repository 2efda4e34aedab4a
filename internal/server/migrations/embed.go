// Package migrations embeds the goose schema migrations, one directory per
// SQL dialect, and applies them.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/playerprofile/internal/dbx"
	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// For returns the migration directory for dialect.
func For(dialect dbx.Dialect) (fs.FS, error) {
	return fs.Sub(Migrations, string(dialect))
}

func gooseDialect(d dbx.Dialect) goose.Dialect {
	if d == dbx.Postgres {
		return goose.DialectPostgres
	}
	return goose.DialectSQLite3
}

// Up applies every pending migration for dialect and returns how many ran.
func Up(ctx context.Context, db *sql.DB, dialect dbx.Dialect) (int, error) {
	fsys, err := For(dialect)
	if err != nil {
		return 0, err
	}

	provider, err := goose.NewProvider(gooseDialect(dialect), db, fsys)
	if err != nil {
		return 0, fmt.Errorf("goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("migrate up: %w", err)
	}

	return len(results), nil
}
