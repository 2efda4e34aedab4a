// Package gateway runs units of work against the store with a bounded timeout
// and translates low-level failures into common.ErrStoreUnavailable.
package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/playerprofile/internal/common"
	"github.com/dmitrijs2005/playerprofile/internal/dbx"
)

// passthrough lists errors that already carry domain meaning.
var passthrough = []error{
	common.ErrorNotFound,
	common.ErrInvalidInput,
	common.ErrDuplicateUsername,
	common.ErrInvalidCredentials,
	common.ErrUnauthenticated,
	common.ErrReferentialViolation,
	common.ErrStoreUnavailable,
}

// Gateway owns the connection pool. A unit of work holds one connection for
// its whole duration; units must not nest, since a SQLite pool has a single
// connection.
type Gateway struct {
	db      *sql.DB
	timeout time.Duration
}

func New(db *sql.DB, timeout time.Duration) *Gateway {
	return &Gateway{db: db, timeout: timeout}
}

func (g *Gateway) DB() *sql.DB {
	return g.db
}

func (g *Gateway) Close() error {
	return g.db.Close()
}

// Read runs fn on a dedicated connection without a transaction.
func (g *Gateway) Read(ctx context.Context, fn func(ctx context.Context, db dbx.DBTX) error) error {
	return g.Do(ctx, func(ctx context.Context) error {
		conn, err := g.db.Conn(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		return fn(ctx, conn)
	})
}

// Write runs fn inside a transaction on a dedicated connection. The
// transaction commits only if fn returns nil.
func (g *Gateway) Write(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return g.Do(ctx, func(ctx context.Context) error {
		conn, err := g.db.Conn(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		return dbx.WithTx(ctx, conn, nil, fn)
	})
}

// Do applies the store timeout and error translation to fn. It is used
// directly for stores that are not SQL.
func (g *Gateway) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	return Translate(fn(ctx))
}

// Translate keeps domain errors and wraps everything else with
// common.ErrStoreUnavailable, preserving the cause.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range passthrough {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
}
