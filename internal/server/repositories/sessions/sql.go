package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/playerprofile/internal/common"
	"github.com/dmitrijs2005/playerprofile/internal/dbx"
	"github.com/dmitrijs2005/playerprofile/internal/server/models"
)

// SQLRepository implements Repository over dbx.DBTX.
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Create(ctx context.Context, s *models.Session) error {
	query := r.dialect.Rebind(`
		INSERT INTO sessions (id, account_id, expires_at, created_at)
		VALUES (?, ?, ?, ?)
	`)
	if _, err := r.db.ExecContext(ctx, query, s.ID, s.AccountID, dbx.ToMillis(s.ExpiresAt), dbx.ToMillis(s.CreatedAt)); err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return common.ErrReferentialViolation
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) Find(ctx context.Context, id string) (*models.Session, error) {
	query := r.dialect.Rebind(`
		SELECT id, account_id, expires_at, created_at
		FROM sessions
		WHERE id = ?
	`)
	s := &models.Session{}
	var expiresAt, createdAt int64
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.AccountID, &expiresAt, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	s.ExpiresAt = dbx.FromMillis(expiresAt)
	s.CreatedAt = dbx.FromMillis(createdAt)
	return s, nil
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	query := r.dialect.Rebind(`
		DELETE FROM sessions
		WHERE id = ?
	`)
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := r.dialect.Rebind(`
		DELETE FROM sessions
		WHERE expires_at <= ?
	`)
	res, err := r.db.ExecContext(ctx, query, dbx.ToMillis(now))
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
