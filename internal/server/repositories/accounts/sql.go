package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/playerprofile/internal/common"
	"github.com/dmitrijs2005/playerprofile/internal/dbx"
	"github.com/dmitrijs2005/playerprofile/internal/server/models"
)

const accountColumns = `id, username, first_name, last_name, date_of_birth, club, school,
		address1, address2, city, country, telephone, email, secret_salt, secret_hash, created_at`

// SQLRepository implements Repository over dbx.DBTX for any supported dialect.
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Create(ctx context.Context, a *models.Account) error {
	query := r.dialect.Rebind(
		`INSERT INTO accounts (` + accountColumns + `)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Username, a.FirstName, a.LastName, a.DateOfBirth, a.Club, a.School,
		a.Address1, a.Address2, a.City, a.Country, a.Telephone, a.Email,
		a.SecretSalt, a.SecretHash, dbx.ToMillis(a.CreatedAt))
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrDuplicateUsername
		}
		if dbx.IsDataViolation(err) {
			return fmt.Errorf("%w: %w", common.ErrInvalidInput, err)
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *SQLRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := r.dialect.Rebind(`SELECT ` + accountColumns + ` FROM accounts WHERE username = ?`)
	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

func (r *SQLRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := r.dialect.Rebind(`SELECT ` + accountColumns + ` FROM accounts WHERE id = ?`)
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLRepository) scanOne(row *sql.Row) (*models.Account, error) {
	a := &models.Account{}
	var createdAt int64

	err := row.Scan(&a.ID, &a.Username, &a.FirstName, &a.LastName, &a.DateOfBirth, &a.Club, &a.School,
		&a.Address1, &a.Address2, &a.City, &a.Country, &a.Telephone, &a.Email,
		&a.SecretSalt, &a.SecretHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	a.CreatedAt = dbx.FromMillis(createdAt)
	return a, nil
}
