package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/playerprofile/internal/common"
	"github.com/dmitrijs2005/playerprofile/internal/dbx"
	"github.com/dmitrijs2005/playerprofile/internal/server/models"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Upsert(ctx context.Context, p *models.GeneralProfile) error {
	query := r.dialect.Rebind(
		`INSERT INTO general_profiles (username, birth_country, passport_country, height_cm, weight_kg,
		     preferred_foot, position, headshot_ref, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (username) DO UPDATE SET
		     birth_country = excluded.birth_country,
		     passport_country = excluded.passport_country,
		     height_cm = excluded.height_cm,
		     weight_kg = excluded.weight_kg,
		     preferred_foot = excluded.preferred_foot,
		     position = excluded.position,
		     headshot_ref = COALESCE(excluded.headshot_ref, general_profiles.headshot_ref),
		     updated_at = excluded.updated_at`)

	headshot := sql.NullString{String: p.HeadshotRef, Valid: p.HeadshotRef != ""}

	_, err := r.db.ExecContext(ctx, query,
		p.Username, p.BirthCountry, p.PassportCountry, p.HeightCm, p.WeightKg,
		p.PreferredFoot, p.Position, headshot, dbx.ToMillis(p.UpdatedAt))
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return common.ErrReferentialViolation
		}
		if dbx.IsDataViolation(err) {
			return fmt.Errorf("%w: %w", common.ErrInvalidInput, err)
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

const profileColumns = `p.username, p.birth_country, p.passport_country, p.height_cm, p.weight_kg,
		p.preferred_foot, p.position, p.headshot_ref, p.updated_at`

func (r *SQLRepository) GetByUsername(ctx context.Context, username string) (*models.GeneralProfile, error) {
	query := r.dialect.Rebind(`SELECT ` + profileColumns + ` FROM general_profiles p WHERE p.username = ?`)
	return scanOne(r.db.QueryRowContext(ctx, query, username))
}

func (r *SQLRepository) GetByAccountID(ctx context.Context, accountID string) (*models.GeneralProfile, error) {
	query := r.dialect.Rebind(
		`SELECT ` + profileColumns + `
		 FROM general_profiles p
		 JOIN accounts a ON a.username = p.username
		 WHERE a.id = ?`)
	return scanOne(r.db.QueryRowContext(ctx, query, accountID))
}

func scanOne(row *sql.Row) (*models.GeneralProfile, error) {
	p := &models.GeneralProfile{}
	var headshot sql.NullString
	var updatedAt int64

	err := row.Scan(&p.Username, &p.BirthCountry, &p.PassportCountry, &p.HeightCm, &p.WeightKg,
		&p.PreferredFoot, &p.Position, &headshot, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	p.HeadshotRef = headshot.String
	p.UpdatedAt = dbx.FromMillis(updatedAt)
	return p, nil
}
