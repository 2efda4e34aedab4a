package careers

import (
	"context"
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

func (r *SQLRepository) Create(ctx context.Context, e *models.CareerEntry) (int64, error) {
	query := r.dialect.Rebind(
		`INSERT INTO career_entries (username, season, team, competition, appearances, starts,
		     substitute_appearances, yellow_cards, red_cards, assists, goals, saves, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`)

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		e.Username, e.Season, e.Team, e.Competition, e.Appearances, e.Starts,
		e.SubstituteAppearances, e.YellowCards, e.RedCards, e.Assists, e.Goals, e.Saves,
		dbx.ToMillis(e.CreatedAt)).Scan(&id)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return 0, common.ErrReferentialViolation
		}
		if dbx.IsDataViolation(err) {
			return 0, fmt.Errorf("%w: %w", common.ErrInvalidInput, err)
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return id, nil
}

func (r *SQLRepository) ListByAccountID(ctx context.Context, accountID string) ([]*models.CareerEntry, error) {
	query := r.dialect.Rebind(
		`SELECT c.id, c.username, c.season, c.team, c.competition, c.appearances, c.starts,
		     c.substitute_appearances, c.yellow_cards, c.red_cards, c.assists, c.goals, c.saves, c.created_at
		 FROM career_entries c
		 JOIN accounts a ON a.username = c.username
		 WHERE a.id = ?
		 ORDER BY c.id`)

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	entries := make([]*models.CareerEntry, 0)
	for rows.Next() {
		e := &models.CareerEntry{}
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.Username, &e.Season, &e.Team, &e.Competition, &e.Appearances, &e.Starts,
			&e.SubstituteAppearances, &e.YellowCards, &e.RedCards, &e.Assists, &e.Goals, &e.Saves, &createdAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		e.CreatedAt = dbx.FromMillis(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entries, nil
}
