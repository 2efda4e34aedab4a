// Package careers persists the append-only career history of an account.
package careers

import (
	"context"

	"github.com/dmitrijs2005/playerprofile/internal/server/models"
)

type Repository interface {
	// Create appends e and returns its id. A username without an account
	// yields common.ErrReferentialViolation.
	Create(ctx context.Context, e *models.CareerEntry) (int64, error)

	// ListByAccountID returns the account's entries in insertion order.
	// An unknown account simply has no entries.
	ListByAccountID(ctx context.Context, accountID string) ([]*models.CareerEntry, error)
}
