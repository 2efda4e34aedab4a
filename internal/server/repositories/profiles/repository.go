// Package profiles persists the one-per-account general profile.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/playerprofile/internal/server/models"
)

type Repository interface {
	// Upsert inserts or replaces the profile keyed by Username. An empty
	// HeadshotRef keeps whatever reference is already stored.
	// A username without an account yields common.ErrReferentialViolation.
	Upsert(ctx context.Context, p *models.GeneralProfile) error

	// GetByUsername and GetByAccountID return common.ErrorNotFound when absent.
	GetByUsername(ctx context.Context, username string) (*models.GeneralProfile, error)
	GetByAccountID(ctx context.Context, accountID string) (*models.GeneralProfile, error)
}
