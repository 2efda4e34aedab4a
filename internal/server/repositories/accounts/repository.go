// Package accounts declares the credential store contract and its SQL
// implementation.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/playerprofile/internal/server/models"
)

// Repository persists accounts. Lookups return common.ErrorNotFound when no
// row matches.
type Repository interface {
	// Create inserts a new account. A taken username yields
	// common.ErrDuplicateUsername.
	Create(ctx context.Context, account *models.Account) error
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
}
