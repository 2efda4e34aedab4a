// Package sessions stores server-side session records. Two backends are
// provided: a SQL table and Redis keys with a TTL.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/playerprofile/internal/server/models"
)

// Repository defines operations for opening, resolving, and revoking sessions.
type Repository interface {
	// Create stores a new session.
	Create(ctx context.Context, s *models.Session) error

	// Find returns the session with the given id or common.ErrorNotFound.
	// Expired rows may still be returned; callers check Expired.
	Find(ctx context.Context, id string) (*models.Session, error)

	// Delete removes a session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes sessions that expired at or before now and
	// reports how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
