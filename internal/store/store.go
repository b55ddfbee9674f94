// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"github.com/ashvale/coach-labs/internal/domain"
)

// Repository persists one SessionRecord per user as an opaque blob.
// Mutations are whole-record overwrites; there is no partial update.
type Repository interface {
	// GetSession retrieves the session record for a user.
	// Returns (nil, nil) if no record exists.
	GetSession(ctx context.Context, userID string) (*domain.SessionRecord, error)

	// PutSession creates or replaces the session record for a user.
	PutSession(ctx context.Context, record *domain.SessionRecord) error

	// DeleteSession removes the session record. Deleting a record that does
	// not exist is not an error.
	DeleteSession(ctx context.Context, userID string) error

	// CleanupExpiredSessions removes records idle longer than ttl and
	// returns the number removed. Drivers with native key expiry may
	// report 0.
	CleanupExpiredSessions(ctx context.Context, ttl time.Duration) (int64, error)

	// Ping verifies backend connectivity.
	Ping(ctx context.Context) error

	// Close closes the backend connection.
	Close() error
}
