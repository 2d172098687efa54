package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/salescoach/srs-api/internal/domain"
)

// ReviewLogStore defines the interface for the append-only review history.
// Entries are written once per completed review and never mutated; the only
// deletion path is the cascade from a card delete.
type ReviewLogStore interface {
	// Append writes one history entry and assigns its ID.
	// Returns validation errors wrapped in ErrInvalidEntity if the entry
	// is invalid.
	Append(ctx context.Context, record *domain.ReviewRecord) error

	// ListByCard retrieves the history of one card ordered by creation
	// time ascending.
	ListByCard(ctx context.Context, cardID int64) ([]*domain.ReviewRecord, error)

	// ListAll retrieves the full history ordered by creation time
	// ascending. Analytics walks this log to derive streaks, retention,
	// and mastery transitions.
	ListAll(ctx context.Context) ([]*domain.ReviewRecord, error)

	// CountSince returns the number of entries created at or after the
	// given instant.
	CountSince(ctx context.Context, since time.Time) (int, error)

	// WithTx returns a new ReviewLogStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) ReviewLogStore
}
