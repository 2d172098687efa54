package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/salescoach/srs-api/internal/domain"
)

// CategoryCount is the number of cards carrying a given category label.
type CategoryCount struct {
	Category string
	Count    int
}

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// Create saves a new card and assigns its ID.
	// Returns validation errors wrapped in ErrInvalidEntity if the card
	// data is invalid.
	Create(ctx context.Context, card *domain.Card) error

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Card, error)

	// GetForUpdate retrieves a card with a row-level lock using
	// SELECT FOR UPDATE. It must be used within a transaction when the
	// caller plans to update scheduling state, so concurrent reviews of
	// the same card are serialized instead of racing on a
	// read-modify-write. Returns ErrCardNotFound if the card does not exist.
	GetForUpdate(ctx context.Context, id int64) (*domain.Card, error)

	// Update persists all mutable card fields.
	// Returns ErrCardNotFound if the card does not exist.
	Update(ctx context.Context, card *domain.Card) error

	// Delete removes a card by its ID. The review history of the card is
	// removed with it through the schema's ON DELETE CASCADE constraint.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id int64) error

	// List retrieves all cards ordered by ID.
	List(ctx context.Context) ([]*domain.Card, error)

	// ListDue retrieves cards whose next review time is set and at or
	// before the given instant, ordered by (next_review_at, id).
	ListDue(ctx context.Context, now time.Time) ([]*domain.Card, error)

	// ListByCategory retrieves cards carrying the exact category label,
	// ordered by ID.
	ListByCategory(ctx context.Context, category string) ([]*domain.Card, error)

	// CategoryCounts returns the distinct category labels present in the
	// store with the number of cards per label, ordered by label.
	CategoryCounts(ctx context.Context) ([]CategoryCount, error)

	// ReassignCategory relabels every card in the old category with the
	// new label (an empty new label clears the category). Returns the
	// number of cards updated.
	ReassignCategory(ctx context.Context, oldCategory, newCategory string) (int64, error)

	// WithTx returns a new CardStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller,
	// typically through RunInTransaction.
	WithTx(tx *sql.Tx) CardStore
}
