// Package card_review orchestrates review submission: it loads the card
// under a row lock, runs the scheduler, and persists the card update
// together with the append-only history entry in one transaction.
package card_review

import (
	"context"
	"errors"

	"github.com/salescoach/srs-api/internal/domain"
)

// Service errors
var (
	// ErrCardNotFound is returned when the requested card does not exist.
	// This is a normal outcome callers are expected to handle, not an
	// exceptional code path.
	ErrCardNotFound = errors.New("card not found")

	// ErrInvalidRating is returned when a submitted rating falls outside
	// the 0-5 scale. The scheduler itself is lenient about out-of-range
	// ratings; the boundary is not.
	ErrInvalidRating = errors.New("rating must be between 0 and 5")

	// ErrInvalidDays is returned when a postpone request has fewer than
	// one day.
	ErrInvalidDays = errors.New("postpone days must be at least 1")
)

// ReviewResult bundles the card state after a review with the history entry
// that recorded it.
type ReviewResult struct {
	Card   *domain.Card
	Record *domain.ReviewRecord
}

// CardReviewService defines the interface for review operations.
type CardReviewService interface {
	// SubmitReview processes a 0-5 rating for the card, advancing its
	// scheduling state and appending a history record. The card update
	// and the history append are a single logical transaction: neither
	// is ever visible without the other.
	SubmitReview(ctx context.Context, cardID int64, uiRating int) (*ReviewResult, error)

	// PreviewRatings returns the interval each possible rating would
	// produce for the card, without changing anything.
	PreviewRatings(ctx context.Context, cardID int64) (map[int]float64, error)

	// PostponeCard pushes the card's next review forward by the given
	// number of whole days.
	PostponeCard(ctx context.Context, cardID int64, days int) (*domain.Card, error)
}
