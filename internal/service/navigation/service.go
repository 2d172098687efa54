// Package navigation moves a study session through the card collection:
// the next due card after the current one, the previous card by id, and the
// current card's position in the due queue.
package navigation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/salescoach/srs-api/internal/store"
)

// Position describes where a card sits in the due queue.
type Position struct {
	// Rank is the card's 1-based position in the due queue ordered by
	// (next_review_at, id). Zero when the card is not due.
	Rank int `json:"rank"`

	// QueueLength is the total number of due cards.
	QueueLength int `json:"queue_length"`
}

// NavigationService defines the session navigation surface.
type NavigationService interface {
	// NextDue returns the id of the next due card after currentID: the
	// smallest-id due card with a larger id, falling back to the earliest
	// due card overall. With no due cards at all it returns currentID
	// unchanged.
	NextDue(ctx context.Context, currentID int64, now time.Time) (int64, error)

	// Prev returns the largest card id below currentID, or currentID when
	// there is none.
	Prev(ctx context.Context, currentID int64) (int64, error)

	// Position returns the card's 1-based rank in the due queue along with
	// the queue length.
	Position(ctx context.Context, cardID int64, now time.Time) (*Position, error)
}

// navigationServiceImpl implements the NavigationService interface.
type navigationServiceImpl struct {
	cards  store.CardStore
	logger *slog.Logger
}

// NewNavigationService creates a new NavigationService implementation.
func NewNavigationService(cards store.CardStore, log *slog.Logger) NavigationService {
	if cards == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cards store cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &navigationServiceImpl{
		cards:  cards,
		logger: log.With(slog.String("component", "navigation_service")),
	}
}

// Verify interface compliance at compile time
var _ NavigationService = (*navigationServiceImpl)(nil)

// NextDue implements NavigationService.NextDue.
func (s *navigationServiceImpl) NextDue(ctx context.Context, currentID int64, now time.Time) (int64, error) {
	due, err := s.cards.ListDue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to list due cards: %w", err)
	}
	if len(due) == 0 {
		return currentID, nil
	}

	// Smallest due id strictly after the current card.
	next := int64(0)
	for _, card := range due {
		if card.ID > currentID && (next == 0 || card.ID < next) {
			next = card.ID
		}
	}
	if next != 0 {
		return next, nil
	}

	// Wrapped past the end: restart at the most urgent card. ListDue
	// orders by (next_review_at, id), so the head is the earliest due.
	return due[0].ID, nil
}

// Prev implements NavigationService.Prev.
func (s *navigationServiceImpl) Prev(ctx context.Context, currentID int64) (int64, error) {
	cards, err := s.cards.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list cards: %w", err)
	}

	prev := currentID
	for _, card := range cards {
		if card.ID < currentID && (prev == currentID || card.ID > prev) {
			prev = card.ID
		}
	}
	return prev, nil
}

// Position implements NavigationService.Position.
func (s *navigationServiceImpl) Position(ctx context.Context, cardID int64, now time.Time) (*Position, error) {
	due, err := s.cards.ListDue(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list due cards: %w", err)
	}

	pos := &Position{QueueLength: len(due)}
	for i, card := range due {
		if card.ID == cardID {
			pos.Rank = i + 1
			break
		}
	}
	return pos, nil
}
