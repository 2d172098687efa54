// Package card_query selects subsets of cards: due cards, learning-stage /
// difficulty / performance buckets, category filters, and the named review
// strategies that order a study session.
package card_query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/salescoach/srs-api/internal/domain"
	"github.com/salescoach/srs-api/internal/domain/srs"
	"github.com/salescoach/srs-api/internal/store"
)

// ErrUnknownStrategy is returned when a review strategy name is not
// recognized. Like the bucket-name errors it is a usage error and fails
// fast, before any work happens.
var ErrUnknownStrategy = errors.New("unknown review strategy")

// CardQueryService defines the read-only query surface over the card store.
type CardQueryService interface {
	// All returns every card ordered by id.
	All(ctx context.Context) ([]*domain.Card, error)

	// Due returns cards whose next review is at or before now, ordered
	// by (next_review_at, id).
	Due(ctx context.Context, now time.Time) ([]*domain.Card, error)

	// ByStage returns cards in the named learning stage.
	// Unknown stage names return srs.ErrUnknownStage.
	ByStage(ctx context.Context, name string) ([]*domain.Card, error)

	// ByDifficulty returns reviewed cards in the named difficulty bucket.
	// Unknown level names return srs.ErrUnknownDifficulty.
	ByDifficulty(ctx context.Context, name string) ([]*domain.Card, error)

	// ByPerformance returns scored cards in the named performance bucket.
	// Unknown level names return srs.ErrUnknownPerformance.
	ByPerformance(ctx context.Context, name string) ([]*domain.Card, error)

	// ByCategory returns cards carrying the exact category label.
	ByCategory(ctx context.Context, category string) ([]*domain.Card, error)

	// Strategy returns up to limit cards selected and ordered by the
	// named review strategy. Unknown names return ErrUnknownStrategy.
	Strategy(ctx context.Context, name string, limit int, now time.Time) ([]*domain.Card, error)
}

// cardQueryServiceImpl implements the CardQueryService interface.
type cardQueryServiceImpl struct {
	cards  store.CardStore
	logger *slog.Logger
}

// NewCardQueryService creates a new CardQueryService implementation.
func NewCardQueryService(cards store.CardStore, log *slog.Logger) CardQueryService {
	if cards == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cards store cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &cardQueryServiceImpl{
		cards:  cards,
		logger: log.With(slog.String("component", "card_query_service")),
	}
}

// Verify interface compliance at compile time
var _ CardQueryService = (*cardQueryServiceImpl)(nil)

// All implements CardQueryService.All.
func (s *cardQueryServiceImpl) All(ctx context.Context) ([]*domain.Card, error) {
	return s.cards.List(ctx)
}

// Due implements CardQueryService.Due.
func (s *cardQueryServiceImpl) Due(ctx context.Context, now time.Time) ([]*domain.Card, error) {
	return s.cards.ListDue(ctx, now)
}

// ByStage implements CardQueryService.ByStage.
func (s *cardQueryServiceImpl) ByStage(ctx context.Context, name string) ([]*domain.Card, error) {
	stage, err := srs.ParseStage(name)
	if err != nil {
		return nil, err
	}

	cards, err := s.cards.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	return filterCards(cards, func(c *domain.Card) bool {
		return srs.StageOf(c) == stage
	}), nil
}

// ByDifficulty implements CardQueryService.ByDifficulty.
func (s *cardQueryServiceImpl) ByDifficulty(ctx context.Context, name string) ([]*domain.Card, error) {
	level, err := srs.ParseDifficulty(name)
	if err != nil {
		return nil, err
	}

	cards, err := s.cards.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	return filterCards(cards, func(c *domain.Card) bool {
		got, ok := srs.DifficultyOf(c)
		return ok && got == level
	}), nil
}

// ByPerformance implements CardQueryService.ByPerformance.
func (s *cardQueryServiceImpl) ByPerformance(ctx context.Context, name string) ([]*domain.Card, error) {
	level, err := srs.ParsePerformance(name)
	if err != nil {
		return nil, err
	}

	cards, err := s.cards.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	return filterCards(cards, func(c *domain.Card) bool {
		got, ok := srs.PerformanceOf(c)
		return ok && got == level
	}), nil
}

// ByCategory implements CardQueryService.ByCategory.
func (s *cardQueryServiceImpl) ByCategory(ctx context.Context, category string) ([]*domain.Card, error) {
	return s.cards.ListByCategory(ctx, category)
}

// filterCards returns the cards matching the predicate, preserving order.
func filterCards(cards []*domain.Card, keep func(*domain.Card) bool) []*domain.Card {
	filtered := make([]*domain.Card, 0, len(cards))
	for _, card := range cards {
		if keep(card) {
			filtered = append(filtered, card)
		}
	}
	return filtered
}
