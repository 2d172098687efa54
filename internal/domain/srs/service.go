package srs

import (
	"errors"
	"time"

	"github.com/salescoach/srs-api/internal/domain"
)

// Common errors
var (
	ErrNilCard     = errors.New("card cannot be nil")
	ErrInvalidDays = errors.New("postpone days must be at least 1")
)

// UIRatingMin and UIRatingMax bound the rating scale accepted from callers.
const (
	UIRatingMin = 0
	UIRatingMax = 5
)

// Service defines the interface for scheduling operations. All methods are
// pure computations over the card passed in; nothing is persisted and the
// input card is never mutated.
type Service interface {
	// ScheduleReview computes the full state update for a single review
	// event: next interval, ease factor, next review timestamp, counters,
	// and rating history fields. Out-of-range ratings are mapped to Again
	// by the rating scale rather than rejected.
	ScheduleReview(card *domain.Card, uiRating int, now time.Time) (*ReviewUpdate, error)

	// PreviewRatings runs the interval calculation for every possible UI
	// rating without mutating state, so a caller can show "if you press X
	// you'll see this card again in Y days" before committing.
	PreviewRatings(card *domain.Card) (map[int]float64, error)

	// PostponeReview pushes the card's next review time forward by a whole
	// number of days, leaving interval and ease factor untouched.
	PostponeReview(card *domain.Card, days int, now time.Time) (*domain.Card, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduling service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new scheduling service with custom parameters
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// ScheduleReview implements the Service interface.
func (s *defaultService) ScheduleReview(
	card *domain.Card,
	uiRating int,
	now time.Time,
) (*ReviewUpdate, error) {
	if card == nil {
		return nil, ErrNilCard
	}

	return calculateReviewUpdate(card, uiRating, now, s.params), nil
}

// PreviewRatings implements the Service interface.
func (s *defaultService) PreviewRatings(card *domain.Card) (map[int]float64, error) {
	if card == nil {
		return nil, ErrNilCard
	}

	preview := make(map[int]float64, UIRatingMax-UIRatingMin+1)
	for uiRating := UIRatingMin; uiRating <= UIRatingMax; uiRating++ {
		preview[uiRating] = calculateNextInterval(card, MapRating(uiRating), s.params)
	}

	return preview, nil
}

// PostponeReview implements the Service interface.
func (s *defaultService) PostponeReview(
	card *domain.Card,
	days int,
	now time.Time,
) (*domain.Card, error) {
	if card == nil {
		return nil, ErrNilCard
	}

	if days < 1 {
		return nil, ErrInvalidDays
	}

	next := *card
	base := card.NextReviewAt
	if base.IsZero() {
		base = now.UTC()
	}
	next.NextReviewAt = base.AddDate(0, 0, days)
	next.UpdatedAt = now.UTC()

	return &next, nil
}
