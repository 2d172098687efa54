package card_review

import (
	"context"

	"github.com/salescoach/srs-api/internal/domain"
)

// MockCardReviewService is a test double for CardReviewService. Each method
// delegates to the corresponding function field when set.
type MockCardReviewService struct {
	SubmitReviewFn   func(ctx context.Context, cardID int64, uiRating int) (*ReviewResult, error)
	PreviewRatingsFn func(ctx context.Context, cardID int64) (map[int]float64, error)
	PostponeCardFn   func(ctx context.Context, cardID int64, days int) (*domain.Card, error)
}

// Ensure MockCardReviewService implements CardReviewService
var _ CardReviewService = (*MockCardReviewService)(nil)

// SubmitReview implements CardReviewService.SubmitReview
func (m *MockCardReviewService) SubmitReview(ctx context.Context, cardID int64, uiRating int) (*ReviewResult, error) {
	if m.SubmitReviewFn != nil {
		return m.SubmitReviewFn(ctx, cardID, uiRating)
	}
	return nil, ErrCardNotFound
}

// PreviewRatings implements CardReviewService.PreviewRatings
func (m *MockCardReviewService) PreviewRatings(ctx context.Context, cardID int64) (map[int]float64, error) {
	if m.PreviewRatingsFn != nil {
		return m.PreviewRatingsFn(ctx, cardID)
	}
	return nil, ErrCardNotFound
}

// PostponeCard implements CardReviewService.PostponeCard
func (m *MockCardReviewService) PostponeCard(ctx context.Context, cardID int64, days int) (*domain.Card, error) {
	if m.PostponeCardFn != nil {
		return m.PostponeCardFn(ctx, cardID, days)
	}
	return nil, ErrCardNotFound
}
