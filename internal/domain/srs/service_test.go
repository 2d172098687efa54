package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescoach/srs-api/internal/domain"
)

func TestScheduleReview(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("nil card is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := service.ScheduleReview(nil, 3, now)
		assert.ErrorIs(t, err, ErrNilCard)
	})

	t.Run("review count always advances by one", func(t *testing.T) {
		t.Parallel()
		card := &domain.Card{Interval: 5.0, EaseFactor: 2.0, ReviewCount: 3, SuccessfulReps: 2}

		for rating := 0; rating <= 5; rating++ {
			update, err := service.ScheduleReview(card, rating, now)
			require.NoError(t, err)
			assert.Equal(t, card.ReviewCount+1, update.ReviewCount, "rating %d", rating)

			wantSuccess := card.SuccessfulReps
			if rating >= 3 {
				wantSuccess++
			}
			assert.Equal(t, wantSuccess, update.SuccessfulReps, "rating %d", rating)
		}
	})

	t.Run("graduation ladder for new cards", func(t *testing.T) {
		t.Parallel()
		card := &domain.Card{ReviewCount: 0, Interval: 0}

		expected := map[int]float64{
			0: 1.0 / 144.0,
			1: 1.0 / 144.0,
			2: 1.0 / 24.0,
			3: 0.25,
			4: 3.0,
			5: 3.0,
		}
		for rating, want := range expected {
			update, err := service.ScheduleReview(card, rating, now)
			require.NoError(t, err)
			assert.InDelta(t, want, update.Interval, floatTolerance, "rating %d", rating)
		}
	})
}

func TestPreviewRatings(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()

	t.Run("covers the whole UI scale", func(t *testing.T) {
		t.Parallel()
		card := &domain.Card{Interval: 10.0, EaseFactor: 2.0, ReviewCount: 5}

		preview, err := service.PreviewRatings(card)
		require.NoError(t, err)
		require.Len(t, preview, 6)

		assert.InDelta(t, 1.0/24.0, preview[0], floatTolerance)
		assert.InDelta(t, 1.0/24.0, preview[1], floatTolerance)
		assert.InDelta(t, 12.0, preview[2], floatTolerance)
		assert.InDelta(t, 15.0, preview[3], floatTolerance)
		assert.InDelta(t, 20.0, preview[4], floatTolerance)
		assert.InDelta(t, 20.0, preview[5], floatTolerance)
	})

	t.Run("is idempotent and does not mutate the card", func(t *testing.T) {
		t.Parallel()
		card := &domain.Card{Interval: 10.0, EaseFactor: 2.0, ReviewCount: 5}

		first, err := service.PreviewRatings(card)
		require.NoError(t, err)
		second, err := service.PreviewRatings(card)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 10.0, card.Interval)
		assert.Equal(t, 2.0, card.EaseFactor)
		assert.Equal(t, 5, card.ReviewCount)
	})

	t.Run("nil card is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := service.PreviewRatings(nil)
		assert.ErrorIs(t, err, ErrNilCard)
	})
}

func TestPostponeReview(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("pushes the next review forward", func(t *testing.T) {
		t.Parallel()
		card := &domain.Card{NextReviewAt: now, Interval: 5.0, EaseFactor: 2.0, ReviewCount: 2}

		next, err := service.PostponeReview(card, 3, now)
		require.NoError(t, err)

		assert.Equal(t, now.AddDate(0, 0, 3), next.NextReviewAt)
		assert.Equal(t, card.Interval, next.Interval)
		assert.Equal(t, card.EaseFactor, next.EaseFactor)
		// Original untouched
		assert.Equal(t, now, card.NextReviewAt)
	})

	t.Run("rejects non-positive days", func(t *testing.T) {
		t.Parallel()
		card := &domain.Card{NextReviewAt: now}

		_, err := service.PostponeReview(card, 0, now)
		assert.ErrorIs(t, err, ErrInvalidDays)
	})

	t.Run("unscheduled card is postponed from now", func(t *testing.T) {
		t.Parallel()
		card := &domain.Card{}

		next, err := service.PostponeReview(card, 2, now)
		require.NoError(t, err)
		assert.Equal(t, now.AddDate(0, 0, 2), next.NextReviewAt)
	})
}

func TestCustomParamsProfile(t *testing.T) {
	t.Parallel()

	params := NewParams(ParamsConfig{
		GoodMultiplier: 2.5,
		MaxInterval:    30,
	})
	service := NewServiceWithParams(params)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	card := &domain.Card{Interval: 20.0, EaseFactor: 2.0, ReviewCount: 4}
	update, err := service.ScheduleReview(card, 3, now)
	require.NoError(t, err)

	// 20 * 2.5 = 50 clamped at the custom 30-day ceiling.
	assert.InDelta(t, 30.0, update.Interval, floatTolerance)
}
