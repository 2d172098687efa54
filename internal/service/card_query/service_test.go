package card_query

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescoach/srs-api/internal/domain"
	"github.com/salescoach/srs-api/internal/domain/srs"
	"github.com/salescoach/srs-api/internal/mocks"
)

func newTestQueryService(t *testing.T) (CardQueryService, *mocks.MemoryCardStore) {
	t.Helper()
	cards := mocks.NewMemoryCardStore()
	return NewCardQueryService(cards, nil), cards
}

func reviewedCard(id int64, category string, interval, ease float64, count, successful int, next time.Time) *domain.Card {
	return &domain.Card{
		ID:             id,
		Question:       fmt.Sprintf("q%d", id),
		Answer:         "a",
		Category:       category,
		Interval:       interval,
		EaseFactor:     ease,
		ReviewCount:    count,
		SuccessfulReps: successful,
		NextReviewAt:   next,
	}
}

func TestDue(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	svc, cards := newTestQueryService(t)
	cards.Seed(
		&domain.Card{ID: 1, Question: "past", Answer: "a", NextReviewAt: now.Add(-time.Hour)},
		&domain.Card{ID: 2, Question: "future", Answer: "a", NextReviewAt: now.Add(time.Hour)},
		&domain.Card{ID: 3, Question: "unset", Answer: "a"},
		&domain.Card{ID: 4, Question: "exact", Answer: "a", NextReviewAt: now},
	)

	due, err := svc.Due(ctx, now)
	require.NoError(t, err)

	ids := make([]int64, 0, len(due))
	for _, card := range due {
		ids = append(ids, card.ID)
	}
	// Past-due and exactly-due cards, most overdue first. Future and
	// unscheduled cards never appear.
	assert.Equal(t, []int64{1, 4}, ids)
}

func TestByStage(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	svc, cards := newTestQueryService(t)
	cards.Seed(
		&domain.Card{ID: 1, Question: "q", Answer: "a", NextReviewAt: now},
		reviewedCard(2, "company", 1.0, 2.0, 1, 1, now),
		reviewedCard(3, "company", 21.0, 2.0, 5, 4, now),
		reviewedCard(4, "company", 30.0, 2.2, 8, 8, now),
	)

	tests := []struct {
		stage   string
		wantIDs []int64
	}{
		{"new", []int64{1}},
		{"learning", []int64{2}},
		{"reviewing", []int64{3}},
		{"mastered", []int64{4}},
	}

	for _, tc := range tests {
		t.Run(tc.stage, func(t *testing.T) {
			got, err := svc.ByStage(ctx, tc.stage)
			require.NoError(t, err)
			require.Len(t, got, len(tc.wantIDs))
			for i, card := range got {
				assert.Equal(t, tc.wantIDs[i], card.ID)
			}
		})
	}

	t.Run("unknown stage name", func(t *testing.T) {
		_, err := svc.ByStage(ctx, "graduated")
		assert.ErrorIs(t, err, srs.ErrUnknownStage)
	})
}

func TestByDifficulty(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	svc, cards := newTestQueryService(t)
	cards.Seed(
		// Never reviewed: excluded from every difficulty bucket even
		// though its zero ease factor would read as "hard".
		&domain.Card{ID: 1, Question: "q", Answer: "a", NextReviewAt: now},
		reviewedCard(2, "company", 5.0, 1.5, 3, 1, now),
		reviewedCard(3, "company", 5.0, 1.8, 3, 2, now),
		reviewedCard(4, "company", 5.0, 2.0, 3, 3, now),
	)

	hard, err := svc.ByDifficulty(ctx, "hard")
	require.NoError(t, err)
	require.Len(t, hard, 1)
	assert.Equal(t, int64(2), hard[0].ID)

	medium, err := svc.ByDifficulty(ctx, "medium")
	require.NoError(t, err)
	require.Len(t, medium, 1)
	assert.Equal(t, int64(3), medium[0].ID)

	easy, err := svc.ByDifficulty(ctx, "easy")
	require.NoError(t, err)
	require.Len(t, easy, 1)
	assert.Equal(t, int64(4), easy[0].ID)

	_, err = svc.ByDifficulty(ctx, "brutal")
	assert.ErrorIs(t, err, srs.ErrUnknownDifficulty)
}

func TestByPerformance(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	svc, cards := newTestQueryService(t)
	cards.Seed(
		// Too few reviews to score.
		reviewedCard(1, "company", 5.0, 2.0, 2, 0, now),
		reviewedCard(2, "company", 5.0, 2.0, 10, 5, now), // 50%
		reviewedCard(3, "company", 5.0, 2.0, 10, 7, now), // 70%
		reviewedCard(4, "company", 5.0, 2.0, 10, 9, now), // 90%
	)

	struggling, err := svc.ByPerformance(ctx, "struggling")
	require.NoError(t, err)
	require.Len(t, struggling, 1)
	assert.Equal(t, int64(2), struggling[0].ID)

	average, err := svc.ByPerformance(ctx, "average")
	require.NoError(t, err)
	require.Len(t, average, 1)
	assert.Equal(t, int64(3), average[0].ID)

	strong, err := svc.ByPerformance(ctx, "strong")
	require.NoError(t, err)
	require.Len(t, strong, 1)
	assert.Equal(t, int64(4), strong[0].ID)

	_, err = svc.ByPerformance(ctx, "flawless")
	assert.ErrorIs(t, err, srs.ErrUnknownPerformance)
}

func TestByCategory(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	svc, cards := newTestQueryService(t)
	cards.Seed(
		reviewedCard(1, "company", 5.0, 2.0, 1, 1, now),
		reviewedCard(2, "contact", 5.0, 2.0, 1, 1, now),
		reviewedCard(3, "company", 5.0, 2.0, 1, 1, now),
	)

	got, err := svc.ByCategory(ctx, "company")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}

func TestStrategyDueMix(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	svc, cards := newTestQueryService(t)
	// Overdue order: 1 (company), 2 (contact), 3 (company), 4 (company),
	// 5 (opportunity). Future card 6 is excluded.
	cards.Seed(
		reviewedCard(1, "company", 5.0, 2.0, 1, 1, now.Add(-5*time.Hour)),
		reviewedCard(2, "contact", 5.0, 2.0, 1, 1, now.Add(-4*time.Hour)),
		reviewedCard(3, "company", 5.0, 2.0, 1, 1, now.Add(-3*time.Hour)),
		reviewedCard(4, "company", 5.0, 2.0, 1, 1, now.Add(-2*time.Hour)),
		reviewedCard(5, "opportunity", 5.0, 2.0, 1, 1, now.Add(-time.Hour)),
		reviewedCard(6, "company", 5.0, 2.0, 1, 1, now.Add(time.Hour)),
	)

	got, err := svc.Strategy(ctx, StrategyDueMix, 0, now)
	require.NoError(t, err)

	ids := make([]int64, 0, len(got))
	for _, card := range got {
		ids = append(ids, card.ID)
	}
	// Categories alternate in first-seen order; within a category the
	// overdue order is kept.
	assert.Equal(t, []int64{1, 2, 5, 3, 4}, ids)
}

func TestStrategyPriorityFirst(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	svc, cards := newTestQueryService(t)
	cards.Seed(
		reviewedCard(1, "company", 5.0, 2.0, 1, 1, now.Add(-time.Hour)),
		reviewedCard(2, "company", 5.0, 2.0, 1, 1, now.Add(-72*time.Hour)),
		reviewedCard(3, "company", 5.0, 2.0, 1, 1, now.Add(-24*time.Hour)),
	)

	got, err := svc.Strategy(ctx, StrategyPriorityFirst, 2, now)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}

func TestStrategyHardCardsFirst(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	svc, cards := newTestQueryService(t)
	cards.Seed(
		reviewedCard(1, "company", 5.0, 1.7, 3, 1, now.Add(-time.Hour)),
		reviewedCard(2, "company", 5.0, 1.3, 3, 1, now.Add(-time.Hour)),
		reviewedCard(3, "company", 5.0, 2.2, 3, 3, now.Add(-time.Hour)),
		// Hard but not due.
		reviewedCard(4, "company", 5.0, 1.4, 3, 1, now.Add(time.Hour)),
	)

	got, err := svc.Strategy(ctx, StrategyHardCardsFirst, 0, now)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)
}

func TestStrategyMasteryBoost(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	svc, cards := newTestQueryService(t)
	cards.Seed(
		reviewedCard(1, "company", 15.0, 2.0, 5, 5, now.Add(-time.Hour)),
		reviewedCard(2, "company", 21.0, 2.0, 5, 5, now.Add(-time.Hour)),
		reviewedCard(3, "company", 14.9, 2.0, 5, 5, now.Add(-time.Hour)),
		reviewedCard(4, "company", 21.1, 2.0, 5, 5, now.Add(-time.Hour)),
	)

	got, err := svc.Strategy(ctx, StrategyMasteryBoost, 0, now)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)
}

func TestStrategyStrugglingFocus(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	svc, cards := newTestQueryService(t)
	cards.Seed(
		reviewedCard(1, "company", 5.0, 2.0, 10, 6, now.Add(-time.Hour)), // 60%
		reviewedCard(2, "company", 5.0, 2.0, 10, 2, now.Add(-time.Hour)), // 20%
		reviewedCard(3, "company", 5.0, 2.0, 10, 8, now.Add(-time.Hour)), // 80%: not struggling
		// Failing record but too few reviews to count.
		reviewedCard(4, "company", 5.0, 2.0, 2, 0, now.Add(-time.Hour)),
	)

	got, err := svc.Strategy(ctx, StrategyStrugglingFocus, 0, now)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)
}

func TestStrategyNewMix(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("small session draws new cards first", func(t *testing.T) {
		t.Parallel()
		svc, cards := newTestQueryService(t)
		for i := int64(1); i <= 10; i++ {
			cards.Seed(&domain.Card{ID: i, Question: "new", Answer: "a", NextReviewAt: now})
		}
		for i := int64(11); i <= 20; i++ {
			cards.Seed(reviewedCard(i, "company", 5.0, 2.0, 3, 2, now.Add(-time.Hour)))
		}

		got, err := svc.Strategy(ctx, StrategyNewMix, 3, now)
		require.NoError(t, err)
		require.Len(t, got, 3)
		for _, card := range got {
			assert.Equal(t, 0, card.ReviewCount, "new cards come before due cards")
		}
	})

	t.Run("caps at five new and ten reviewed", func(t *testing.T) {
		t.Parallel()
		svc, cards := newTestQueryService(t)
		for i := int64(1); i <= 10; i++ {
			cards.Seed(&domain.Card{ID: i, Question: "new", Answer: "a", NextReviewAt: now})
		}
		for i := int64(11); i <= 30; i++ {
			cards.Seed(reviewedCard(i, "company", 5.0, 2.0, 3, 2, now.Add(-time.Hour)))
		}

		got, err := svc.Strategy(ctx, StrategyNewMix, 0, now)
		require.NoError(t, err)
		require.Len(t, got, 15)

		var fresh, reviewed int
		for _, card := range got {
			if card.ReviewCount == 0 {
				fresh++
			} else {
				reviewed++
			}
		}
		assert.Equal(t, 5, fresh)
		assert.Equal(t, 10, reviewed)
	})
}

func TestStrategyUnknownName(t *testing.T) {
	t.Parallel()
	svc, _ := newTestQueryService(t)

	_, err := svc.Strategy(context.Background(), "cram_everything", 10, time.Now())
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}
