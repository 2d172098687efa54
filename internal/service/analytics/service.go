// Package analytics derives study statistics from the card store and the
// review history: totals, success rates, streaks, retention trends, and
// bucket distributions. Everything here is a pure aggregation as of "now";
// nothing is mutated.
package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/salescoach/srs-api/internal/domain"
	"github.com/salescoach/srs-api/internal/domain/srs"
	"github.com/salescoach/srs-api/internal/store"
)

// masteryThresholdDays is the interval at which a card counts as mastered
// for the monthly mastery statistic. This is deliberately looser than the
// 21-day stage boundary: the stat celebrates solidly long intervals.
const masteryThresholdDays = 30.0

// Overview is the headline statistics block.
type Overview struct {
	TotalCards int `json:"total_cards"`
	DueCards   int `json:"due_cards"`

	// SuccessRate is the percentage of cards that have been answered
	// successfully at least once.
	SuccessRate float64 `json:"success_rate"`

	ReviewsToday    int `json:"reviews_today"`
	ReviewsThisWeek int `json:"reviews_this_week"`

	// RetentionIncrease is this month's review success rate minus last
	// month's, in whole percentage points. Zero when last month had no
	// reviews.
	RetentionIncrease int `json:"retention_increase"`

	// ConsecutivePerfectReviews counts the unbroken run of rating >= 4
	// reviews at the head of the history.
	ConsecutivePerfectReviews int `json:"consecutive_perfect_reviews"`

	// StreakDays is the number of consecutive calendar days with review
	// activity, ending today or yesterday.
	StreakDays int `json:"streak_days"`

	MasteredThisMonth int `json:"mastered_this_month"`
}

// BucketCounts groups the card population by stage, difficulty, and
// performance. Cards without a meaningful difficulty or performance
// (never or barely reviewed) are absent from those two maps.
type BucketCounts struct {
	Stages       map[srs.Stage]int       `json:"learning_stages"`
	Difficulties map[srs.Difficulty]int  `json:"difficulties"`
	Performances map[srs.Performance]int `json:"performances"`
}

// CategoryProgress is the average per-card progress for one category, or for
// the whole collection when Category is empty.
type CategoryProgress struct {
	Category        string  `json:"category,omitempty"`
	CardCount       int     `json:"card_count"`
	AverageProgress float64 `json:"average_progress"`
}

// AnalyticsService defines the read-only statistics surface.
type AnalyticsService interface {
	// Overview computes the headline statistics as of now.
	Overview(ctx context.Context, now time.Time) (*Overview, error)

	// BucketCounts computes the stage, difficulty, and performance
	// distributions.
	BucketCounts(ctx context.Context) (*BucketCounts, error)

	// Progress averages per-card progress over the named category, or
	// over all cards when category is empty.
	Progress(ctx context.Context, category string) (*CategoryProgress, error)
}

// analyticsServiceImpl implements the AnalyticsService interface.
type analyticsServiceImpl struct {
	cards     store.CardStore
	reviewLog store.ReviewLogStore
	logger    *slog.Logger
}

// NewAnalyticsService creates a new AnalyticsService implementation.
func NewAnalyticsService(
	cards store.CardStore,
	reviewLog store.ReviewLogStore,
	log *slog.Logger,
) AnalyticsService {
	if cards == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cards store cannot be nil")
	}
	if reviewLog == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("review log store cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &analyticsServiceImpl{
		cards:     cards,
		reviewLog: reviewLog,
		logger:    log.With(slog.String("component", "analytics_service")),
	}
}

// Verify interface compliance at compile time
var _ AnalyticsService = (*analyticsServiceImpl)(nil)

// Overview implements AnalyticsService.Overview.
func (s *analyticsServiceImpl) Overview(ctx context.Context, now time.Time) (*Overview, error) {
	now = now.UTC()

	cards, err := s.cards.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	due, err := s.cards.ListDue(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list due cards: %w", err)
	}

	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	reviewsToday, err := s.reviewLog.CountSince(ctx, startOfToday)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's reviews: %w", err)
	}

	reviewsThisWeek, err := s.reviewLog.CountSince(ctx, now.AddDate(0, 0, -7))
	if err != nil {
		return nil, fmt.Errorf("failed to count this week's reviews: %w", err)
	}

	history, err := s.reviewLog.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list review history: %w", err)
	}

	var succeeded int
	for _, card := range cards {
		if card.ReviewCount > 0 && card.SuccessfulReps > 0 {
			succeeded++
		}
	}
	var successRate float64
	if len(cards) > 0 {
		successRate = float64(succeeded) * 100 / float64(len(cards))
	}

	return &Overview{
		TotalCards:                len(cards),
		DueCards:                  len(due),
		SuccessRate:               successRate,
		ReviewsToday:              reviewsToday,
		ReviewsThisWeek:           reviewsThisWeek,
		RetentionIncrease:         retentionIncrease(history, now),
		ConsecutivePerfectReviews: consecutivePerfect(history),
		StreakDays:                streakDays(history, now),
		MasteredThisMonth:         masteredThisMonth(history, now),
	}, nil
}

// BucketCounts implements AnalyticsService.BucketCounts.
func (s *analyticsServiceImpl) BucketCounts(ctx context.Context) (*BucketCounts, error) {
	cards, err := s.cards.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	counts := &BucketCounts{
		Stages:       make(map[srs.Stage]int),
		Difficulties: make(map[srs.Difficulty]int),
		Performances: make(map[srs.Performance]int),
	}

	for _, card := range cards {
		counts.Stages[srs.StageOf(card)]++
		if level, ok := srs.DifficultyOf(card); ok {
			counts.Difficulties[level]++
		}
		if level, ok := srs.PerformanceOf(card); ok {
			counts.Performances[level]++
		}
	}

	return counts, nil
}

// Progress implements AnalyticsService.Progress.
func (s *analyticsServiceImpl) Progress(ctx context.Context, category string) (*CategoryProgress, error) {
	var cards []*domain.Card
	var err error
	if category == "" {
		cards, err = s.cards.List(ctx)
	} else {
		cards, err = s.cards.ListByCategory(ctx, category)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	var total float64
	for _, card := range cards {
		divisor := card.ReviewCount
		if divisor < 1 {
			divisor = 1
		}
		total += float64(card.SuccessfulReps) / float64(divisor) * 100
	}

	progress := &CategoryProgress{Category: category, CardCount: len(cards)}
	if len(cards) > 0 {
		progress.AverageProgress = total / float64(len(cards))
	}
	return progress, nil
}

// retentionIncrease compares the review success rate of the current calendar
// month against the previous one, in whole percentage points. A month with no
// reviews has no rate; without a previous rate the delta is zero.
func retentionIncrease(history []*domain.ReviewRecord, now time.Time) int {
	thisMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	prevMonthStart := thisMonthStart.AddDate(0, -1, 0)

	var thisTotal, thisSuccess, prevTotal, prevSuccess int
	for _, record := range history {
		switch {
		case !record.CreatedAt.Before(thisMonthStart):
			thisTotal++
			if record.IsSuccess() {
				thisSuccess++
			}
		case !record.CreatedAt.Before(prevMonthStart):
			prevTotal++
			if record.IsSuccess() {
				prevSuccess++
			}
		}
	}

	if prevTotal == 0 || thisTotal == 0 {
		return 0
	}

	thisRate := float64(thisSuccess) * 100 / float64(thisTotal)
	prevRate := float64(prevSuccess) * 100 / float64(prevTotal)
	return int(math.Round(thisRate - prevRate))
}

// consecutivePerfect counts the run of rating >= 4 reviews at the newest end
// of the history, stopping at the first imperfect one.
func consecutivePerfect(history []*domain.ReviewRecord) int {
	var run int
	for i := len(history) - 1; i >= 0; i-- {
		if !history[i].IsPerfect() {
			break
		}
		run++
	}
	return run
}

// streakDays counts consecutive calendar days with at least one review,
// walking back from today. A streak that last saw activity yesterday still
// counts; anything older is broken.
func streakDays(history []*domain.ReviewRecord, now time.Time) int {
	activeDays := make(map[time.Time]bool, len(history))
	for _, record := range history {
		created := record.CreatedAt.UTC()
		day := time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, time.UTC)
		activeDays[day] = true
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := today
	if !activeDays[start] {
		start = today.AddDate(0, 0, -1)
		if !activeDays[start] {
			return 0
		}
	}

	var streak int
	for day := start; activeDays[day]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// masteredThisMonth counts cards whose interval first crossed the mastery
// threshold during the current calendar month. The history stores the
// resulting interval of each review, so the first entry at or above the
// threshold marks the crossing.
func masteredThisMonth(history []*domain.ReviewRecord, now time.Time) int {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	firstCrossing := make(map[int64]time.Time)
	for _, record := range history {
		if record.Interval < masteryThresholdDays {
			continue
		}
		if _, seen := firstCrossing[record.CardID]; !seen {
			firstCrossing[record.CardID] = record.CreatedAt.UTC()
		}
	}

	var count int
	for _, crossed := range firstCrossing {
		if !crossed.Before(monthStart) {
			count++
		}
	}
	return count
}
