package srs

import (
	"time"

	"github.com/salescoach/srs-api/internal/domain"
)

// calculateNextEaseFactor determines the new ease factor based on the rating.
//
// The ease factor represents the card's difficulty - higher values mean the
// card is easier and intervals grow faster. A card that has never been
// reviewed and carries no ease factor is first given the configured default,
// then the rating adjustment is applied on top of it. The result is always
// clamped to [params.MinEaseFactor, params.MaxEaseFactor] so repeated
// failures or successes cannot push a card outside the tuned range.
func calculateNextEaseFactor(card *domain.Card, rating Rating, params *Params) float64 {
	ef := card.EaseFactor
	if card.ReviewCount == 0 && ef <= 0 {
		// Default is assigned before the adjustment, so a new card rated
		// Easy ends its first review at DefaultEaseFactor + bonus.
		ef = params.DefaultEaseFactor
	}

	ef += params.EaseFactorAdjustment[rating]

	if ef < params.MinEaseFactor {
		ef = params.MinEaseFactor
	}
	if ef > params.MaxEaseFactor {
		ef = params.MaxEaseFactor
	}

	return ef
}

// calculateNextInterval determines the new interval in days for the card.
//
// Two regimes exist:
//
//   - New or invalid cards (ReviewCount == 0 or Interval <= 0) follow the
//     graduated learning steps and ignore the current interval entirely.
//     The steps are sub-day for Again/Hard/Good and multi-day for Easy.
//
//   - Reviewing cards grow multiplicatively. Again resets spacing to the
//     lapse interval regardless of how large the interval had become; the
//     other ratings multiply the current interval and the result is capped
//     at params.MaxInterval.
func calculateNextInterval(card *domain.Card, rating Rating, params *Params) float64 {
	if card.IsNew() {
		return params.LearningSteps[rating]
	}

	if rating == RatingAgain {
		// A failure resets spacing, not just growth.
		return params.LapseInterval
	}

	next := card.Interval * params.IntervalMultiplier[rating]
	if next > params.MaxInterval {
		next = params.MaxInterval
	}

	return next
}

// nextReviewTime converts an interval in (possibly fractional) days into the
// next review timestamp relative to now. The sub-day learning steps depend
// on the fraction being preserved, so the interval is converted through a
// duration rather than whole days.
func nextReviewTime(now time.Time, intervalDays float64) time.Time {
	return now.UTC().Add(time.Duration(intervalDays * float64(24*time.Hour)))
}

// ReviewUpdate is the full scheduling state produced by one review event.
// It is a pure computation result; persisting it to the card and appending
// the matching history record is the caller's job, and the two writes must
// land in the same transaction.
type ReviewUpdate struct {
	Interval       float64
	EaseFactor     float64
	NextReviewAt   time.Time
	LastReviewedAt time.Time
	LastRating     int
	ReviewCount    int
	SuccessfulReps int
}

// calculateReviewUpdate orchestrates the interval and ease factor
// calculations into a complete state update for a single review event.
// The card itself is never mutated.
func calculateReviewUpdate(card *domain.Card, uiRating int, now time.Time, params *Params) *ReviewUpdate {
	rating := MapRating(uiRating)
	now = now.UTC()

	update := &ReviewUpdate{
		Interval:       calculateNextInterval(card, rating, params),
		EaseFactor:     calculateNextEaseFactor(card, rating, params),
		LastReviewedAt: now,
		LastRating:     uiRating,
		ReviewCount:    card.ReviewCount + 1,
		SuccessfulReps: card.SuccessfulReps,
	}

	if IsSuccessRating(uiRating) {
		update.SuccessfulReps++
	}

	update.NextReviewAt = nextReviewTime(now, update.Interval)

	return update
}

// Apply copies the update onto the given card, returning a new card value.
// The original card is left untouched.
func (u *ReviewUpdate) Apply(card *domain.Card) *domain.Card {
	next := *card
	next.Interval = u.Interval
	next.EaseFactor = u.EaseFactor
	next.NextReviewAt = u.NextReviewAt
	next.LastReviewedAt = u.LastReviewedAt
	next.LastRating = u.LastRating
	next.ReviewCount = u.ReviewCount
	next.SuccessfulReps = u.SuccessfulReps
	next.UpdatedAt = u.LastReviewedAt
	return &next
}
