package domain

import (
	"errors"
	"time"
)

// ReviewRecord validation errors
var (
	// ErrReviewCardIDEmpty is returned when a review record has no card ID.
	ErrReviewCardIDEmpty = errors.New("review record card ID cannot be empty")

	// ErrReviewInvalidRating is returned when a review record's rating is
	// outside the 0-5 scale accepted from callers.
	ErrReviewInvalidRating = errors.New("review record rating must be between 0 and 5")

	// ErrReviewInvalidInterval is returned when a review record's resulting
	// interval is not positive.
	ErrReviewInvalidInterval = errors.New("review record interval must be positive")
)

// ReviewRecord is one entry in the append-only review history log. A record
// is written once per completed review and never mutated afterward; the only
// way a record disappears is the cascade delete of its card.
//
// Rating stores the raw 0-5 value the caller submitted, not the internal
// 4-point scale, so the history remains auditable even if the rating mapping
// changes. Interval and EaseFactor capture the values *resulting* from the
// review, which lets analytics reconstruct when a card crossed thresholds.
type ReviewRecord struct {
	ID         int64     `json:"id"`
	CardID     int64     `json:"card_id"`
	Rating     int       `json:"rating"`
	Interval   float64   `json:"interval"`
	EaseFactor float64   `json:"ease_factor"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewReviewRecord creates a history entry for a completed review of the
// given card. Returns an error if validation fails.
func NewReviewRecord(cardID int64, rating int, interval, easeFactor float64, reviewedAt time.Time) (*ReviewRecord, error) {
	rec := &ReviewRecord{
		CardID:     cardID,
		Rating:     rating,
		Interval:   interval,
		EaseFactor: easeFactor,
		CreatedAt:  reviewedAt.UTC(),
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	return rec, nil
}

// Validate checks if the ReviewRecord has valid data.
func (r *ReviewRecord) Validate() error {
	if r.CardID == 0 {
		return ErrReviewCardIDEmpty
	}

	if r.Rating < 0 || r.Rating > 5 {
		return ErrReviewInvalidRating
	}

	if r.Interval <= 0 {
		return ErrReviewInvalidInterval
	}

	return nil
}

// IsSuccess reports whether the review was rated Good or better on the
// 0-5 scale.
func (r *ReviewRecord) IsSuccess() bool {
	return r.Rating >= 3
}

// IsPerfect reports whether the review was rated 4 or 5.
func (r *ReviewRecord) IsPerfect() bool {
	return r.Rating >= 4
}
