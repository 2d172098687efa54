package domain

import (
	"errors"
	"strings"
	"time"
)

// Card-specific validation errors
var (
	// ErrCardQuestionEmpty is returned when a card's question text is empty.
	ErrCardQuestionEmpty = errors.New("card question cannot be empty")

	// ErrCardAnswerEmpty is returned when a card's answer text is empty.
	ErrCardAnswerEmpty = errors.New("card answer cannot be empty")

	// ErrCardInvalidInterval is returned when a card's interval is negative.
	ErrCardInvalidInterval = errors.New("card interval cannot be negative")

	// ErrCardInvalidEaseFactor is returned when a card's ease factor is not
	// greater than 1.0 once the card has been reviewed.
	ErrCardInvalidEaseFactor = errors.New("card ease factor must be greater than 1.0")

	// ErrCardInvalidCounters is returned when review counters are negative or
	// the successful repetition count exceeds the total review count.
	ErrCardInvalidCounters = errors.New("card review counters are inconsistent")
)

// Card is a spaced-repetition flashcard together with its scheduling state.
// Question and answer text are opaque to the scheduler. The category is a
// free-form label used for grouping; it is not a foreign key to anything.
//
// Interval is measured in days and may be fractional (sub-day learning steps
// such as 1/144 day are valid). A card with ReviewCount == 0 has never been
// reviewed; an Interval <= 0 is treated the same way by the scheduler.
type Card struct {
	ID             int64     `json:"id"`
	Question       string    `json:"question"`
	Answer         string    `json:"answer"`
	Category       string    `json:"category"`
	Interval       float64   `json:"interval"`
	EaseFactor     float64   `json:"ease_factor"`
	ReviewCount    int       `json:"review_count"`
	SuccessfulReps int       `json:"successful_reps"`
	NextReviewAt   time.Time `json:"next_review_at"`   // zero when not scheduled
	LastReviewedAt time.Time `json:"last_reviewed_at"` // zero for new cards
	LastRating     int       `json:"last_rating"`      // meaningful only when ReviewCount > 0
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewCard creates a new Card with the given content and category label.
// The card starts unreviewed and immediately due, so it shows up in the
// review queue right away. Returns an error if validation fails.
func NewCard(question, answer, category string) (*Card, error) {
	now := time.Now().UTC()
	card := &Card{
		Question:       strings.TrimSpace(question),
		Answer:         strings.TrimSpace(answer),
		Category:       strings.TrimSpace(category),
		Interval:       0,
		EaseFactor:     0, // assigned its default on first review
		ReviewCount:    0,
		SuccessfulReps: 0,
		NextReviewAt:   now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.Question == "" {
		return ErrCardQuestionEmpty
	}

	if c.Answer == "" {
		return ErrCardAnswerEmpty
	}

	if c.Interval < 0 {
		return ErrCardInvalidInterval
	}

	if c.ReviewCount > 0 && c.EaseFactor <= 1.0 {
		return ErrCardInvalidEaseFactor
	}

	if c.ReviewCount < 0 || c.SuccessfulReps < 0 || c.SuccessfulReps > c.ReviewCount {
		return ErrCardInvalidCounters
	}

	return nil
}

// IsNew reports whether the card has never been completed a review.
// An interval of zero or less is treated identically so that cards with
// corrupted or reset scheduling state re-enter the learning steps.
func (c *Card) IsNew() bool {
	return c.ReviewCount == 0 || c.Interval <= 0
}

// IsDue reports whether the card is scheduled and due at the given time.
// Cards without a scheduled review time are never due.
func (c *Card) IsDue(now time.Time) bool {
	return !c.NextReviewAt.IsZero() && !c.NextReviewAt.After(now)
}

// SuccessRate returns the percentage of reviews rated Good or better,
// and false if the card has no reviews to measure.
func (c *Card) SuccessRate() (float64, bool) {
	if c.ReviewCount == 0 {
		return 0, false
	}
	return float64(c.SuccessfulReps) * 100 / float64(c.ReviewCount), true
}

// UpdateContent replaces the card's question, answer, and category label and
// bumps the UpdatedAt timestamp. Scheduling state is untouched.
// Returns an error if the new content is invalid.
func (c *Card) UpdateContent(question, answer, category string) error {
	origQuestion, origAnswer, origCategory := c.Question, c.Answer, c.Category
	c.Question = strings.TrimSpace(question)
	c.Answer = strings.TrimSpace(answer)
	c.Category = strings.TrimSpace(category)

	if err := c.Validate(); err != nil {
		c.Question, c.Answer, c.Category = origQuestion, origAnswer, origCategory
		return err
	}

	c.UpdatedAt = time.Now().UTC()
	return nil
}
