package srs

import (
	"errors"
	"fmt"

	"github.com/salescoach/srs-api/internal/domain"
)

// Bucket parsing errors
var (
	// ErrUnknownStage is returned when a learning stage name is not recognized.
	ErrUnknownStage = errors.New("unknown learning stage")

	// ErrUnknownDifficulty is returned when a difficulty level name is not recognized.
	ErrUnknownDifficulty = errors.New("unknown difficulty level")

	// ErrUnknownPerformance is returned when a performance level name is not recognized.
	ErrUnknownPerformance = errors.New("unknown performance level")
)

// Stage is a card's learning stage, derived from its review count and
// current interval. The four stages partition the card set: every card is
// in exactly one stage.
type Stage string

// Learning stages
const (
	StageNew       Stage = "new"
	StageLearning  Stage = "learning"
	StageReviewing Stage = "reviewing"
	StageMastered  Stage = "mastered"
)

// Difficulty is a card's difficulty bucket, derived from its ease factor.
// Only reviewed cards carry a meaningful difficulty.
type Difficulty string

// Difficulty levels
const (
	DifficultyHard   Difficulty = "hard"
	DifficultyMedium Difficulty = "medium"
	DifficultyEasy   Difficulty = "easy"
)

// Performance is a card's performance bucket, derived from its success rate.
// A card needs more than two reviews before its rate is considered
// meaningful.
type Performance string

// Performance levels
const (
	PerformanceStruggling Performance = "struggling"
	PerformanceAverage    Performance = "average"
	PerformanceStrong     Performance = "strong"
)

// Bucket boundary constants. Stage boundaries are in days of interval,
// difficulty boundaries in ease factor, performance boundaries in percent.
const (
	learningMaxInterval  = 1.0
	reviewingMaxInterval = 21.0

	hardMaxEaseFactor = 1.5
	easyMinEaseFactor = 2.0

	strugglingMaxRate = 60.0
	averageMaxRate    = 85.0

	// minScoredReviews is the number of reviews a card needs before its
	// success rate places it in a performance bucket.
	minScoredReviews = 2
)

// StageOf returns the learning stage of a card. New (never reviewed),
// learning (interval up to a day), reviewing (up to three weeks), and
// mastered (beyond three weeks) are mutually exclusive and exhaustive.
func StageOf(card *domain.Card) Stage {
	switch {
	case card.ReviewCount == 0:
		return StageNew
	case card.Interval <= learningMaxInterval:
		return StageLearning
	case card.Interval <= reviewingMaxInterval:
		return StageReviewing
	default:
		return StageMastered
	}
}

// DifficultyOf returns the difficulty bucket of a card and false if the card
// has never been reviewed.
func DifficultyOf(card *domain.Card) (Difficulty, bool) {
	if card.ReviewCount == 0 {
		return "", false
	}

	switch {
	case card.EaseFactor <= hardMaxEaseFactor:
		return DifficultyHard, true
	case card.EaseFactor < easyMinEaseFactor:
		return DifficultyMedium, true
	default:
		return DifficultyEasy, true
	}
}

// PerformanceOf returns the performance bucket of a card and false if the
// card does not yet have enough reviews to score.
func PerformanceOf(card *domain.Card) (Performance, bool) {
	if card.ReviewCount <= minScoredReviews {
		return "", false
	}

	rate, _ := card.SuccessRate()
	switch {
	case rate < strugglingMaxRate:
		return PerformanceStruggling, true
	case rate <= averageMaxRate:
		return PerformanceAverage, true
	default:
		return PerformanceStrong, true
	}
}

// ParseStage validates a learning stage name. Unknown names are a usage
// error and fail fast.
func ParseStage(name string) (Stage, error) {
	switch Stage(name) {
	case StageNew, StageLearning, StageReviewing, StageMastered:
		return Stage(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStage, name)
	}
}

// ParseDifficulty validates a difficulty level name.
func ParseDifficulty(name string) (Difficulty, error) {
	switch Difficulty(name) {
	case DifficultyHard, DifficultyMedium, DifficultyEasy:
		return Difficulty(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, name)
	}
}

// ParsePerformance validates a performance level name.
func ParsePerformance(name string) (Performance, error) {
	switch Performance(name) {
	case PerformanceStruggling, PerformanceAverage, PerformanceStrong:
		return Performance(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPerformance, name)
	}
}
