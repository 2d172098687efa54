package srs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaultParams(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	assert.Equal(t, 2.0, params.DefaultEaseFactor)
	assert.Equal(t, 1.3, params.MinEaseFactor)
	assert.Equal(t, 2.5, params.MaxEaseFactor)
	assert.Equal(t, 365.0, params.MaxInterval)
	assert.InDelta(t, 1.0/144.0, params.LearningSteps[RatingAgain], floatTolerance)
	assert.InDelta(t, 1.0/24.0, params.LapseInterval, floatTolerance)
	assert.Equal(t, 1.2, params.IntervalMultiplier[RatingHard])
	assert.Equal(t, 1.5, params.IntervalMultiplier[RatingGood])
	assert.Equal(t, 2.0, params.IntervalMultiplier[RatingEasy])
}

func TestNewParamsOverrides(t *testing.T) {
	t.Parallel()

	params := NewParams(ParamsConfig{
		MinEaseFactor:    1.5,
		AgainEasePenalty: 0.3,
		EasyMultiplier:   2.5,
		EasyGraduateStep: 4.0,
		MaxInterval:      180,
	})

	assert.Equal(t, 1.5, params.MinEaseFactor)
	assert.Equal(t, -0.3, params.EaseFactorAdjustment[RatingAgain])
	assert.Equal(t, 2.5, params.IntervalMultiplier[RatingEasy])
	assert.Equal(t, 4.0, params.LearningSteps[RatingEasy])
	assert.Equal(t, 180.0, params.MaxInterval)

	// Untouched fields keep their defaults.
	assert.Equal(t, 2.5, params.MaxEaseFactor)
	assert.Equal(t, 1.2, params.IntervalMultiplier[RatingHard])
}
