package srs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/salescoach/srs-api/internal/domain"
)

func TestStageOf(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		card     domain.Card
		expected Stage
	}{
		{"never reviewed", domain.Card{ReviewCount: 0, Interval: 0}, StageNew},
		{"sub-day interval", domain.Card{ReviewCount: 2, Interval: 0.25}, StageLearning},
		{"exactly one day", domain.Card{ReviewCount: 2, Interval: 1.0}, StageLearning},
		{"mid-range interval", domain.Card{ReviewCount: 5, Interval: 10.0}, StageReviewing},
		{"exactly three weeks", domain.Card{ReviewCount: 8, Interval: 21.0}, StageReviewing},
		{"beyond three weeks", domain.Card{ReviewCount: 12, Interval: 30.0}, StageMastered},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StageOf(&tc.card))
		})
	}
}

func TestStagesPartitionCards(t *testing.T) {
	t.Parallel()

	// Every card lands in exactly one stage, so counting by stage must
	// recover the total.
	cards := []*domain.Card{
		{ReviewCount: 0},
		{ReviewCount: 1, Interval: 0.5},
		{ReviewCount: 3, Interval: 1.0},
		{ReviewCount: 4, Interval: 5.0},
		{ReviewCount: 6, Interval: 21.0},
		{ReviewCount: 9, Interval: 21.01},
		{ReviewCount: 20, Interval: 365.0},
	}

	counts := map[Stage]int{}
	for _, c := range cards {
		counts[StageOf(c)]++
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, len(cards), total)
}

func TestDifficultyOf(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		card     domain.Card
		expected Difficulty
		ok       bool
	}{
		{"unreviewed card has no difficulty", domain.Card{ReviewCount: 0, EaseFactor: 2.0}, "", false},
		{"low ease factor is hard", domain.Card{ReviewCount: 3, EaseFactor: 1.5}, DifficultyHard, true},
		{"middle ease factor is medium", domain.Card{ReviewCount: 3, EaseFactor: 1.8}, DifficultyMedium, true},
		{"boundary two is easy", domain.Card{ReviewCount: 3, EaseFactor: 2.0}, DifficultyEasy, true},
		{"high ease factor is easy", domain.Card{ReviewCount: 3, EaseFactor: 2.5}, DifficultyEasy, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := DifficultyOf(&tc.card)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestPerformanceOf(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		card     domain.Card
		expected Performance
		ok       bool
	}{
		{"too few reviews to score", domain.Card{ReviewCount: 2, SuccessfulReps: 2}, "", false},
		{"low rate is struggling", domain.Card{ReviewCount: 10, SuccessfulReps: 5}, PerformanceStruggling, true},
		{"sixty percent is average", domain.Card{ReviewCount: 10, SuccessfulReps: 6}, PerformanceAverage, true},
		{"eighty-five percent is still average", domain.Card{ReviewCount: 20, SuccessfulReps: 17}, PerformanceAverage, true},
		{"high rate is strong", domain.Card{ReviewCount: 10, SuccessfulReps: 9}, PerformanceStrong, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := PerformanceOf(&tc.card)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestParseBucketNames(t *testing.T) {
	t.Parallel()

	t.Run("valid names round-trip", func(t *testing.T) {
		t.Parallel()
		stage, err := ParseStage("mastered")
		assert.NoError(t, err)
		assert.Equal(t, StageMastered, stage)

		difficulty, err := ParseDifficulty("medium")
		assert.NoError(t, err)
		assert.Equal(t, DifficultyMedium, difficulty)

		performance, err := ParsePerformance("strong")
		assert.NoError(t, err)
		assert.Equal(t, PerformanceStrong, performance)
	})

	t.Run("unknown names fail fast", func(t *testing.T) {
		t.Parallel()
		_, err := ParseStage("graduated")
		assert.ErrorIs(t, err, ErrUnknownStage)

		_, err = ParseDifficulty("brutal")
		assert.ErrorIs(t, err, ErrUnknownDifficulty)

		_, err = ParsePerformance("legendary")
		assert.ErrorIs(t, err, ErrUnknownPerformance)
	})
}
