package srs

// Params defines all configurable parameters for the scheduling algorithm.
// A Params value is treated as immutable once handed to a Service; alternate
// tuning profiles are created through NewParams rather than by mutating a
// shared instance.
type Params struct {
	// Ease factor limits and starting point
	DefaultEaseFactor float64
	MinEaseFactor     float64
	MaxEaseFactor     float64

	// Adjustments applied to the ease factor per rating
	EaseFactorAdjustment map[Rating]float64

	// Interval growth multipliers for cards under regular review
	IntervalMultiplier map[Rating]float64

	// Graduated learning steps, in days, used while a card is new
	LearningSteps map[Rating]float64

	// LapseInterval is the interval, in days, a reviewing card resets to
	// when it is rated Again.
	LapseInterval float64

	// MaxInterval caps interval growth, in days.
	MaxInterval float64
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values leave the corresponding default untouched.
type ParamsConfig struct {
	// Ease factor limits and starting point
	DefaultEaseFactor float64 `mapstructure:"default_ease_factor"`
	MinEaseFactor     float64 `mapstructure:"min_ease_factor"`
	MaxEaseFactor     float64 `mapstructure:"max_ease_factor"`

	// Ease factor adjustments (Again and Hard are magnitudes of a decrease)
	AgainEasePenalty float64 `mapstructure:"again_ease_penalty"`
	HardEasePenalty  float64 `mapstructure:"hard_ease_penalty"`
	EasyEaseBonus    float64 `mapstructure:"easy_ease_bonus"`

	// Interval multipliers
	HardMultiplier float64 `mapstructure:"hard_multiplier"`
	GoodMultiplier float64 `mapstructure:"good_multiplier"`
	EasyMultiplier float64 `mapstructure:"easy_multiplier"`

	// Learning steps in days
	AgainStep        float64 `mapstructure:"again_step"`
	HardStep         float64 `mapstructure:"hard_step"`
	GoodStep         float64 `mapstructure:"good_step"`
	EasyGraduateStep float64 `mapstructure:"easy_graduate_step"`

	// Limits
	LapseInterval float64 `mapstructure:"lapse_interval"`
	MaxInterval   float64 `mapstructure:"max_interval"`
}

// NewDefaultParams creates a new Params instance with the default tuning.
//
// The learning steps mirror the classic ten-minutes / one-hour / six-hours /
// three-days ladder: a new card answered Easy graduates straight to a
// multi-day interval, while anything weaker keeps it in sub-day territory.
func NewDefaultParams() *Params {
	return &Params{
		DefaultEaseFactor: 2.0,
		MinEaseFactor:     1.3,
		MaxEaseFactor:     2.5,

		EaseFactorAdjustment: map[Rating]float64{
			RatingAgain: -0.20,
			RatingHard:  -0.15,
			RatingGood:  0.0,
			RatingEasy:  0.10,
		},

		IntervalMultiplier: map[Rating]float64{
			RatingAgain: 0.0, // handled as a reset, multiplier unused
			RatingHard:  1.2,
			RatingGood:  1.5,
			RatingEasy:  2.0,
		},

		LearningSteps: map[Rating]float64{
			RatingAgain: 1.0 / 144.0, // 10 minutes
			RatingHard:  1.0 / 24.0,  // 1 hour
			RatingGood:  0.25,        // 6 hours
			RatingEasy:  3.0,         // graduate immediately
		},

		LapseInterval: 1.0 / 24.0,
		MaxInterval:   365.0,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Unset (zero) fields keep their defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.DefaultEaseFactor > 0 {
		params.DefaultEaseFactor = config.DefaultEaseFactor
	}
	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.MaxEaseFactor > 0 {
		params.MaxEaseFactor = config.MaxEaseFactor
	}

	if config.AgainEasePenalty > 0 {
		params.EaseFactorAdjustment[RatingAgain] = -config.AgainEasePenalty
	}
	if config.HardEasePenalty > 0 {
		params.EaseFactorAdjustment[RatingHard] = -config.HardEasePenalty
	}
	if config.EasyEaseBonus > 0 {
		params.EaseFactorAdjustment[RatingEasy] = config.EasyEaseBonus
	}

	if config.HardMultiplier > 0 {
		params.IntervalMultiplier[RatingHard] = config.HardMultiplier
	}
	if config.GoodMultiplier > 0 {
		params.IntervalMultiplier[RatingGood] = config.GoodMultiplier
	}
	if config.EasyMultiplier > 0 {
		params.IntervalMultiplier[RatingEasy] = config.EasyMultiplier
	}

	if config.AgainStep > 0 {
		params.LearningSteps[RatingAgain] = config.AgainStep
	}
	if config.HardStep > 0 {
		params.LearningSteps[RatingHard] = config.HardStep
	}
	if config.GoodStep > 0 {
		params.LearningSteps[RatingGood] = config.GoodStep
	}
	if config.EasyGraduateStep > 0 {
		params.LearningSteps[RatingEasy] = config.EasyGraduateStep
	}

	if config.LapseInterval > 0 {
		params.LapseInterval = config.LapseInterval
	}
	if config.MaxInterval > 0 {
		params.MaxInterval = config.MaxInterval
	}

	return params
}
