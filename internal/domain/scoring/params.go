package scoring

// Params defines all configurable parameters for session scoring.
type Params struct {
	// Star rating thresholds, keyed on average attempts per challenge.
	ThreeStarMaxAverageAttempts float64
	TwoStarMaxAverageAttempts   float64

	// Star counts per tier.
	MaxStars int
	MinStars int
}

// ParamsConfig allows overriding the default parameters when creating a
// new Params instance.
type ParamsConfig struct {
	ThreeStarMaxAverageAttempts float64
	TwoStarMaxAverageAttempts   float64
}

// NewDefaultParams creates a new Params instance with default values:
// three stars at or under 1.5 average attempts, two stars at or under
// 2.5, one star otherwise.
func NewDefaultParams() *Params {
	return &Params{
		ThreeStarMaxAverageAttempts: 1.5,
		TwoStarMaxAverageAttempts:   2.5,
		MaxStars:                    3,
		MinStars:                    1,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.ThreeStarMaxAverageAttempts > 0 {
		params.ThreeStarMaxAverageAttempts = config.ThreeStarMaxAverageAttempts
	}
	if config.TwoStarMaxAverageAttempts > 0 {
		params.TwoStarMaxAverageAttempts = config.TwoStarMaxAverageAttempts
	}

	return params
}
