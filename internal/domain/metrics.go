package domain

import "time"

// Metrics is the derived outcome of a completed session. It is computed
// on demand and never stored by the engine itself.
type Metrics struct {
	TotalChallenges int           `json:"total_challenges"`
	CorrectCount    int           `json:"correct_count"`
	Accuracy        float64       `json:"accuracy"`
	AverageAttempts float64       `json:"average_attempts"`
	Duration        time.Duration `json:"duration"`
	StarRating      int           `json:"star_rating"`
}
