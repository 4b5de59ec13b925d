// Package scoring derives score, accuracy, elapsed time and a star rating
// from a completed session. Calculation is a pure function of the session:
// nothing is mutated and nothing is stored.
package scoring

import (
	"errors"

	"github.com/google/uuid"

	"github.com/craigmharris/TKDojang-sub007/internal/domain"
)

// Common errors
var (
	ErrNilSession = errors.New("session cannot be nil")
)

// Service computes metrics for completed sessions.
type Service interface {
	// Calculate derives Metrics from a completed session.
	// Returns domain.ErrSessionNotComplete while challenges remain.
	Calculate(session *domain.Session) (domain.Metrics, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a scoring service with default parameters.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a scoring service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

// Calculate implements the Service interface.
func (s *defaultService) Calculate(session *domain.Session) (domain.Metrics, error) {
	if session == nil {
		return domain.Metrics{}, ErrNilSession
	}

	if session.State() != domain.SessionStateComplete {
		return domain.Metrics{}, domain.ErrSessionNotComplete
	}

	return calculateMetrics(session, s.params), nil
}

// calculateMetrics groups the session's attempt log per challenge and
// derives the aggregate numbers. A challenge counts as correct when any of
// its attempts was correct, which covers retry-allowing modes where a
// wrong attempt precedes the eventual solution.
func calculateMetrics(session *domain.Session, params *Params) domain.Metrics {
	challenges := session.Challenges()
	attempts := session.Attempts()

	attemptCounts := make(map[uuid.UUID]int, len(challenges))
	solved := make(map[uuid.UUID]bool, len(challenges))
	for _, a := range attempts {
		attemptCounts[a.ChallengeID]++
		if a.IsCorrect {
			solved[a.ChallengeID] = true
		}
	}

	total := len(challenges)
	correct := 0
	totalAttempts := 0
	for _, ch := range challenges {
		if solved[ch.ID] {
			correct++
		}
		totalAttempts += attemptCounts[ch.ID]
	}

	metrics := domain.Metrics{
		TotalChallenges: total,
		CorrectCount:    correct,
		Accuracy:        float64(correct) / float64(total),
		AverageAttempts: float64(totalAttempts) / float64(total),
		Duration:        session.CompletedAt().Sub(session.StartedAt()),
	}
	metrics.StarRating = starRating(metrics.AverageAttempts, params)

	return metrics
}

// starRating maps average attempts to the 1-3 star tiers.
func starRating(averageAttempts float64, params *Params) int {
	switch {
	case averageAttempts <= params.ThreeStarMaxAverageAttempts:
		return params.MaxStars
	case averageAttempts <= params.TwoStarMaxAverageAttempts:
		return 2
	default:
		return params.MinStars
	}
}
