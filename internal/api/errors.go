package api

import (
	"errors"
	"net/http"

	"github.com/craigmharris/TKDojang-sub007/internal/domain"
	"github.com/craigmharris/TKDojang-sub007/internal/generation"
	"github.com/craigmharris/TKDojang-sub007/internal/service/engine"
	"github.com/craigmharris/TKDojang-sub007/internal/validation"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	var insufficientErr *generation.InsufficientVocabularyError
	var exhaustedErr *generation.GenerationExhaustedError

	switch {
	// Not found errors
	case errors.Is(err, engine.ErrSessionNotFound),
		errors.Is(err, domain.ErrChallengeNotInSession):
		return http.StatusNotFound

	// Conflicts with session state
	case errors.Is(err, engine.ErrChallengeNotCurrent),
		errors.Is(err, domain.ErrSessionComplete),
		errors.Is(err, domain.ErrSessionNotComplete):
		return http.StatusConflict

	// The corpus cannot satisfy the request
	case errors.As(err, &insufficientErr),
		errors.As(err, &exhaustedErr):
		return http.StatusUnprocessableEntity

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidMode),
		errors.Is(err, domain.ErrInvalidWordCount),
		errors.Is(err, domain.ErrInvalidDirection),
		errors.Is(err, engine.ErrChallengeCountOutOfRange),
		errors.Is(err, engine.ErrAnswerShapeMismatch),
		errors.Is(err, engine.ErrIncompleteAnswer),
		errors.Is(err, validation.ErrLengthMismatch),
		errors.Is(err, validation.ErrSlotOutOfRange),
		errors.Is(err, validation.ErrNoSlotsSubmitted),
		errors.Is(err, validation.ErrInvalidCardFace),
		errors.Is(err, validation.ErrCardNotInChallenge):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var insufficientErr *generation.InsufficientVocabularyError
	var exhaustedErr *generation.GenerationExhaustedError

	switch {
	case errors.Is(err, engine.ErrSessionNotFound):
		return "Session not found"

	case errors.Is(err, domain.ErrChallengeNotInSession):
		return "Challenge not found in session"

	case errors.Is(err, engine.ErrChallengeNotCurrent):
		return "Challenge is not the session's current challenge"

	case errors.Is(err, domain.ErrSessionComplete):
		return "Session is already complete"

	case errors.Is(err, domain.ErrSessionNotComplete):
		return "Session still has challenges remaining"

	case errors.As(err, &insufficientErr):
		return "Not enough vocabulary for the requested challenge"

	case errors.As(err, &exhaustedErr):
		return "Could not generate enough distinct challenges"

	case errors.Is(err, domain.ErrInvalidMode):
		return "Unknown game mode"

	case errors.Is(err, domain.ErrInvalidWordCount):
		return "Word count outside the mode's range"

	case errors.Is(err, domain.ErrInvalidDirection):
		return "Invalid direction"

	case errors.Is(err, engine.ErrChallengeCountOutOfRange):
		return "Challenge count out of range"

	case errors.Is(err, engine.ErrAnswerShapeMismatch):
		return "Answer shape does not match the game mode"

	case errors.Is(err, engine.ErrIncompleteAnswer):
		return "Answer does not cover every required slot"

	case errors.Is(err, validation.ErrLengthMismatch):
		return "Submission length does not match the phrase"

	case errors.Is(err, validation.ErrSlotOutOfRange),
		errors.Is(err, validation.ErrNoSlotsSubmitted):
		return "Invalid slot submission"

	case errors.Is(err, validation.ErrInvalidCardFace),
		errors.Is(err, validation.ErrCardNotInChallenge):
		return "Invalid card selection"

	default:
		return "An unexpected error occurred"
	}
}
