package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/craigmharris/TKDojang-sub007/internal/domain"
	"github.com/craigmharris/TKDojang-sub007/internal/validation"
)

// StartParams configures a new practice session.
type StartParams struct {
	// Mode selects the game mode the session runs.
	Mode domain.Mode

	// WordCount is the requested phrase length; zero picks the mode's
	// default.
	WordCount int

	// ChallengeCount is how many challenges the session holds; zero picks
	// the engine default.
	ChallengeCount int

	// Direction is the language orientation; empty defaults to
	// English-to-Korean.
	Direction domain.Direction
}

// Answer is a mode-shaped submission for one challenge. Exactly one of
// the three fields is set, matching the mode's validation shape.
type Answer struct {
	// Sequence is a full ordered word submission (phrase decoder).
	Sequence []string `json:"sequence,omitempty"`

	// Slots maps slot index to the submitted surface form (word match,
	// slot builder, template filler).
	Slots map[int]string `json:"slots,omitempty"`

	// Pair is a two-card selection (memory match).
	Pair *PairAnswer `json:"pair,omitempty"`
}

// PairAnswer is the two cards selected in a memory-match attempt.
type PairAnswer struct {
	First  validation.Card `json:"first"`
	Second validation.Card `json:"second"`
}

// AttemptOutcome reports what a recorded attempt did to the session.
type AttemptOutcome struct {
	// Result is the grading outcome of the submission.
	Result validation.Result `json:"result"`

	// AttemptsUsed counts attempts recorded against the challenge so far,
	// including this one.
	AttemptsUsed int `json:"attempts_used"`

	// Advanced is true when the session moved past the challenge, either
	// because the answer was correct or the attempt budget ran out.
	Advanced bool `json:"advanced"`

	// SessionComplete is true when the session has no challenges left.
	SessionComplete bool `json:"session_complete"`

	// PairsMatched and PairsTotal report board progress for pairing
	// modes; both are zero for the other shapes.
	PairsMatched int `json:"pairs_matched,omitempty"`
	PairsTotal   int `json:"pairs_total,omitempty"`
}

// EngineService runs practice sessions: it generates challenge batches,
// grades submissions, applies each mode's advance policy, and derives
// final metrics.
type EngineService interface {
	// StartSession generates a challenge batch for the given mode and
	// registers a new session over it.
	//
	// Returns:
	//   - (*domain.Session, nil): the created session
	//   - (nil, domain.ErrInvalidMode): unknown mode
	//   - (nil, domain.ErrInvalidWordCount): word count outside the mode's bounds
	//   - (nil, ErrChallengeCountOutOfRange): challenge count outside the engine's cap
	//   - (nil, *generation.InsufficientVocabularyError): corpus too small for the mode
	//   - (nil, *generation.GenerationExhaustedError): corpus cannot yield enough distinct phrases
	StartSession(ctx context.Context, params StartParams) (*domain.Session, error)

	// GetSession returns the session with the given ID, or
	// ErrSessionNotFound.
	GetSession(ctx context.Context, sessionID uuid.UUID) (*domain.Session, error)

	// CurrentChallenge returns the session's current challenge. Returns
	// domain.ErrSessionComplete once every challenge has been passed.
	CurrentChallenge(ctx context.Context, sessionID uuid.UUID) (*domain.Challenge, error)

	// SubmitAnswer grades a submission against a challenge without
	// recording anything. Wrong answers are results, not errors; only
	// contract violations (unknown session or challenge, answer shape
	// mismatch) return errors.
	SubmitAnswer(
		ctx context.Context,
		sessionID uuid.UUID,
		challengeID uuid.UUID,
		answer Answer,
	) (validation.Result, error)

	// RecordAttempt grades a submission against the session's current
	// challenge, appends it to the attempt log, and applies the mode's
	// advance policy. Returns ErrChallengeNotCurrent when the challenge
	// is not the one the session is positioned on.
	RecordAttempt(
		ctx context.Context,
		sessionID uuid.UUID,
		challengeID uuid.UUID,
		answer Answer,
	) (*AttemptOutcome, error)

	// Finalize derives metrics for a complete session, emits a completion
	// event, and releases the session. Returns
	// domain.ErrSessionNotComplete while challenges remain.
	Finalize(ctx context.Context, sessionID uuid.UUID) (domain.Metrics, error)
}

// Common error types for EngineService
var (
	// ErrSessionNotFound indicates that no session exists with the given ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrChallengeCountOutOfRange indicates a challenge count request
	// outside the engine's configured cap.
	ErrChallengeCountOutOfRange = errors.New("challenge count out of range")

	// ErrAnswerShapeMismatch indicates an answer whose shape does not
	// match the mode's validation shape.
	ErrAnswerShapeMismatch = errors.New("answer shape does not match mode")

	// ErrIncompleteAnswer indicates a slot answer missing required slots.
	ErrIncompleteAnswer = errors.New("answer does not cover every required slot")

	// ErrChallengeNotCurrent indicates an attempt against a challenge the
	// session is not positioned on.
	ErrChallengeNotCurrent = errors.New("challenge is not the session's current challenge")
)

// ServiceError wraps errors from the engine service with operation
// context, so consumers can differentiate failures with errors.As
// instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "start_session")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewStartSessionError returns a new ServiceError for the start_session operation.
func NewStartSessionError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "start_session",
		Message:   message,
		Err:       err,
	}
}

// NewRecordAttemptError returns a new ServiceError for the record_attempt operation.
func NewRecordAttemptError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "record_attempt",
		Message:   message,
		Err:       err,
	}
}

// NewFinalizeError returns a new ServiceError for the finalize operation.
func NewFinalizeError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "finalize",
		Message:   message,
		Err:       err,
	}
}
