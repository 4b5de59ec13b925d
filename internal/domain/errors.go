// Package domain defines the core business entities and errors for the
// vocabulary challenge engine.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrInvalidMode is returned when a game mode is not one of the five
	// supported modes.
	ErrInvalidMode = errors.New("invalid game mode")

	// ErrInvalidWordCount is returned when a phrase word count is outside
	// the supported 2-5 range.
	ErrInvalidWordCount = errors.New("word count must be between 2 and 5")

	// ErrInvalidDirection is returned when a language direction is not valid.
	ErrInvalidDirection = errors.New("invalid language direction")

	// ErrNoChallenges is returned when a session is created with an empty
	// challenge list.
	ErrNoChallenges = errors.New("session requires at least one challenge")

	// ErrChallengeNotInSession is returned when an attempt references a
	// challenge that does not belong to the session. This indicates a
	// caller bug, not a user-facing condition.
	ErrChallengeNotInSession = errors.New("challenge not part of session")

	// ErrSessionComplete is returned when an attempt is recorded against a
	// session that has already run out of challenges.
	ErrSessionComplete = errors.New("session already complete")

	// ErrSessionNotComplete is returned when metrics are requested for a
	// session that still has challenges remaining.
	ErrSessionNotComplete = errors.New("session not complete")
)
