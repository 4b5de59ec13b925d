package corpus

import (
	"errors"
	"fmt"
)

// Common corpus errors.
var (
	// ErrNoWords is returned when a source yields an empty word list.
	ErrNoWords = errors.New("vocabulary source contains no words")

	// ErrInsufficientData is returned when a requested category has zero
	// entries in the loaded corpus.
	ErrInsufficientData = errors.New("insufficient vocabulary data")

	// ErrSourceNil is returned when Load is called without a source.
	ErrSourceNil = errors.New("vocabulary source cannot be nil")
)

// LoadError wraps errors encountered while loading and indexing the
// vocabulary, preserving the underlying cause for errors.Is/errors.As.
type LoadError struct {
	// Message is a human-readable description of the failure.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface for LoadError.
func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("corpus load failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("corpus load failed: %s", e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *LoadError) Unwrap() error {
	return e.Err
}
