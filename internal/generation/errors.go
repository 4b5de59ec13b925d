package generation

import (
	"errors"
	"fmt"

	"github.com/craigmharris/TKDojang-sub007/internal/domain"
)

// Common errors returned by the generation package.
var (
	// ErrInvalidParams is returned when the generation parameters are invalid.
	ErrInvalidParams = errors.New("invalid generation parameters")

	// ErrNilRandom is returned when no random source is injected.
	ErrNilRandom = errors.New("random source cannot be nil")
)

// InsufficientVocabularyError is returned when a slot category has fewer
// usable words than distractors+1. It is surfaced before any session is
// created so the caller can disable the mode or relax its parameters
// instead of starting a broken game.
type InsufficientVocabularyError struct {
	// Category is the offending slot category.
	Category domain.Category
	// Available is how many distinct-romanization words the category holds.
	Available int
	// Required is the minimum needed: one correct word plus the distractors.
	Required int
}

// Error implements the error interface.
func (e *InsufficientVocabularyError) Error() string {
	return fmt.Sprintf(
		"insufficient vocabulary for category %q: have %d words, need %d",
		e.Category, e.Available, e.Required)
}

// GenerationExhaustedError is returned when the generator could not
// produce the requested number of unique challenges within its bounded
// retries. The caller should reduce the challenge count or relax the
// distractor constraints. The generator never silently returns a short
// list.
type GenerationExhaustedError struct {
	// Requested is how many challenges were asked for.
	Requested int
	// Produced is how many unique challenges were generated before giving up.
	Produced int
}

// Error implements the error interface.
func (e *GenerationExhaustedError) Error() string {
	return fmt.Sprintf(
		"generation exhausted: produced %d of %d unique challenges",
		e.Produced, e.Requested)
}
