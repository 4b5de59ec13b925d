package domain

import (
	"errors"
	"fmt"
)

// Template-specific validation errors
var (
	// ErrTemplateSlotMismatch is returned when a template's slot list length
	// does not equal its word count.
	ErrTemplateSlotMismatch = errors.New("template slots must match word count")

	// ErrTemplateDescriptionEmpty is returned when a template has no description.
	ErrTemplateDescriptionEmpty = errors.New("template description cannot be empty")
)

// Phrase length limits supported by the grammar.
const (
	MinPhraseWordCount = 2
	MaxPhraseWordCount = 5
)

// PhraseTemplate is an ordered sequence of required semantic-category
// slots plus a human-readable description. Templates are static: they are
// defined once per word count and shared read-only by the generator.
type PhraseTemplate struct {
	WordCount   int        `json:"word_count"`
	Slots       []Category `json:"slots"`
	Description string     `json:"description"`
}

// Validate checks if the PhraseTemplate has valid data.
func (t *PhraseTemplate) Validate() error {
	if t.WordCount < MinPhraseWordCount || t.WordCount > MaxPhraseWordCount {
		return fmt.Errorf("%w: got %d", ErrInvalidWordCount, t.WordCount)
	}

	if len(t.Slots) != t.WordCount {
		return fmt.Errorf("%w: %d slots for word count %d",
			ErrTemplateSlotMismatch, len(t.Slots), t.WordCount)
	}

	if t.Description == "" {
		return ErrTemplateDescriptionEmpty
	}

	return nil
}
