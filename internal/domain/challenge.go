package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Challenge-specific validation errors
var (
	// ErrChallengeIDEmpty is returned when a challenge ID is empty or nil.
	ErrChallengeIDEmpty = errors.New("challenge ID cannot be empty")

	// ErrChallengeCanonicalMismatch is returned when a challenge's canonical
	// order length does not match its template word count.
	ErrChallengeCanonicalMismatch = errors.New(
		"canonical order must match template word count")

	// ErrChallengeOptionsMissing is returned when a slot has no option set.
	ErrChallengeOptionsMissing = errors.New("every slot needs at least one option")

	// ErrChallengeAnswerLeaked is returned when a slot's option set does not
	// contain the canonical word exactly once.
	ErrChallengeAnswerLeaked = errors.New(
		"slot options must contain the canonical word exactly once")
)

// Direction is the source-to-target language orientation of a challenge.
type Direction string

const (
	// DirectionEnglishToKorean prompts in English and expects Korean
	// romanized answers.
	DirectionEnglishToKorean Direction = "english_to_korean"

	// DirectionKoreanToEnglish prompts in Korean and expects English answers.
	DirectionKoreanToEnglish Direction = "korean_to_english"
)

// Validate checks that the direction is one of the supported orientations.
func (d Direction) Validate() error {
	switch d {
	case DirectionEnglishToKorean, DirectionKoreanToEnglish:
		return nil
	default:
		return ErrInvalidDirection
	}
}

// Challenge is a single generated exercise: a canonical word sequence for
// a phrase template plus, for each slot, a shuffled option set containing
// the correct word and same-category distractors.
type Challenge struct {
	ID             uuid.UUID          `json:"id"`
	Template       PhraseTemplate     `json:"template"`
	SlotOptions    [][]VocabularyWord `json:"slot_options"`
	CanonicalOrder []VocabularyWord   `json:"canonical_order"`
	ScrambledOrder []VocabularyWord   `json:"scrambled_order,omitempty"`
	Direction      Direction          `json:"direction"`
}

// NewChallenge creates a Challenge with a fresh ID and validates it.
func NewChallenge(
	template PhraseTemplate,
	canonical []VocabularyWord,
	slotOptions [][]VocabularyWord,
	direction Direction,
) (*Challenge, error) {
	ch := &Challenge{
		ID:             uuid.New(),
		Template:       template,
		SlotOptions:    slotOptions,
		CanonicalOrder: canonical,
		Direction:      direction,
	}

	if err := ch.Validate(); err != nil {
		return nil, err
	}

	return ch, nil
}

// Validate checks the structural invariants of the challenge: the
// canonical order matches the template, every slot has options, and each
// slot's option set contains the canonical word exactly once with no
// distractor duplicating its romanized form.
func (c *Challenge) Validate() error {
	if c.ID == uuid.Nil {
		return ErrChallengeIDEmpty
	}

	if err := c.Template.Validate(); err != nil {
		return err
	}

	if err := c.Direction.Validate(); err != nil {
		return err
	}

	if len(c.CanonicalOrder) != c.Template.WordCount {
		return ErrChallengeCanonicalMismatch
	}

	if len(c.SlotOptions) != c.Template.WordCount {
		return ErrChallengeOptionsMissing
	}

	for slot, options := range c.SlotOptions {
		if len(options) == 0 {
			return ErrChallengeOptionsMissing
		}

		matches := 0
		for _, opt := range options {
			if strings.EqualFold(opt.Romanized, c.CanonicalOrder[slot].Romanized) {
				matches++
			}
		}
		if matches != 1 {
			return ErrChallengeAnswerLeaked
		}
	}

	return nil
}

// CanonicalKey returns a stable identity for the challenge's full word
// sequence. Two challenges with the same key are duplicates.
func (c *Challenge) CanonicalKey() string {
	parts := make([]string, len(c.CanonicalOrder))
	for i, w := range c.CanonicalOrder {
		parts[i] = strings.ToLower(w.Romanized)
	}
	return strings.Join(parts, "|")
}

// ContainsWord reports whether the challenge's canonical order includes
// the given word. Used by the pairing validator to reject cards that do
// not belong to the challenge.
func (c *Challenge) ContainsWord(w VocabularyWord) bool {
	for _, cw := range c.CanonicalOrder {
		if SameWord(cw, w) {
			return true
		}
	}
	return false
}
