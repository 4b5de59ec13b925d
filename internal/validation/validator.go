// Package validation grades user submissions against a challenge's
// canonical answer. A wrong answer is never an error: it is a normal
// Result with IsCorrect false. Errors are reserved for contract
// violations such as a submission that does not fit the challenge shape.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/craigmharris/TKDojang-sub007/internal/domain"
)

// Contract-violation errors. These indicate caller bugs, not user input.
var (
	// ErrNilChallenge is returned when a validation is requested without a
	// challenge.
	ErrNilChallenge = errors.New("challenge cannot be nil")

	// ErrLengthMismatch is returned when a full-sequence submission does
	// not cover every position of the canonical order.
	ErrLengthMismatch = errors.New("submission length does not match phrase length")

	// ErrSlotOutOfRange is returned when a per-slot submission references a
	// slot position the challenge does not have.
	ErrSlotOutOfRange = errors.New("slot position out of range")

	// ErrNoSlotsSubmitted is returned when a per-slot submission is empty.
	ErrNoSlotsSubmitted = errors.New("no slots submitted")

	// ErrInvalidCardFace is returned when a pairing card carries an
	// unknown language face.
	ErrInvalidCardFace = errors.New("invalid card face")

	// ErrCardNotInChallenge is returned when a pairing card references a
	// word outside the challenge.
	ErrCardNotInChallenge = errors.New("card word not part of challenge")
)

// Result is the structured outcome of grading one submission.
type Result struct {
	// IsCorrect is true when the whole submission matches the canonical answer.
	IsCorrect bool `json:"is_correct"`

	// PerElement holds per-position or per-slot correctness where the
	// validation shape has one; nil for pairing.
	PerElement map[int]bool `json:"per_element,omitempty"`

	// Feedback is a short human-readable summary of the outcome.
	Feedback string `json:"feedback"`
}

// CardFace identifies which language side a memory card shows.
type CardFace string

const (
	// CardFaceEnglish is the English side of a word.
	CardFaceEnglish CardFace = "english"

	// CardFaceKorean is the Korean (romanized/hangul) side of a word.
	CardFaceKorean CardFace = "korean"
)

// Validate checks the card face value.
func (f CardFace) Validate() error {
	switch f {
	case CardFaceEnglish, CardFaceKorean:
		return nil
	default:
		return ErrInvalidCardFace
	}
}

// Card is one face of a vocabulary word in the memory-match mode.
type Card struct {
	Word domain.VocabularyWord `json:"word"`
	Face CardFace              `json:"face"`
}

// Sequence grades a full ordered submission, element-wise against the
// canonical order. The submission is correct iff every position matches.
func Sequence(challenge *domain.Challenge, submitted []string) (Result, error) {
	if challenge == nil {
		return Result{}, ErrNilChallenge
	}

	canonical := challenge.CanonicalOrder
	if len(submitted) != len(canonical) {
		return Result{}, fmt.Errorf("%w: got %d words, want %d",
			ErrLengthMismatch, len(submitted), len(canonical))
	}

	perElement := make(map[int]bool, len(canonical))
	correct := 0
	for i, word := range canonical {
		match := surfaceMatch(submitted[i], word, challenge.Direction)
		perElement[i] = match
		if match {
			correct++
		}
	}

	return Result{
		IsCorrect:  correct == len(canonical),
		PerElement: perElement,
		Feedback:   positionFeedback(correct, len(canonical)),
	}, nil
}

// Slots grades a mapping from slot position to submitted word against the
// canonical word at each submitted position. Slots not present in the
// submission are not graded; the overall result is correct iff every
// submitted slot is correct.
func Slots(challenge *domain.Challenge, submitted map[int]string) (Result, error) {
	if challenge == nil {
		return Result{}, ErrNilChallenge
	}

	if len(submitted) == 0 {
		return Result{}, ErrNoSlotsSubmitted
	}

	canonical := challenge.CanonicalOrder
	perElement := make(map[int]bool, len(submitted))
	correct := 0
	for slot, answer := range submitted {
		if slot < 0 || slot >= len(canonical) {
			return Result{}, fmt.Errorf("%w: slot %d of %d",
				ErrSlotOutOfRange, slot, len(canonical))
		}

		match := surfaceMatch(answer, canonical[slot], challenge.Direction)
		perElement[slot] = match
		if match {
			correct++
		}
	}

	return Result{
		IsCorrect:  correct == len(submitted),
		PerElement: perElement,
		Feedback:   positionFeedback(correct, len(submitted)),
	}, nil
}

// Pair grades a memory-match selection. Two cards match iff they
// reference the same underlying word on opposite language faces; two
// cards of the same language never match, even when textually identical.
// Both cards must reference words of the challenge.
func Pair(challenge *domain.Challenge, first, second Card) (Result, error) {
	if challenge == nil {
		return Result{}, ErrNilChallenge
	}

	for _, card := range []Card{first, second} {
		if err := card.Face.Validate(); err != nil {
			return Result{}, err
		}
		if !challenge.ContainsWord(card.Word) {
			return Result{}, fmt.Errorf("%w: %q", ErrCardNotInChallenge,
				card.Word.Romanized)
		}
	}

	if first.Face == second.Face {
		return Result{
			IsCorrect: false,
			Feedback:  "Those cards show the same language - find the translation.",
		}, nil
	}

	if !domain.SameWord(first.Word, second.Word) {
		return Result{
			IsCorrect: false,
			Feedback:  "Not a match - keep looking.",
		}, nil
	}

	return Result{
		IsCorrect: true,
		Feedback:  fmt.Sprintf("Matched! %s is %s.", first.Word.English, first.Word.Romanized),
	}, nil
}

// surfaceMatch compares a submitted string against the answer-language
// surface form of the canonical word: romanized for English-to-Korean
// challenges, English for the reverse. Matching is case-insensitive on
// the trimmed form; hangul is accepted as an alternative Korean surface.
func surfaceMatch(submitted string, canonical domain.VocabularyWord, dir domain.Direction) bool {
	s := strings.TrimSpace(submitted)

	switch dir {
	case domain.DirectionKoreanToEnglish:
		return strings.EqualFold(s, canonical.English)
	default:
		if strings.EqualFold(s, canonical.Romanized) {
			return true
		}
		return canonical.Hangul != "" && s == canonical.Hangul
	}
}

func positionFeedback(correct, total int) string {
	if correct == total {
		return "Perfect!"
	}
	return fmt.Sprintf("%d of %d correct - try again.", correct, total)
}
