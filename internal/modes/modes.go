// Package modes maps each of the five game modes to the generator and
// validator parameters it runs with. The modes share one engine; these
// configuration records are the only thing that differs between them.
package modes

import (
	"fmt"

	"github.com/craigmharris/TKDojang-sub007/internal/domain"
)

// Shape selects which validation family a mode grades with.
type Shape string

const (
	// ShapeSequence grades a full ordered word list.
	ShapeSequence Shape = "sequence"

	// ShapeSlots grades a slot-position to word mapping.
	ShapeSlots Shape = "slots"

	// ShapePairing grades two selected cards.
	ShapePairing Shape = "pairing"
)

// Config binds a game mode to its generation and grading parameters.
type Config struct {
	Mode domain.Mode

	// Word count bounds the mode accepts; DefaultWordCount applies when
	// the caller does not ask for a specific phrase length.
	MinWordCount     int
	MaxWordCount     int
	DefaultWordCount int

	// DistractorsPerSlot is how many wrong options each slot carries.
	DistractorsPerSlot int

	// BlankCount is how many slots the template filler hides; zero for
	// modes that expose every slot.
	BlankCount int

	// Scramble asks the generator for a scrambled order (decoder mode).
	Scramble bool

	// Shape is the validation family the mode grades with.
	Shape Shape

	// MaxAttempts is how many tries a challenge allows before the session
	// moves on regardless; 1 for single-shot modes, 0 for pairing boards,
	// which have no attempt budget at all.
	MaxAttempts int
}

// configs is the full mode table. One configurable engine, five records.
var configs = map[domain.Mode]Config{
	domain.ModeWordMatch: {
		Mode:               domain.ModeWordMatch,
		MinWordCount:       2,
		MaxWordCount:       3,
		DefaultWordCount:   2,
		DistractorsPerSlot: 3,
		Shape:              ShapeSlots,
		MaxAttempts:        1,
	},
	domain.ModeSlotBuilder: {
		Mode:               domain.ModeSlotBuilder,
		MinWordCount:       2,
		MaxWordCount:       5,
		DefaultWordCount:   3,
		DistractorsPerSlot: 2,
		Shape:              ShapeSlots,
		MaxAttempts:        1,
	},
	domain.ModeTemplateFiller: {
		Mode:               domain.ModeTemplateFiller,
		MinWordCount:       3,
		MaxWordCount:       5,
		DefaultWordCount:   3,
		DistractorsPerSlot: 3,
		BlankCount:         1,
		Shape:              ShapeSlots,
		MaxAttempts:        1,
	},
	domain.ModePhraseDecoder: {
		Mode:             domain.ModePhraseDecoder,
		MinWordCount:     2,
		MaxWordCount:     5,
		DefaultWordCount: 3,
		// The decoder offers no multiple choice; the scrambled words
		// themselves are the options.
		DistractorsPerSlot: 0,
		Scramble:           true,
		Shape:              ShapeSequence,
		MaxAttempts:        3,
	},
	domain.ModeMemoryMatch: {
		Mode:             domain.ModeMemoryMatch,
		MinWordCount:     2,
		MaxWordCount:     5,
		DefaultWordCount: 4,
		// Every canonical word becomes a card pair; there are no
		// distractor words on the board. The board stays current until
		// all of its pairs are matched, so no attempt budget applies.
		DistractorsPerSlot: 0,
		Shape:              ShapePairing,
		MaxAttempts:        0,
	},
}

// For returns the configuration for a mode.
// Returns domain.ErrInvalidMode for an unknown mode.
func For(mode domain.Mode) (Config, error) {
	cfg, ok := configs[mode]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", domain.ErrInvalidMode, mode)
	}
	return cfg, nil
}

// ResolveWordCount picks the phrase length a session should use: the
// requested count when it is inside the mode's bounds, the mode default
// when the request is zero.
func (c Config) ResolveWordCount(requested int) (int, error) {
	if requested == 0 {
		return c.DefaultWordCount, nil
	}

	if requested < c.MinWordCount || requested > c.MaxWordCount {
		return 0, fmt.Errorf("%w: mode %s accepts %d-%d words, got %d",
			domain.ErrInvalidWordCount, c.Mode, c.MinWordCount, c.MaxWordCount, requested)
	}

	return requested, nil
}

// ShouldAdvance applies the advance policy of the sequence and slot
// shapes after an attempt: single-shot modes move on after any attempt,
// retry modes after a correct answer or once the attempt budget is
// spent. Pairing boards advance only when every pair is resolved; see
// ResolvesBoard.
func (c Config) ShouldAdvance(isCorrect bool, attemptsUsed int) bool {
	if c.Shape == ShapePairing {
		return false
	}
	if c.MaxAttempts <= 1 {
		return true
	}
	return isCorrect || attemptsUsed >= c.MaxAttempts
}

// ResolvesBoard reports whether a pairing board with matched out of
// total pairs resolved is finished and the session should move on.
func (c Config) ResolvesBoard(matched, total int) bool {
	return c.Shape == ShapePairing && total > 0 && matched >= total
}

// BlankSlots selects which slot positions the template filler hides for a
// given challenge word count. Blanks are spread from the last slot
// backwards so the leading words anchor the phrase.
func (c Config) BlankSlots(wordCount int) []int {
	if c.BlankCount <= 0 {
		return nil
	}

	n := c.BlankCount
	if n > wordCount {
		n = wordCount
	}

	out := make([]int, 0, n)
	for i := wordCount - 1; i >= wordCount-n; i-- {
		out = append(out, i)
	}
	return out
}
