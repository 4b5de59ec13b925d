package domain

// Mode identifies one of the five vocabulary game modes. All five run on
// the same generator and validator core; only their configuration differs.
type Mode string

const (
	// ModeWordMatch is multiple-choice translation of each word in a phrase.
	ModeWordMatch Mode = "word_match"

	// ModeSlotBuilder constructs a phrase slot by slot from option sets.
	ModeSlotBuilder Mode = "slot_builder"

	// ModeTemplateFiller fills blanked slots in an otherwise visible phrase.
	ModeTemplateFiller Mode = "template_filler"

	// ModePhraseDecoder reorders a scrambled phrase into canonical order.
	ModePhraseDecoder Mode = "phrase_decoder"

	// ModeMemoryMatch pairs English-side and Korean-side cards.
	ModeMemoryMatch Mode = "memory_match"
)

// Validate checks that the mode is one of the five supported game modes.
func (m Mode) Validate() error {
	switch m {
	case ModeWordMatch, ModeSlotBuilder, ModeTemplateFiller,
		ModePhraseDecoder, ModeMemoryMatch:
		return nil
	default:
		return ErrInvalidMode
	}
}
