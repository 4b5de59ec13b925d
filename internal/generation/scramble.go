package generation

import (
	"math/rand"

	"github.com/craigmharris/TKDojang-sub007/internal/domain"
)

// scrambleRetries bounds the shuffle attempts before falling back to a
// deterministic rotation.
const scrambleRetries = 8

// Scramble returns the words in an order guaranteed to differ from the
// input order. For two-word phrases only one other permutation exists, so
// the pair is swapped deterministically; longer phrases are re-shuffled
// until the order differs, with a rotation fallback.
func Scramble(canonical []domain.VocabularyWord, rng *rand.Rand) []domain.VocabularyWord {
	out := make([]domain.VocabularyWord, len(canonical))
	copy(out, canonical)

	if len(out) < 2 {
		return out
	}

	if len(out) == 2 {
		// A pair of identical words has no distinct order to offer.
		if !domain.SameWord(out[0], out[1]) {
			out[0], out[1] = out[1], out[0]
		}
		return out
	}

	for i := 0; i < scrambleRetries; i++ {
		rng.Shuffle(len(out), func(a, b int) {
			out[a], out[b] = out[b], out[a]
		})
		if !sameOrder(out, canonical) {
			return out
		}
	}

	// Rotate by one; differs from the canonical order for any phrase
	// whose words are not all identical.
	copy(out, canonical[1:])
	out[len(out)-1] = canonical[0]
	return out
}

func sameOrder(a, b []domain.VocabularyWord) bool {
	for i := range a {
		if !domain.SameWord(a[i], b[i]) {
			return false
		}
	}
	return true
}
