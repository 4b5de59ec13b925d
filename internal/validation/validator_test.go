package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craigmharris/TKDojang-sub007/internal/domain"
)

var (
	front = domain.VocabularyWord{English: "Front", Romanized: "Ap", Hangul: "앞",
		Frequency: 21, Categories: []domain.Category{domain.CategoryDirection}}
	back = domain.VocabularyWord{English: "Back", Romanized: "Dwit",
		Frequency: 11, Categories: []domain.Category{domain.CategoryDirection}}
	kick = domain.VocabularyWord{English: "Kick", Romanized: "Chagi", Hangul: "차기",
		Frequency: 27, Categories: []domain.Category{domain.CategoryAction}}
	punch = domain.VocabularyWord{English: "Punch", Romanized: "Jirugi",
		Frequency: 14, Categories: []domain.Category{domain.CategoryAction}}
)

func challenge(t *testing.T, dir domain.Direction) *domain.Challenge {
	t.Helper()

	ch, err := domain.NewChallenge(
		domain.PhraseTemplate{
			WordCount:   2,
			Slots:       []domain.Category{domain.CategoryDirection, domain.CategoryAction},
			Description: "Direction then technique",
		},
		[]domain.VocabularyWord{front, kick},
		[][]domain.VocabularyWord{{back, front}, {kick, punch}},
		dir,
	)
	require.NoError(t, err)
	return ch
}

func TestSequenceRoundTrip(t *testing.T) {
	t.Parallel()

	// Validating the canonical answer against itself is always correct.
	ch := challenge(t, domain.DirectionEnglishToKorean)

	result, err := Sequence(ch, []string{"Ap", "Chagi"})
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, "Perfect!", result.Feedback)
	assert.True(t, result.PerElement[0])
	assert.True(t, result.PerElement[1])
}

func TestSequenceCaseAndWhitespaceInsensitive(t *testing.T) {
	t.Parallel()

	ch := challenge(t, domain.DirectionEnglishToKorean)

	result, err := Sequence(ch, []string{"  ap ", "CHAGI"})
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
}

func TestSequenceWrongOrderIsNotAnError(t *testing.T) {
	t.Parallel()

	ch := challenge(t, domain.DirectionEnglishToKorean)

	result, err := Sequence(ch, []string{"Chagi", "Ap"})
	require.NoError(t, err, "a wrong answer is a result, not an error")
	assert.False(t, result.IsCorrect)
	assert.False(t, result.PerElement[0])
	assert.False(t, result.PerElement[1])
}

func TestSequenceHangulAccepted(t *testing.T) {
	t.Parallel()

	ch := challenge(t, domain.DirectionEnglishToKorean)

	result, err := Sequence(ch, []string{"앞", "차기"})
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
}

func TestSequenceLengthMismatch(t *testing.T) {
	t.Parallel()

	ch := challenge(t, domain.DirectionEnglishToKorean)

	_, err := Sequence(ch, []string{"Ap"})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestSequenceNilChallenge(t *testing.T) {
	t.Parallel()

	_, err := Sequence(nil, []string{"Ap", "Chagi"})
	assert.ErrorIs(t, err, ErrNilChallenge)
}

func TestSlotsRoundTrip(t *testing.T) {
	t.Parallel()

	ch := challenge(t, domain.DirectionEnglishToKorean)

	result, err := Slots(ch, map[int]string{0: "Ap", 1: "Chagi"})
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
}

func TestSlotsPartialCorrect(t *testing.T) {
	t.Parallel()

	ch := challenge(t, domain.DirectionEnglishToKorean)

	result, err := Slots(ch, map[int]string{0: "Dwit", 1: "Chagi"})
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)
	assert.False(t, result.PerElement[0])
	assert.True(t, result.PerElement[1])
	assert.Equal(t, "1 of 2 correct - try again.", result.Feedback)
}

func TestSlotsSubsetOnlyGradesSubmitted(t *testing.T) {
	t.Parallel()

	// The template filler blanks a subset of slots; only those are graded.
	ch := challenge(t, domain.DirectionEnglishToKorean)

	result, err := Slots(ch, map[int]string{1: "Chagi"})
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.Len(t, result.PerElement, 1)
}

func TestSlotsContractViolations(t *testing.T) {
	t.Parallel()

	ch := challenge(t, domain.DirectionEnglishToKorean)

	_, err := Slots(ch, map[int]string{7: "Chagi"})
	assert.ErrorIs(t, err, ErrSlotOutOfRange)

	_, err = Slots(ch, nil)
	assert.ErrorIs(t, err, ErrNoSlotsSubmitted)

	_, err = Slots(nil, map[int]string{0: "Ap"})
	assert.ErrorIs(t, err, ErrNilChallenge)
}

func TestKoreanToEnglishDirection(t *testing.T) {
	t.Parallel()

	ch := challenge(t, domain.DirectionKoreanToEnglish)

	result, err := Slots(ch, map[int]string{0: "front", 1: "kick"})
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)

	// Romanized answers are wrong when the expected surface is English.
	result, err = Slots(ch, map[int]string{0: "Ap", 1: "Chagi"})
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)
}

func TestPairMatch(t *testing.T) {
	t.Parallel()

	ch := challenge(t, domain.DirectionEnglishToKorean)

	result, err := Pair(ch,
		Card{Word: front, Face: CardFaceEnglish},
		Card{Word: front, Face: CardFaceKorean})
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
}

func TestPairSameFaceNeverMatches(t *testing.T) {
	t.Parallel()

	// Even textually identical cards of the same language are not a match.
	ch := challenge(t, domain.DirectionEnglishToKorean)

	result, err := Pair(ch,
		Card{Word: front, Face: CardFaceEnglish},
		Card{Word: front, Face: CardFaceEnglish})
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)
}

func TestPairDifferentWords(t *testing.T) {
	t.Parallel()

	ch := challenge(t, domain.DirectionEnglishToKorean)

	result, err := Pair(ch,
		Card{Word: front, Face: CardFaceEnglish},
		Card{Word: kick, Face: CardFaceKorean})
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)
}

func TestPairContractViolations(t *testing.T) {
	t.Parallel()

	ch := challenge(t, domain.DirectionEnglishToKorean)

	_, err := Pair(ch,
		Card{Word: front, Face: "hanja"},
		Card{Word: front, Face: CardFaceKorean})
	assert.ErrorIs(t, err, ErrInvalidCardFace)

	_, err = Pair(ch,
		Card{Word: punch, Face: CardFaceEnglish},
		Card{Word: front, Face: CardFaceKorean})
	assert.ErrorIs(t, err, ErrCardNotInChallenge)

	_, err = Pair(nil,
		Card{Word: front, Face: CardFaceEnglish},
		Card{Word: front, Face: CardFaceKorean})
	assert.ErrorIs(t, err, ErrNilChallenge)
}
