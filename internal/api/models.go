package api

import (
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/craigmharris/TKDojang-sub007/internal/domain"
	"github.com/craigmharris/TKDojang-sub007/internal/modes"
	"github.com/craigmharris/TKDojang-sub007/internal/validation"
)

// StartSessionRequest is the payload for creating a practice session.
type StartSessionRequest struct {
	Mode           string `json:"mode"            validate:"required"`
	WordCount      int    `json:"word_count"      validate:"gte=0,lte=5"`
	ChallengeCount int    `json:"challenge_count" validate:"gte=0,lte=50"`
	Direction      string `json:"direction"       validate:"omitempty,oneof=english_to_korean korean_to_english"`
}

// AnswerRequest is the payload for checking or recording a submission.
// Exactly one of Sequence, Slots, or Pair is set, matching the mode.
type AnswerRequest struct {
	ChallengeID string         `json:"challenge_id" validate:"required,uuid"`
	Sequence    []string       `json:"sequence,omitempty"`
	Slots       map[int]string `json:"slots,omitempty"`
	Pair        *PairRequest   `json:"pair,omitempty"`
}

// PairRequest selects two cards of a memory-match board by index.
type PairRequest struct {
	First  int `json:"first"`
	Second int `json:"second"`
}

// SessionResponse represents a session's progress.
type SessionResponse struct {
	ID              string    `json:"id"`
	Mode            string    `json:"mode"`
	State           string    `json:"state"`
	CurrentIndex    int       `json:"current_index"`
	TotalChallenges int       `json:"total_challenges"`
	StartedAt       time.Time `json:"started_at"`
}

// OptionView is one selectable answer option, showing only the
// answer-language surface so the option list never gives the translation
// away.
type OptionView struct {
	Label  string `json:"label"`
	Hangul string `json:"hangul,omitempty"`
}

// CardView is one face of a memory-match board.
type CardView struct {
	Index int    `json:"index"`
	Face  string `json:"face"`
	Label string `json:"label"`
}

// ChallengeResponse represents a challenge as presented to the player.
// The canonical answer order is never included.
type ChallengeResponse struct {
	ID         string   `json:"id"`
	WordCount  int      `json:"word_count"`
	Categories []string `json:"categories"`
	Direction  string   `json:"direction"`

	// Prompt is the phrase in the question language, slot by slot. Empty
	// for the decoder and memory-match shapes, which have no prompt.
	Prompt []string `json:"prompt,omitempty"`

	// SlotOptions holds the selectable options per slot for the slot
	// shapes.
	SlotOptions [][]OptionView `json:"slot_options,omitempty"`

	// BlankSlots lists the slot positions the player must fill when only
	// a subset is hidden; Given carries the answer-language words already
	// shown for the remaining slots.
	BlankSlots []int          `json:"blank_slots,omitempty"`
	Given      map[int]string `json:"given,omitempty"`

	// ScrambledWords is the out-of-order phrase the decoder shape asks
	// the player to rebuild.
	ScrambledWords []string `json:"scrambled_words,omitempty"`

	// Cards is the shuffled memory-match board.
	Cards []CardView `json:"cards,omitempty"`
}

// AttemptResponse reports a recorded attempt's outcome.
type AttemptResponse struct {
	IsCorrect       bool         `json:"is_correct"`
	PerElement      map[int]bool `json:"per_element,omitempty"`
	Feedback        string       `json:"feedback"`
	AttemptsUsed    int          `json:"attempts_used"`
	Advanced        bool         `json:"advanced"`
	SessionComplete bool         `json:"session_complete"`
	PairsMatched    int          `json:"pairs_matched,omitempty"`
	PairsTotal      int          `json:"pairs_total,omitempty"`
}

// MetricsResponse is the final outcome of a session.
type MetricsResponse struct {
	TotalChallenges int     `json:"total_challenges"`
	CorrectCount    int     `json:"correct_count"`
	Accuracy        float64 `json:"accuracy"`
	AverageAttempts float64 `json:"average_attempts"`
	DurationMs      int64   `json:"duration_ms"`
	StarRating      int     `json:"star_rating"`
}

// sessionToResponse transforms a domain session to its API view.
func sessionToResponse(session *domain.Session) SessionResponse {
	snap := session.Snapshot()
	return SessionResponse{
		ID:              session.ID().String(),
		Mode:            string(session.Mode()),
		State:           string(session.State()),
		CurrentIndex:    snap.CurrentIndex,
		TotalChallenges: snap.Total,
		StartedAt:       session.StartedAt(),
	}
}

// metricsToResponse transforms derived metrics to their API view.
func metricsToResponse(m domain.Metrics) MetricsResponse {
	return MetricsResponse{
		TotalChallenges: m.TotalChallenges,
		CorrectCount:    m.CorrectCount,
		Accuracy:        m.Accuracy,
		AverageAttempts: m.AverageAttempts,
		DurationMs:      m.Duration.Milliseconds(),
		StarRating:      m.StarRating,
	}
}

// challengeToResponse transforms a challenge to the player-facing view
// for the given mode configuration.
func challengeToResponse(challenge *domain.Challenge, cfg modes.Config) ChallengeResponse {
	categories := make([]string, len(challenge.Template.Slots))
	for i, c := range challenge.Template.Slots {
		categories[i] = string(c)
	}

	resp := ChallengeResponse{
		ID:         challenge.ID.String(),
		WordCount:  challenge.Template.WordCount,
		Categories: categories,
		Direction:  string(challenge.Direction),
	}

	switch cfg.Shape {
	case modes.ShapeSequence:
		for _, w := range challenge.ScrambledOrder {
			resp.ScrambledWords = append(resp.ScrambledWords, answerLabel(w, challenge.Direction))
		}

	case modes.ShapePairing:
		resp.Cards = boardFor(challenge)

	default:
		for _, w := range challenge.CanonicalOrder {
			resp.Prompt = append(resp.Prompt, promptLabel(w, challenge.Direction))
		}

		resp.SlotOptions = make([][]OptionView, len(challenge.SlotOptions))
		for i, options := range challenge.SlotOptions {
			views := make([]OptionView, len(options))
			for j, w := range options {
				views[j] = OptionView{Label: answerLabel(w, challenge.Direction)}
				if challenge.Direction == domain.DirectionEnglishToKorean {
					views[j].Hangul = w.Hangul
				}
			}
			resp.SlotOptions[i] = views
		}

		if blanks := cfg.BlankSlots(challenge.Template.WordCount); len(blanks) > 0 {
			resp.BlankSlots = blanks

			hidden := make(map[int]struct{}, len(blanks))
			for _, idx := range blanks {
				hidden[idx] = struct{}{}
			}

			resp.Given = make(map[int]string)
			for i, w := range challenge.CanonicalOrder {
				if _, ok := hidden[i]; !ok {
					resp.Given[i] = answerLabel(w, challenge.Direction)
				}
			}

			// Options only matter for the hidden slots.
			for i := range resp.SlotOptions {
				if _, ok := hidden[i]; !ok {
					resp.SlotOptions[i] = nil
				}
			}
		}
	}

	return resp
}

// promptLabel is a word's surface in the question language.
func promptLabel(w domain.VocabularyWord, dir domain.Direction) string {
	if dir == domain.DirectionKoreanToEnglish {
		return w.Romanized
	}
	return w.English
}

// answerLabel is a word's surface in the answer language.
func answerLabel(w domain.VocabularyWord, dir domain.Direction) string {
	if dir == domain.DirectionKoreanToEnglish {
		return w.English
	}
	return w.Romanized
}

// boardFor lays out the memory-match board for a challenge: one English
// and one Korean card per word, shuffled deterministically from the
// challenge ID so repeated fetches show the same board.
func boardFor(challenge *domain.Challenge) []CardView {
	type boardCard struct {
		word domain.VocabularyWord
		face validation.CardFace
	}

	cards := make([]boardCard, 0, 2*len(challenge.CanonicalOrder))
	for _, w := range challenge.CanonicalOrder {
		cards = append(cards,
			boardCard{word: w, face: validation.CardFaceEnglish},
			boardCard{word: w, face: validation.CardFaceKorean})
	}

	rng := rand.New(rand.NewSource(int64(binary.BigEndian.Uint64(challenge.ID[:8]))))
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	views := make([]CardView, len(cards))
	for i, c := range cards {
		label := c.word.English
		if c.face == validation.CardFaceKorean {
			label = c.word.Romanized
		}
		views[i] = CardView{Index: i, Face: string(c.face), Label: label}
	}
	return views
}

// cardAt resolves a board index back to the validation card it stands
// for. Returns false when the index is outside the board.
func cardAt(challenge *domain.Challenge, index int) (validation.Card, bool) {
	board := boardFor(challenge)
	if index < 0 || index >= len(board) {
		return validation.Card{}, false
	}

	view := board[index]
	for _, w := range challenge.CanonicalOrder {
		english := view.Face == string(validation.CardFaceEnglish)
		if (english && w.English == view.Label) || (!english && w.Romanized == view.Label) {
			return validation.Card{Word: w, Face: validation.CardFace(view.Face)}, true
		}
	}
	return validation.Card{}, false
}
