package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craigmharris/TKDojang-sub007/internal/api"
	"github.com/craigmharris/TKDojang-sub007/internal/api/middleware"
	"github.com/craigmharris/TKDojang-sub007/internal/corpus"
	"github.com/craigmharris/TKDojang-sub007/internal/domain"
	"github.com/craigmharris/TKDojang-sub007/internal/domain/scoring"
	"github.com/craigmharris/TKDojang-sub007/internal/events"
	"github.com/craigmharris/TKDojang-sub007/internal/generation"
	"github.com/craigmharris/TKDojang-sub007/internal/service/engine"
)

func testWords() []domain.VocabularyWord {
	cats := map[domain.Category][][3]string{
		domain.CategoryAction: {
			{"kick", "chagi", "차기"},
			{"punch", "jireugi", "지르기"},
			{"block", "makgi", "막기"},
			{"strike", "chigi", "치기"},
			{"thrust", "tzireugi", ""},
		},
		domain.CategoryTool: {
			{"hand", "son", "손"},
			{"foot", "bal", "발"},
			{"knife-hand", "sonkal", "손칼"},
			{"elbow", "palkup", "팔굽"},
			{"knee", "moorup", ""},
		},
		domain.CategoryDirection: {
			{"front", "ap", "앞"},
			{"side", "yop", "옆"},
			{"back", "dwit", "뒷"},
			{"inward", "an", "안"},
			{"outward", "bakat", ""},
		},
		domain.CategoryLevel: {
			{"high", "nopunde", ""},
			{"middle", "kaunde", ""},
			{"low", "najunde", ""},
			{"rising", "chookya", ""},
			{"upward", "ollyo", ""},
		},
		domain.CategoryStance: {
			{"walking stance", "gunnun sogi", ""},
			{"L-stance", "niunja sogi", ""},
			{"sitting stance", "annun sogi", ""},
			{"fixed stance", "gojung sogi", ""},
			{"vertical stance", "soojik sogi", ""},
		},
	}

	var words []domain.VocabularyWord
	for cat, entries := range cats {
		for i, e := range entries {
			words = append(words, domain.VocabularyWord{
				English:    e[0],
				Romanized:  e[1],
				Hangul:     e[2],
				Frequency:  10 - i,
				Categories: []domain.Category{cat},
			})
		}
	}
	return words
}

type testServer struct {
	router *chi.Mux
	engine engine.EngineService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	c, err := corpus.Load(context.Background(), corpus.NewStaticSource(testWords()), logger)
	require.NoError(t, err)

	svc := engine.NewEngineService(
		generation.NewGenerator(c, logger),
		scoring.NewDefaultService(),
		events.NewInMemoryEmitter(logger),
		20,
		0,
		logger,
		engine.WithRandFactory(func() *rand.Rand {
			return rand.New(rand.NewSource(11))
		}),
	)

	handler := api.NewSessionHandler(svc, logger)

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware)
	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", handler.StartSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handler.GetSession)
			r.Get("/challenges/current", handler.GetCurrentChallenge)
			r.Post("/answers", handler.CheckAnswer)
			r.Post("/attempts", handler.RecordAttempt)
			r.Post("/finalize", handler.FinalizeSession)
		})
	})

	return &testServer{router: r, engine: svc}
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	return out
}

func (ts *testServer) startSession(t *testing.T, mode string, count int) api.SessionResponse {
	t.Helper()

	w := ts.do(t, http.MethodPost, "/api/sessions", map[string]interface{}{
		"mode":            mode,
		"challenge_count": count,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeBody[api.SessionResponse](t, w)
}

// canonicalSlots pulls a challenge's correct per-slot answers straight
// from the engine, which the HTTP surface deliberately withholds.
func (ts *testServer) canonicalSlots(t *testing.T, sessionID, challengeID string) map[int]string {
	t.Helper()

	session, err := ts.engine.GetSession(context.Background(), uuid.MustParse(sessionID))
	require.NoError(t, err)

	challenge, err := session.ChallengeByID(uuid.MustParse(challengeID))
	require.NoError(t, err)

	out := make(map[int]string)
	for i, w := range challenge.CanonicalOrder {
		out[i] = w.Romanized
	}
	return out
}

func TestStartSessionEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("creates session", func(t *testing.T) {
		ts := newTestServer(t)

		resp := ts.startSession(t, "slot_builder", 3)
		assert.Equal(t, "slot_builder", resp.Mode)
		assert.Equal(t, "created", resp.State)
		assert.Equal(t, 3, resp.TotalChallenges)
		assert.NotEmpty(t, resp.ID)
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		ts := newTestServer(t)

		w := ts.do(t, http.MethodPost, "/api/sessions", map[string]interface{}{
			"mode": "speed_run",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		ts := newTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/api/sessions", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		ts.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects missing mode", func(t *testing.T) {
		ts := newTestServer(t)

		w := ts.do(t, http.MethodPost, "/api/sessions", map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetSessionEndpoint(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	created := ts.startSession(t, "word_match", 2)

	w := ts.do(t, http.MethodGet, "/api/sessions/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[api.SessionResponse](t, w)
	assert.Equal(t, created.ID, resp.ID)

	w = ts.do(t, http.MethodGet, "/api/sessions/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodGet, "/api/sessions/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCurrentChallengeWithholdsAnswer(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	created := ts.startSession(t, "slot_builder", 1)

	w := ts.do(t, http.MethodGet, "/api/sessions/"+created.ID+"/challenges/current", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&raw))

	assert.NotContains(t, raw, "canonical_order")
	assert.Contains(t, raw, "prompt")
	assert.Contains(t, raw, "slot_options")

	prompt := raw["prompt"].([]interface{})
	options := raw["slot_options"].([]interface{})
	assert.Len(t, options, len(prompt))

	// Slot builder carries the correct word plus two distractors per slot.
	firstSlot := options[0].([]interface{})
	assert.Len(t, firstSlot, 3)
}

func TestCurrentChallengeDecoderShape(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	created := ts.startSession(t, "phrase_decoder", 1)

	w := ts.do(t, http.MethodGet, "/api/sessions/"+created.ID+"/challenges/current", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody[api.ChallengeResponse](t, w)
	assert.Empty(t, resp.Prompt)
	assert.Empty(t, resp.SlotOptions)
	assert.Len(t, resp.ScrambledWords, resp.WordCount)
}

func TestCurrentChallengeMemoryBoard(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	created := ts.startSession(t, "memory_match", 1)

	w := ts.do(t, http.MethodGet, "/api/sessions/"+created.ID+"/challenges/current", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody[api.ChallengeResponse](t, w)
	require.Len(t, resp.Cards, 2*resp.WordCount)

	// Repeated fetches show the same board layout.
	w2 := ts.do(t, http.MethodGet, "/api/sessions/"+created.ID+"/challenges/current", nil)
	resp2 := decodeBody[api.ChallengeResponse](t, w2)
	assert.Equal(t, resp.Cards, resp2.Cards)
}

func TestAnswerAndAttemptFlow(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	created := ts.startSession(t, "slot_builder", 1)

	w := ts.do(t, http.MethodGet, "/api/sessions/"+created.ID+"/challenges/current", nil)
	require.Equal(t, http.StatusOK, w.Code)
	challenge := decodeBody[api.ChallengeResponse](t, w)

	slots := ts.canonicalSlots(t, created.ID, challenge.ID)

	// Read-only check first.
	w = ts.do(t, http.MethodPost, "/api/sessions/"+created.ID+"/answers", map[string]interface{}{
		"challenge_id": challenge.ID,
		"slots":        slots,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// The session has not moved.
	w = ts.do(t, http.MethodGet, "/api/sessions/"+created.ID, nil)
	session := decodeBody[api.SessionResponse](t, w)
	assert.Equal(t, 0, session.CurrentIndex)

	// Finalizing an unfinished session conflicts.
	w = ts.do(t, http.MethodPost, "/api/sessions/"+created.ID+"/finalize", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Record the attempt for real.
	w = ts.do(t, http.MethodPost, "/api/sessions/"+created.ID+"/attempts", map[string]interface{}{
		"challenge_id": challenge.ID,
		"slots":        slots,
	})
	require.Equal(t, http.StatusOK, w.Code)
	attempt := decodeBody[api.AttemptResponse](t, w)
	assert.True(t, attempt.IsCorrect)
	assert.True(t, attempt.Advanced)
	assert.True(t, attempt.SessionComplete)

	// No challenge left.
	w = ts.do(t, http.MethodGet, "/api/sessions/"+created.ID+"/challenges/current", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Finalize and collect metrics.
	w = ts.do(t, http.MethodPost, "/api/sessions/"+created.ID+"/finalize", nil)
	require.Equal(t, http.StatusOK, w.Code)
	metrics := decodeBody[api.MetricsResponse](t, w)
	assert.Equal(t, 1, metrics.TotalChallenges)
	assert.Equal(t, 1, metrics.CorrectCount)
	assert.Equal(t, 3, metrics.StarRating)

	// The session is gone afterwards.
	w = ts.do(t, http.MethodGet, "/api/sessions/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAttemptShapeMismatch(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	created := ts.startSession(t, "slot_builder", 1)

	w := ts.do(t, http.MethodGet, "/api/sessions/"+created.ID+"/challenges/current", nil)
	challenge := decodeBody[api.ChallengeResponse](t, w)

	w = ts.do(t, http.MethodPost, "/api/sessions/"+created.ID+"/attempts", map[string]interface{}{
		"challenge_id": challenge.ID,
		"sequence":     []string{"chagi"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMemoryMatchPairByIndex(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	created := ts.startSession(t, "memory_match", 1)

	w := ts.do(t, http.MethodGet, "/api/sessions/"+created.ID+"/challenges/current", nil)
	require.Equal(t, http.StatusOK, w.Code)
	challenge := decodeBody[api.ChallengeResponse](t, w)

	// Pair up a matching english/korean card using the known vocabulary.
	romanizedOf := make(map[string]string)
	for _, word := range testWords() {
		romanizedOf[word.English] = word.Romanized
	}

	type boardPair struct{ first, second int }
	var pairs []boardPair
	for _, c := range challenge.Cards {
		if c.Face != "english" {
			continue
		}
		for _, k := range challenge.Cards {
			if k.Face == "korean" && k.Label == romanizedOf[c.Label] {
				pairs = append(pairs, boardPair{c.Index, k.Index})
				break
			}
		}
	}
	require.Len(t, pairs, challenge.WordCount, "board is missing matching pairs")

	w = ts.do(t, http.MethodPost, "/api/sessions/"+created.ID+"/answers", map[string]interface{}{
		"challenge_id": challenge.ID,
		"pair":         map[string]int{"first": pairs[0].first, "second": pairs[0].second},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		IsCorrect bool `json:"is_correct"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.True(t, result.IsCorrect)

	// Out-of-range card index is a bad request.
	w = ts.do(t, http.MethodPost, "/api/sessions/"+created.ID+"/answers", map[string]interface{}{
		"challenge_id": challenge.ID,
		"pair":         map[string]int{"first": 0, "second": 99},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A wrong selection is recorded but does not retire the board.
	w = ts.do(t, http.MethodPost, "/api/sessions/"+created.ID+"/attempts", map[string]interface{}{
		"challenge_id": challenge.ID,
		"pair":         map[string]int{"first": pairs[0].first, "second": pairs[1].second},
	})
	require.Equal(t, http.StatusOK, w.Code)
	attempt := decodeBody[api.AttemptResponse](t, w)
	assert.False(t, attempt.IsCorrect)
	assert.False(t, attempt.Advanced)
	assert.Equal(t, 0, attempt.PairsMatched)
	assert.Equal(t, challenge.WordCount, attempt.PairsTotal)

	// The board stays current until every pair is matched.
	for i, p := range pairs {
		w = ts.do(t, http.MethodPost, "/api/sessions/"+created.ID+"/attempts", map[string]interface{}{
			"challenge_id": challenge.ID,
			"pair":         map[string]int{"first": p.first, "second": p.second},
		})
		require.Equal(t, http.StatusOK, w.Code)
		attempt = decodeBody[api.AttemptResponse](t, w)
		assert.True(t, attempt.IsCorrect)
		assert.Equal(t, i+1, attempt.PairsMatched)
		assert.Equal(t, i == len(pairs)-1, attempt.Advanced)
	}
	assert.True(t, attempt.SessionComplete)
}

func TestTemplateFillerGivenAndBlanks(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	created := ts.startSession(t, "template_filler", 1)

	w := ts.do(t, http.MethodGet, "/api/sessions/"+created.ID+"/challenges/current", nil)
	require.Equal(t, http.StatusOK, w.Code)
	challenge := decodeBody[api.ChallengeResponse](t, w)

	require.NotEmpty(t, challenge.BlankSlots)
	assert.Len(t, challenge.Given, challenge.WordCount-len(challenge.BlankSlots))

	// Answer only the blanked slots.
	all := ts.canonicalSlots(t, created.ID, challenge.ID)
	blanksOnly := make(map[int]string)
	for _, idx := range challenge.BlankSlots {
		blanksOnly[idx] = all[idx]
	}

	w = ts.do(t, http.MethodPost, "/api/sessions/"+created.ID+"/attempts", map[string]interface{}{
		"challenge_id": challenge.ID,
		"slots":        blanksOnly,
	})
	require.Equal(t, http.StatusOK, w.Code)
	attempt := decodeBody[api.AttemptResponse](t, w)
	assert.True(t, attempt.IsCorrect, fmt.Sprintf("blanks %v should grade correct", challenge.BlankSlots))
}
