package api_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craigmharris/TKDojang-sub007/internal/api"
	"github.com/craigmharris/TKDojang-sub007/internal/store"
)

type fakeProgressStore struct {
	results map[uuid.UUID]*store.SessionResult
}

func (f *fakeProgressStore) SaveResult(ctx context.Context, result *store.SessionResult) error {
	f.results[result.SessionID] = result
	return nil
}

func (f *fakeProgressStore) GetResult(
	ctx context.Context,
	sessionID uuid.UUID,
) (*store.SessionResult, error) {
	result, ok := f.results[sessionID]
	if !ok {
		return nil, fmt.Errorf("get session result: %w", store.ErrNotFound)
	}
	return result, nil
}

func (f *fakeProgressStore) ListRecentResults(
	ctx context.Context,
	limit int,
) ([]*store.SessionResult, error) {
	out := make([]*store.SessionResult, 0, len(f.results))
	for _, r := range f.results {
		out = append(out, r)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func newResultsRouter(t *testing.T, fake *fakeProgressStore) *chi.Mux {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := api.NewResultsHandler(fake, logger)

	r := chi.NewRouter()
	r.Get("/api/results", handler.ListRecentResults)
	r.Get("/api/results/{sessionID}", handler.GetResult)
	return r
}

func TestGetResult(t *testing.T) {
	t.Parallel()

	sessionID := uuid.New()
	fake := &fakeProgressStore{results: map[uuid.UUID]*store.SessionResult{
		sessionID: {
			ID:          uuid.New(),
			SessionID:   sessionID,
			Mode:        "slot_builder",
			StarRating:  3,
			CompletedAt: time.Now().UTC(),
		},
	}}
	router := newResultsRouter(t, fake)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/results/"+sessionID.String(), nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/results/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/results/garbage", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListRecentResults(t *testing.T) {
	t.Parallel()

	fake := &fakeProgressStore{results: map[uuid.UUID]*store.SessionResult{}}
	for i := 0; i < 3; i++ {
		id := uuid.New()
		fake.results[id] = &store.SessionResult{ID: uuid.New(), SessionID: id, Mode: "word_match"}
	}
	router := newResultsRouter(t, fake)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/results", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/results?limit=2", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/results?limit=0", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/results?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
