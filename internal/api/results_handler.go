package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/craigmharris/TKDojang-sub007/internal/api/shared"
	"github.com/craigmharris/TKDojang-sub007/internal/store"
)

// maxResultsPageSize caps the limit parameter on the recent-results list.
const maxResultsPageSize = 100

// ResultsHandler serves stored session results. It is only mounted when
// the application runs with a progress store configured.
type ResultsHandler struct {
	progressStore store.ProgressStore
	logger        *slog.Logger
}

// NewResultsHandler creates a new ResultsHandler
func NewResultsHandler(
	progressStore store.ProgressStore,
	logger *slog.Logger,
) *ResultsHandler {
	if progressStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("progressStore cannot be nil for ResultsHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ResultsHandler")
	}

	return &ResultsHandler{
		progressStore: progressStore,
		logger:        logger.With(slog.String("component", "results_handler")),
	}
}

// ListRecentResults handles GET /api/results requests. The optional
// limit query parameter bounds the page size.
func (h *ResultsHandler) ListRecentResults(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxResultsPageSize {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	results, err := h.progressStore.ListRecentResults(r.Context(), limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list results", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, results)
}

// GetResult handles GET /api/results/{sessionID} requests.
func (h *ResultsHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID")
		return
	}

	result, err := h.progressStore.GetResult(r.Context(), sessionID)
	if errors.Is(err, store.ErrNotFound) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Result not found")
		return
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to load result", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
