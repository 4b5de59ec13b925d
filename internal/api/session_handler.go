package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/craigmharris/TKDojang-sub007/internal/api/shared"
	"github.com/craigmharris/TKDojang-sub007/internal/domain"
	"github.com/craigmharris/TKDojang-sub007/internal/modes"
	"github.com/craigmharris/TKDojang-sub007/internal/platform/logger"
	"github.com/craigmharris/TKDojang-sub007/internal/service/engine"
)

// SessionHandler handles session-related HTTP requests
type SessionHandler struct {
	engineService engine.EngineService
	logger        *slog.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(
	engineService engine.EngineService,
	logger *slog.Logger,
) *SessionHandler {
	if engineService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("engineService cannot be nil for SessionHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}

	return &SessionHandler{
		engineService: engineService,
		logger:        logger.With(slog.String("component", "session_handler")),
	}
}

// StartSession handles POST /api/sessions requests.
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req StartSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session parameters")
		return
	}

	session, err := h.engineService.StartSession(r.Context(), engine.StartParams{
		Mode:           domain.Mode(req.Mode),
		WordCount:      req.WordCount,
		ChallengeCount: req.ChallengeCount,
		Direction:      domain.Direction(req.Direction),
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("session created",
		slog.String("session_id", session.ID().String()),
		slog.String("mode", req.Mode))

	shared.RespondWithJSON(w, r, http.StatusCreated, sessionToResponse(session))
}

// GetSession handles GET /api/sessions/{id} requests.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	session, err := h.engineService.GetSession(r.Context(), sessionID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(session))
}

// GetCurrentChallenge handles GET /api/sessions/{id}/challenges/current
// requests. Responds 204 once the session has no challenges left.
func (h *SessionHandler) GetCurrentChallenge(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	session, err := h.engineService.GetSession(r.Context(), sessionID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	challenge, err := h.engineService.CurrentChallenge(r.Context(), sessionID)
	if errors.Is(err, domain.ErrSessionComplete) {
		log.Debug("session has no challenges left", slog.String("session_id", sessionID.String()))
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	cfg, err := modes.For(session.Mode())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to present challenge", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, challengeToResponse(challenge, cfg))
}

// CheckAnswer handles POST /api/sessions/{id}/answers requests. Grading
// is read-only: the attempt log and session position are untouched.
func (h *SessionHandler) CheckAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	challengeID, answer, ok := h.decodeAnswer(w, r, sessionID)
	if !ok {
		return
	}

	result, err := h.engineService.SubmitAnswer(r.Context(), sessionID, challengeID, answer)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// RecordAttempt handles POST /api/sessions/{id}/attempts requests.
func (h *SessionHandler) RecordAttempt(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	challengeID, answer, ok := h.decodeAnswer(w, r, sessionID)
	if !ok {
		return
	}

	outcome, err := h.engineService.RecordAttempt(r.Context(), sessionID, challengeID, answer)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AttemptResponse{
		IsCorrect:       outcome.Result.IsCorrect,
		PerElement:      outcome.Result.PerElement,
		Feedback:        outcome.Result.Feedback,
		AttemptsUsed:    outcome.AttemptsUsed,
		Advanced:        outcome.Advanced,
		SessionComplete: outcome.SessionComplete,
		PairsMatched:    outcome.PairsMatched,
		PairsTotal:      outcome.PairsTotal,
	})
}

// FinalizeSession handles POST /api/sessions/{id}/finalize requests.
func (h *SessionHandler) FinalizeSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	metrics, err := h.engineService.Finalize(r.Context(), sessionID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("session finalized",
		slog.String("session_id", sessionID.String()),
		slog.Int("stars", metrics.StarRating))

	shared.RespondWithJSON(w, r, http.StatusOK, metricsToResponse(metrics))
}

// sessionID parses the {id} URL parameter, responding 400 on garbage.
func (h *SessionHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}

// decodeAnswer decodes and validates an answer payload, resolving
// memory-match card indexes against the challenge's board.
func (h *SessionHandler) decodeAnswer(
	w http.ResponseWriter,
	r *http.Request,
	sessionID uuid.UUID,
) (uuid.UUID, engine.Answer, bool) {
	var req AnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return uuid.Nil, engine.Answer{}, false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid answer payload")
		return uuid.Nil, engine.Answer{}, false
	}

	challengeID, err := uuid.Parse(req.ChallengeID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid challenge ID")
		return uuid.Nil, engine.Answer{}, false
	}

	answer := engine.Answer{
		Sequence: req.Sequence,
		Slots:    req.Slots,
	}

	if req.Pair != nil {
		session, err := h.engineService.GetSession(r.Context(), sessionID)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
			return uuid.Nil, engine.Answer{}, false
		}

		challenge, err := session.ChallengeByID(challengeID)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
			return uuid.Nil, engine.Answer{}, false
		}

		first, ok := cardAt(challenge, req.Pair.First)
		if !ok {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Card index out of range")
			return uuid.Nil, engine.Answer{}, false
		}
		second, ok := cardAt(challenge, req.Pair.Second)
		if !ok {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Card index out of range")
			return uuid.Nil, engine.Answer{}, false
		}

		answer.Pair = &engine.PairAnswer{First: first, Second: second}
	}

	return challengeID, answer, true
}
