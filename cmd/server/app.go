package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/craigmharris/TKDojang-sub007/internal/config"
	"github.com/craigmharris/TKDojang-sub007/internal/corpus"
	"github.com/craigmharris/TKDojang-sub007/internal/domain/scoring"
	"github.com/craigmharris/TKDojang-sub007/internal/events"
	"github.com/craigmharris/TKDojang-sub007/internal/generation"
	"github.com/craigmharris/TKDojang-sub007/internal/platform/postgres"
	"github.com/craigmharris/TKDojang-sub007/internal/service/engine"
	"github.com/craigmharris/TKDojang-sub007/internal/store"
)

// progressEventHandler forwards session completion events to the
// progress store.
type progressEventHandler struct {
	progressStore store.ProgressStore
	logger        *slog.Logger
}

// HandleSessionCompleted persists the completed session's result record.
func (h *progressEventHandler) HandleSessionCompleted(
	ctx context.Context,
	event *events.SessionCompletedEvent,
) error {
	result, err := store.NewSessionResult(
		event.SessionID, event.Mode, event.Metrics, event.Attempts, event.CompletedAt)
	if err != nil {
		h.logger.Error("failed to build session result",
			"error", err,
			"session_id", event.SessionID)
		return fmt.Errorf("failed to build session result: %w", err)
	}

	if err := h.progressStore.SaveResult(ctx, result); err != nil {
		h.logger.Error("failed to save session result",
			"error", err,
			"session_id", event.SessionID)
		return fmt.Errorf("failed to save session result: %w", err)
	}

	h.logger.Debug("session result saved",
		"session_id", event.SessionID,
		"stars", event.Metrics.StarRating)
	return nil
}

// application holds the assembled dependencies of the running server.
type application struct {
	config        *config.Config
	logger        *slog.Logger
	db            *sql.DB
	engineService engine.EngineService
	progressStore store.ProgressStore
}

// newApplication wires the application together: it loads the vocabulary
// corpus, builds the challenge engine, and optionally attaches the
// Postgres progress store when a database URL is configured.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	// The corpus is a hard precondition; a server without vocabulary
	// cannot generate anything.
	source := corpus.NewFileSource(cfg.Content.VocabularyPath)
	c, err := corpus.Load(context.Background(), source, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary corpus: %w", err)
	}
	logger.Info("vocabulary corpus loaded",
		"path", cfg.Content.VocabularyPath,
		"words", len(c.Words()))

	emitter := events.NewInMemoryEmitter(logger)

	if cfg.Database.URL != "" {
		db, err := setupAppDatabase(cfg, logger)
		if err != nil {
			return nil, err
		}
		app.db = db
		app.progressStore = postgres.NewPostgresProgressStore(db, logger)

		emitter.RegisterHandler(&progressEventHandler{
			progressStore: app.progressStore,
			logger:        logger.With(slog.String("component", "progress_event_handler")),
		})
	} else {
		logger.Info("no database configured, session results will not be persisted")
	}

	app.engineService = engine.NewEngineService(
		generation.NewGenerator(c, logger),
		scoring.NewDefaultService(),
		emitter,
		cfg.Engine.MaxChallengeCount,
		cfg.Engine.SkillLevel,
		logger,
	)

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
