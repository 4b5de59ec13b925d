// Package postgres implements the store interfaces against a PostgreSQL
// database, accessed through database/sql with the pgx driver.
package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/craigmharris/TKDojang-sub007/internal/store"
)

// PostgresProgressStore implements the store.ProgressStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a PostgreSQL implementation of the
// ProgressStore interface. It accepts a database connection or
// transaction that is initialized and managed by the caller.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// SaveResult implements store.ProgressStore.SaveResult.
func (s *PostgresProgressStore) SaveResult(
	ctx context.Context,
	result *store.SessionResult,
) error {
	query := `
		INSERT INTO session_results (
			id, session_id, mode, total_challenges, correct_count,
			accuracy, average_attempts, star_rating, duration_ms,
			attempts, completed_at, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := s.db.ExecContext(ctx, query,
		result.ID, result.SessionID, result.Mode,
		result.TotalChallenges, result.CorrectCount,
		result.Accuracy, result.AverageAttempts, result.StarRating,
		result.DurationMs, result.Attempts,
		result.CompletedAt, result.CreatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrDuplicate) {
			s.logger.Warn("session result already recorded",
				slog.String("session_id", result.SessionID.String()))
			return mapped
		}
		s.logger.Error("failed to save session result",
			slog.String("error", err.Error()),
			slog.String("session_id", result.SessionID.String()))
		return store.NewStoreError("session_result", "save", "insert failed", mapped)
	}

	s.logger.Debug("session result saved",
		slog.String("session_id", result.SessionID.String()),
		slog.String("mode", result.Mode),
		slog.Int("star_rating", result.StarRating))
	return nil
}

// GetResult implements store.ProgressStore.GetResult.
func (s *PostgresProgressStore) GetResult(
	ctx context.Context,
	sessionID uuid.UUID,
) (*store.SessionResult, error) {
	query := `
		SELECT id, session_id, mode, total_challenges, correct_count,
		       accuracy, average_attempts, star_rating, duration_ms,
		       attempts, completed_at, created_at
		FROM session_results
		WHERE session_id = $1`

	var result store.SessionResult
	err := s.db.QueryRowContext(ctx, query, sessionID).Scan(
		&result.ID, &result.SessionID, &result.Mode,
		&result.TotalChallenges, &result.CorrectCount,
		&result.Accuracy, &result.AverageAttempts, &result.StarRating,
		&result.DurationMs, &result.Attempts,
		&result.CompletedAt, &result.CreatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrNotFound) {
			return nil, store.ErrResultNotFound
		}
		return nil, store.NewStoreError("session_result", "get", "query failed", mapped)
	}

	return &result, nil
}

// ListRecentResults implements store.ProgressStore.ListRecentResults.
func (s *PostgresProgressStore) ListRecentResults(
	ctx context.Context,
	limit int,
) ([]*store.SessionResult, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, session_id, mode, total_challenges, correct_count,
		       accuracy, average_attempts, star_rating, duration_ms,
		       attempts, completed_at, created_at
		FROM session_results
		ORDER BY completed_at DESC
		LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, store.NewStoreError("session_result", "list", "query failed", MapError(err))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	results := make([]*store.SessionResult, 0, limit)
	for rows.Next() {
		var result store.SessionResult
		if err := rows.Scan(
			&result.ID, &result.SessionID, &result.Mode,
			&result.TotalChallenges, &result.CorrectCount,
			&result.Accuracy, &result.AverageAttempts, &result.StarRating,
			&result.DurationMs, &result.Attempts,
			&result.CompletedAt, &result.CreatedAt,
		); err != nil {
			return nil, store.NewStoreError("session_result", "list", "scan failed", MapError(err))
		}
		results = append(results, &result)
	}

	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("session_result", "list", "iteration failed", MapError(err))
	}

	return results, nil
}
