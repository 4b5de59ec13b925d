// Package store defines the persistence boundary for completed-session
// history. The engine never writes here itself; the application layer
// forwards completion events to a ProgressStore implementation.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/craigmharris/TKDojang-sub007/internal/domain"
)

// DBTX abstracts the database access layer. It is implemented by both
// *sql.DB and *sql.Tx, allowing store code to run inside or outside a
// transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SessionResult is the persisted record of one completed session: the
// derived metrics plus the raw attempt log for later analysis.
type SessionResult struct {
	ID              uuid.UUID       `json:"id"`
	SessionID       uuid.UUID       `json:"session_id"`
	Mode            string          `json:"mode"`
	TotalChallenges int             `json:"total_challenges"`
	CorrectCount    int             `json:"correct_count"`
	Accuracy        float64         `json:"accuracy"`
	AverageAttempts float64         `json:"average_attempts"`
	StarRating      int             `json:"star_rating"`
	DurationMs      int64           `json:"duration_ms"`
	Attempts        json.RawMessage `json:"attempts"`
	CompletedAt     time.Time       `json:"completed_at"`
	CreatedAt       time.Time       `json:"created_at"`
}

// NewSessionResult builds a persistable record from a completed session's
// identifiers, metrics and attempt log.
func NewSessionResult(
	sessionID uuid.UUID,
	mode domain.Mode,
	metrics domain.Metrics,
	attempts []domain.Attempt,
	completedAt time.Time,
) (*SessionResult, error) {
	attemptsJSON, err := json.Marshal(attempts)
	if err != nil {
		return nil, NewStoreError("session_result", "create", "failed to encode attempts", err)
	}

	return &SessionResult{
		ID:              uuid.New(),
		SessionID:       sessionID,
		Mode:            string(mode),
		TotalChallenges: metrics.TotalChallenges,
		CorrectCount:    metrics.CorrectCount,
		Accuracy:        metrics.Accuracy,
		AverageAttempts: metrics.AverageAttempts,
		StarRating:      metrics.StarRating,
		DurationMs:      metrics.Duration.Milliseconds(),
		Attempts:        attemptsJSON,
		CompletedAt:     completedAt,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// ProgressStore persists completed-session results for the progress and
// analytics surfaces outside this engine.
type ProgressStore interface {
	// SaveResult stores a completed-session record.
	// Returns ErrDuplicate if the session was already recorded.
	SaveResult(ctx context.Context, result *SessionResult) error

	// GetResult retrieves one stored result by session ID.
	// Returns ErrResultNotFound when the session was never recorded.
	GetResult(ctx context.Context, sessionID uuid.UUID) (*SessionResult, error)

	// ListRecentResults returns the most recently completed results,
	// newest first, up to limit.
	ListRecentResults(ctx context.Context, limit int) ([]*SessionResult, error)
}
