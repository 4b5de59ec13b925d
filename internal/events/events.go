package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/craigmharris/TKDojang-sub007/internal/domain"
)

// SessionCompletedEvent carries everything a history store needs about a
// finished session: the derived metrics and the full attempt log. It is
// immutable once created.
type SessionCompletedEvent struct {
	// ID is a unique identifier for this event.
	ID uuid.UUID `json:"id"`

	// SessionID identifies the completed session.
	SessionID uuid.UUID `json:"session_id"`

	// Mode is the game mode the session ran.
	Mode domain.Mode `json:"mode"`

	// Metrics is the session's derived outcome.
	Metrics domain.Metrics `json:"metrics"`

	// Attempts is the session's append-only attempt log.
	Attempts []domain.Attempt `json:"attempts"`

	// CompletedAt is when the session reached Complete.
	CompletedAt time.Time `json:"completed_at"`
}

// NewSessionCompletedEvent builds an event from a completed session and
// its metrics.
func NewSessionCompletedEvent(
	session *domain.Session,
	metrics domain.Metrics,
) *SessionCompletedEvent {
	return &SessionCompletedEvent{
		ID:          uuid.New(),
		SessionID:   session.ID(),
		Mode:        session.Mode(),
		Metrics:     metrics,
		Attempts:    session.Attempts(),
		CompletedAt: session.CompletedAt(),
	}
}

// Handler processes completion events, typically by persisting them.
type Handler interface {
	// HandleSessionCompleted processes the given event within the provided
	// context. Returns an error if the event cannot be handled.
	HandleSessionCompleted(ctx context.Context, event *SessionCompletedEvent) error
}

// Emitter publishes completion events to registered handlers without the
// engine knowing who consumes them.
type Emitter interface {
	// EmitSessionCompleted publishes the event to all registered handlers.
	EmitSessionCompleted(ctx context.Context, event *SessionCompletedEvent) error
}
