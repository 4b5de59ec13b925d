package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryEmitter is a simple implementation of the Emitter interface
// that stores registered handlers in memory and dispatches events to them
// synchronously.
type InMemoryEmitter struct {
	handlers []Handler
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewInMemoryEmitter creates a new InMemoryEmitter.
func NewInMemoryEmitter(logger *slog.Logger) *InMemoryEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEmitter{
		handlers: make([]Handler, 0),
		logger:   logger.With(slog.String("component", "event_emitter")),
	}
}

// RegisterHandler adds a handler to receive completion events.
func (e *InMemoryEmitter) RegisterHandler(handler Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, handler)
	e.logger.Debug("registered event handler", slog.Int("handler_count", len(e.handlers)))
}

// EmitSessionCompleted publishes the event to every registered handler.
// A failing handler does not stop delivery to the others; the first error
// encountered is returned.
func (e *InMemoryEmitter) EmitSessionCompleted(
	ctx context.Context,
	event *SessionCompletedEvent,
) error {
	e.mu.RLock()
	handlers := make([]Handler, len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.RUnlock()

	e.logger.Debug("emitting session completed event",
		slog.String("event_id", event.ID.String()),
		slog.String("session_id", event.SessionID.String()),
		slog.Int("handler_count", len(handlers)))

	if len(handlers) == 0 {
		e.logger.Warn("no handlers registered for completion event",
			slog.String("event_id", event.ID.String()))
		return nil
	}

	var firstErr error
	for i, handler := range handlers {
		if err := handler.HandleSessionCompleted(ctx, event); err != nil {
			e.logger.Error("handler failed to process completion event",
				slog.String("error", err.Error()),
				slog.Int("handler_index", i),
				slog.String("event_id", event.ID.String()))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
