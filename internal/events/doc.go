// Package events decouples the challenge engine from the external
// progress-tracking collaborator. When a session is finalized the engine
// emits a SessionCompletedEvent; whoever persists history registers a
// handler. The engine itself performs no I/O.
package events
