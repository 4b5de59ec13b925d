package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionState describes where a session is in its lifecycle.
type SessionState string

const (
	// SessionStateCreated means no challenge has been accessed yet.
	SessionStateCreated SessionState = "created"

	// SessionStateInProgress means at least one challenge has been served
	// and challenges remain.
	SessionStateInProgress SessionState = "in_progress"

	// SessionStateComplete means every challenge has been advanced past.
	SessionStateComplete SessionState = "complete"
)

// Attempt records a single submission against a challenge. Attempts are
// append-only and owned exclusively by the session that produced them.
type Attempt struct {
	ChallengeID uuid.UUID `json:"challenge_id"`
	Submitted   []string  `json:"submitted"`
	IsCorrect   bool      `json:"is_correct"`
	Timestamp   time.Time `json:"timestamp"`
}

// SessionSnapshot is a read-only progress view for the presentation layer.
type SessionSnapshot struct {
	CurrentIndex int  `json:"current_index"`
	Total        int  `json:"total"`
	IsComplete   bool `json:"is_complete"`
}

// Session sequences challenges for one game run and records attempts.
//
// A session is owned by exactly one writer at a time; it carries no
// internal locking. State changes only through Start, RecordAttempt and
// Advance, and currentIndex only ever moves forward. Abandoned sessions
// are simply dropped - nothing is persisted until the session is complete
// and handed to the progress store by the caller.
type Session struct {
	id          uuid.UUID
	mode        Mode
	challenges  []*Challenge
	currentIdx  int
	attempts    []Attempt
	state       SessionState
	startedAt   time.Time
	completedAt time.Time
}

// NewSession creates a Session in the Created state.
// Returns an error if the mode is invalid or the challenge list is empty.
func NewSession(mode Mode, challenges []*Challenge, now time.Time) (*Session, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}

	if len(challenges) == 0 {
		return nil, ErrNoChallenges
	}

	return &Session{
		id:         uuid.New(),
		mode:       mode,
		challenges: challenges,
		state:      SessionStateCreated,
		startedAt:  now,
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Mode returns the game mode the session was created for.
func (s *Session) Mode() Mode { return s.mode }

// State returns the current lifecycle state.
func (s *Session) State() SessionState { return s.state }

// StartedAt returns when the session was created.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// CompletedAt returns when the session reached Complete. Zero until then.
func (s *Session) CompletedAt() time.Time { return s.completedAt }

// Challenges returns the session's challenge list. The slice is shared;
// callers must treat it as read-only.
func (s *Session) Challenges() []*Challenge { return s.challenges }

// CurrentChallenge returns the challenge at the current index and moves a
// Created session to InProgress. Returns ErrSessionComplete when no
// challenges remain.
func (s *Session) CurrentChallenge() (*Challenge, error) {
	if s.state == SessionStateComplete {
		return nil, ErrSessionComplete
	}

	if s.state == SessionStateCreated {
		s.state = SessionStateInProgress
	}

	return s.challenges[s.currentIdx], nil
}

// ChallengeByID finds a challenge belonging to the session.
// Returns ErrChallengeNotInSession when the ID is unknown.
func (s *Session) ChallengeByID(id uuid.UUID) (*Challenge, error) {
	for _, ch := range s.challenges {
		if ch.ID == id {
			return ch, nil
		}
	}
	return nil, ErrChallengeNotInSession
}

// RecordAttempt appends an attempt for the given challenge.
// The challenge must belong to the session and the session must not be
// complete. Recording never advances the session; that is a separate,
// explicit step so each mode can apply its own advance policy.
func (s *Session) RecordAttempt(
	challengeID uuid.UUID,
	submitted []string,
	isCorrect bool,
	now time.Time,
) error {
	if s.state == SessionStateComplete {
		return ErrSessionComplete
	}

	if _, err := s.ChallengeByID(challengeID); err != nil {
		return err
	}

	if s.state == SessionStateCreated {
		s.state = SessionStateInProgress
	}

	s.attempts = append(s.attempts, Attempt{
		ChallengeID: challengeID,
		Submitted:   submitted,
		IsCorrect:   isCorrect,
		Timestamp:   now,
	})

	return nil
}

// Advance moves the session to the next challenge. Advancing past the
// last challenge transitions the session to Complete; advancing a
// complete session is a no-op. Returns the resulting state.
func (s *Session) Advance(now time.Time) SessionState {
	if s.state == SessionStateComplete {
		return s.state
	}

	s.currentIdx++
	if s.currentIdx >= len(s.challenges) {
		s.currentIdx = len(s.challenges)
		s.state = SessionStateComplete
		s.completedAt = now
	} else {
		s.state = SessionStateInProgress
	}

	return s.state
}

// Attempts returns a copy of the append-only attempt log.
func (s *Session) Attempts() []Attempt {
	out := make([]Attempt, len(s.attempts))
	copy(out, s.attempts)
	return out
}

// AttemptsFor returns how many attempts have been recorded against the
// given challenge so far.
func (s *Session) AttemptsFor(challengeID uuid.UUID) int {
	n := 0
	for _, a := range s.attempts {
		if a.ChallengeID == challengeID {
			n++
		}
	}
	return n
}

// Snapshot returns the progress view for display.
func (s *Session) Snapshot() SessionSnapshot {
	return SessionSnapshot{
		CurrentIndex: s.currentIdx,
		Total:        len(s.challenges),
		IsComplete:   s.state == SessionStateComplete,
	}
}
