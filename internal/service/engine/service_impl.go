package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/craigmharris/TKDojang-sub007/internal/domain"
	"github.com/craigmharris/TKDojang-sub007/internal/domain/grammar"
	"github.com/craigmharris/TKDojang-sub007/internal/domain/scoring"
	"github.com/craigmharris/TKDojang-sub007/internal/events"
	"github.com/craigmharris/TKDojang-sub007/internal/generation"
	"github.com/craigmharris/TKDojang-sub007/internal/modes"
	"github.com/craigmharris/TKDojang-sub007/internal/platform/logger"
	"github.com/craigmharris/TKDojang-sub007/internal/validation"
)

// DefaultChallengeCount applies when a start request does not ask for a
// specific number of challenges.
const DefaultChallengeCount = 5

// Verify interface compliance at compile time
var _ EngineService = (*engineServiceImpl)(nil)

// sessionEntry pairs a live session with its mode configuration and a
// per-session lock so concurrent requests against the same session
// serialize without blocking other sessions. For pairing boards it also
// tracks which words have been matched on each challenge.
type sessionEntry struct {
	mu      sync.Mutex
	session *domain.Session
	cfg     modes.Config
	matched map[uuid.UUID]map[string]struct{}
}

// markMatched records a correctly matched word for a pairing challenge
// and returns how many of the board's pairs have been resolved so far.
// Matching the same pair twice does not count again.
func (e *sessionEntry) markMatched(challengeID uuid.UUID, word domain.VocabularyWord) int {
	if e.matched == nil {
		e.matched = make(map[uuid.UUID]map[string]struct{})
	}
	set, ok := e.matched[challengeID]
	if !ok {
		set = make(map[string]struct{})
		e.matched[challengeID] = set
	}
	set[strings.ToLower(word.Romanized)] = struct{}{}
	return len(set)
}

func (e *sessionEntry) matchedCount(challengeID uuid.UUID) int {
	return len(e.matched[challengeID])
}

// engineServiceImpl implements the EngineService interface.
type engineServiceImpl struct {
	generator         *generation.Generator
	scorer            scoring.Service
	emitter           events.Emitter
	maxChallengeCount int
	skillLevel        int
	logger            *slog.Logger

	rngFactory func() *rand.Rand
	now        func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*sessionEntry
}

// Option customizes an EngineService, mostly for tests.
type Option func(*engineServiceImpl)

// WithRandFactory replaces the random source used for template picking
// and challenge generation.
func WithRandFactory(factory func() *rand.Rand) Option {
	return func(s *engineServiceImpl) {
		s.rngFactory = factory
	}
}

// WithClock replaces the time source used for session timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *engineServiceImpl) {
		s.now = now
	}
}

// NewEngineService creates a new EngineService implementation.
func NewEngineService(
	generator *generation.Generator,
	scorer scoring.Service,
	emitter events.Emitter,
	maxChallengeCount int,
	skillLevel int,
	logger *slog.Logger,
	opts ...Option,
) EngineService {
	// Validate inputs
	if generator == nil {
		panic("generator cannot be nil") // ALLOW-PANIC: Constructor enforcing required dependency
	}
	if scorer == nil {
		panic("scorer cannot be nil") // ALLOW-PANIC: Constructor enforcing required dependency
	}
	if emitter == nil {
		panic("emitter cannot be nil") // ALLOW-PANIC: Constructor enforcing required dependency
	}
	if maxChallengeCount <= 0 {
		panic("maxChallengeCount must be positive") // ALLOW-PANIC: Constructor enforcing required dependency
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	s := &engineServiceImpl{
		generator:         generator,
		scorer:            scorer,
		emitter:           emitter,
		maxChallengeCount: maxChallengeCount,
		skillLevel:        skillLevel,
		logger:            logger.With(slog.String("component", "engine_service")),
		rngFactory: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		now:      time.Now,
		sessions: make(map[uuid.UUID]*sessionEntry),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// StartSession implements EngineService.StartSession.
func (s *engineServiceImpl) StartSession(
	ctx context.Context,
	params StartParams,
) (*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cfg, err := modes.For(params.Mode)
	if err != nil {
		return nil, err
	}

	wordCount, err := cfg.ResolveWordCount(params.WordCount)
	if err != nil {
		return nil, err
	}

	challengeCount := params.ChallengeCount
	if challengeCount == 0 {
		challengeCount = DefaultChallengeCount
	}
	if challengeCount < 1 || challengeCount > s.maxChallengeCount {
		return nil, fmt.Errorf("%w: got %d, engine accepts 1-%d",
			ErrChallengeCountOutOfRange, challengeCount, s.maxChallengeCount)
	}

	direction := params.Direction
	if direction == "" {
		direction = domain.DirectionEnglishToKorean
	}
	if err := direction.Validate(); err != nil {
		return nil, err
	}

	rng := s.rngFactory()
	template := grammar.Pick(wordCount, rng)

	challenges, err := s.generator.Generate(template, generation.Params{
		Count:              challengeCount,
		DistractorsPerSlot: cfg.DistractorsPerSlot,
		Direction:          direction,
		Scramble:           cfg.Scramble,
		SkillLevel:         s.skillLevel,
	}, rng)
	if err != nil {
		log.Warn("challenge generation failed",
			slog.String("mode", string(params.Mode)),
			slog.Int("word_count", wordCount),
			slog.String("error", err.Error()))
		return nil, err
	}

	session, err := domain.NewSession(params.Mode, challenges, s.now())
	if err != nil {
		return nil, NewStartSessionError("failed to create session", err)
	}

	s.mu.Lock()
	s.sessions[session.ID()] = &sessionEntry{session: session, cfg: cfg}
	s.mu.Unlock()

	log.Info("session started",
		slog.String("session_id", session.ID().String()),
		slog.String("mode", string(params.Mode)),
		slog.Int("word_count", wordCount),
		slog.Int("challenge_count", len(challenges)))

	return session, nil
}

// GetSession implements EngineService.GetSession.
func (s *engineServiceImpl) GetSession(
	ctx context.Context,
	sessionID uuid.UUID,
) (*domain.Session, error) {
	entry, err := s.entry(sessionID)
	if err != nil {
		return nil, err
	}
	return entry.session, nil
}

// CurrentChallenge implements EngineService.CurrentChallenge.
func (s *engineServiceImpl) CurrentChallenge(
	ctx context.Context,
	sessionID uuid.UUID,
) (*domain.Challenge, error) {
	entry, err := s.entry(sessionID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return entry.session.CurrentChallenge()
}

// SubmitAnswer implements EngineService.SubmitAnswer.
// Grading is read-only: nothing is recorded and the session does not move.
func (s *engineServiceImpl) SubmitAnswer(
	ctx context.Context,
	sessionID uuid.UUID,
	challengeID uuid.UUID,
	answer Answer,
) (validation.Result, error) {
	entry, err := s.entry(sessionID)
	if err != nil {
		return validation.Result{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	challenge, err := entry.session.ChallengeByID(challengeID)
	if err != nil {
		return validation.Result{}, err
	}

	return s.grade(entry.cfg, challenge, answer)
}

// RecordAttempt implements EngineService.RecordAttempt.
func (s *engineServiceImpl) RecordAttempt(
	ctx context.Context,
	sessionID uuid.UUID,
	challengeID uuid.UUID,
	answer Answer,
) (*AttemptOutcome, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	entry, err := s.entry(sessionID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	current, err := entry.session.CurrentChallenge()
	if err != nil {
		return nil, err
	}
	if current.ID != challengeID {
		return nil, fmt.Errorf("%w: current is %s", ErrChallengeNotCurrent, current.ID)
	}

	result, err := s.grade(entry.cfg, current, answer)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := entry.session.RecordAttempt(challengeID, flatten(answer), result.IsCorrect, now); err != nil {
		return nil, NewRecordAttemptError("failed to record attempt", err)
	}

	attemptsUsed := entry.session.AttemptsFor(challengeID)

	var advanced bool
	var pairsMatched, pairsTotal int
	if entry.cfg.Shape == modes.ShapePairing {
		// A board stays current until all of its pairs are matched;
		// wrong selections never retire it.
		pairsTotal = len(current.CanonicalOrder)
		pairsMatched = entry.matchedCount(challengeID)
		if result.IsCorrect {
			pairsMatched = entry.markMatched(challengeID, answer.Pair.First.Word)
		}
		advanced = entry.cfg.ResolvesBoard(pairsMatched, pairsTotal)
		if advanced {
			delete(entry.matched, challengeID)
		}
	} else {
		advanced = entry.cfg.ShouldAdvance(result.IsCorrect, attemptsUsed)
	}

	state := entry.session.State()
	if advanced {
		state = entry.session.Advance(now)
	}

	log.Debug("attempt recorded",
		slog.String("session_id", sessionID.String()),
		slog.String("challenge_id", challengeID.String()),
		slog.Bool("correct", result.IsCorrect),
		slog.Int("attempts_used", attemptsUsed),
		slog.Bool("advanced", advanced))

	return &AttemptOutcome{
		Result:          result,
		AttemptsUsed:    attemptsUsed,
		Advanced:        advanced,
		SessionComplete: state == domain.SessionStateComplete,
		PairsMatched:    pairsMatched,
		PairsTotal:      pairsTotal,
	}, nil
}

// Finalize implements EngineService.Finalize.
func (s *engineServiceImpl) Finalize(
	ctx context.Context,
	sessionID uuid.UUID,
) (domain.Metrics, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	entry, err := s.entry(sessionID)
	if err != nil {
		return domain.Metrics{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	metrics, err := s.scorer.Calculate(entry.session)
	if err != nil {
		return domain.Metrics{}, NewFinalizeError("failed to calculate session metrics", err)
	}

	event := events.NewSessionCompletedEvent(entry.session, metrics)
	if err := s.emitter.EmitSessionCompleted(ctx, event); err != nil {
		// Persistence is best-effort; the caller still gets their metrics.
		log.Error("failed to emit session completed event",
			slog.String("session_id", sessionID.String()),
			slog.String("error", err.Error()))
	}

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	log.Info("session finalized",
		slog.String("session_id", sessionID.String()),
		slog.Int("stars", metrics.StarRating),
		slog.Float64("accuracy", metrics.Accuracy))

	return metrics, nil
}

// entry looks up a live session.
func (s *engineServiceImpl) entry(sessionID uuid.UUID) (*sessionEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return entry, nil
}

// grade dispatches a submission to the validation shape the mode grades
// with. The answer must carry exactly the field matching that shape.
func (s *engineServiceImpl) grade(
	cfg modes.Config,
	challenge *domain.Challenge,
	answer Answer,
) (validation.Result, error) {
	switch cfg.Shape {
	case modes.ShapeSequence:
		if answer.Sequence == nil {
			return validation.Result{}, fmt.Errorf("%w: mode %s expects a sequence",
				ErrAnswerShapeMismatch, cfg.Mode)
		}
		return validation.Sequence(challenge, answer.Sequence)

	case modes.ShapeSlots:
		if answer.Slots == nil {
			return validation.Result{}, fmt.Errorf("%w: mode %s expects slot answers",
				ErrAnswerShapeMismatch, cfg.Mode)
		}
		if err := checkRequiredSlots(cfg, challenge, answer.Slots); err != nil {
			return validation.Result{}, err
		}
		return validation.Slots(challenge, answer.Slots)

	case modes.ShapePairing:
		if answer.Pair == nil {
			return validation.Result{}, fmt.Errorf("%w: mode %s expects a card pair",
				ErrAnswerShapeMismatch, cfg.Mode)
		}
		return validation.Pair(challenge, answer.Pair.First, answer.Pair.Second)

	default:
		return validation.Result{}, fmt.Errorf("unknown validation shape %q", cfg.Shape)
	}
}

// checkRequiredSlots verifies a slot submission covers every slot the
// mode grades: the blanked slots for the template filler, every slot
// otherwise.
func checkRequiredSlots(
	cfg modes.Config,
	challenge *domain.Challenge,
	submitted map[int]string,
) error {
	wordCount := challenge.Template.WordCount

	var required []int
	if cfg.BlankCount > 0 {
		required = cfg.BlankSlots(wordCount)
	} else {
		required = make([]int, wordCount)
		for i := range required {
			required[i] = i
		}
	}

	var missing []int
	for _, idx := range required {
		if _, ok := submitted[idx]; !ok {
			missing = append(missing, idx)
		}
	}
	if len(missing) > 0 {
		sort.Ints(missing)
		return fmt.Errorf("%w: missing slots %v", ErrIncompleteAnswer, missing)
	}
	return nil
}

// flatten renders an answer as the flat string form the attempt log
// stores.
func flatten(answer Answer) []string {
	switch {
	case answer.Sequence != nil:
		out := make([]string, len(answer.Sequence))
		copy(out, answer.Sequence)
		return out

	case answer.Slots != nil:
		indexes := make([]int, 0, len(answer.Slots))
		for idx := range answer.Slots {
			indexes = append(indexes, idx)
		}
		sort.Ints(indexes)

		out := make([]string, 0, len(indexes))
		for _, idx := range indexes {
			out = append(out, fmt.Sprintf("%d:%s", idx, strings.TrimSpace(answer.Slots[idx])))
		}
		return out

	case answer.Pair != nil:
		return []string{
			fmt.Sprintf("%s:%s", answer.Pair.First.Face, answer.Pair.First.Word.Romanized),
			fmt.Sprintf("%s:%s", answer.Pair.Second.Face, answer.Pair.Second.Word.Romanized),
		}

	default:
		return nil
	}
}
