package scoring

import (
	"testing"
	"time"

	"github.com/craigmharris/TKDojang-sub007/internal/domain"
)

func buildSession(t *testing.T, challengeCount int) *domain.Session {
	t.Helper()

	front := domain.VocabularyWord{English: "Front", Romanized: "Ap", Frequency: 27,
		Categories: []domain.Category{domain.CategoryDirection}}
	back := domain.VocabularyWord{English: "Back", Romanized: "Dwit", Frequency: 11,
		Categories: []domain.Category{domain.CategoryDirection}}
	kick := domain.VocabularyWord{English: "Kick", Romanized: "Chagi", Frequency: 27,
		Categories: []domain.Category{domain.CategoryAction}}
	punch := domain.VocabularyWord{English: "Punch", Romanized: "Jirugi", Frequency: 14,
		Categories: []domain.Category{domain.CategoryAction}}

	template := domain.PhraseTemplate{
		WordCount:   2,
		Slots:       []domain.Category{domain.CategoryDirection, domain.CategoryAction},
		Description: "Direction then technique",
	}

	challenges := make([]*domain.Challenge, 0, challengeCount)
	for i := 0; i < challengeCount; i++ {
		ch, err := domain.NewChallenge(
			template,
			[]domain.VocabularyWord{front, kick},
			[][]domain.VocabularyWord{{back, front}, {kick, punch}},
			domain.DirectionEnglishToKorean,
		)
		if err != nil {
			t.Fatalf("failed to create challenge: %v", err)
		}
		challenges = append(challenges, ch)
	}

	session, err := domain.NewSession(domain.ModeSlotBuilder, challenges, time.Now())
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return session
}

// playSession records attemptsPerChallenge[i] attempts against challenge i,
// the last one correct, and advances through the whole session.
func playSession(t *testing.T, session *domain.Session, attemptsPerChallenge []int) {
	t.Helper()

	now := session.StartedAt()
	for _, attempts := range attemptsPerChallenge {
		ch, err := session.CurrentChallenge()
		if err != nil {
			t.Fatalf("CurrentChallenge() error: %v", err)
		}

		for i := 0; i < attempts; i++ {
			correct := i == attempts-1
			now = now.Add(10 * time.Second)
			if err := session.RecordAttempt(ch.ID, []string{"ap", "chagi"}, correct, now); err != nil {
				t.Fatalf("RecordAttempt() error: %v", err)
			}
		}

		session.Advance(now)
	}
}

func TestCalculateAllFirstTry(t *testing.T) {
	t.Parallel()

	session := buildSession(t, 10)
	playSession(t, session, []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1})

	metrics, err := NewDefaultService().Calculate(session)
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}

	if metrics.Accuracy != 1.0 {
		t.Errorf("Accuracy = %v, want 1.0", metrics.Accuracy)
	}
	if metrics.AverageAttempts != 1.0 {
		t.Errorf("AverageAttempts = %v, want 1.0", metrics.AverageAttempts)
	}
	if metrics.StarRating != 3 {
		t.Errorf("StarRating = %d, want 3", metrics.StarRating)
	}
	if metrics.CorrectCount != 10 {
		t.Errorf("CorrectCount = %d, want 10", metrics.CorrectCount)
	}
	if metrics.Duration <= 0 {
		t.Errorf("Duration = %v, want positive", metrics.Duration)
	}
}

func TestCalculateMixedAttempts(t *testing.T) {
	t.Parallel()

	// 5 challenges solved in 1 attempt, 5 solved in 3 attempts.
	session := buildSession(t, 10)
	playSession(t, session, []int{1, 1, 1, 1, 1, 3, 3, 3, 3, 3})

	metrics, err := NewDefaultService().Calculate(session)
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}

	if metrics.AverageAttempts != 2.0 {
		t.Errorf("AverageAttempts = %v, want 2.0", metrics.AverageAttempts)
	}
	if metrics.StarRating != 2 {
		t.Errorf("StarRating = %d, want 2", metrics.StarRating)
	}
	if metrics.Accuracy != 1.0 {
		t.Errorf("Accuracy = %v, want 1.0", metrics.Accuracy)
	}
}

func TestCalculateIncompleteSession(t *testing.T) {
	t.Parallel()

	session := buildSession(t, 3)
	playSession(t, session, []int{1}) // only one of three challenges played

	_, err := NewDefaultService().Calculate(session)
	if err != domain.ErrSessionNotComplete {
		t.Errorf("Calculate() error = %v, want ErrSessionNotComplete", err)
	}
}

func TestCalculateNilSession(t *testing.T) {
	t.Parallel()

	if _, err := NewDefaultService().Calculate(nil); err != ErrNilSession {
		t.Errorf("Calculate(nil) error = %v, want ErrNilSession", err)
	}
}

func TestStarRatingThresholds(t *testing.T) {
	t.Parallel()

	params := NewDefaultParams()

	testCases := []struct {
		name            string
		averageAttempts float64
		expected        int
	}{
		{name: "exactly at three star boundary", averageAttempts: 1.5, expected: 3},
		{name: "just over three star boundary", averageAttempts: 1.51, expected: 2},
		{name: "exactly at two star boundary", averageAttempts: 2.5, expected: 2},
		{name: "well over two star boundary", averageAttempts: 4.0, expected: 1},
		{name: "single attempt", averageAttempts: 1.0, expected: 3},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := starRating(tc.averageAttempts, params); got != tc.expected {
				t.Errorf("starRating(%v) = %d, want %d",
					tc.averageAttempts, got, tc.expected)
			}
		})
	}
}

func TestCalculateDoesNotMutateSession(t *testing.T) {
	t.Parallel()

	session := buildSession(t, 2)
	playSession(t, session, []int{2, 1})

	before := session.Snapshot()
	attemptsBefore := len(session.Attempts())

	if _, err := NewDefaultService().Calculate(session); err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}

	if session.Snapshot() != before {
		t.Error("Calculate changed the session snapshot")
	}
	if len(session.Attempts()) != attemptsBefore {
		t.Error("Calculate changed the attempt log")
	}
}

func TestNewParamsOverrides(t *testing.T) {
	t.Parallel()

	params := NewParams(ParamsConfig{
		ThreeStarMaxAverageAttempts: 1.2,
		TwoStarMaxAverageAttempts:   2.0,
	})

	if got := starRating(1.4, params); got != 2 {
		t.Errorf("starRating(1.4) with tightened params = %d, want 2", got)
	}
	if got := starRating(2.2, params); got != 1 {
		t.Errorf("starRating(2.2) with tightened params = %d, want 1", got)
	}
}
