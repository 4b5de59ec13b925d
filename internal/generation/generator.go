package generation

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/craigmharris/TKDojang-sub007/internal/corpus"
	"github.com/craigmharris/TKDojang-sub007/internal/domain"
)

// retriesPerChallenge bounds how many sampling attempts the generator
// spends per requested challenge before returning GenerationExhaustedError.
const retriesPerChallenge = 10

// Params configures one generation batch.
type Params struct {
	// Count is how many challenges to generate.
	Count int

	// DistractorsPerSlot is how many incorrect options accompany the
	// correct word in each slot.
	DistractorsPerSlot int

	// Direction is the language orientation of the generated challenges.
	Direction domain.Direction

	// Scramble asks for a scrambled order alongside the canonical order,
	// used by the decoder mode. The scrambled order never equals the
	// canonical order.
	Scramble bool

	// SkillLevel optionally biases canonical-word selection towards a
	// frequency band: low levels see only the most common words, higher
	// levels widen the band. Zero means unbiased sampling.
	SkillLevel int
}

// Validate checks the parameters.
func (p Params) Validate() error {
	if p.Count <= 0 {
		return fmt.Errorf("%w: count must be positive", ErrInvalidParams)
	}
	if p.DistractorsPerSlot < 0 {
		return fmt.Errorf("%w: distractors per slot cannot be negative", ErrInvalidParams)
	}
	if err := p.Direction.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

// Generator produces challenge batches from a loaded corpus.
type Generator struct {
	corpus *corpus.Corpus
	logger *slog.Logger
}

// NewGenerator creates a Generator over a loaded corpus.
func NewGenerator(c *corpus.Corpus, logger *slog.Logger) *Generator {
	if c == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("corpus cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Generator{
		corpus: c,
		logger: logger.With(slog.String("component", "challenge_generator")),
	}
}

// Generate produces exactly params.Count unique challenges for the
// template, or fails.
//
// The algorithm:
//  1. Feasibility: every slot category must hold at least
//     DistractorsPerSlot+1 distinct-romanization words; otherwise fail
//     fast with InsufficientVocabularyError naming the category.
//  2. Canonical words are picked per slot with frequency-weighted
//     sampling, without replacement within the batch when the category
//     pool permits.
//  3. Distractors are drawn from the same category, never duplicating the
//     correct word's romanized form or each other's, then shuffled
//     together with the correct word.
//  4. Challenges whose full canonical sequence repeats are discarded and
//     re-sampled up to a bounded number of attempts, after which
//     GenerationExhaustedError reports the shortfall.
func (g *Generator) Generate(
	template domain.PhraseTemplate,
	params Params,
	rng *rand.Rand,
) ([]*domain.Challenge, error) {
	if rng == nil {
		return nil, ErrNilRandom
	}
	if err := template.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	slotPools, err := g.slotPools(template, params)
	if err != nil {
		return nil, err
	}

	challenges := make([]*domain.Challenge, 0, params.Count)
	seen := make(map[string]struct{}, params.Count)

	// Per-category record of romanized forms already used as canonical
	// words in this batch, for without-replacement sampling.
	used := make(map[domain.Category]map[string]struct{})
	for _, tag := range template.Slots {
		if _, ok := used[tag]; !ok {
			used[tag] = make(map[string]struct{})
		}
	}

	maxAttempts := params.Count * retriesPerChallenge
	for attempt := 0; len(challenges) < params.Count; attempt++ {
		if attempt >= maxAttempts {
			return nil, &GenerationExhaustedError{
				Requested: params.Count,
				Produced:  len(challenges),
			}
		}

		canonical := make([]domain.VocabularyWord, len(template.Slots))
		for i, tag := range template.Slots {
			canonical[i] = sampleCanonical(slotPools[i].biased, used[tag], rng)
		}

		options := make([][]domain.VocabularyWord, len(template.Slots))
		for i := range template.Slots {
			options[i] = buildSlotOptions(
				canonical[i], slotPools[i].full, params.DistractorsPerSlot, rng)
		}

		ch, err := domain.NewChallenge(template, canonical, options, params.Direction)
		if err != nil {
			return nil, fmt.Errorf("generated challenge failed validation: %w", err)
		}

		if _, dup := seen[ch.CanonicalKey()]; dup {
			continue
		}
		seen[ch.CanonicalKey()] = struct{}{}

		for i, tag := range template.Slots {
			used[tag][strings.ToLower(canonical[i].Romanized)] = struct{}{}
		}

		if params.Scramble {
			ch.ScrambledOrder = Scramble(canonical, rng)
		}

		challenges = append(challenges, ch)
	}

	g.logger.Debug("challenge batch generated",
		slog.Int("count", len(challenges)),
		slog.Int("word_count", template.WordCount),
		slog.Int("distractors_per_slot", params.DistractorsPerSlot))

	return challenges, nil
}

// slotPool holds the words available to one slot: the full category pool
// for distractor drawing, and the skill-biased subset canonical words are
// sampled from.
type slotPool struct {
	full   []domain.VocabularyWord
	biased []domain.VocabularyWord
}

// slotPools resolves and checks the word pool for every template slot.
func (g *Generator) slotPools(
	template domain.PhraseTemplate,
	params Params,
) ([]slotPool, error) {
	required := params.DistractorsPerSlot + 1

	pools := make([]slotPool, len(template.Slots))
	for i, tag := range template.Slots {
		words, err := g.corpus.WordsInCategory(tag)
		if err != nil {
			return nil, &InsufficientVocabularyError{
				Category: tag, Available: 0, Required: required,
			}
		}

		if distinct := g.corpus.DistinctInCategory(tag); distinct < required {
			return nil, &InsufficientVocabularyError{
				Category: tag, Available: distinct, Required: required,
			}
		}

		pools[i] = slotPool{
			full:   words,
			biased: frequencyBand(words, params.SkillLevel),
		}
	}

	return pools, nil
}

// frequencyBand narrows a descending-frequency pool to the band matching
// the skill level. Level 0 keeps the whole pool. Low levels keep only the
// most common words so beginner output stays recognizable; each level
// widens the band until it covers everything.
func frequencyBand(sorted []domain.VocabularyWord, skillLevel int) []domain.VocabularyWord {
	if skillLevel <= 0 {
		return sorted
	}

	fraction := 0.3 + 0.1*float64(skillLevel-1)
	if fraction >= 1.0 {
		return sorted
	}

	n := int(float64(len(sorted)) * fraction)
	if n < 1 {
		n = 1
	}
	return sorted[:n]
}

// sampleCanonical performs frequency-weighted sampling over the pool,
// skipping romanized forms already used in this batch. When the remaining
// pool is exhausted the batch is larger than the category permits, so the
// used set is ignored for this pick.
func sampleCanonical(
	pool []domain.VocabularyWord,
	usedRomanized map[string]struct{},
	rng *rand.Rand,
) domain.VocabularyWord {
	fresh := make([]domain.VocabularyWord, 0, len(pool))
	for _, w := range pool {
		if _, taken := usedRomanized[strings.ToLower(w.Romanized)]; !taken {
			fresh = append(fresh, w)
		}
	}
	if len(fresh) == 0 {
		fresh = pool
	}

	return weightedPick(fresh, rng)
}

// weightedPick selects one word with probability proportional to its
// frequency, so more common words are more likely to appear.
func weightedPick(pool []domain.VocabularyWord, rng *rand.Rand) domain.VocabularyWord {
	total := 0
	for _, w := range pool {
		total += w.Frequency
	}

	r := rng.Intn(total)
	for _, w := range pool {
		r -= w.Frequency
		if r < 0 {
			return w
		}
	}

	// Unreachable with positive frequencies.
	return pool[len(pool)-1]
}

// buildSlotOptions draws distractors for a slot and shuffles them together
// with the correct word so position does not leak the answer. Distractors
// never share a romanized form with the correct word or with each other.
func buildSlotOptions(
	correct domain.VocabularyWord,
	pool []domain.VocabularyWord,
	distractors int,
	rng *rand.Rand,
) []domain.VocabularyWord {
	candidates := make([]domain.VocabularyWord, 0, len(pool))
	taken := map[string]struct{}{
		strings.ToLower(correct.Romanized): {},
	}
	for _, w := range pool {
		key := strings.ToLower(w.Romanized)
		if _, dup := taken[key]; dup {
			continue
		}
		taken[key] = struct{}{}
		candidates = append(candidates, w)
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	// Feasibility guaranteed enough distinct candidates up front.
	options := append([]domain.VocabularyWord{correct}, candidates[:distractors]...)

	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return options
}
