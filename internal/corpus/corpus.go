// Package corpus loads and indexes the vocabulary by semantic category.
// The corpus is built once per game-mode entry, is immutable afterwards,
// and is shared read-only by the challenge generator.
package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/craigmharris/TKDojang-sub007/internal/domain"
)

// Corpus is an indexed, immutable view over the loaded vocabulary.
// Words are stored once; the category index holds positions into the
// word list so multi-tag words are never duplicated.
type Corpus struct {
	words      []domain.VocabularyWord
	byCategory map[domain.Category][]int
}

// Load reads every word from the source, validates it, and builds the
// category index. Loading is the engine's only asynchronous boundary; it
// must complete before any generation starts, which removes the need for
// readiness retries downstream.
func Load(ctx context.Context, source Source, logger *slog.Logger) (*Corpus, error) {
	if source == nil {
		return nil, ErrSourceNil
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "corpus"))

	words, err := source.Load(ctx)
	if err != nil {
		return nil, &LoadError{Message: "source read failed", Err: err}
	}

	if len(words) == 0 {
		return nil, &LoadError{Message: "empty word list", Err: ErrNoWords}
	}

	c := &Corpus{
		words:      make([]domain.VocabularyWord, 0, len(words)),
		byCategory: make(map[domain.Category][]int),
	}

	for i, w := range words {
		if err := w.Validate(); err != nil {
			return nil, &LoadError{
				Message: fmt.Sprintf("invalid word at index %d (%q)", i, w.English),
				Err:     err,
			}
		}

		idx := len(c.words)
		c.words = append(c.words, w)
		for _, tag := range w.Categories {
			c.byCategory[tag] = append(c.byCategory[tag], idx)
		}
	}

	log.Debug("vocabulary corpus loaded",
		slog.Int("words", len(c.words)),
		slog.Int("categories", len(c.byCategory)))

	return c, nil
}

// WordsInCategory returns every word tagged with the given category,
// sorted by descending frequency. Returns ErrInsufficientData when the
// category has no entries.
func (c *Corpus) WordsInCategory(tag domain.Category) ([]domain.VocabularyWord, error) {
	indices, ok := c.byCategory[tag]
	if !ok || len(indices) == 0 {
		return nil, fmt.Errorf("%w: category %q has no words", ErrInsufficientData, tag)
	}

	out := make([]domain.VocabularyWord, len(indices))
	for i, idx := range indices {
		out[i] = c.words[idx]
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Frequency > out[j].Frequency
	})

	return out, nil
}

// DistinctInCategory returns how many words with distinct romanized forms
// the category holds. This is the number the generator's feasibility
// check cares about: romanization-identical words cannot serve as
// distractors for each other.
func (c *Corpus) DistinctInCategory(tag domain.Category) int {
	seen := make(map[string]struct{})
	for _, idx := range c.byCategory[tag] {
		seen[strings.ToLower(c.words[idx].Romanized)] = struct{}{}
	}
	return len(seen)
}

// WordCount returns how many words have at least the given frequency.
func (c *Corpus) WordCount(minFrequency int) int {
	n := 0
	for _, w := range c.words {
		if w.Frequency >= minFrequency {
			n++
		}
	}
	return n
}

// Categories returns every category present in the corpus.
func (c *Corpus) Categories() []domain.Category {
	out := make([]domain.Category, 0, len(c.byCategory))
	for tag := range c.byCategory {
		out = append(out, tag)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Words returns a copy of the full word list.
func (c *Corpus) Words() []domain.VocabularyWord {
	out := make([]domain.VocabularyWord, len(c.words))
	copy(out, c.words)
	return out
}
