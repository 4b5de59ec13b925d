// Package grammar holds the fixed table of phrase templates the generator
// draws from. Templates are defined once per supported word count and are
// shared read-only across all game modes.
package grammar

import (
	"fmt"
	"math/rand"

	"github.com/craigmharris/TKDojang-sub007/internal/domain"
)

// templates maps each supported word count to its phrase templates.
// Built once at package init; mustBuildTable panics on a malformed entry
// because a broken grammar is a programming error, not a runtime condition.
var templates = mustBuildTable()

func mustBuildTable() map[int][]domain.PhraseTemplate {
	table := map[int][]domain.PhraseTemplate{
		2: {
			{
				WordCount: 2,
				Slots: []domain.Category{
					domain.CategoryDirection, domain.CategoryAction,
				},
				Description: "Direction then technique, e.g. front kick (ap chagi)",
			},
			{
				WordCount: 2,
				Slots: []domain.Category{
					domain.CategoryTool, domain.CategoryAction,
				},
				Description: "Attacking tool then technique, e.g. knife-hand strike (sonkal taerigi)",
			},
			{
				WordCount: 2,
				Slots: []domain.Category{
					domain.CategoryLevel, domain.CategoryAction,
				},
				Description: "Section then technique, e.g. high block (nopunde makgi)",
			},
		},
		3: {
			{
				WordCount: 3,
				Slots: []domain.Category{
					domain.CategoryLevel, domain.CategoryDirection, domain.CategoryAction,
				},
				Description: "Section, direction, technique, e.g. middle front kick",
			},
			{
				WordCount: 3,
				Slots: []domain.Category{
					domain.CategoryDirection, domain.CategoryTool, domain.CategoryAction,
				},
				Description: "Direction, tool, technique, e.g. inner forearm block",
			},
		},
		4: {
			{
				WordCount: 4,
				Slots: []domain.Category{
					domain.CategoryStance, domain.CategoryLevel,
					domain.CategoryDirection, domain.CategoryAction,
				},
				Description: "Stance, section, direction, technique, e.g. walking stance high front kick",
			},
			{
				WordCount: 4,
				Slots: []domain.Category{
					domain.CategoryLevel, domain.CategoryDirection,
					domain.CategoryTool, domain.CategoryAction,
				},
				Description: "Section, direction, tool, technique, e.g. middle reverse punch",
			},
		},
		5: {
			{
				WordCount: 5,
				Slots: []domain.Category{
					domain.CategoryStance, domain.CategoryLevel,
					domain.CategoryDirection, domain.CategoryTool, domain.CategoryAction,
				},
				Description: "Full technique call, e.g. L-stance middle front knife-hand strike",
			},
		},
	}

	for wordCount, list := range table {
		if len(list) == 0 {
			panic(fmt.Sprintf("grammar: no templates for word count %d", wordCount))
		}
		for _, tmpl := range list {
			if err := tmpl.Validate(); err != nil {
				panic(fmt.Sprintf("grammar: invalid template %q: %v", tmpl.Description, err))
			}
		}
	}

	return table
}

// Supports reports whether the grammar defines templates for the given
// word count. Boundary code must check this before calling TemplatesFor.
func Supports(wordCount int) bool {
	_, ok := templates[wordCount]
	return ok
}

// TemplatesFor returns the non-empty template list for a word count.
// Requesting an unsupported word count is a programming error and panics;
// the UI boundary only offers word counts 2-5.
func TemplatesFor(wordCount int) []domain.PhraseTemplate {
	list, ok := templates[wordCount]
	if !ok {
		// ALLOW-PANIC: unsupported word count is a caller bug, guarded at the boundary
		panic(fmt.Sprintf("grammar: no templates for word count %d", wordCount))
	}

	out := make([]domain.PhraseTemplate, len(list))
	copy(out, list)
	return out
}

// Pick returns one template for the word count chosen with the injected
// random source.
func Pick(wordCount int, rng *rand.Rand) domain.PhraseTemplate {
	list := TemplatesFor(wordCount)
	return list[rng.Intn(len(list))]
}
