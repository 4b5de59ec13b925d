package domain

import (
	"errors"
	"strings"
)

// Word-specific validation errors
var (
	// ErrWordEnglishEmpty is returned when a word's English form is empty.
	ErrWordEnglishEmpty = errors.New("word english form cannot be empty")

	// ErrWordRomanizedEmpty is returned when a word's romanized form is empty.
	ErrWordRomanizedEmpty = errors.New("word romanized form cannot be empty")

	// ErrWordFrequencyInvalid is returned when a word's frequency is not positive.
	ErrWordFrequencyInvalid = errors.New("word frequency must be positive")

	// ErrWordCategoriesEmpty is returned when a word carries no category tags.
	ErrWordCategoriesEmpty = errors.New("word must have at least one category")
)

// Category is a semantic tag describing the grammatical role a word can
// fill inside a technique phrase.
type Category string

// Supported semantic categories. A word may carry more than one tag;
// "bandae" (reverse) for example works as both a direction and a modifier
// depending on the template slot it fills.
const (
	CategoryAction    Category = "action"
	CategoryTool      Category = "tool"
	CategoryDirection Category = "direction"
	CategoryLevel     Category = "level"
	CategoryStance    Category = "stance"
)

// VocabularyWord is a single English/Korean technique-word pair.
// Words are created at corpus load and never mutated afterwards.
type VocabularyWord struct {
	English    string     `json:"english"`
	Romanized  string     `json:"romanized"`
	Hangul     string     `json:"hangul,omitempty"`
	Frequency  int        `json:"frequency"`
	Categories []Category `json:"categories"`
}

// Validate checks if the VocabularyWord has valid data.
// Returns an error if any field fails validation.
func (w *VocabularyWord) Validate() error {
	if strings.TrimSpace(w.English) == "" {
		return ErrWordEnglishEmpty
	}

	if strings.TrimSpace(w.Romanized) == "" {
		return ErrWordRomanizedEmpty
	}

	if w.Frequency <= 0 {
		return ErrWordFrequencyInvalid
	}

	if len(w.Categories) == 0 {
		return ErrWordCategoriesEmpty
	}

	return nil
}

// HasCategory reports whether the word carries the given category tag.
func (w *VocabularyWord) HasCategory(c Category) bool {
	for _, tag := range w.Categories {
		if tag == c {
			return true
		}
	}
	return false
}

// SameWord reports whether two vocabulary words refer to the same
// underlying entry. Words are identified by their romanized and English
// surface forms since the corpus never duplicates records.
func SameWord(a, b VocabularyWord) bool {
	return strings.EqualFold(a.Romanized, b.Romanized) &&
		strings.EqualFold(a.English, b.English)
}
