package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/craigmharris/TKDojang-sub007/internal/domain"
)

// Source is a read-only provider of the full vocabulary word list.
// The corpus does not know or care how the words are stored; bundled JSON
// content and in-memory test fixtures both satisfy this interface.
type Source interface {
	// Load returns every vocabulary word the source holds.
	Load(ctx context.Context) ([]domain.VocabularyWord, error)
}

// StaticSource serves a fixed in-memory word list. Used for tests and for
// callers that already hold the words.
type StaticSource struct {
	words []domain.VocabularyWord
}

// NewStaticSource creates a Source over the given words.
func NewStaticSource(words []domain.VocabularyWord) *StaticSource {
	return &StaticSource{words: words}
}

// Load implements Source.
func (s *StaticSource) Load(ctx context.Context) ([]domain.VocabularyWord, error) {
	out := make([]domain.VocabularyWord, len(s.words))
	copy(out, s.words)
	return out, nil
}

// vocabularyFile mirrors the bundled content format: a single object with
// a "words" array, each entry carrying english, romanized, optional
// hangul, a positive frequency and one or more category tags.
type vocabularyFile struct {
	Words []domain.VocabularyWord `json:"words"`
}

// FileSource reads the vocabulary from a JSON content file.
type FileSource struct {
	path string
}

// NewFileSource creates a Source reading from the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load implements Source. It fails with a wrapped error when the file is
// missing or malformed; it does not retry.
func (s *FileSource) Load(ctx context.Context) ([]domain.VocabularyWord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file %q: %w", s.path, err)
	}

	var file vocabularyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary file %q: %w", s.path, err)
	}

	return file.Words, nil
}
