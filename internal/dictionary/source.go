package dictionary

import (
	"context"
	"fmt"

	"anagram-quiz-service/internal/domain"
	"github.com/BurntSushi/toml"
)

// RawDictionary is the on-disk (or in-database) form of a language's word lists.
//
//	questions = ["listen", "silent"]
//	full      = ["enlist", "inlets", "listen", "silent", "tinsel"]
type RawDictionary struct {
	Questions []string `toml:"questions" json:"questions"`
	Full      []string `toml:"full" json:"full,omitempty"`
}

// Loader fetches the raw word lists of a language from a backing store.
type Loader interface {
	LoadDictionary(ctx context.Context, lang domain.Language) (RawDictionary, error)
}

// FileLoader reads one TOML file per language.
type FileLoader struct {
	paths map[domain.Language]string
}

func NewFileLoader(paths map[domain.Language]string) *FileLoader {
	return &FileLoader{paths: paths}
}

func (l *FileLoader) LoadDictionary(_ context.Context, lang domain.Language) (RawDictionary, error) {
	path, ok := l.paths[lang]
	if !ok {
		return RawDictionary{}, fmt.Errorf("%w: %s", domain.ErrUnknownLanguage, lang)
	}
	return LoadFile(path)
}

// LoadFile decodes a TOML dictionary file.
func LoadFile(path string) (RawDictionary, error) {
	var raw RawDictionary
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return RawDictionary{}, fmt.Errorf("decode dictionary %s: %w", path, err)
	}
	if len(raw.Questions) == 0 {
		return RawDictionary{}, fmt.Errorf("%s: %w", path, domain.ErrEmptyDictionary)
	}
	return raw, nil
}
