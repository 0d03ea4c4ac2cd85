package memory

import (
	"context"
	"fmt"

	"anagram-quiz-service/internal/dictionary"
	"anagram-quiz-service/internal/domain"
)

// StaticDictionaryLoader is a loader backed by an in-memory map (useful for tests/demos).
type StaticDictionaryLoader struct {
	dictionaries map[domain.Language]dictionary.RawDictionary
}

func NewStaticDictionaryLoader(dictionaries map[domain.Language]dictionary.RawDictionary) *StaticDictionaryLoader {
	return &StaticDictionaryLoader{dictionaries: dictionaries}
}

func (l *StaticDictionaryLoader) LoadDictionary(_ context.Context, lang domain.Language) (dictionary.RawDictionary, error) {
	if raw, ok := l.dictionaries[lang]; ok {
		return raw, nil
	}
	return dictionary.RawDictionary{}, fmt.Errorf("%w: %s", domain.ErrUnknownLanguage, lang)
}
