package dictionary

import (
	"fmt"

	"anagram-quiz-service/internal/domain"
)

// Selector picks the dictionary for the next contest problem.
type Selector interface {
	Select(rng Rand) (*Dictionary, domain.Language)
	Languages() []domain.Language
}

// NewSelector returns a fixed selector for a single language and a uniform one
// over the de-duplicated list otherwise. Order of first appearance is kept.
func NewSelector(catalog *Catalog, languages []domain.Language) (Selector, error) {
	if len(languages) == 0 {
		return nil, domain.ErrNoLanguages
	}
	seen := make(map[domain.Language]struct{}, len(languages))
	set := make([]domain.Language, 0, len(languages))
	for _, lang := range languages {
		if _, dup := seen[lang]; dup {
			continue
		}
		if !catalog.Has(lang) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownLanguage, lang)
		}
		seen[lang] = struct{}{}
		set = append(set, lang)
	}
	if len(set) == 1 {
		dict, _ := catalog.Get(set[0])
		return fixedSelector{dict: dict, lang: set[0]}, nil
	}
	return &uniformSelector{catalog: catalog, set: set}, nil
}

type fixedSelector struct {
	dict *Dictionary
	lang domain.Language
}

func (s fixedSelector) Select(Rand) (*Dictionary, domain.Language) {
	return s.dict, s.lang
}

func (s fixedSelector) Languages() []domain.Language {
	return []domain.Language{s.lang}
}

type uniformSelector struct {
	catalog *Catalog
	set     []domain.Language
}

func (s *uniformSelector) Select(rng Rand) (*Dictionary, domain.Language) {
	lang := s.set[rng.IntN(len(s.set))]
	dict, _ := s.catalog.Get(lang)
	return dict, lang
}

func (s *uniformSelector) Languages() []domain.Language {
	return append([]domain.Language(nil), s.set...)
}
