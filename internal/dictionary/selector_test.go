package dictionary

import (
	"errors"
	"reflect"
	"testing"

	"anagram-quiz-service/internal/domain"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := NewCatalog()
	for _, lang := range []domain.Language{"en", "ja", "fr"} {
		c.Add(lang, "", mustBuild(t, []string{"word" + string(lang)}, nil, Identity))
	}
	return c
}

func TestSelectorSingleLanguageIsFixed(t *testing.T) {
	c := testCatalog(t)
	s, err := NewSelector(c, []domain.Language{"ja", "ja"})
	if err != nil {
		t.Fatalf("selector: %v", err)
	}

	want, _ := c.Get("ja")
	for _, v := range []int{0, 1, 2} {
		dict, lang := s.Select(&seqRand{vals: []int{v}})
		if lang != "ja" || dict != want {
			t.Fatalf("expected the ja dictionary, got %s", lang)
		}
	}
	if got := s.Languages(); !reflect.DeepEqual(got, []domain.Language{"ja"}) {
		t.Fatalf("unexpected languages %v", got)
	}
}

func TestSelectorUniformDeduplicatesInOrder(t *testing.T) {
	c := testCatalog(t)
	s, err := NewSelector(c, []domain.Language{"fr", "en", "fr"})
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	if got := s.Languages(); !reflect.DeepEqual(got, []domain.Language{"fr", "en"}) {
		t.Fatalf("expected [fr en], got %v", got)
	}

	if _, lang := s.Select(&seqRand{vals: []int{1}}); lang != "en" {
		t.Fatalf("expected en, got %s", lang)
	}
	dict, lang := s.Select(&seqRand{vals: []int{0}})
	if lang != "fr" || dict.At(0).Word != "wordfr" {
		t.Fatalf("expected the fr dictionary, got %s", lang)
	}
}

func TestSelectorRejectsBadInput(t *testing.T) {
	c := testCatalog(t)
	if _, err := NewSelector(c, nil); !errors.Is(err, domain.ErrNoLanguages) {
		t.Fatalf("expected ErrNoLanguages, got %v", err)
	}
	if _, err := NewSelector(c, []domain.Language{"en", "xx"}); !errors.Is(err, domain.ErrUnknownLanguage) {
		t.Fatalf("expected ErrUnknownLanguage, got %v", err)
	}
}
