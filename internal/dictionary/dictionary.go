package dictionary

import (
	"fmt"
	"sort"

	"anagram-quiz-service/internal/domain"
)

// Rand is the sampling source used for problems, language selection and hints.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Entry is a question word paired with its sorted key.
type Entry struct {
	Word string
	Key  string
}

// Dictionary is an immutable anagram index over one language's word lists.
// It is safe for concurrent reads once built.
type Dictionary struct {
	normalize Normalizer

	entries  []Entry
	position map[string]int      // normalized word -> index in entries
	anagrams map[string][]string // key -> normalized curated words
	full     map[string][]string // key -> normalized full words, nil without a full list
	fullSet  map[string]struct{}
}

// Build indexes questions (and the optional full list) with normalize applied
// before keys are computed. Duplicate questions keep their first position.
func Build(questions, full []string, normalize Normalizer) (*Dictionary, error) {
	if normalize == nil {
		normalize = Identity
	}
	if len(questions) == 0 {
		return nil, domain.ErrEmptyDictionary
	}

	d := &Dictionary{
		normalize: normalize,
		entries:   make([]Entry, 0, len(questions)),
		position:  make(map[string]int, len(questions)),
		anagrams:  make(map[string][]string),
	}

	for i, raw := range questions {
		word := normalize(raw)
		if word == "" {
			return nil, fmt.Errorf("question %d: %w", i, domain.ErrInvalidWord)
		}
		if _, dup := d.position[word]; dup {
			continue
		}
		key := SortKey(word)
		d.position[word] = len(d.entries)
		d.entries = append(d.entries, Entry{Word: raw, Key: key})
		d.anagrams[key] = append(d.anagrams[key], word)
	}

	if full != nil {
		d.full = make(map[string][]string)
		d.fullSet = make(map[string]struct{}, len(full))
		for _, raw := range full {
			word := normalize(raw)
			if word == "" {
				continue
			}
			if _, dup := d.fullSet[word]; dup {
				continue
			}
			d.fullSet[word] = struct{}{}
			key := SortKey(word)
			d.full[key] = append(d.full[key], word)
		}
	}

	for _, class := range d.anagrams {
		sort.Strings(class)
	}
	for _, class := range d.full {
		sort.Strings(class)
	}
	return d, nil
}

// Normalize applies the dictionary's normalizer.
func (d *Dictionary) Normalize(s string) string {
	return d.normalize(s)
}

// Len is the number of distinct question words.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// FullLen is the number of distinct full words, and false without a full list.
func (d *Dictionary) FullLen() (int, bool) {
	if d.full == nil {
		return 0, false
	}
	return len(d.fullSet), true
}

// At returns the entry at index i in insertion order.
func (d *Dictionary) At(i int) Entry {
	return d.entries[i]
}

// PickRandom draws a uniformly distributed question.
func (d *Dictionary) PickRandom(rng Rand) Entry {
	return d.entries[rng.IntN(len(d.entries))]
}

// AnagramClass returns the curated words sharing key. The slice is a copy.
func (d *Dictionary) AnagramClass(key string) []string {
	return append([]string(nil), d.anagrams[key]...)
}

// FullAnagramClass returns the full-list words sharing key, and false when the
// dictionary has no full list.
func (d *Dictionary) FullAnagramClass(key string) ([]string, bool) {
	if d.full == nil {
		return nil, false
	}
	return append([]string(nil), d.full[key]...), true
}

// Contains reports whether word (after normalization) is a question word.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.position[d.normalize(word)]
	return ok
}

// ContainsInFull reports whether word (after normalization) is in the full list.
func (d *Dictionary) ContainsInFull(word string) bool {
	if d.fullSet == nil {
		return false
	}
	_, ok := d.fullSet[d.normalize(word)]
	return ok
}
