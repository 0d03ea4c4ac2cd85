package app

import (
	"fmt"
	"slices"
	"time"

	"anagram-quiz-service/internal/dictionary"
	"anagram-quiz-service/internal/domain"
)

// Status is the quiz state of a channel: StandingBy, Holding or Contesting.
type Status interface {
	status()
}

// StandingBy means no problem is posed.
type StandingBy struct{}

// Holding is a single problem waiting for an answer.
type Holding struct {
	Problem Problem
}

// Contesting is round Round of a Total-round contest.
type Contesting struct {
	Problem Problem
	Round   int
	Total   int
}

func (StandingBy) status() {}
func (Holding) status()    {}
func (Contesting) status() {}

func newContesting(p Problem, round, total int) (Contesting, error) {
	if round < 1 || round > total {
		return Contesting{}, fmt.Errorf("%w: round %d of %d", domain.ErrInvalidRounds, round, total)
	}
	return Contesting{Problem: p, Round: round, Total: total}, nil
}

// Final reports whether this is the last round.
func (c Contesting) Final() bool {
	return c.Round == c.Total
}

// Problem is a posed word together with the anagram classes valid for it.
type Problem struct {
	Answer    string // as written in the dictionary
	Lowered   string // lowercase form compared against guesses
	Key       string // the sorted prompt
	Language  domain.Language
	Label     string
	Anagrams  []string
	Full      []string
	HasFull   bool
	StartedAt time.Time

	normalize dictionary.Normalizer
}

func newProblem(dict *dictionary.Dictionary, lang domain.Language, label string, rng dictionary.Rand, now time.Time) Problem {
	entry := dict.PickRandom(rng)
	full, hasFull := dict.FullAnagramClass(entry.Key)
	return Problem{
		Answer:    entry.Word,
		Lowered:   dictionary.Lower(entry.Word),
		Key:       entry.Key,
		Language:  lang,
		Label:     label,
		Anagrams:  dict.AnagramClass(entry.Key),
		Full:      full,
		HasFull:   hasFull,
		StartedAt: now,
		normalize: dict.Normalize,
	}
}

// Classify judges guess against the problem. The checks run in a fixed order:
// exact answer, curated anagram, full-list anagram.
func (p Problem) Classify(guess string) domain.Classification {
	g := dictionary.Lower(guess)
	if g == "" {
		return domain.WrongAnswer
	}
	if g == p.Lowered {
		return domain.Assumed
	}
	if p.normalize != nil {
		g = p.normalize(g)
	}
	if dictionary.SortKey(g) != p.Key {
		return domain.WrongAnswer
	}
	if slices.Contains(p.Anagrams, g) {
		return domain.Anagram
	}
	if p.HasFull && slices.Contains(p.Full, g) {
		return domain.Full
	}
	return domain.WrongAnswer
}
