package app

import (
	"sort"
	"strings"

	"anagram-quiz-service/internal/dictionary"
	"anagram-quiz-service/internal/domain"
)

// DefaultHintPlaceholder masks graphemes a random hint does not reveal.
const DefaultHintPlaceholder = "*"

// HintVerdict says what a hint request resolved to.
type HintVerdict int

const (
	HintShown HintVerdict = iota
	HintZeroLength
	HintTooLong
	// HintGivesAway means the hint would determine the answer; it is treated as a give-up.
	HintGivesAway
)

// Hint is the outcome of BuildHint. Text is set only for HintShown.
type Hint struct {
	Verdict HintVerdict
	Text    string
}

// BuildHint reveals req.Count graphemes of answer.
func BuildHint(answer string, req domain.HintRequest, rng dictionary.Rand, placeholder string) Hint {
	graphemes := dictionary.Graphemes(answer)
	n, l := req.Count, len(graphemes)

	switch {
	case n <= 0:
		return Hint{Verdict: HintZeroLength}
	case n == l || n == l-1:
		return Hint{Verdict: HintGivesAway}
	case n > l:
		return Hint{Verdict: HintTooLong}
	}

	if req.Mode == domain.HintFirst {
		return Hint{Verdict: HintShown, Text: strings.Join(graphemes[:n], "")}
	}

	if placeholder == "" {
		placeholder = DefaultHintPlaceholder
	}
	masked := make([]string, l)
	for i := range masked {
		masked[i] = placeholder
	}
	for _, idx := range samplePositions(rng, l, n) {
		masked[idx] = graphemes[idx]
	}
	return Hint{Verdict: HintShown, Text: strings.Join(masked, "")}
}

// samplePositions draws n distinct indices from [0, l) without replacement
// using a partial Fisher-Yates shuffle, returned in ascending order.
func samplePositions(rng dictionary.Rand, l, n int) []int {
	perm := make([]int, l)
	for i := range perm {
		perm[i] = i
	}
	for i := 0; i < n; i++ {
		j := i + rng.IntN(l-i)
		perm[i], perm[j] = perm[j], perm[i]
	}
	out := perm[:n]
	sort.Ints(out)
	return out
}
