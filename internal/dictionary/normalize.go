package dictionary

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalizer maps a raw word (or guess) to the form used for keys and comparison.
type Normalizer func(string) string

// Identity trims surrounding whitespace only.
func Identity(s string) string {
	return strings.TrimSpace(s)
}

// Lower trims and lowercases s with full Unicode case mapping.
// A cases.Caser is stateful, so one is built per call.
func Lower(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// NormalizerByName resolves a configured normalizer name.
func NormalizerByName(name string) (Normalizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "identity":
		return Identity, nil
	case "lower", "lowercase":
		return Lower, nil
	default:
		return nil, fmt.Errorf("unknown normalizer %q", name)
	}
}
