package dictionary

import (
	"sort"
	"strings"

	"github.com/rivo/uniseg"
)

// Graphemes splits s into Unicode extended grapheme clusters.
func Graphemes(s string) []string {
	out := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// GraphemeCount returns the number of grapheme clusters in s.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// SortKey returns the graphemes of s in ascending byte order. Two words share
// a key iff they are anagrams of each other.
func SortKey(s string) string {
	gs := Graphemes(s)
	sort.Strings(gs)
	return strings.Join(gs, "")
}
