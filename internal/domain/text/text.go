// Package text holds the normalization and similarity helpers shared by every
// stage of the query pipeline.
package text

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonWord = regexp.MustCompile(`[^a-z0-9\s]`)

// Normalize lower-cases s, strips accents, replaces everything outside
// [a-z0-9] and whitespace with a space, collapses runs of whitespace and trims.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = nonWord.ReplaceAllString(stripAccents(strings.ToLower(s)), " ")
	return strings.Join(strings.Fields(s), " ")
}

// stripAccents decomposes s (NFD) and drops combining marks.
// The transformer keeps state, so one is built per call.
func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Words returns the normalized words of s in order. Duplicates are kept.
func Words(s string) []string {
	return strings.Fields(Normalize(s))
}

// WordSet returns the distinct normalized words of s.
func WordSet(s string) map[string]struct{} {
	words := Words(s)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Jaccard returns |A∩B| / |A∪B| over the normalized word sets of a and b.
// Two inputs without any word score 0.
func Jaccard(a, b string) float64 {
	setA, setB := WordSet(a), WordSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	inter := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

// ContainsPhrase reports whether the normalized phrase occurs in the normalized
// text as whole words.
func ContainsPhrase(normalizedText, normalizedPhrase string) bool {
	if normalizedPhrase == "" {
		return false
	}
	return strings.Contains(" "+normalizedText+" ", " "+normalizedPhrase+" ")
}
