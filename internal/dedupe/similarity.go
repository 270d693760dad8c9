package dedupe

import (
	"strings"
	"unicode"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Similarity scores two merchant descriptions in [0,1]. Both strings
// are normalized first: case-folded, punctuation collapsed to spaces,
// all-digit tokens dropped (store numbers, card suffixes). The score is
// the better of token-set overlap and Levenshtein ratio, with full
// containment of one normalized string in the other counting as 1.
func Similarity(a, b string) float64 {
	na := normalizeDescription(a)
	nb := normalizeDescription(b)

	if na == "" || nb == "" {
		if na == nb {
			return 1
		}
		return 0
	}
	if na == nb || strings.Contains(na, nb) || strings.Contains(nb, na) {
		return 1
	}

	jaccard := tokenOverlap(strings.Fields(na), strings.Fields(nb))
	ratio := levenshteinRatio(na, nb)
	if jaccard > ratio {
		return jaccard
	}
	return ratio
}

// normalizeDescription lowercases, maps punctuation to spaces, drops
// purely numeric tokens, and collapses whitespace.
func normalizeDescription(s string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return unicode.ToLower(r)
		default:
			return ' '
		}
	}, s)

	var tokens []string
	for _, tok := range strings.Fields(mapped) {
		if allDigits(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return strings.Join(tokens, " ")
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

// tokenOverlap is the Jaccard index of the two token sets.
func tokenOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, tok := range a {
		set[tok] = true
	}
	union := len(set)
	shared := 0
	for _, tok := range b {
		if set[tok] {
			shared++
			set[tok] = false // count each shared token once
			continue
		}
		if _, seen := set[tok]; !seen {
			set[tok] = false
			union++
		}
	}
	return float64(shared) / float64(union)
}

// levenshteinRatio converts edit distance to a similarity in [0,1]
// relative to the longer string.
func levenshteinRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1
	}
	distance := levenshtein.DistanceForStrings(ra, rb, levenshtein.DefaultOptions)
	return 1 - float64(distance)/float64(longest)
}
