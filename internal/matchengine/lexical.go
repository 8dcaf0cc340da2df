package matchengine

import (
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/tunebridge/tunebridge/internal/titleparse"
)

// LexicalSimilarity returns a case- and diacritic-insensitive string
// similarity in [0, 1]. Both inputs are folded through the comparison key,
// then scored as the better of two measures: the longest-common-subsequence
// sequence ratio 2*M/(len(a)+len(b)) and a Levenshtein-distance ratio.
// Identical strings score exactly 1.0; strings with disjoint character sets
// score near 0.
func LexicalSimilarity(a, b string) float64 {
	ka := titleparse.CompareKey(a)
	kb := titleparse.CompareKey(b)

	seq := sequenceRatio(ka, kb)
	lev := levenshteinRatio(ka, kb)
	if lev > seq {
		return lev
	}
	return seq
}

func sequenceRatio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(lcsLength(ra, rb)) / float64(total)
}

// lcsLength computes the longest common subsequence length with a
// two-row dynamic program.
func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func levenshteinRatio(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1.0
	}
	dist := fuzzy.LevenshteinDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}
