package evaluation

import (
	"strings"
	"unicode"
)

// rougeL computes the ROUGE-L F-measure between a reference and a
// candidate text, based on the longest common subsequence of their
// lowercased word tokens.
func rougeL(reference, candidate string) float64 {
	ref := tokenize(reference)
	cand := tokenize(candidate)
	if len(ref) == 0 || len(cand) == 0 {
		return 0.0
	}

	lcs := lcsLength(ref, cand)
	if lcs == 0 {
		return 0.0
	}

	precision := float64(lcs) / float64(len(cand))
	recall := float64(lcs) / float64(len(ref))
	return 2 * precision * recall / (precision + recall)
}

// tokenize splits text into lowercased alphanumeric word tokens.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// lcsLength computes longest common subsequence length with a rolling
// single-row table.
func lcsLength(a, b []string) int {
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
