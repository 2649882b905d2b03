package skills

import (
	"strings"
)

const (
	// DefaultFuzzyThreshold is the similarity cutoff used when callers do not
	// supply their own.
	DefaultFuzzyThreshold = 0.8

	// minFuzzyTokenLen guards against false positives on very short tokens.
	minFuzzyTokenLen = 3
)

// Similarity returns the Ratcliff/Obershelp ratio between two strings in
// [0,1]: twice the total length of the recursively matched blocks over the
// combined length. Identical strings score 1.0, disjoint strings 0.0, and
// transposition typos ("pyhton") stay above the default threshold while
// merely-prefix-similar words ("react"/"read") fall below it. Comparison is
// case-insensitive and deterministic.
func Similarity(a, b string) float64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	if len(ra) == 0 && len(rb) == 0 {
		return 1.0
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}
	m := matchingChars(ra, rb)
	return 2 * float64(m) / float64(len(ra)+len(rb))
}

// matchingChars sums the longest common block and recurses into the
// unmatched stretches on either side of it.
func matchingChars(a, b []rune) int {
	ai, bi, size := longestCommonBlock(a, b)
	if size == 0 {
		return 0
	}
	total := size
	total += matchingChars(a[:ai], b[:bi])
	total += matchingChars(a[ai+size:], b[bi+size:])
	return total
}

// longestCommonBlock finds the longest common substring of a and b and
// returns its start offsets and length. Ties keep the earliest block in a,
// then in b, so the recursion is fully deterministic.
func longestCommonBlock(a, b []rune) (ai, bi, size int) {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 0; i < len(a); i++ {
		for j := 0; j < len(b); j++ {
			if a[i] != b[j] {
				cur[j+1] = 0
				continue
			}
			run := prev[j] + 1
			cur[j+1] = run
			if run > size {
				size = run
				ai = i - run + 1
				bi = j - run + 1
			}
		}
		prev, cur = cur, prev
		for j := range cur {
			cur[j] = 0
		}
	}
	return ai, bi, size
}
