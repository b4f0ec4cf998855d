// Package match implements the fuzzy filename matching engine: a similarity
// scorer, a recursive candidate scanner, and the single-target, batch and
// multi-directory reconciliation layers built on top of them.
package match

import "strings"

// Score computes a 0-100 similarity score between two strings.
//
// Inputs are compared literally; callers that want case-insensitive
// behavior must lower-case both sides first. The metric is deliberately
// simple (not Levenshtein): the acceptance threshold used throughout the
// application is calibrated to this function's output distribution.
func Score(a, b string) int {
	// Two empty strings score zero, not 100. Changing this would silently
	// alter outcomes for empty targets.
	if a == "" && b == "" {
		return 0
	}

	if a == b {
		return 100
	}

	ra := []rune(a)
	rb := []rune(b)
	maxLen := len(ra)
	minLen := len(rb)
	if minLen > maxLen {
		maxLen, minLen = minLen, maxLen
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 100 * minLen / maxLen
	}

	// Count common characters with single consumption: each character of b
	// can satisfy at most one character of a, so repeated letters do not
	// over-count.
	remaining := make(map[rune]int, len(rb))
	for _, r := range rb {
		remaining[r]++
	}

	common := 0
	for _, r := range ra {
		if remaining[r] > 0 {
			remaining[r]--
			common++
		}
	}

	return 100 * common / maxLen
}
