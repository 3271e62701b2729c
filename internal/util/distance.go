package util

import "github.com/adrg/strutil/metrics"

var levenshtein = metrics.NewLevenshtein()

// Levenshtein returns the rune-aware edit distance between a and b.
func Levenshtein(a, b string) int {
	return levenshtein.Distance(a, b)
}

// Distances returns Levenshtein(origin, s) for every candidate.
func Distances(origin string, candidates []string) []int {
	if len(candidates) == 0 {
		return nil
	}
	out := make([]int, len(candidates))
	for i, s := range candidates {
		out[i] = Levenshtein(origin, s)
	}
	return out
}
