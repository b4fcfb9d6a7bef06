package match

import "math"

// Similarity returns an edit-distance similarity percentage in [0, 100]
// between the normalized forms of a and b. Identical normalized strings
// score 100; an empty normalized form on either side scores 0. Symmetric
// up to rounding.
func Similarity(a, b string) int {
	na := Normalize(a)
	nb := Normalize(b)

	if na == nb {
		return 100
	}
	if na == "" || nb == "" {
		return 0
	}

	ra := []rune(na)
	rb := []rune(nb)

	distance := levenshtein(ra, rb)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}

	similarity := float64(maxLen-distance) / float64(maxLen) * 100
	return int(math.Round(math.Max(0, similarity)))
}

// levenshtein computes the unit-cost edit distance between two rune slices
// using a two-row dynamic programming table.
func levenshtein(a, b []rune) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, min(prev[j]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[lb]
}
