package keyset

import "math"

// levenshtein computes the classic edit distance between two rune slices.
// Used only to produce a "did you mean" suggestion inside
// UnknownBindingError; not on any hot path.
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
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[lb]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// closestAlias returns the entry of dataSet with the smallest edit distance
// to input. Returns "" for an empty dataSet.
func closestAlias(input string, dataSet []string) string {
	minDist := math.MaxInt
	closest := ""

	for _, candidate := range dataSet {
		dist := levenshtein([]rune(input), []rune(candidate))
		if dist < minDist {
			minDist = dist
			closest = candidate
		}
	}

	return closest
}
