package topsis

import (
	"math"
	"sort"
)

// DenseRank ranks scores descending. Equal scores share a rank and the
// next distinct score gets the following integer, so ranks run 1..k with no
// gaps. Comparison is exact.
func DenseRank(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	ranks := make([]int, len(scores))
	rank := 0
	for k, idx := range order {
		if k == 0 || scores[idx] != scores[order[k-1]] {
			rank++
		}
		ranks[idx] = rank
	}
	return ranks
}

// RoundScore rounds to four decimals, half to even, matching the way
// numpy rounds a scaled value.
func RoundScore(v float64) float64 {
	return math.RoundToEven(v*1e4) / 1e4
}
