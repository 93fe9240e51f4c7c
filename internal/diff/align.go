package diff

import "sort"

// alignment is the outcome of pairing a left sequence's indices against
// a right sequence's indices (spec.md §4.5 "Array alignment").
type alignment struct {
	// pairs maps a left index to the right index it was aligned with.
	pairs map[int]int
	// byRight maps a right index back to its left index, for convenience.
	byRight map[int]int
}

type candidate struct {
	i, j int
	d    int
}

// align builds the m×n distance matrix and greedily pairs rows and
// columns, smallest distance first, breaking ties by |i-j| then i then
// j (spec.md §4.5 steps 1-2).
func align(m, n int, dist func(i, j int) int) alignment {
	cands := make([]candidate, 0, m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			cands = append(cands, candidate{i: i, j: j, d: dist(i, j)})
		}
	}
	sort.Slice(cands, func(a, b int) bool {
		ca, cb := cands[a], cands[b]
		if ca.d != cb.d {
			return ca.d < cb.d
		}
		da, db := absDiff(ca.i, ca.j), absDiff(cb.i, cb.j)
		if da != db {
			return da < db
		}
		if ca.i != cb.i {
			return ca.i < cb.i
		}
		return ca.j < cb.j
	})

	usedLeft := make(map[int]bool, m)
	usedRight := make(map[int]bool, n)
	pairs := make(map[int]int)
	byRight := make(map[int]int)
	for _, c := range cands {
		if usedLeft[c.i] || usedRight[c.j] {
			continue
		}
		usedLeft[c.i] = true
		usedRight[c.j] = true
		pairs[c.i] = c.j
		byRight[c.j] = c.i
	}
	return alignment{pairs: pairs, byRight: byRight}
}

func absDiff(i, j int) int {
	if i > j {
		return i - j
	}
	return j - i
}
