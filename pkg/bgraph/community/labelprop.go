package community

import (
	"math/rand"
)

// labelProp runs weighted label propagation: every vertex repeatedly adopts
// the label with the greatest incident weight among its neighbors until no
// label changes. Ties pick the smallest label and vertices are visited in
// index order, so the result is deterministic. Emits the final labeling as
// a single candidate.
func labelProp(net *network, _ *rand.Rand) [][]int {
	labels := make([]int, net.n)
	for v := range labels {
		labels[v] = v + 1
	}

	const maxRounds = 100
	for round := 0; round < maxRounds; round++ {
		changed := false
		for v := 0; v < net.n; v++ {
			if len(net.adj[v]) == 0 {
				continue
			}
			votes := make(map[int]float64)
			for _, l := range net.adj[v] {
				if l.to != v {
					votes[labels[l.to]] += l.w
				}
			}
			best, bestW := labels[v], 0.0
			first := true
			for label, w := range votes {
				if first || w > bestW || (w == bestW && label < best) {
					best, bestW = label, w
					first = false
				}
			}
			if best != labels[v] {
				labels[v] = best
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return [][]int{labels}
}
