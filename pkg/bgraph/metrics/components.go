package metrics

import (
	"github.com/cverad/connectome/pkg/bgraph"
)

// Components labels the connected components of g, renumbered so component 1
// is the largest, ties broken by first-encountered order. Directed graphs
// use weak connectivity. Returns the per-vertex component id and the
// component sizes indexed by id-1.
func Components(g *bgraph.Graph) (membership []int, sizes []int) {
	n := g.Order()
	membership = make([]int, n)
	for i := range membership {
		membership[i] = -1
	}

	next := 0
	for s := 0; s < n; s++ {
		if membership[s] >= 0 {
			continue
		}
		next++
		membership[s] = next
		queue := []int{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, u := range g.Neighbors(v) {
				if membership[u] < 0 {
					membership[u] = next
					queue = append(queue, u)
				}
			}
			if g.Directed() {
				for _, u := range g.InNeighbors(v) {
					if membership[u] < 0 {
						membership[u] = next
						queue = append(queue, u)
					}
				}
			}
		}
	}

	// Renumbering is largest-first, so sizes come out descending.
	membership = bgraph.Renumber(membership)
	sizes = make([]int, next)
	for _, id := range membership {
		sizes[id-1]++
	}
	return membership, sizes
}

// IsConnected reports whether g is (weakly) connected. Empty graphs count
// as connected.
func IsConnected(g *bgraph.Graph) bool {
	_, sizes := Components(g)
	return len(sizes) <= 1
}
