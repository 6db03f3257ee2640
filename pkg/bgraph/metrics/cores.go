package metrics

import (
	"math"

	"github.com/cverad/connectome/pkg/bgraph"
)

// KCore returns the coreness of every vertex: the largest k such that the
// vertex belongs to a subgraph where every vertex has degree >= k. Uses the
// standard peeling order.
func KCore(g *bgraph.Graph) []int {
	n := g.Order()
	deg := degrees(g)
	core := make([]int, n)
	removed := make([]bool, n)

	for k := 0; ; k++ {
		remaining := 0
		for v := 0; v < n; v++ {
			if !removed[v] {
				remaining++
			}
		}
		if remaining == 0 {
			return core
		}
		// Peel everything of degree <= k before moving to the next level.
		for {
			peeled := false
			for v := 0; v < n; v++ {
				if removed[v] || deg[v] > k {
					continue
				}
				removed[v] = true
				core[v] = k
				peeled = true
				for _, u := range g.Neighbors(v) {
					if !removed[u] {
						deg[u]--
					}
				}
				if g.Directed() {
					for _, u := range g.InNeighbors(v) {
						if !removed[u] {
							deg[u]--
						}
					}
				}
			}
			if !peeled {
				break
			}
		}
	}
}

// SCore returns the s-core level of every vertex, the strength-weighted
// analogue of coreness: level l is reached by repeatedly removing the
// weakest remaining vertices and recomputing strengths until the graph is
// empty. Unweighted graphs reduce to KCore levels.
func SCore(g *bgraph.Graph) []int {
	n := g.Order()
	level := make([]int, n)
	removed := make([]bool, n)
	str := strengths(g)
	w := weightMatrix(g, g.Weighted())

	const eps = 1e-12
	for l := 0; ; l++ {
		// Find the weakest remaining strength to use as this level's cut.
		cut := math.Inf(1)
		remaining := 0
		for v := 0; v < n; v++ {
			if removed[v] {
				continue
			}
			remaining++
			if str[v] < cut {
				cut = str[v]
			}
		}
		if remaining == 0 {
			return level
		}
		// Remove every vertex at or below the cut, cascading as strengths
		// drop from the removals.
		for {
			peeled := false
			for v := 0; v < n; v++ {
				if removed[v] || str[v] > cut+eps {
					continue
				}
				removed[v] = true
				level[v] = l
				peeled = true
				for u := 0; u < n; u++ {
					if removed[u] {
						continue
					}
					if g.Directed() {
						str[u] -= w[v][u] + w[u][v]
					} else {
						str[u] -= w[u][v]
					}
				}
			}
			if !peeled {
				break
			}
		}
	}
}
