package metrics

import (
	"github.com/cverad/connectome/pkg/bgraph"
)

// TriangleCount returns the number of triangles in g. Directed graphs are
// treated as their undirected skeleton.
func TriangleCount(g *bgraph.Graph) int {
	per := TrianglesPerVertex(g)
	sum := 0
	for _, t := range per {
		sum += t
	}
	return sum / 3
}

// TrianglesPerVertex returns, per vertex, the number of triangles the vertex
// participates in.
func TrianglesPerVertex(g *bgraph.Graph) []int {
	n := g.Order()
	adj := undirectedSets(g)
	tri := make([]int, n)
	for v := 0; v < n; v++ {
		nbrs := neighborList(adj[v])
		for i := 0; i < len(nbrs); i++ {
			for j := i + 1; j < len(nbrs); j++ {
				if adj[nbrs[i]][nbrs[j]] {
					tri[v]++
				}
			}
		}
	}
	return tri
}

// LocalTransitivity returns, per vertex, the fraction of neighbor pairs that
// are themselves connected. Vertices with fewer than two neighbors get 0
// rather than an undefined value.
func LocalTransitivity(g *bgraph.Graph) []float64 {
	n := g.Order()
	adj := undirectedSets(g)
	tri := TrianglesPerVertex(g)
	cc := make([]float64, n)
	for v := 0; v < n; v++ {
		k := len(adj[v])
		if k < 2 {
			continue
		}
		cc[v] = 2 * float64(tri[v]) / float64(k*(k-1))
	}
	return cc
}

// WeightedLocalTransitivity is the Barrat weighted clustering coefficient:
// closed neighbor pairs weighted by the mean strength of the two edges at
// the vertex, normalized by strength and degree. Vertices with fewer than
// two neighbors get 0.
func WeightedLocalTransitivity(g *bgraph.Graph) []float64 {
	n := g.Order()
	adj := undirectedSets(g)
	w := weightMatrix(g, g.Weighted())
	str := strengths(g)
	cc := make([]float64, n)
	for v := 0; v < n; v++ {
		nbrs := neighborList(adj[v])
		k := len(nbrs)
		if k < 2 || str[v] == 0 {
			continue
		}
		sum := 0.0
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				if adj[nbrs[i]][nbrs[j]] {
					sum += (w[v][nbrs[i]] + w[v][nbrs[j]]) / 2
				}
			}
		}
		cc[v] = sum / (str[v] * float64(k-1) / 2)
	}
	return cc
}

// GlobalTransitivity is the ratio of closed triplets to connected triplets
// over the whole graph. Graphs with no connected triples get 0.
func GlobalTransitivity(g *bgraph.Graph) float64 {
	adj := undirectedSets(g)
	tri := TrianglesPerVertex(g)
	closed, triples := 0, 0
	for v := range adj {
		k := len(adj[v])
		closed += tri[v]
		triples += k * (k - 1) / 2
	}
	if triples == 0 {
		return 0
	}
	return float64(closed) / float64(triples)
}

// undirectedSets builds per-vertex neighbor sets over the undirected
// skeleton of g, collapsing reciprocal directed edges.
func undirectedSets(g *bgraph.Graph) []map[int]bool {
	n := g.Order()
	adj := make([]map[int]bool, n)
	for i := range adj {
		adj[i] = make(map[int]bool)
	}
	for _, e := range g.Edges() {
		adj[e.From][e.To] = true
		adj[e.To][e.From] = true
	}
	return adj
}

func neighborList(set map[int]bool) []int {
	nbrs := make([]int, 0, len(set))
	for u := range set {
		nbrs = append(nbrs, u)
	}
	return nbrs
}
