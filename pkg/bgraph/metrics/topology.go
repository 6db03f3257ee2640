package metrics

import (
	"github.com/cverad/connectome/pkg/bgraph"
)

// Density is the fraction of possible edges present: 2E/(N(N-1)) for
// undirected graphs, E/(N(N-1)) for directed. Graphs with fewer than two
// vertices have density 0.
func Density(g *bgraph.Graph) float64 {
	n := g.Order()
	if n < 2 {
		return 0
	}
	possible := float64(n * (n - 1))
	if !g.Directed() {
		possible /= 2
	}
	return float64(g.Size()) / possible
}

// Degrees returns the degree of every vertex as floats, for attribute
// attachment.
func Degrees(g *bgraph.Graph) []float64 {
	d := make([]float64, g.Order())
	for v := range d {
		d[v] = float64(g.Degree(v))
	}
	return d
}

// Strengths returns the strength of every vertex and the mean strength.
func Strengths(g *bgraph.Graph) (vertex []float64, mean float64) {
	vertex = strengths(g)
	if len(vertex) == 0 {
		return vertex, 0
	}
	for _, s := range vertex {
		mean += s
	}
	return vertex, mean / float64(len(vertex))
}
