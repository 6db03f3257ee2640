// Package metrics implements the graph-theory measures used in
// network-neuroscience analyses: shortest-path structure, centralities,
// cores, transitivity, rich-club curves, assortativity, and the
// community-aware vertex roles (participation, gateway, within-module
// z-score).
//
// All functions operate on an immutable view of the graph and return
// vertex-indexed slices or scalars; nothing here writes attributes. The
// augment package decides what to compute and attaches the results.
//
// Weighted variants interpret edge weight as cost (low = close). Callers
// holding strength weights must transform them first; see the transform
// package.
package metrics

import (
	"runtime"

	"github.com/cverad/connectome/pkg/bgraph"
)

// options holds tunables shared by the per-vertex parallel computations.
type options struct {
	workers int
}

// Option configures the expensive per-vertex metrics.
type Option func(*options)

// WithWorkers sets the number of goroutines used by LocalEfficiency and
// Vulnerability. Values below 1 select one worker per CPU. The default is
// a single worker; parallelism is strictly opt-in.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = runtime.NumCPU()
		}
		o.workers = n
	}
}

func buildOptions(opts []Option) options {
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// weightMatrix returns a dense |V|x|V| lookup of edge weights, 0 where no
// edge exists. Undirected edges appear in both triangles. With weighted
// false (or on unweighted graphs) every edge yields 1, so metrics can be
// computed with weights suppressed.
func weightMatrix(g *bgraph.Graph, weighted bool) [][]float64 {
	n := g.Order()
	w := make([][]float64, n)
	for i := range w {
		w[i] = make([]float64, n)
	}
	for _, e := range g.Edges() {
		wt := e.Weight
		if !weighted || !g.Weighted() {
			wt = 1
		}
		w[e.From][e.To] = wt
		if !g.Directed() {
			w[e.To][e.From] = wt
		}
	}
	return w
}

// degrees returns the degree of every vertex.
func degrees(g *bgraph.Graph) []int {
	d := make([]int, g.Order())
	for v := range d {
		d[v] = g.Degree(v)
	}
	return d
}

// strengths returns the strength of every vertex.
func strengths(g *bgraph.Graph) []float64 {
	s := make([]float64, g.Order())
	for v := range s {
		s[v] = g.Strength(v)
	}
	return s
}
