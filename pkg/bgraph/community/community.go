// Package community implements the community-detection algorithms used for
// brain network partitioning, behind a validated name registry, plus the
// method resolver that picks a workable algorithm for a given graph.
//
// Every algorithm returns one or more candidate partitions; Detect scores
// them by modularity and keeps the best. Membership ids are renumbered so
// community 1 is always the largest.
package community

import (
	"math/rand"

	"github.com/cverad/connectome/pkg/bgraph"
	"github.com/cverad/connectome/pkg/errors"
)

// Registered method names.
const (
	Louvain         = "louvain"
	FastGreedy      = "fast_greedy"
	Walktrap        = "walktrap"
	LabelProp       = "label_prop"
	LeadingEigen    = "leading_eigen"
	EdgeBetweenness = "edge_betweenness"
	Spinglass       = "spinglass"
)

// detector produces candidate partitions of net, most promising last.
// Memberships are raw (arbitrary positive ids); Detect renumbers.
type detector func(net *network, rng *rand.Rand) [][]int

// registry maps method names to their implementations. The key set is the
// public contract; Methods and Valid expose it.
var registry = map[string]detector{
	Louvain:         louvain,
	FastGreedy:      fastGreedy,
	Walktrap:        walktrap,
	LabelProp:       labelProp,
	LeadingEigen:    leadingEigen,
	EdgeBetweenness: girvanNewman,
	Spinglass:       spinglass,
}

// Methods returns the registered method names in a fixed order.
func Methods() []string {
	return []string{
		Louvain, FastGreedy, Walktrap, LabelProp,
		LeadingEigen, EdgeBetweenness, Spinglass,
	}
}

// Valid reports whether name is a registered method.
func Valid(name string) bool {
	_, ok := registry[name]
	return ok
}

// Result is a detected community structure.
type Result struct {
	Method     string  `json:"method"`
	Membership []int   `json:"membership"` // 1-based, largest community first
	Modularity float64 `json:"modularity"` // best Q over candidate partitions
}

// options configures Detect.
type detectOptions struct {
	unweighted bool
	seed       int64
}

// Option configures community detection.
type Option func(*detectOptions)

// Unweighted makes detection ignore edge weights even on weighted graphs.
func Unweighted() Option {
	return func(o *detectOptions) { o.unweighted = true }
}

// WithSeed fixes the random source for the stochastic methods (spinglass).
// The default seed is 1, so repeated runs agree.
func WithSeed(seed int64) Option {
	return func(o *detectOptions) { o.seed = seed }
}

// Detect partitions g with the named method and returns the best-modularity
// partition found. The method must be registered; callers usually obtain it
// from Resolve first.
//
// The edge_betweenness method interprets weights as distances. Callers with
// strength weights must transform to the cost domain before detecting with
// it and invert afterward; no other method needs that treatment.
func Detect(g *bgraph.Graph, method string, opts ...Option) (*Result, error) {
	det, ok := registry[method]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidMethod,
			"unknown community method %q (have %v)", method, Methods())
	}
	o := detectOptions{seed: 1}
	for _, opt := range opts {
		opt(&o)
	}

	net := buildNetwork(g, g.Weighted() && !o.unweighted)
	rng := rand.New(rand.NewSource(o.seed))

	best := make([]int, net.n)
	for i := range best {
		best[i] = i + 1 // singleton fallback for edgeless graphs
	}
	bestQ := net.modularity(best)
	for _, cand := range det(net, rng) {
		if q := net.modularity(cand); q > bestQ {
			bestQ = q
			best = cand
		}
	}

	return &Result{
		Method:     method,
		Membership: bgraph.Renumber(best),
		Modularity: bestQ,
	}, nil
}

// Modularity returns the Newman Q score of a membership vector over g,
// optionally ignoring weights. Membership must be |V| long with 1-based ids.
func Modularity(g *bgraph.Graph, membership []int, weighted bool) (float64, error) {
	if len(membership) != g.Order() {
		return 0, errors.New(errors.ErrCodeInvalidArgument,
			"membership length %d != vertex count %d", len(membership), g.Order())
	}
	net := buildNetwork(g, weighted && g.Weighted())
	return net.modularity(membership), nil
}
