package bgraph

import (
	"errors"
	"fmt"

	"github.com/cverad/connectome/pkg/atlas"
)

var (
	// ErrEmptyVertexName is returned by [New] when a vertex name is empty.
	// All vertices must have non-empty, unique names so they can be matched
	// against atlas region tables.
	ErrEmptyVertexName = errors.New("vertex name must not be empty")

	// ErrDuplicateVertex is returned by [New] when two vertices share a name.
	ErrDuplicateVertex = errors.New("duplicate vertex name")

	// ErrUnknownVertex is returned by [Graph.AddEdge] when an endpoint name
	// does not exist in the graph.
	ErrUnknownVertex = errors.New("unknown vertex")

	// ErrSelfLoop is returned by [Graph.AddEdge] for self-loops. Connectivity
	// matrices have empty diagonals; a loop always indicates a loader bug.
	ErrSelfLoop = errors.New("self-loops not allowed")

	// ErrAttrLength is returned by the attribute setters when the value slice
	// is not exactly |V| (vertex attributes) or |E| (edge attributes) long.
	ErrAttrLength = errors.New("attribute length must match topology")
)

// Type distinguishes observed networks from randomized null networks.
// Randomized graphs get a reduced attribute set: they are generated in bulk
// and callers discard per-vertex values anyway.
type Type string

const (
	// TypeObserved marks a measured brain network.
	TypeObserved Type = "observed"
	// TypeRandom marks a randomized null network.
	TypeRandom Type = "random"
)

// Edge is a connection between two vertices, referenced by vertex index.
// For undirected graphs, From < To always holds.
type Edge struct {
	From   int
	To     int
	Weight float64
}

// Option configures a Graph before construction.
type Option func(*Graph)

// WithDirected makes edges one-way. Brain connectivity matrices are usually
// symmetric, but effective-connectivity models produce directed graphs.
func WithDirected() Option {
	return func(g *Graph) { g.directed = true }
}

// WithWeighted enables per-edge connection strengths. Unweighted graphs
// ignore the weight passed to AddEdge.
func WithWeighted() Option {
	return func(g *Graph) { g.weighted = true }
}

// WithType sets the graph type (observed or random). Default is observed.
func WithType(t Type) Option {
	return func(g *Graph) { g.typ = t }
}

// WithAtlas attaches an atlas region table. Presence of an atlas gates the
// spatial and categorical attribute branch during augmentation.
func WithAtlas(a *atlas.Atlas) Option {
	return func(g *Graph) { g.atlas = a }
}

// Graph is an in-memory brain connectivity network: a vertex set named after
// atlas regions, an edge set with optional strengths, and attribute bags at
// graph, vertex, and edge level.
//
// Vertex and edge attributes are index-aligned arrays, always exactly |V| or
// |E| long; the setters enforce this. The Graph is not safe for concurrent
// mutation without external synchronization.
type Graph struct {
	names []string       // vertex names, index order defines vertex ids
	index map[string]int // name -> vertex id
	edges []Edge
	adj   [][]int // vertex id -> neighbor ids (out-neighbors if directed)
	radj  [][]int // in-neighbors, directed graphs only
	inc   [][]int // vertex id -> incident edge indices (outgoing if directed)

	directed bool
	weighted bool
	typ      Type
	atlas    *atlas.Atlas

	graphAttr  map[string]any
	vertexAttr map[string][]float64
	vertexInts map[string][]int
	vertexStrs map[string][]string
	edgeAttr   map[string][]float64
	edgeStrs   map[string][]string
}

// New creates a graph with the given vertex names and no edges.
// Names must be non-empty and unique.
func New(names []string, opts ...Option) (*Graph, error) {
	g := &Graph{
		names:      make([]string, len(names)),
		index:      make(map[string]int, len(names)),
		adj:        make([][]int, len(names)),
		radj:       make([][]int, len(names)),
		inc:        make([][]int, len(names)),
		typ:        TypeObserved,
		graphAttr:  make(map[string]any),
		vertexAttr: make(map[string][]float64),
		vertexInts: make(map[string][]int),
		vertexStrs: make(map[string][]string),
		edgeAttr:   make(map[string][]float64),
		edgeStrs:   make(map[string][]string),
	}
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("vertex %d: %w", i, ErrEmptyVertexName)
		}
		if _, exists := g.index[name]; exists {
			return nil, fmt.Errorf("vertex %q: %w", name, ErrDuplicateVertex)
		}
		g.names[i] = name
		g.index[name] = i
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// AddEdge connects two named vertices. Weight is ignored on unweighted
// graphs. On undirected graphs the edge is stored once with From < To.
func (g *Graph) AddEdge(from, to string, weight float64) error {
	u, ok := g.index[from]
	if !ok {
		return fmt.Errorf("%q: %w", from, ErrUnknownVertex)
	}
	v, ok := g.index[to]
	if !ok {
		return fmt.Errorf("%q: %w", to, ErrUnknownVertex)
	}
	if u == v {
		return fmt.Errorf("%q: %w", from, ErrSelfLoop)
	}
	if !g.weighted {
		weight = 0
	}
	if !g.directed && u > v {
		u, v = v, u
	}
	idx := len(g.edges)
	g.edges = append(g.edges, Edge{From: u, To: v, Weight: weight})
	g.adj[u] = append(g.adj[u], v)
	g.inc[u] = append(g.inc[u], idx)
	if g.directed {
		g.radj[v] = append(g.radj[v], u)
	} else {
		g.adj[v] = append(g.adj[v], u)
		g.inc[v] = append(g.inc[v], idx)
	}
	return nil
}

// Order returns the number of vertices.
func (g *Graph) Order() int { return len(g.names) }

// Size returns the number of edges.
func (g *Graph) Size() int { return len(g.edges) }

// Directed reports whether edges are one-way.
func (g *Graph) Directed() bool { return g.directed }

// Weighted reports whether edges carry connection strengths.
func (g *Graph) Weighted() bool { return g.weighted }

// Type returns the graph type (observed or random).
func (g *Graph) Type() Type { return g.typ }

// Atlas returns the attached atlas table, or nil.
func (g *Graph) Atlas() *atlas.Atlas { return g.atlas }

// Names returns the vertex names in index order. The returned slice is the
// graph's own backing array; callers must not modify it.
func (g *Graph) Names() []string { return g.names }

// Name returns the name of vertex v.
func (g *Graph) Name(v int) string { return g.names[v] }

// Index returns the vertex id for a name, or -1 if absent.
func (g *Graph) Index(name string) int {
	if i, ok := g.index[name]; ok {
		return i
	}
	return -1
}

// Edges returns the edge slice in insertion order. Callers must not modify it.
func (g *Graph) Edges() []Edge { return g.edges }

// Edge returns the edge at index i.
func (g *Graph) Edge(i int) Edge { return g.edges[i] }

// Neighbors returns the neighbor ids of v (out-neighbors when directed).
// Callers must not modify the returned slice.
func (g *Graph) Neighbors(v int) []int { return g.adj[v] }

// InNeighbors returns the in-neighbors of v on directed graphs. On
// undirected graphs it is identical to Neighbors.
func (g *Graph) InNeighbors(v int) []int {
	if !g.directed {
		return g.adj[v]
	}
	return g.radj[v]
}

// Incident returns the indices of edges incident to v (outgoing when
// directed). Callers must not modify the returned slice.
func (g *Graph) Incident(v int) []int { return g.inc[v] }

// Degree returns the number of edges incident to v. For directed graphs this
// is out-degree plus in-degree.
func (g *Graph) Degree(v int) int {
	if !g.directed {
		return len(g.adj[v])
	}
	return len(g.adj[v]) + len(g.radj[v])
}

// Strength returns the sum of weights of edges incident to v.
// On unweighted graphs it equals the degree.
func (g *Graph) Strength(v int) float64 {
	if !g.weighted {
		return float64(g.Degree(v))
	}
	s := 0.0
	for _, ei := range g.inc[v] {
		s += g.edges[ei].Weight
	}
	if g.directed {
		for _, ei := range g.incomingEdges(v) {
			s += g.edges[ei].Weight
		}
	}
	return s
}

func (g *Graph) incomingEdges(v int) []int {
	var in []int
	for i, e := range g.edges {
		if e.To == v {
			in = append(in, i)
		}
	}
	return in
}

// Weights returns a copy of the edge weight array, index-aligned with Edges.
func (g *Graph) Weights() []float64 {
	w := make([]float64, len(g.edges))
	for i, e := range g.edges {
		w[i] = e.Weight
	}
	return w
}

// SetWeights replaces all edge weights from an index-aligned array.
// Used by the weight transformer to swap strength and cost domains.
func (g *Graph) SetWeights(w []float64) error {
	if len(w) != len(g.edges) {
		return fmt.Errorf("weights: %w", ErrAttrLength)
	}
	for i := range g.edges {
		g.edges[i].Weight = w[i]
	}
	return nil
}

// MinWeight returns the smallest edge weight, or 0 for edgeless graphs.
func (g *Graph) MinWeight() float64 {
	if len(g.edges) == 0 {
		return 0
	}
	min := g.edges[0].Weight
	for _, e := range g.edges[1:] {
		if e.Weight < min {
			min = e.Weight
		}
	}
	return min
}

// MaxWeight returns the largest edge weight, or 0 for edgeless graphs.
func (g *Graph) MaxWeight() float64 {
	if len(g.edges) == 0 {
		return 0
	}
	max := g.edges[0].Weight
	for _, e := range g.edges[1:] {
		if e.Weight > max {
			max = e.Weight
		}
	}
	return max
}

// HasNegativeWeight reports whether any edge weight is below zero.
// Negative correlations survive in some connectivity pipelines; their
// presence disables the distance-based weighted metrics.
func (g *Graph) HasNegativeWeight() bool {
	for _, e := range g.edges {
		if e.Weight < 0 {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the topology and all attribute bags.
// The atlas reference is shared; atlas tables are immutable after load.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		names:      append([]string(nil), g.names...),
		index:      make(map[string]int, len(g.index)),
		edges:      append([]Edge(nil), g.edges...),
		adj:        make([][]int, len(g.adj)),
		radj:       make([][]int, len(g.radj)),
		inc:        make([][]int, len(g.inc)),
		directed:   g.directed,
		weighted:   g.weighted,
		typ:        g.typ,
		atlas:      g.atlas,
		graphAttr:  make(map[string]any, len(g.graphAttr)),
		vertexAttr: make(map[string][]float64, len(g.vertexAttr)),
		vertexInts: make(map[string][]int, len(g.vertexInts)),
		vertexStrs: make(map[string][]string, len(g.vertexStrs)),
		edgeAttr:   make(map[string][]float64, len(g.edgeAttr)),
		edgeStrs:   make(map[string][]string, len(g.edgeStrs)),
	}
	for k, v := range g.index {
		c.index[k] = v
	}
	for i := range g.adj {
		c.adj[i] = append([]int(nil), g.adj[i]...)
		c.radj[i] = append([]int(nil), g.radj[i]...)
		c.inc[i] = append([]int(nil), g.inc[i]...)
	}
	for k, v := range g.graphAttr {
		c.graphAttr[k] = v
	}
	for k, v := range g.vertexAttr {
		c.vertexAttr[k] = append([]float64(nil), v...)
	}
	for k, v := range g.vertexInts {
		c.vertexInts[k] = append([]int(nil), v...)
	}
	for k, v := range g.vertexStrs {
		c.vertexStrs[k] = append([]string(nil), v...)
	}
	for k, v := range g.edgeAttr {
		c.edgeAttr[k] = append([]float64(nil), v...)
	}
	for k, v := range g.edgeStrs {
		c.edgeStrs[k] = append([]string(nil), v...)
	}
	return c
}
