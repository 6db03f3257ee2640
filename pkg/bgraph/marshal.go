package bgraph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cverad/connectome/pkg/atlas"
)

// wireGraph is the canonical JSON serialization of an annotated brain graph.
// It is the interchange format between the CLI, the HTTP API, the cache, and
// the result store, and is designed for round-trip fidelity: import →
// augment → export → re-import preserves topology and attributes.
type wireGraph struct {
	Type     Type       `json:"type"`
	Directed bool       `json:"directed,omitempty"`
	Weighted bool       `json:"weighted,omitempty"`
	Atlas    string     `json:"atlas,omitempty"`
	Nodes    []wireNode `json:"nodes"`
	Edges    []wireEdge `json:"edges"`

	GraphAttrs  map[string]any       `json:"graph_attrs,omitempty"`
	VertexAttrs map[string][]float64 `json:"vertex_attrs,omitempty"`
	VertexInts  map[string][]int     `json:"vertex_int_attrs,omitempty"`
	VertexStrs  map[string][]string  `json:"vertex_str_attrs,omitempty"`
	EdgeAttrs   map[string][]float64 `json:"edge_attrs,omitempty"`
	EdgeStrs    map[string][]string  `json:"edge_str_attrs,omitempty"`
}

type wireNode struct {
	Name string `json:"name"`
}

type wireEdge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight,omitempty"`
}

// Marshal serializes the graph to JSON bytes.
func Marshal(g *Graph) ([]byte, error) {
	w := wireGraph{
		Type:     g.typ,
		Directed: g.directed,
		Weighted: g.weighted,
		Nodes:    make([]wireNode, g.Order()),
		Edges:    make([]wireEdge, g.Size()),
	}
	if g.atlas != nil {
		w.Atlas = g.atlas.Name()
	}
	for i, name := range g.names {
		w.Nodes[i] = wireNode{Name: name}
	}
	for i, e := range g.edges {
		w.Edges[i] = wireEdge{From: g.names[e.From], To: g.names[e.To], Weight: e.Weight}
	}
	if len(g.graphAttr) > 0 {
		w.GraphAttrs = g.graphAttr
	}
	if len(g.vertexAttr) > 0 {
		w.VertexAttrs = g.vertexAttr
	}
	if len(g.vertexInts) > 0 {
		w.VertexInts = g.vertexInts
	}
	if len(g.vertexStrs) > 0 {
		w.VertexStrs = g.vertexStrs
	}
	if len(g.edgeAttr) > 0 {
		w.EdgeAttrs = g.edgeAttr
	}
	if len(g.edgeStrs) > 0 {
		w.EdgeStrs = g.edgeStrs
	}
	return json.Marshal(w)
}

// Read decodes a JSON graph from r. If the serialized graph references an
// atlas by name, the built-in table of that name is attached; unknown names
// are left detached rather than failing the load. The reader is not closed.
func Read(r io.Reader) (*Graph, error) {
	var w wireGraph
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}

	names := make([]string, len(w.Nodes))
	for i, n := range w.Nodes {
		names[i] = n.Name
	}
	opts := []Option{}
	if w.Directed {
		opts = append(opts, WithDirected())
	}
	if w.Weighted {
		opts = append(opts, WithWeighted())
	}
	if w.Type != "" {
		opts = append(opts, WithType(w.Type))
	}
	if w.Atlas != "" {
		if a, err := atlas.Builtin(w.Atlas); err == nil {
			opts = append(opts, WithAtlas(a))
		}
	}
	g, err := New(names, opts...)
	if err != nil {
		return nil, err
	}
	for _, e := range w.Edges {
		if err := g.AddEdge(e.From, e.To, e.Weight); err != nil {
			return nil, fmt.Errorf("edge %s-%s: %w", e.From, e.To, err)
		}
	}

	for k, v := range w.GraphAttrs {
		g.SetGraphAttr(k, v)
	}
	for k, v := range w.VertexAttrs {
		if err := g.SetVertexAttr(k, v); err != nil {
			return nil, err
		}
	}
	for k, v := range w.VertexInts {
		if err := g.SetVertexInts(k, v); err != nil {
			return nil, err
		}
	}
	for k, v := range w.VertexStrs {
		if err := g.SetVertexStrings(k, v); err != nil {
			return nil, err
		}
	}
	for k, v := range w.EdgeAttrs {
		if err := g.SetEdgeAttr(k, v); err != nil {
			return nil, err
		}
	}
	for k, v := range w.EdgeStrs {
		if err := g.SetEdgeStrings(k, v); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Import reads a JSON graph file at path.
func Import(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	g, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Export writes the graph as JSON to path.
func Export(g *Graph, path string) error {
	data, err := Marshal(g)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
