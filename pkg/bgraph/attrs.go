package bgraph

import (
	"fmt"
	"sort"
)

// SetGraphAttr stores a graph-level attribute. Existing values are
// overwritten; augmentation passes replace stale attributes in place.
func (g *Graph) SetGraphAttr(name string, value any) {
	g.graphAttr[name] = value
}

// GraphAttr returns a graph-level attribute.
func (g *Graph) GraphAttr(name string) (any, bool) {
	v, ok := g.graphAttr[name]
	return v, ok
}

// GraphAttrFloat returns a graph-level attribute as a float64.
// Returns false if the attribute is absent or not numeric.
func (g *Graph) GraphAttrFloat(name string) (float64, bool) {
	v, ok := g.graphAttr[name]
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	}
	return 0, false
}

// DeleteGraphAttr removes a graph-level attribute.
func (g *Graph) DeleteGraphAttr(name string) {
	delete(g.graphAttr, name)
}

// GraphAttrNames returns all graph-level attribute names, sorted.
func (g *Graph) GraphAttrNames() []string {
	names := make([]string, 0, len(g.graphAttr))
	for k := range g.graphAttr {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// SetVertexAttr stores a |V|-long float attribute array.
func (g *Graph) SetVertexAttr(name string, values []float64) error {
	if len(values) != len(g.names) {
		return fmt.Errorf("vertex attr %q: len %d != |V| %d: %w", name, len(values), len(g.names), ErrAttrLength)
	}
	g.vertexAttr[name] = values
	return nil
}

// VertexAttr returns a float vertex attribute array.
// Callers must not modify the returned slice.
func (g *Graph) VertexAttr(name string) ([]float64, bool) {
	v, ok := g.vertexAttr[name]
	return v, ok
}

// SetVertexInts stores a |V|-long integer attribute array (memberships,
// core indices, component ids).
func (g *Graph) SetVertexInts(name string, values []int) error {
	if len(values) != len(g.names) {
		return fmt.Errorf("vertex attr %q: len %d != |V| %d: %w", name, len(values), len(g.names), ErrAttrLength)
	}
	g.vertexInts[name] = values
	return nil
}

// VertexInts returns an integer vertex attribute array.
func (g *Graph) VertexInts(name string) ([]int, bool) {
	v, ok := g.vertexInts[name]
	return v, ok
}

// SetVertexStrings stores a |V|-long string attribute array (colors, lobes).
func (g *Graph) SetVertexStrings(name string, values []string) error {
	if len(values) != len(g.names) {
		return fmt.Errorf("vertex attr %q: len %d != |V| %d: %w", name, len(values), len(g.names), ErrAttrLength)
	}
	g.vertexStrs[name] = values
	return nil
}

// VertexStrings returns a string vertex attribute array.
func (g *Graph) VertexStrings(name string) ([]string, bool) {
	v, ok := g.vertexStrs[name]
	return v, ok
}

// SetEdgeAttr stores a |E|-long float attribute array.
func (g *Graph) SetEdgeAttr(name string, values []float64) error {
	if len(values) != len(g.edges) {
		return fmt.Errorf("edge attr %q: len %d != |E| %d: %w", name, len(values), len(g.edges), ErrAttrLength)
	}
	g.edgeAttr[name] = values
	return nil
}

// EdgeAttr returns a float edge attribute array.
func (g *Graph) EdgeAttr(name string) ([]float64, bool) {
	v, ok := g.edgeAttr[name]
	return v, ok
}

// SetEdgeStrings stores a |E|-long string attribute array (colors).
func (g *Graph) SetEdgeStrings(name string, values []string) error {
	if len(values) != len(g.edges) {
		return fmt.Errorf("edge attr %q: len %d != |E| %d: %w", name, len(values), len(g.edges), ErrAttrLength)
	}
	g.edgeStrs[name] = values
	return nil
}

// EdgeStrings returns a string edge attribute array.
func (g *Graph) EdgeStrings(name string) ([]string, bool) {
	v, ok := g.edgeStrs[name]
	return v, ok
}

// VertexAttrNames returns the names of all vertex attributes, sorted.
func (g *Graph) VertexAttrNames() []string {
	names := make([]string, 0, len(g.vertexAttr)+len(g.vertexInts)+len(g.vertexStrs))
	for k := range g.vertexAttr {
		names = append(names, k)
	}
	for k := range g.vertexInts {
		names = append(names, k)
	}
	for k := range g.vertexStrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// EdgeAttrNames returns the names of all edge attributes, sorted.
func (g *Graph) EdgeAttrNames() []string {
	names := make([]string, 0, len(g.edgeAttr)+len(g.edgeStrs))
	for k := range g.edgeAttr {
		names = append(names, k)
	}
	for k := range g.edgeStrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Renumber remaps arbitrary positive membership ids onto 1..k ordered by
// group size: group 1 is the largest, group 2 the second largest, and so on.
// Ties break by first-encountered order, so the result is deterministic and
// stable under permutation of the input as long as vertex order is preserved
// per group discovery.
func Renumber(membership []int) []int {
	type group struct {
		id    int
		size  int
		first int // index of first occurrence, for stable tie-breaking
	}
	order := make([]group, 0)
	pos := make(map[int]int) // raw id -> index into order
	for i, raw := range membership {
		j, seen := pos[raw]
		if !seen {
			pos[raw] = len(order)
			order = append(order, group{id: raw, first: i})
			j = len(order) - 1
		}
		order[j].size++
	}
	sort.SliceStable(order, func(a, b int) bool {
		if order[a].size != order[b].size {
			return order[a].size > order[b].size
		}
		return order[a].first < order[b].first
	})
	remap := make(map[int]int, len(order))
	for rank, grp := range order {
		remap[grp.id] = rank + 1
	}
	out := make([]int, len(membership))
	for i, raw := range membership {
		out[i] = remap[raw]
	}
	return out
}
