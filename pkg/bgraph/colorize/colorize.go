// Package colorize assigns deterministic vertex and edge colors from group
// membership vectors, for downstream plotting of communities, components,
// and atlas groupings.
//
// The rules are fixed: singleton groups collapse to a neutral gray, larger
// groups draw distinct colors from a fixed palette indexed by renumbered
// group id, and an edge takes its endpoints' color only when both ends share
// a non-singleton group.
package colorize

import (
	"github.com/cverad/connectome/pkg/bgraph"
	"github.com/cverad/connectome/pkg/errors"
)

// Neutral is the color assigned to singleton groups and to edges that cross
// group boundaries.
const Neutral = "gray"

// palette is the fixed group color cycle. Group ids beyond the palette wrap
// around; the distinctness guarantee holds for up to len(palette) groups.
var palette = []string{
	"red", "cornflowerblue", "seagreen", "goldenrod", "mediumorchid",
	"tomato", "steelblue", "olivedrab", "darkorange", "hotpink",
	"turquoise", "firebrick", "slateblue", "yellowgreen", "sienna",
	"orchid", "dodgerblue", "salmon", "darkkhaki", "palevioletred",
}

// PaletteSize returns the number of distinct group colors available before
// the palette wraps.
func PaletteSize() int { return len(palette) }

// GroupColor returns the palette color for a renumbered group id (1-based).
func GroupColor(id int) string {
	return palette[(id-1)%len(palette)]
}

// Colors computes vertex and edge colors for a membership vector over g.
// The vector must be |V| long; ids are renumbered largest-group-first before
// palette assignment, so the same partition always yields the same colors
// regardless of raw id values.
//
// Vertex rule: a group with a single member gets [Neutral]; every group with
// two or more members gets its palette color. Edge rule: an edge is colored
// with its endpoints' shared group color iff both endpoints belong to the
// same non-singleton group, otherwise [Neutral]. Zero-edge graphs yield an
// empty, non-nil edge color slice.
func Colors(g *bgraph.Graph, membership []int) (vertex, edge []string, err error) {
	if len(membership) != g.Order() {
		return nil, nil, errors.New(errors.ErrCodeInvalidArgument,
			"membership length %d != vertex count %d", len(membership), g.Order())
	}

	m := bgraph.Renumber(membership)
	size := make(map[int]int)
	for _, id := range m {
		size[id]++
	}

	vertex = make([]string, len(m))
	for i, id := range m {
		if size[id] < 2 {
			vertex[i] = Neutral
			continue
		}
		vertex[i] = GroupColor(id)
	}

	edge = make([]string, g.Size())
	for i, e := range g.Edges() {
		if m[e.From] == m[e.To] && size[m[e.From]] >= 2 {
			edge[i] = vertex[e.From]
		} else {
			edge[i] = Neutral
		}
	}
	return vertex, edge, nil
}

// Assign computes colors for a grouping and attaches them to g as the
// attributes "color.<attr>" (vertex and edge level).
//
// When attr names a categorical atlas column (e.g. "lobe") and g carries an
// atlas, the membership is looked up from the atlas by vertex name in the
// graph's vertex order, and the passed vector is ignored. Otherwise the
// passed vector is used directly.
func Assign(g *bgraph.Graph, attr string, membership []int) error {
	if a := g.Atlas(); a != nil && a.HasColumn(attr) {
		looked, err := a.Membership(attr, g.Names())
		if err != nil {
			return err
		}
		membership = looked
	}
	vertex, edge, err := Colors(g, membership)
	if err != nil {
		return err
	}
	name := "color." + attr
	if err := g.SetVertexStrings(name, vertex); err != nil {
		return err
	}
	return g.SetEdgeStrings(name, edge)
}
