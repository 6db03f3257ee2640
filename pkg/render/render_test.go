package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cverad/connectome/pkg/bgraph"
	"github.com/cverad/connectome/pkg/bgraph/colorize"
)

func TestToDOTUndirectedColors(t *testing.T) {
	g, err := bgraph.New([]string{"a", "b", "c"})
	require.NoError(t, err)
	require.NoError(t, g.AddEdge("a", "b", 1))
	require.NoError(t, g.AddEdge("b", "c", 1))
	require.NoError(t, colorize.Assign(g, "comm", []int{1, 1, 2}))

	dot := ToDOT(g, Options{Partition: "comm", Labels: true})

	assert.True(t, strings.HasPrefix(dot, "graph connectome {"))
	assert.Contains(t, dot, `"a" -- "b"`)
	assert.NotContains(t, dot, "->")
	assert.Contains(t, dot, `label="a"`)
	assert.Contains(t, dot, "fillcolor=")
	assert.Contains(t, dot, `color=`)
}

func TestToDOTDirectedPlain(t *testing.T) {
	g, err := bgraph.New([]string{"a", "b"}, bgraph.WithDirected())
	require.NoError(t, err)
	require.NoError(t, g.AddEdge("a", "b", 1))

	dot := ToDOT(g, Options{})
	assert.True(t, strings.HasPrefix(dot, "digraph connectome {"))
	assert.Contains(t, dot, `"a" -> "b";`)
	assert.Contains(t, dot, "shape=point")
}

func TestToDOTWeightedPenWidth(t *testing.T) {
	g, err := bgraph.New([]string{"a", "b", "c"}, bgraph.WithWeighted())
	require.NoError(t, err)
	require.NoError(t, g.AddEdge("a", "b", 1))
	require.NoError(t, g.AddEdge("b", "c", 4))

	dot := ToDOT(g, Options{WeightedEdges: true})
	// Strongest edge gets the full pen width, the rest scale down.
	assert.Contains(t, dot, "penwidth=3.00")
	assert.Contains(t, dot, "penwidth=1.12")
}
