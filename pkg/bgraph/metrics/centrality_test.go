package metrics

import (
	"testing"

	"github.com/cverad/connectome/pkg/bgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// star builds a star with center "center" and n leaves.
func star(t *testing.T, leaves int) *bgraph.Graph {
	t.Helper()
	names := []string{"center"}
	for i := 0; i < leaves; i++ {
		names = append(names, string(rune('a'+i)))
	}
	g, err := bgraph.New(names)
	require.NoError(t, err)
	for _, leaf := range names[1:] {
		require.NoError(t, g.AddEdge("center", leaf, 1))
	}
	return g
}

func TestBetweennessPath(t *testing.T) {
	g := path(t)
	vertex, edge := Betweenness(g, false)

	// a-b-c-d: b lies on a-c and a-d, c on a-d and b-d.
	assert.Equal(t, []float64{0, 2, 2, 0}, vertex)
	// edge ab carries a-b, a-c, a-d; edge bc carries a-c, a-d, b-c, b-d.
	assert.Equal(t, []float64{3, 4, 3}, edge)
}

func TestBetweennessWeightedReroutes(t *testing.T) {
	// Triangle where the direct a-c edge is costlier than the a-b-c detour,
	// so b sits on the a-c shortest path.
	g, err := bgraph.New([]string{"a", "b", "c"}, bgraph.WithWeighted())
	require.NoError(t, err)
	require.NoError(t, g.AddEdge("a", "b", 1))
	require.NoError(t, g.AddEdge("b", "c", 1))
	require.NoError(t, g.AddEdge("a", "c", 5))
	vertex, _ := Betweenness(g, true)
	assert.Equal(t, 1.0, vertex[g.Index("b")])

	unw, _ := Betweenness(g, false)
	assert.Equal(t, 0.0, unw[g.Index("b")], "unweighted triangle has no intermediaries")
}

func TestEigenvectorCentralityStar(t *testing.T) {
	g := star(t, 4)
	x := EigenvectorCentrality(g)
	assert.InDelta(t, 1.0, x[0], 1e-9, "center dominates")
	for _, leaf := range x[1:] {
		assert.InDelta(t, 0.5, leaf, 1e-6) // leaves at 1/sqrt(k) of center
		assert.Less(t, leaf, x[0])
	}
}

func TestLeverageCentrality(t *testing.T) {
	g := star(t, 3)
	lev := LeverageCentrality(g)
	// Center degree 3 vs leaf degree 1: (3-1)/(3+1) per leaf.
	assert.InDelta(t, 0.5, lev[0], 1e-12)
	assert.InDelta(t, -0.5, lev[1], 1e-12)

	lone, err := bgraph.New([]string{"x"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, LeverageCentrality(lone))
}

func TestHITSDirectedChain(t *testing.T) {
	// a -> b <- c: a and c are pure hubs, b the only authority.
	g, err := bgraph.New([]string{"a", "b", "c"}, bgraph.WithDirected())
	require.NoError(t, err)
	require.NoError(t, g.AddEdge("a", "b", 1))
	require.NoError(t, g.AddEdge("c", "b", 1))

	hub, auth, value := HITS(g)
	assert.InDelta(t, 1.0, hub[0], 1e-9)
	assert.InDelta(t, 1.0, hub[2], 1e-9)
	assert.InDelta(t, 0.0, hub[1], 1e-9)
	assert.InDelta(t, 1.0, auth[1], 1e-9)
	assert.Greater(t, value, 0.0)
}
