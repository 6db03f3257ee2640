package metrics

import (
	"math"
	"testing"

	"github.com/cverad/connectome/pkg/bgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// path builds the path graph a-b-c-d with the given weights.
func path(t *testing.T, weights ...float64) *bgraph.Graph {
	t.Helper()
	names := []string{"a", "b", "c", "d"}
	opts := []bgraph.Option{}
	if len(weights) > 0 {
		opts = append(opts, bgraph.WithWeighted())
	}
	g, err := bgraph.New(names, opts...)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		w := 1.0
		if len(weights) > 0 {
			w = weights[i]
		}
		require.NoError(t, g.AddEdge(names[i], names[i+1], w))
	}
	return g
}

func TestDistancesUnweighted(t *testing.T) {
	g := path(t)
	dist := Distances(g, false)
	assert.Equal(t, 0.0, dist[0][0])
	assert.Equal(t, 1.0, dist[0][1])
	assert.Equal(t, 2.0, dist[0][2])
	assert.Equal(t, 3.0, dist[0][3])
	assert.Equal(t, 1.0, dist[2][3])
}

func TestDistancesWeightedCosts(t *testing.T) {
	g := path(t, 0.5, 2, 0.25)
	dist := Distances(g, true)
	assert.InDelta(t, 2.5, dist[0][2], 1e-12)
	assert.InDelta(t, 2.75, dist[0][3], 1e-12)
}

func TestDistancesDisconnected(t *testing.T) {
	g, err := bgraph.New([]string{"a", "b", "c"})
	require.NoError(t, err)
	require.NoError(t, g.AddEdge("a", "b", 1))
	dist := Distances(g, false)
	assert.True(t, math.IsInf(dist[0][2], 1))
	assert.Equal(t, 1.0, dist[0][1])
}

func TestDiameterAndEccentricity(t *testing.T) {
	g := path(t)
	dist := Distances(g, false)
	assert.Equal(t, 3.0, Diameter(dist))

	ecc := Eccentricity(dist)
	assert.Equal(t, []float64{3, 2, 2, 3}, ecc)
}

func TestPathLength(t *testing.T) {
	g := path(t)
	vertex, graph := PathLength(Distances(g, false))
	assert.InDelta(t, 2.0, vertex[0], 1e-12) // (1+2+3)/3
	assert.InDelta(t, 4.0/3, vertex[1], 1e-12)
	// 12 ordered pairs: 2*(1+2+3) + 2*(1+1+2) ... mean = 5/3
	assert.InDelta(t, 5.0/3, graph, 1e-12)
}

func TestGlobalAndNodalEfficiency(t *testing.T) {
	g := path(t)
	dist := Distances(g, false)
	// ordered pairs: 1/1 x6, 1/2 x4, 1/3 x2 => (6 + 2 + 2/3)/12
	assert.InDelta(t, (6+2+2.0/3)/12, GlobalEfficiency(dist), 1e-12)

	eff := NodalEfficiency(dist)
	assert.InDelta(t, (1+0.5+1.0/3)/3, eff[0], 1e-12)
}

func TestLocalEfficiencyTriangleNeighborhood(t *testing.T) {
	// b and c are connected neighbors of a, d a pendant off a.
	g, err := bgraph.New([]string{"a", "b", "c", "d"})
	require.NoError(t, err)
	for _, e := range [][2]string{{"a", "b"}, {"a", "c"}, {"b", "c"}, {"a", "d"}} {
		require.NoError(t, g.AddEdge(e[0], e[1], 1))
	}
	eff := LocalEfficiency(g, false)
	// a's neighbors {b,c,d}: only b-c connected => pairs (b,c) at 1, others
	// unreachable within the subgraph => 2/(3*2)
	assert.InDelta(t, 1.0/3, eff[0], 1e-12)
	assert.InDelta(t, 1.0, eff[1], 1e-12, "b's neighbors a,c are connected")
	assert.Equal(t, 0.0, eff[3], "pendant has one neighbor")
}

func TestLocalEfficiencyParallelMatchesSerial(t *testing.T) {
	g := path(t)
	require.NoError(t, g.AddEdge("a", "c", 1))
	serial := LocalEfficiency(g, false)
	parallel := LocalEfficiency(g, false, WithWorkers(4))
	assert.Equal(t, serial, parallel)
}

func TestVulnerabilityBridge(t *testing.T) {
	// Two triangles joined through e: removing e disconnects the halves.
	g, err := bgraph.New([]string{"a", "b", "e", "c", "d"})
	require.NoError(t, err)
	for _, e := range [][2]string{{"a", "b"}, {"a", "e"}, {"b", "e"}, {"c", "d"}, {"c", "e"}, {"d", "e"}} {
		require.NoError(t, g.AddEdge(e[0], e[1], 1))
	}
	vuln, max := Vulnerability(g, false)
	bridge := g.Index("e")
	for v, x := range vuln {
		if v != bridge {
			assert.LessOrEqual(t, x, vuln[bridge])
		}
	}
	assert.Equal(t, vuln[bridge], max)
	assert.Greater(t, max, 0.0)
}
