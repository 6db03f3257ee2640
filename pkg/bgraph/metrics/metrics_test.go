package metrics

import (
	"testing"

	"github.com/cverad/connectome/pkg/bgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentsLargestFirst(t *testing.T) {
	// One triangle, one pair, one isolate; discovery order starts at the pair.
	g, err := bgraph.New([]string{"p", "q", "x", "a", "b", "c"})
	require.NoError(t, err)
	require.NoError(t, g.AddEdge("p", "q", 1))
	require.NoError(t, g.AddEdge("a", "b", 1))
	require.NoError(t, g.AddEdge("b", "c", 1))
	require.NoError(t, g.AddEdge("a", "c", 1))

	membership, sizes := Components(g)
	assert.Equal(t, []int{3, 2, 1}, sizes)
	assert.Equal(t, []int{2, 2, 3, 1, 1, 1}, membership)
	assert.False(t, IsConnected(g))
}

func TestKCore(t *testing.T) {
	// K4 with a pendant chain: K4 vertices are 3-core, chain degrades.
	g, err := bgraph.New([]string{"a", "b", "c", "d", "e", "f"})
	require.NoError(t, err)
	for _, e := range [][2]string{
		{"a", "b"}, {"a", "c"}, {"a", "d"}, {"b", "c"}, {"b", "d"}, {"c", "d"},
		{"d", "e"}, {"e", "f"},
	} {
		require.NoError(t, g.AddEdge(e[0], e[1], 1))
	}
	core := KCore(g)
	assert.Equal(t, []int{3, 3, 3, 3, 1, 1}, core)
}

func TestSCoreLevelsOrder(t *testing.T) {
	// Heavier triangle outlasts a light pendant under strength peeling.
	g, err := bgraph.New([]string{"a", "b", "c", "d"}, bgraph.WithWeighted())
	require.NoError(t, err)
	require.NoError(t, g.AddEdge("a", "b", 5))
	require.NoError(t, g.AddEdge("b", "c", 5))
	require.NoError(t, g.AddEdge("a", "c", 5))
	require.NoError(t, g.AddEdge("c", "d", 0.1))

	level := SCore(g)
	assert.Greater(t, level[0], level[3])
	assert.Equal(t, level[0], level[1])
}

func TestTransitivity(t *testing.T) {
	// Triangle with a pendant off a.
	g, err := bgraph.New([]string{"a", "b", "c", "d"})
	require.NoError(t, err)
	for _, e := range [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}, {"a", "d"}} {
		require.NoError(t, g.AddEdge(e[0], e[1], 1))
	}

	assert.Equal(t, 1, TriangleCount(g))

	local := LocalTransitivity(g)
	assert.InDelta(t, 1.0/3, local[0], 1e-12) // one of three neighbor pairs closed
	assert.InDelta(t, 1.0, local[1], 1e-12)
	assert.Equal(t, 0.0, local[3], "pendant defaults to zero")

	// closed triplets 3, open: a contributes 3 triples, b,c 1 each => 5
	assert.InDelta(t, 3.0/5, GlobalTransitivity(g), 1e-12)
}

func TestWeightedLocalTransitivityUniformMatchesBinary(t *testing.T) {
	g, err := bgraph.New([]string{"a", "b", "c", "d"}, bgraph.WithWeighted())
	require.NoError(t, err)
	for _, e := range [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}, {"a", "d"}} {
		require.NoError(t, g.AddEdge(e[0], e[1], 2))
	}
	wcc := WeightedLocalTransitivity(g)
	cc := LocalTransitivity(g)
	for v := range wcc {
		assert.InDelta(t, cc[v], wcc[v], 1e-12, "uniform weights reduce to binary clustering")
	}
}

func TestRichClubCurve(t *testing.T) {
	g := star(t, 4)
	curve := RichClubCurve(g)
	require.Len(t, curve, 4)
	// k=0: whole graph, density of the star.
	assert.InDelta(t, 2.0*4/(5*4), curve[0].Phi, 1e-12)
	// k=1: only the center survives, no club.
	assert.Equal(t, 1, curve[1].N)
	assert.Equal(t, 0.0, curve[1].Phi)
}

func TestWeightedRichClubCurve(t *testing.T) {
	// Two high-degree vertices joined by the strongest edge.
	g, err := bgraph.New([]string{"a", "b", "x", "y", "z"}, bgraph.WithWeighted())
	require.NoError(t, err)
	require.NoError(t, g.AddEdge("a", "b", 10))
	for _, leaf := range []string{"x", "y"} {
		require.NoError(t, g.AddEdge("a", leaf, 1))
		require.NoError(t, g.AddEdge("b", leaf, 1))
	}
	require.NoError(t, g.AddEdge("x", "z", 1))

	curve := WeightedRichClubCurve(g)
	// At k=2 the club is {a,b,x} and holds the strongest edge.
	rc := curve[2]
	assert.Equal(t, 3, rc.N)
	assert.InDelta(t, 12.0/12, rc.Phi, 1e-12) // weights 10+1+1 over top-3 10+1+1
}

func TestDegreeAssortativityStar(t *testing.T) {
	assert.InDelta(t, -1.0, DegreeAssortativity(star(t, 4)), 1e-12)
}

func TestNominalAssortativity(t *testing.T) {
	// Perfectly assortative: edges stay within label groups.
	g, err := bgraph.New([]string{"a", "b", "c", "d"})
	require.NoError(t, err)
	require.NoError(t, g.AddEdge("a", "b", 1))
	require.NoError(t, g.AddEdge("c", "d", 1))
	r, err := NominalAssortativity(g, []int{1, 1, 2, 2})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 1e-12)

	// Perfectly disassortative on a star: center label differs from leaves.
	s := star(t, 3)
	r, err = NominalAssortativity(s, []int{1, 2, 2, 2})
	require.NoError(t, err)
	assert.Less(t, r, 0.0)

	_, err = NominalAssortativity(g, []int{1})
	assert.Error(t, err)
}

func TestParticipationCoeff(t *testing.T) {
	g := path(t)
	// All in one community: participation 0 everywhere.
	p, err := ParticipationCoeff(g, []int{1, 1, 1, 1}, false)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0}, p)

	// b straddles both communities evenly: 1 - 2*(1/2)^2 = 1/2.
	p, err = ParticipationCoeff(g, []int{1, 1, 2, 2}, false)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p[1], 1e-12)
	assert.Equal(t, 0.0, p[0])
}

func TestGatewayCoeffBounds(t *testing.T) {
	g := path(t)
	btwn, _ := Betweenness(g, false)
	gw, err := GatewayCoeff(g, []int{1, 1, 2, 2}, btwn, false)
	require.NoError(t, err)
	for v, x := range gw {
		assert.GreaterOrEqual(t, x, 0.0, "vertex %d", v)
		assert.LessOrEqual(t, x, 1.0, "vertex %d", v)
	}
	p, err := ParticipationCoeff(g, []int{1, 1, 2, 2}, false)
	require.NoError(t, err)
	for v := range gw {
		assert.GreaterOrEqual(t, gw[v], p[v], "gateway only discounts terms")
	}
}

func TestWithinModuleZScore(t *testing.T) {
	// Community 1 is a star of c with x,y: within-strengths c=2, x=y=1.
	g, err := bgraph.New([]string{"c", "x", "y", "q"})
	require.NoError(t, err)
	require.NoError(t, g.AddEdge("c", "x", 1))
	require.NoError(t, g.AddEdge("c", "y", 1))

	z, err := WithinModuleZScore(g, []int{1, 1, 1, 2}, false)
	require.NoError(t, err)
	assert.Greater(t, z[0], 0.0)
	assert.InDelta(t, z[1], z[2], 1e-12)
	assert.Equal(t, 0.0, z[3], "singleton community has no variance")

	sum := z[0] + z[1] + z[2]
	assert.InDelta(t, 0.0, sum, 1e-12, "z-scores center within each community")
}

func TestWeightedNearestNeighborDegree(t *testing.T) {
	g, err := bgraph.New([]string{"a", "b", "c"}, bgraph.WithWeighted())
	require.NoError(t, err)
	require.NoError(t, g.AddEdge("a", "b", 3))
	require.NoError(t, g.AddEdge("b", "c", 1))

	knn := WeightedNearestNeighborDegree(g)
	assert.InDelta(t, 2.0, knn[0], 1e-12, "a's only neighbor b has degree 2")
	// b: (3*1 + 1*1)/4
	assert.InDelta(t, 1.0, knn[1], 1e-12)
}

func TestHubScoresStar(t *testing.T) {
	g := star(t, 9)
	btwn, _ := Betweenness(g, false)
	trans := LocalTransitivity(g)
	plen, _ := PathLength(Distances(g, false))

	scores := HubScores(g, false, btwn, trans, plen)
	assert.Greater(t, scores[0], HubThreshold, "star center is a hub")
	assert.Equal(t, 1, NumHubs(scores))
}

func TestDensity(t *testing.T) {
	g := path(t)
	assert.InDelta(t, 0.5, Density(g), 1e-12) // 3 of 6 possible

	d, err := bgraph.New([]string{"a", "b"}, bgraph.WithDirected())
	require.NoError(t, err)
	require.NoError(t, d.AddEdge("a", "b", 1))
	assert.InDelta(t, 0.5, Density(d), 1e-12)
}

func TestStrengths(t *testing.T) {
	g := path(t, 2, 4, 6)
	vertex, mean := Strengths(g)
	assert.Equal(t, []float64{2, 6, 10, 6}, vertex)
	assert.InDelta(t, 6.0, mean, 1e-12)
}

func TestEdgeSpatialDistances(t *testing.T) {
	g := path(t)
	coords := [][3]float64{{0, 0, 0}, {3, 4, 0}, {3, 4, 12}, {3, 4, 12}}
	edge, mean, err := EdgeSpatialDistances(g, coords)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 12, 0}, edge)
	assert.InDelta(t, 17.0/3, mean, 1e-12)

	disp, weighted, err := SpatialDispersion(g, edge)
	require.NoError(t, err)
	assert.InDelta(t, 8.5, disp[1], 1e-12) // (5+12)/2
	assert.InDelta(t, 17.0, weighted[1], 1e-12)
	assert.Equal(t, 5.0, disp[0])
}

func TestEdgeAsymmetry(t *testing.T) {
	// Two left-hemisphere edges, one right, one crossing.
	g, err := bgraph.New([]string{"l1", "l2", "l3", "r1", "r2"})
	require.NoError(t, err)
	for _, e := range [][2]string{{"l1", "l2"}, {"l2", "l3"}, {"r1", "r2"}, {"l1", "r1"}} {
		require.NoError(t, g.AddEdge(e[0], e[1], 1))
	}
	hemi := []string{"L", "L", "L", "R", "R"}
	adj := g.AdjacencyMatrix()

	graph, vertex, err := EdgeAsymmetry(g, adj, hemi)
	require.NoError(t, err)
	assert.InDelta(t, (2.0-1)/(2+1), graph, 1e-12)
	assert.InDelta(t, 0.0, vertex[0], 1e-12, "l1 has one L and one R neighbor")
	assert.InDelta(t, 1.0, vertex[2], 1e-12, "l3 connects only leftward")
}
