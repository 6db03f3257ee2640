package augment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cverad/connectome/pkg/atlas"
	"github.com/cverad/connectome/pkg/bgraph"
	"github.com/cverad/connectome/pkg/bgraph/community"
	"github.com/cverad/connectome/pkg/bgraph/transform"
	"github.com/cverad/connectome/pkg/errors"
)

// twoTriangles builds two weighted triangles joined by a single bridge.
// Weights are dyadic so the reciprocal transform round-trips exactly.
func twoTriangles(t *testing.T, bridge float64) *bgraph.Graph {
	t.Helper()
	g, err := bgraph.New([]string{"a", "b", "c", "d", "e", "f"}, bgraph.WithWeighted())
	require.NoError(t, err)
	for _, e := range []struct {
		from, to string
		w        float64
	}{
		{"a", "b", 2}, {"a", "c", 2}, {"b", "c", 4},
		{"c", "d", bridge},
		{"d", "e", 2}, {"d", "f", 2}, {"e", "f", 4},
	} {
		require.NoError(t, g.AddEdge(e.from, e.to, e.w))
	}
	return g
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	require.NoError(t, o.ValidateAndSetDefaults())
	assert.Equal(t, community.Louvain, o.CommunityMethod)
	assert.Equal(t, transform.Reciprocal, o.Transform)
	assert.Equal(t, DefaultSeed, o.Seed)
	assert.NotNil(t, o.Logger)
}

func TestOptionsRejectsUnknowns(t *testing.T) {
	o := Options{CommunityMethod: "nope"}
	err := o.ValidateAndSetDefaults()
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidMethod))

	o = Options{Transform: "nope"}
	err = o.ValidateAndSetDefaults()
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidTransform))
}

func TestAugmentObservedWeighted(t *testing.T) {
	g := twoTriangles(t, 0.5)
	before := append([]float64(nil), g.Weights()...)

	warns, err := Augment(context.Background(), g, Options{})
	require.NoError(t, err)
	assert.Empty(t, warns)

	// Distance metrics ran on transformed weights; the originals came back.
	assert.Equal(t, before, g.Weights())

	density, ok := g.GraphAttrFloat(AttrDensity)
	require.True(t, ok)
	assert.InDelta(t, 7.0/15.0, density, 1e-12)
	nt, ok := g.GraphAttrFloat(AttrNumTri)
	require.True(t, ok)
	assert.Equal(t, 2.0, nt)
	mc, ok := g.GraphAttrFloat(AttrMaxComp)
	require.True(t, ok)
	assert.Equal(t, 6.0, mc)

	method, ok := g.GraphAttr(AttrCommMethod)
	require.True(t, ok)
	assert.Equal(t, community.Louvain, method)
	methodWt, ok := g.GraphAttr(wt(AttrCommMethod))
	require.True(t, ok)
	assert.Equal(t, community.Louvain, methodWt)

	comm, ok := g.VertexInts(VAttrComm)
	require.True(t, ok)
	assert.Equal(t, comm[0], comm[1])
	assert.Equal(t, comm[0], comm[2])
	assert.Equal(t, comm[3], comm[4])
	assert.NotEqual(t, comm[0], comm[3])

	// Both the unweighted and the weighted batteries landed.
	for _, name := range []string{
		AttrCp, AttrLp, AttrEGlobal, AttrMod, AttrDiameter, AttrAssort,
		AttrVulnerability, AttrNumHubs, AttrRich, AttrStrength,
		wt(AttrCp), wt(AttrLp), wt(AttrEGlobal), wt(AttrMod),
		wt(AttrDiameter), wt(AttrRich), wt(AttrNumHubs),
	} {
		_, ok := g.GraphAttr(name)
		assert.True(t, ok, "graph attr %q", name)
	}
	for _, name := range []string{
		VAttrDegree, VAttrStrength, VAttrKnn, VAttrBtwn, wt(VAttrBtwn),
		VAttrEv, VAttrLev, VAttrELocal, VAttrENodal, wt(VAttrELocal),
		VAttrEccentricity, VAttrLp, wt(VAttrLp), VAttrPC, wt(VAttrPC),
		VAttrZScore, wt(VAttrZScore), VAttrGC, wt(VAttrGC),
		VAttrVulnerability,
	} {
		_, ok := g.VertexAttr(name)
		assert.True(t, ok, "vertex attr %q", name)
	}
	for _, name := range []string{VAttrComp, VAttrComm, wt(VAttrComm), VAttrKCore, VAttrSCore, VAttrHubs, wt(VAttrHubs)} {
		_, ok := g.VertexInts(name)
		assert.True(t, ok, "vertex ints %q", name)
	}
	for _, name := range []string{EAttrBtwn, wt(EAttrBtwn)} {
		_, ok := g.EdgeAttr(name)
		assert.True(t, ok, "edge attr %q", name)
	}

	// Two communities means the partition got colored.
	colors, ok := g.VertexStrings("color." + VAttrComm)
	require.True(t, ok)
	assert.Equal(t, colors[0], colors[1])
	assert.NotEqual(t, colors[0], colors[3])
}

func TestAugmentNegativeWeightsDegrades(t *testing.T) {
	g := twoTriangles(t, 0.5)
	require.NoError(t, g.AddEdge("a", "e", -1))
	before := append([]float64(nil), g.Weights()...)

	warns, err := Augment(context.Background(), g, Options{})
	require.NoError(t, err)
	// One warning from the community resolver rerouting to walktrap, one
	// from the skipped weighted distance block.
	assert.Len(t, warns, 2)
	assert.Equal(t, before, g.Weights())

	methodWt, ok := g.GraphAttr(wt(AttrCommMethod))
	require.True(t, ok)
	assert.Equal(t, community.Walktrap, methodWt)
	_, ok = g.VertexInts(wt(VAttrComm))
	assert.True(t, ok)
	_, ok = g.VertexAttr(wt(VAttrPC))
	assert.True(t, ok)

	// The weighted distance battery never ran and no transform was applied.
	for _, name := range []string{wt(AttrLp), wt(AttrEGlobal), wt(AttrDiameter), transform.AttrKind} {
		_, ok := g.GraphAttr(name)
		assert.False(t, ok, "graph attr %q", name)
	}
	_, ok = g.VertexAttr(wt(VAttrBtwn))
	assert.False(t, ok)
	_, ok = g.EdgeAttr(wt(EAttrBtwn))
	assert.False(t, ok)
	_, ok = g.VertexInts(wt(VAttrHubs))
	assert.False(t, ok)
}

func TestAugmentRandomReducedSet(t *testing.T) {
	g, err := bgraph.New([]string{"a", "b", "c", "d"}, bgraph.WithType(bgraph.TypeRandom))
	require.NoError(t, err)
	for _, e := range [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}, {"c", "d"}} {
		require.NoError(t, g.AddEdge(e[0], e[1], 1))
	}

	warns, err := Augment(context.Background(), g, Options{})
	require.NoError(t, err)
	assert.Empty(t, warns)

	assert.Equal(t, []string{AttrCp, AttrEGlobal, AttrLp, AttrMod, AttrRich}, g.GraphAttrNames())
	assert.Empty(t, g.VertexAttrNames())
	assert.Empty(t, g.EdgeAttrNames())
}

func TestAugmentEdgeBetweennessMethod(t *testing.T) {
	g := twoTriangles(t, 0.5)
	before := append([]float64(nil), g.Weights()...)

	_, err := Augment(context.Background(), g, Options{CommunityMethod: community.EdgeBetweenness})
	require.NoError(t, err)
	assert.Equal(t, before, g.Weights())

	methodWt, ok := g.GraphAttr(wt(AttrCommMethod))
	require.True(t, ok)
	assert.Equal(t, community.EdgeBetweenness, methodWt)
	comm, ok := g.VertexInts(wt(VAttrComm))
	require.True(t, ok)
	assert.Equal(t, comm[0], comm[2])
	assert.NotEqual(t, comm[0], comm[3])
}

func TestAugmentAtlasBranch(t *testing.T) {
	a, err := atlas.NewAtlas("strip", []atlas.Region{
		{Name: "lFront1", Lobe: "frontal", Hemi: "L", X: 0},
		{Name: "lFront2", Lobe: "frontal", Hemi: "L", X: 1},
		{Name: "rPar1", Lobe: "parietal", Hemi: "R", X: 2},
		{Name: "rPar2", Lobe: "parietal", Hemi: "R", X: 3},
	})
	require.NoError(t, err)

	g, err := bgraph.New([]string{"lFront1", "lFront2", "rPar1", "rPar2"}, bgraph.WithAtlas(a))
	require.NoError(t, err)
	for _, e := range [][2]string{{"lFront1", "lFront2"}, {"lFront2", "rPar1"}, {"rPar1", "rPar2"}} {
		require.NoError(t, g.AddEdge(e[0], e[1], 1))
	}

	_, err = Augment(context.Background(), g, Options{})
	require.NoError(t, err)

	x, ok := g.VertexAttr(VAttrX)
	require.True(t, ok)
	assert.Equal(t, []float64{0, 1, 2, 3}, x)

	sd, ok := g.GraphAttrFloat(AttrSpatialDist)
	require.True(t, ok)
	assert.InDelta(t, 1.0, sd, 1e-12)

	al, ok := g.GraphAttrFloat(AttrAssortLobe)
	require.True(t, ok)
	assert.InDelta(t, 1.0/3.0, al, 1e-12)
	_, ok = g.GraphAttr(AttrAssortLobeHemi)
	assert.True(t, ok)

	asymm, ok := g.GraphAttrFloat(AttrAsymm)
	require.True(t, ok)
	assert.InDelta(t, 0, asymm, 1e-12)
	va, ok := g.VertexAttr(VAttrAsymm)
	require.True(t, ok)
	assert.Equal(t, []float64{1, 0, 0, -1}, va)

	colors, ok := g.VertexStrings("color." + VAttrLobe)
	require.True(t, ok)
	assert.Equal(t, colors[0], colors[1])
	assert.NotEqual(t, colors[0], colors[2])
}

func TestAugmentDirectedHITS(t *testing.T) {
	g, err := bgraph.New([]string{"a", "b", "c"}, bgraph.WithDirected())
	require.NoError(t, err)
	require.NoError(t, g.AddEdge("a", "b", 1))
	require.NoError(t, g.AddEdge("c", "b", 1))

	_, err = Augment(context.Background(), g, Options{})
	require.NoError(t, err)

	hub, ok := g.VertexAttr(VAttrHubScore)
	require.True(t, ok)
	auth, ok := g.VertexAttr(VAttrAuthScore)
	require.True(t, ok)
	assert.InDelta(t, 1, hub[0], 1e-9)
	assert.InDelta(t, 0, hub[1], 1e-9)
	assert.InDelta(t, 1, auth[1], 1e-9)
}

func TestAugmentUnknownGraphType(t *testing.T) {
	g, err := bgraph.New([]string{"a"}, bgraph.WithType(bgraph.Type("bogus")))
	require.NoError(t, err)
	_, err = Augment(context.Background(), g, Options{})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidGraphType))
}

func TestAugmentCanceledContext(t *testing.T) {
	g := twoTriangles(t, 0.5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Augment(ctx, g, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
