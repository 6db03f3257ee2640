package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cverad/connectome/pkg/bgraph"
	"github.com/cverad/connectome/pkg/errors"
)

func weightedGraph(t *testing.T, weights ...float64) *bgraph.Graph {
	t.Helper()
	names := bgraph.DefaultNames(len(weights) + 1)
	g, err := bgraph.New(names, bgraph.WithWeighted())
	require.NoError(t, err)
	for i, w := range weights {
		require.NoError(t, g.AddEdge(names[i], names[i+1], w))
	}
	return g
}

func TestRoundTripAllKinds(t *testing.T) {
	weights := []float64{0.12, 0.5, 0.87, 0.99, 0.33}
	for _, kind := range Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			g := weightedGraph(t, weights...)

			require.NoError(t, Apply(g, kind, false))
			require.NoError(t, Apply(g, kind, true))

			got := g.Weights()
			for i, w := range weights {
				assert.InDelta(t, w, got[i], 1e-12, "weight %d", i)
			}
		})
	}
}

func TestSelfInverseKindsAreExact(t *testing.T) {
	// Reciprocal and complement round-trip without any tolerance: the same
	// function is its own inverse.
	for _, kind := range []Kind{Reciprocal, Complement} {
		g := weightedGraph(t, 0.25, 0.5)
		orig := g.Weights()
		require.NoError(t, Apply(g, kind, false))
		require.NoError(t, Apply(g, kind, true))
		assert.Equal(t, orig, g.Weights(), "%s must be bit-exact", kind)
	}
}

func TestForwardValues(t *testing.T) {
	g := weightedGraph(t, 0.5)
	require.NoError(t, Apply(g, Reciprocal, false))
	assert.InDelta(t, 2.0, g.Weights()[0], 1e-15)

	kind, _ := g.GraphAttr(AttrKind)
	assert.Equal(t, string(Reciprocal), kind)
}

func TestNormalizedStoresMaxBeforeTransform(t *testing.T) {
	g := weightedGraph(t, 0.2, 0.8, 0.4)
	require.NoError(t, Apply(g, NegLog10Norm, false))

	stored, ok := g.GraphAttrFloat(AttrMaxWeight)
	require.True(t, ok, "max.weight attribute must be set")
	assert.Equal(t, 0.8, stored)

	// The strongest edge normalizes to distance 0.
	assert.InDelta(t, 0.0, g.Weights()[1], 1e-15)
}

func TestInvertNormalizedUsesStoredMax(t *testing.T) {
	g := weightedGraph(t, 0.2, 0.8)
	require.NoError(t, Apply(g, NegLog10Norm, false))

	// Inversion uses the persisted constant, not a recomputed one.
	g.SetGraphAttr(AttrMaxWeight, 1.6)
	require.NoError(t, Apply(g, NegLog10Norm, true))
	assert.InDelta(t, 0.4, g.Weights()[0], 1e-12)

	// Missing constant is a hard error.
	g2 := weightedGraph(t, 0.2)
	g2.DeleteGraphAttr(AttrMaxWeight)
	err := Apply(g2, NegLog10Norm, true)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "err = %v", err)
}

func TestUnweightedGraphRejected(t *testing.T) {
	g, err := bgraph.New([]string{"a", "b"})
	require.NoError(t, err)
	err = Apply(g, Reciprocal, false)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "err = %v", err)
}

func TestUnknownKindRejected(t *testing.T) {
	g := weightedGraph(t, 0.5)
	err := Apply(g, Kind("sqrt"), false)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidTransform), "err = %v", err)
}
