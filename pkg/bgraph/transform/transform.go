// Package transform maps edge weights between the "strength" and "cost"
// domains.
//
// Connectivity weights encode strength: a high weight means a strong, close
// connection. Shortest-path algorithms interpret weight as distance: low
// means close. Every distance-based metric therefore runs on transformed
// weights, and the transformation must be perfectly invertible so the
// original strengths survive the call.
//
// The normalizing transforms persist max(w) as a graph attribute before
// transforming and reuse that stored value verbatim on inversion. Recomputing
// the maximum from the transformed graph would accumulate numerical drift
// across repeated round trips.
package transform

import (
	"math"

	"github.com/cverad/connectome/pkg/bgraph"
	"github.com/cverad/connectome/pkg/errors"
)

// Kind identifies a weight transform.
type Kind string

// Supported transforms.
const (
	// Reciprocal maps w to 1/w. Self-inverse.
	Reciprocal Kind = "reciprocal"
	// NegLog maps w to -ln(w); inverse is exp(-w).
	NegLog Kind = "neg-log"
	// Complement maps w to 1-w. Self-inverse; sensible for weights in (0,1).
	Complement Kind = "complement"
	// NegLog10Norm maps w to -log10(w/max(w)); inverse is max(w)/10^w.
	NegLog10Norm Kind = "neg-log10-normalized"
	// NegLog10NormPlus1 maps w to -log10(w/max(w)+1); inverse is
	// max(w)*(10^-w - 1).
	NegLog10NormPlus1 Kind = "neg-log10-normalized-plus-one"
)

// Graph attribute names written by Apply.
const (
	// AttrKind records which transform produced the current weight domain.
	AttrKind = "xfm.type"
	// AttrMaxWeight stores max(w) captured before a normalizing transform.
	AttrMaxWeight = "max.weight"
)

// Kinds returns all supported transform identifiers.
func Kinds() []Kind {
	return []Kind{Reciprocal, NegLog, Complement, NegLog10Norm, NegLog10NormPlus1}
}

// Valid reports whether k names a supported transform.
func Valid(k Kind) bool {
	for _, kind := range Kinds() {
		if kind == k {
			return true
		}
	}
	return false
}

// Apply maps all edge weights of g from the strength domain to the cost
// domain (or back, when invert is true) and records the transform kind as a
// graph attribute. The graph is modified in place.
//
// Returns INVALID_INPUT if the graph carries no weights, INVALID_TRANSFORM
// for an unknown kind, and INVALID_INPUT when inverting a normalizing
// transform whose stored maximum is missing.
func Apply(g *bgraph.Graph, kind Kind, invert bool) error {
	if !g.Weighted() {
		return errors.New(errors.ErrCodeInvalidInput, "graph has no weight attribute")
	}
	if !Valid(kind) {
		return errors.New(errors.ErrCodeInvalidTransform, "unknown transform %q (have %v)", kind, Kinds())
	}

	w := g.Weights()

	var maxW float64
	switch kind {
	case NegLog10Norm, NegLog10NormPlus1:
		if invert {
			stored, ok := g.GraphAttrFloat(AttrMaxWeight)
			if !ok {
				return errors.New(errors.ErrCodeInvalidInput, "inverting %s: graph attribute %q missing", kind, AttrMaxWeight)
			}
			maxW = stored
		} else {
			maxW = g.MaxWeight()
			g.SetGraphAttr(AttrMaxWeight, maxW)
		}
	}

	fn := forward(kind, maxW)
	if invert {
		fn = inverse(kind, maxW)
	}
	for i := range w {
		w[i] = fn(w[i])
	}
	if err := g.SetWeights(w); err != nil {
		return err
	}
	g.SetGraphAttr(AttrKind, string(kind))
	return nil
}

func forward(kind Kind, maxW float64) func(float64) float64 {
	switch kind {
	case Reciprocal:
		return func(w float64) float64 { return 1 / w }
	case NegLog:
		return func(w float64) float64 { return -math.Log(w) }
	case Complement:
		return func(w float64) float64 { return 1 - w }
	case NegLog10Norm:
		return func(w float64) float64 { return -math.Log10(w / maxW) }
	case NegLog10NormPlus1:
		return func(w float64) float64 { return -math.Log10(w/maxW + 1) }
	}
	panic("transform: unreachable")
}

func inverse(kind Kind, maxW float64) func(float64) float64 {
	switch kind {
	case Reciprocal:
		return func(w float64) float64 { return 1 / w }
	case NegLog:
		return func(w float64) float64 { return math.Exp(-w) }
	case Complement:
		return func(w float64) float64 { return 1 - w }
	case NegLog10Norm:
		return func(w float64) float64 { return maxW / math.Pow(10, w) }
	case NegLog10NormPlus1:
		return func(w float64) float64 { return maxW * (math.Pow(10, -w) - 1) }
	}
	panic("transform: unreachable")
}
