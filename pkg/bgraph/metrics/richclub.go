package metrics

import (
	"sort"

	"github.com/cverad/connectome/pkg/bgraph"
)

// RichClub is one point of a rich-club curve: the coefficient of the
// subgraph induced by vertices with degree > K.
type RichClub struct {
	K   int     `json:"k"`
	Phi float64 `json:"phi"`
	N   int     `json:"n"` // vertices with degree > K
	E   int     `json:"e"` // edges among them
}

// RichClubCurve computes the binary rich-club coefficient for every degree
// level from 0 up to the maximum degree minus one: the density of the
// subgraph induced by vertices of degree > k. Levels whose subgraph has
// fewer than two vertices carry Phi = 0.
func RichClubCurve(g *bgraph.Graph) []RichClub {
	deg := degrees(g)
	maxDeg := 0
	for _, d := range deg {
		if d > maxDeg {
			maxDeg = d
		}
	}
	curve := make([]RichClub, 0, maxDeg)
	for k := 0; k < maxDeg; k++ {
		rc := RichClub{K: k}
		for _, d := range deg {
			if d > k {
				rc.N++
			}
		}
		for _, e := range g.Edges() {
			if deg[e.From] > k && deg[e.To] > k {
				rc.E++
			}
		}
		if rc.N > 1 {
			rc.Phi = 2 * float64(rc.E) / float64(rc.N*(rc.N-1))
		}
		curve = append(curve, rc)
	}
	return curve
}

// WeightedRichClubCurve computes the weighted rich-club coefficient: the
// total weight among vertices of degree > k, divided by the sum of the
// same number of strongest edge weights anywhere in the graph.
func WeightedRichClubCurve(g *bgraph.Graph) []RichClub {
	deg := degrees(g)
	maxDeg := 0
	for _, d := range deg {
		if d > maxDeg {
			maxDeg = d
		}
	}

	// Edge weights sorted strongest first, with a running prefix sum so the
	// denominator for any club size is a single lookup.
	ranked := g.Weights()
	sort.Sort(sort.Reverse(sort.Float64Slice(ranked)))
	prefix := make([]float64, len(ranked)+1)
	for i, w := range ranked {
		prefix[i+1] = prefix[i] + w
	}

	curve := make([]RichClub, 0, maxDeg)
	for k := 0; k < maxDeg; k++ {
		rc := RichClub{K: k}
		clubWeight := 0.0
		for _, d := range deg {
			if d > k {
				rc.N++
			}
		}
		for _, e := range g.Edges() {
			if deg[e.From] > k && deg[e.To] > k {
				rc.E++
				clubWeight += e.Weight
			}
		}
		if rc.E > 0 && prefix[rc.E] > 0 {
			rc.Phi = clubWeight / prefix[rc.E]
		}
		curve = append(curve, rc)
	}
	return curve
}
