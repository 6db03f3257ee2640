package metrics

import (
	"math"

	"github.com/cverad/connectome/pkg/bgraph"
)

// DegreeAssortativity is the Pearson correlation of degrees across edges:
// positive when high-degree vertices attach to each other. Graphs where all
// remaining degrees are equal (zero variance) get 0.
func DegreeAssortativity(g *bgraph.Graph) float64 {
	deg := degrees(g)
	vals := make([][2]float64, 0, 2*g.Size())
	for _, e := range g.Edges() {
		// Remaining degree at each end; both orientations for undirected.
		x, y := float64(deg[e.From]-1), float64(deg[e.To]-1)
		vals = append(vals, [2]float64{x, y})
		if !g.Directed() {
			vals = append(vals, [2]float64{y, x})
		}
	}
	return pearson(vals)
}

func pearson(vals [][2]float64) float64 {
	m := float64(len(vals))
	if m == 0 {
		return 0
	}
	var sx, sy float64
	for _, v := range vals {
		sx += v[0]
		sy += v[1]
	}
	mx, my := sx/m, sy/m
	var cov, vx, vy float64
	for _, v := range vals {
		cov += (v[0] - mx) * (v[1] - my)
		vx += (v[0] - mx) * (v[0] - mx)
		vy += (v[1] - my) * (v[1] - my)
	}
	if vx == 0 || vy == 0 {
		return 0
	}
	return cov / math.Sqrt(vx*vy)
}

// NominalAssortativity is Newman's assortativity for a categorical vertex
// labeling: r = (sum e_ii - sum a_i b_i) / (1 - sum a_i b_i), computed from
// the edge mixing matrix. Returns 0 when every edge joins the same single
// category (degenerate denominator). Labels must be |V| long.
func NominalAssortativity(g *bgraph.Graph, labels []int) (float64, error) {
	if len(labels) != g.Order() {
		return 0, bgraph.ErrAttrLength
	}
	edges := g.Edges()
	if len(edges) == 0 {
		return 0, nil
	}

	// Compact ids for whatever label values show up.
	ids := make(map[int]int)
	for _, l := range labels {
		if _, ok := ids[l]; !ok {
			ids[l] = len(ids)
		}
	}
	k := len(ids)
	mix := make([][]float64, k)
	for i := range mix {
		mix[i] = make([]float64, k)
	}

	// Each undirected edge counts in both orientations so the mixing matrix
	// is symmetric and marginals coincide.
	m := float64(len(edges))
	if !g.Directed() {
		m *= 2
	}
	for _, e := range edges {
		i, j := ids[labels[e.From]], ids[labels[e.To]]
		mix[i][j] += 1 / m
		if !g.Directed() {
			mix[j][i] += 1 / m
		}
	}

	var trace, agreement float64
	for i := 0; i < k; i++ {
		trace += mix[i][i]
		var ai, bi float64
		for j := 0; j < k; j++ {
			ai += mix[i][j]
			bi += mix[j][i]
		}
		agreement += ai * bi
	}
	if agreement == 1 {
		return 0, nil
	}
	return (trace - agreement) / (1 - agreement), nil
}
