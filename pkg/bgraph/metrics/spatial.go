package metrics

import (
	"math"

	"github.com/cverad/connectome/pkg/bgraph"
)

// EdgeSpatialDistances returns the Euclidean length of every edge given
// per-vertex 3D coordinates, plus the mean over edges. Coordinates must be
// |V| long, index-aligned with the graph.
func EdgeSpatialDistances(g *bgraph.Graph, coords [][3]float64) (edge []float64, mean float64, err error) {
	if len(coords) != g.Order() {
		return nil, 0, bgraph.ErrAttrLength
	}
	edges := g.Edges()
	edge = make([]float64, len(edges))
	for i, e := range edges {
		a, b := coords[e.From], coords[e.To]
		dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
		edge[i] = math.Sqrt(dx*dx + dy*dy + dz*dz)
		mean += edge[i]
	}
	if len(edges) > 0 {
		mean /= float64(len(edges))
	}
	return edge, mean, nil
}

// SpatialDispersion returns, per vertex, the mean Euclidean length of its
// incident edges, and a degree-weighted dispersion score (dispersion times
// degree). Isolated vertices get 0 for both.
func SpatialDispersion(g *bgraph.Graph, edgeDist []float64) (dispersion, weighted []float64, err error) {
	if len(edgeDist) != g.Size() {
		return nil, nil, bgraph.ErrAttrLength
	}
	n := g.Order()
	dispersion = make([]float64, n)
	weighted = make([]float64, n)
	for v := 0; v < n; v++ {
		inc := g.Incident(v)
		if len(inc) == 0 {
			continue
		}
		sum := 0.0
		for _, ei := range inc {
			sum += edgeDist[ei]
		}
		dispersion[v] = sum / float64(len(inc))
		weighted[v] = dispersion[v] * float64(g.Degree(v))
	}
	return dispersion, weighted, nil
}

// EdgeAsymmetry measures the left/right imbalance of intra-hemispheric
// connections from a binarized adjacency indicator: (e_L - e_R)/(e_L + e_R)
// at graph level over intra-hemisphere edges, and per vertex over its own
// connections into each hemisphere. hemi must be |V| long with values "L"
// or "R" (anything else is ignored). Vertices or graphs with no
// intra-hemispheric connections get 0.
func EdgeAsymmetry(g *bgraph.Graph, adj [][]float64, hemi []string) (graph float64, vertex []float64, err error) {
	n := g.Order()
	if len(hemi) != n || len(adj) != n {
		return 0, nil, bgraph.ErrAttrLength
	}
	for _, row := range adj {
		if len(row) != n {
			return 0, nil, bgraph.ErrAttrLength
		}
	}

	var left, right float64
	vertex = make([]float64, n)
	for i := 0; i < n; i++ {
		var vl, vr float64
		for j := 0; j < n; j++ {
			if i == j || adj[i][j] == 0 {
				continue
			}
			switch hemi[j] {
			case "L":
				vl++
			case "R":
				vr++
			}
			if hemi[i] == hemi[j] {
				switch hemi[i] {
				case "L":
					left++
				case "R":
					right++
				}
			}
		}
		if vl+vr > 0 {
			vertex[i] = (vl - vr) / (vl + vr)
		}
	}
	// Intra-hemisphere pairs are visited from both ends.
	left /= 2
	right /= 2
	if left+right > 0 {
		graph = (left - right) / (left + right)
	}
	return graph, vertex, nil
}
