package metrics

import (
	"math"

	"github.com/cverad/connectome/pkg/bgraph"
)

// moduleWeights returns, per vertex, the connection strength into each
// community: kis[v][s-1] is the summed weight (or edge count, unweighted)
// from v into community s. Membership ids must be 1-based and |V| long.
func moduleWeights(g *bgraph.Graph, membership []int, weighted bool) (kis [][]float64, total []float64, nComm int) {
	n := g.Order()
	for _, id := range membership {
		if id > nComm {
			nComm = id
		}
	}
	w := weightMatrix(g, weighted)
	kis = make([][]float64, n)
	total = make([]float64, n)
	for v := 0; v < n; v++ {
		kis[v] = make([]float64, nComm)
		for u := 0; u < n; u++ {
			if w[v][u] == 0 && w[u][v] == 0 {
				continue
			}
			wt := w[v][u]
			if g.Directed() {
				wt += w[u][v]
			}
			kis[v][membership[u]-1] += wt
			total[v] += wt
		}
	}
	return kis, total, nComm
}

// ParticipationCoeff measures how evenly a vertex's connections spread
// across communities: 1 - sum_s (k_vs / k_v)^2. A vertex connected to a
// single community scores 0; isolated vertices score 0.
func ParticipationCoeff(g *bgraph.Graph, membership []int, weighted bool) ([]float64, error) {
	if len(membership) != g.Order() {
		return nil, bgraph.ErrAttrLength
	}
	kis, total, _ := moduleWeights(g, membership, weighted)
	p := make([]float64, g.Order())
	for v := range p {
		if total[v] == 0 {
			continue
		}
		sum := 0.0
		for _, k := range kis[v] {
			frac := k / total[v]
			sum += frac * frac
		}
		p[v] = 1 - sum
	}
	return p, nil
}

// GatewayCoeff is the Vargas-Wahl refinement of the participation
// coefficient: each community term is discounted by how critical the
// vertex's connections to that community are, judged by the vertex's share
// of the community's total incoming strength and by the supplied centrality
// (scaled to its maximum). Centrality must be |V| long; betweenness is the
// conventional choice.
func GatewayCoeff(g *bgraph.Graph, membership []int, centrality []float64, weighted bool) ([]float64, error) {
	n := g.Order()
	if len(membership) != n || len(centrality) != n {
		return nil, bgraph.ErrAttrLength
	}
	kis, total, nComm := moduleWeights(g, membership, weighted)

	// Community marginals: total strength arriving at each community.
	commTotal := make([]float64, nComm)
	for v := 0; v < n; v++ {
		for s, k := range kis[v] {
			commTotal[s] += k
		}
	}
	maxCent := 0.0
	for _, c := range centrality {
		if c > maxCent {
			maxCent = c
		}
	}

	gw := make([]float64, n)
	for v := 0; v < n; v++ {
		if total[v] == 0 {
			continue
		}
		sum := 0.0
		for s, k := range kis[v] {
			if k == 0 {
				continue
			}
			frac := k / total[v]
			share := 0.0
			if commTotal[s] > 0 {
				share = k / commTotal[s]
			}
			cent := 0.0
			if maxCent > 0 {
				cent = centrality[v] / maxCent
			}
			gis := 1 - share*cent
			sum += frac * frac * gis * gis
		}
		gw[v] = 1 - sum
	}
	return gw, nil
}

// WithinModuleZScore standardizes each vertex's within-community strength
// against its community's distribution: (k_v - mean) / sd over the vertices
// sharing the community. Communities with zero variance give 0.
func WithinModuleZScore(g *bgraph.Graph, membership []int, weighted bool) ([]float64, error) {
	n := g.Order()
	if len(membership) != n {
		return nil, bgraph.ErrAttrLength
	}
	kis, _, nComm := moduleWeights(g, membership, weighted)

	within := make([]float64, n)
	for v := 0; v < n; v++ {
		within[v] = kis[v][membership[v]-1]
	}

	z := make([]float64, n)
	for s := 1; s <= nComm; s++ {
		var members []int
		for v := 0; v < n; v++ {
			if membership[v] == s {
				members = append(members, v)
			}
		}
		if len(members) == 0 {
			continue
		}
		mean := 0.0
		for _, v := range members {
			mean += within[v]
		}
		mean /= float64(len(members))
		sd := 0.0
		for _, v := range members {
			sd += (within[v] - mean) * (within[v] - mean)
		}
		sd = math.Sqrt(sd / float64(len(members)))
		if sd == 0 {
			continue
		}
		for _, v := range members {
			z[v] = (within[v] - mean) / sd
		}
	}
	return z, nil
}

// WeightedNearestNeighborDegree is the Barrat weighted average neighbor
// degree: per vertex, the degree of each neighbor weighted by the strength
// of the connecting edge. Isolated vertices get 0.
func WeightedNearestNeighborDegree(g *bgraph.Graph) []float64 {
	n := g.Order()
	deg := degrees(g)
	str := strengths(g)
	w := weightMatrix(g, g.Weighted())
	knn := make([]float64, n)
	for v := 0; v < n; v++ {
		if str[v] == 0 {
			continue
		}
		sum := 0.0
		for _, u := range g.Neighbors(v) {
			sum += w[v][u] * float64(deg[u])
		}
		knn[v] = sum / str[v]
	}
	return knn
}
