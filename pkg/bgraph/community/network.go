package community

import (
	"github.com/cverad/connectome/pkg/bgraph"
)

// link is one end of an undirected weighted connection.
type link struct {
	to int
	w  float64
}

// network is the undirected weighted view all detectors operate on.
// Directed graphs are collapsed onto their skeleton with summed weights.
type network struct {
	n   int
	adj [][]link
	deg []float64 // weighted degree
	m   float64   // total edge weight, each connection counted once
}

func buildNetwork(g *bgraph.Graph, weighted bool) *network {
	net := &network{
		n:   g.Order(),
		adj: make([][]link, g.Order()),
		deg: make([]float64, g.Order()),
	}
	for _, e := range g.Edges() {
		w := 1.0
		if weighted {
			w = e.Weight
		}
		net.adj[e.From] = append(net.adj[e.From], link{to: e.To, w: w})
		net.adj[e.To] = append(net.adj[e.To], link{to: e.From, w: w})
		net.deg[e.From] += w
		net.deg[e.To] += w
		net.m += w
	}
	return net
}

// modularity computes Newman's Q for a 1-based membership vector:
// sum over communities of e_c/m - (d_c/2m)^2.
func (net *network) modularity(membership []int) float64 {
	if net.m == 0 {
		return 0
	}
	nComm := 0
	for _, id := range membership {
		if id > nComm {
			nComm = id
		}
	}
	inside := make([]float64, nComm)
	total := make([]float64, nComm)
	for v := 0; v < net.n; v++ {
		c := membership[v] - 1
		total[c] += net.deg[v]
		for _, l := range net.adj[v] {
			if membership[l.to] == membership[v] {
				inside[c] += l.w // both endpoints visited: counts each link twice
			}
		}
	}
	q := 0.0
	for c := 0; c < nComm; c++ {
		q += inside[c]/(2*net.m) - (total[c]/(2*net.m))*(total[c]/(2*net.m))
	}
	return q
}

// components labels the connected components of net, 1-based.
func (net *network) components() []int {
	membership := make([]int, net.n)
	next := 0
	for s := 0; s < net.n; s++ {
		if membership[s] != 0 {
			continue
		}
		next++
		membership[s] = next
		queue := []int{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, l := range net.adj[v] {
				if membership[l.to] == 0 {
					membership[l.to] = next
					queue = append(queue, l.to)
				}
			}
		}
	}
	return membership
}

// aggregate collapses communities into super-vertices, summing parallel
// link weights. comm maps vertex -> 0-based community id; k is the
// community count.
func (net *network) aggregate(comm []int, k int) *network {
	agg := &network{
		n:   k,
		adj: make([][]link, k),
		deg: make([]float64, k),
	}
	weights := make(map[[2]int]float64)
	loops := make([]float64, k)
	for v := 0; v < net.n; v++ {
		for _, l := range net.adj[v] {
			a, b := comm[v], comm[l.to]
			if a == b {
				loops[a] += l.w // visited from both ends
				continue
			}
			if a < b {
				weights[[2]int{a, b}] += l.w // counted once per direction pair
			}
		}
	}
	for key, w := range weights {
		agg.adj[key[0]] = append(agg.adj[key[0]], link{to: key[1], w: w})
		agg.adj[key[1]] = append(agg.adj[key[1]], link{to: key[0], w: w})
		agg.deg[key[0]] += w
		agg.deg[key[1]] += w
		agg.m += w
	}
	for c, w := range loops {
		// Self-loop weight: each internal link seen twice in the scan.
		agg.loopWeight(c, w/2)
	}
	return agg
}

// loopWeight records internal community weight as a self-loop: it counts
// toward the degree twice and the total once.
func (net *network) loopWeight(v int, w float64) {
	if w == 0 {
		return
	}
	net.adj[v] = append(net.adj[v], link{to: v, w: w})
	net.deg[v] += 2 * w
	net.m += w
}
