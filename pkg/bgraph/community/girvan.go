package community

import (
	"container/heap"
	"math"
	"math/rand"
)

// girvanNewman implements edge-betweenness community detection: repeatedly
// remove the edge carrying the most shortest-path traffic and emit the
// resulting component partition. Weights, when present, are treated as
// distances; callers with strength weights transform to the cost domain
// first.
type gnEdge struct {
	a, b   int
	w      float64
	active bool
}

func girvanNewman(net *network, _ *rand.Rand) [][]int {
	var edges []gnEdge
	for v := 0; v < net.n; v++ {
		for _, l := range net.adj[v] {
			if v < l.to {
				edges = append(edges, gnEdge{a: v, b: l.to, w: l.w, active: true})
			}
		}
	}
	weighted := false
	for _, e := range edges {
		if e.w != 1 {
			weighted = true
			break
		}
	}

	active := func() [][]link {
		adj := make([][]link, net.n)
		for _, e := range edges {
			if !e.active {
				continue
			}
			w := e.w
			if !weighted {
				w = 1
			}
			adj[e.a] = append(adj[e.a], link{to: e.b, w: w})
			adj[e.b] = append(adj[e.b], link{to: e.a, w: w})
		}
		return adj
	}

	componentsOf := func(adj [][]link) []int {
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
				for _, l := range adj[v] {
					if membership[l.to] == 0 {
						membership[l.to] = next
						queue = append(queue, l.to)
					}
				}
			}
		}
		return membership
	}

	var levels [][]int
	remaining := len(edges)
	for remaining > 0 {
		adj := active()
		bc := edgeTraffic(net.n, adj, edges, weighted)

		best, bestBC := -1, math.Inf(-1)
		for i, e := range edges {
			if e.active && bc[i] > bestBC {
				best, bestBC = i, bc[i]
			}
		}
		edges[best].active = false
		remaining--

		levels = append(levels, componentsOf(active()))
	}
	return levels
}

// edgeTraffic computes Brandes edge betweenness over the active adjacency.
// Edge identity is recovered by endpoint pair.
func edgeTraffic(n int, adj [][]link, edges []gnEdge, weighted bool) []float64 {
	index := make(map[[2]int]int, len(edges))
	for i, e := range edges {
		index[pair(e.a, e.b)] = i
	}
	bc := make([]float64, len(edges))

	for s := 0; s < n; s++ {
		var stack []int
		preds := make([][]int, n)
		sigma := make([]float64, n)
		sigma[s] = 1

		if weighted {
			dist := make([]float64, n)
			for i := range dist {
				dist[i] = math.Inf(1)
			}
			dist[s] = 0
			const eps = 1e-12
			h := &gnHeap{{v: s, d: 0}}
			for h.Len() > 0 {
				it := heap.Pop(h).(gnItem)
				if it.d > dist[it.v]+eps {
					continue
				}
				stack = append(stack, it.v)
				for _, l := range adj[it.v] {
					d := dist[it.v] + l.w
					switch {
					case d < dist[l.to]-eps:
						dist[l.to] = d
						sigma[l.to] = sigma[it.v]
						preds[l.to] = []int{it.v}
						heap.Push(h, gnItem{v: l.to, d: d})
					case math.Abs(d-dist[l.to]) <= eps:
						sigma[l.to] += sigma[it.v]
						preds[l.to] = append(preds[l.to], it.v)
					}
				}
			}
		} else {
			dist := make([]int, n)
			for i := range dist {
				dist[i] = -1
			}
			dist[s] = 0
			queue := []int{s}
			for len(queue) > 0 {
				v := queue[0]
				queue = queue[1:]
				stack = append(stack, v)
				for _, l := range adj[v] {
					if dist[l.to] < 0 {
						dist[l.to] = dist[v] + 1
						queue = append(queue, l.to)
					}
					if dist[l.to] == dist[v]+1 {
						sigma[l.to] += sigma[v]
						preds[l.to] = append(preds[l.to], v)
					}
				}
			}
		}

		delta := make([]float64, n)
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, p := range preds[w] {
				c := (sigma[p] / sigma[w]) * (1 + delta[w])
				delta[p] += c
				if ei, ok := index[pair(p, w)]; ok {
					bc[ei] += c
				}
			}
		}
	}
	return bc
}

type gnItem struct {
	v int
	d float64
}

type gnHeap []gnItem

func (h gnHeap) Len() int           { return len(h) }
func (h gnHeap) Less(i, j int) bool { return h[i].d < h[j].d }
func (h gnHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *gnHeap) Push(x any)        { *h = append(*h, x.(gnItem)) }
func (h *gnHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
