package metrics

import (
	"container/heap"
	"math"
	"sync"

	"github.com/cverad/connectome/pkg/bgraph"
)

// arc is an outgoing connection used by the traversal primitives.
type arc struct {
	to   int
	edge int
	w    float64
}

// arcList builds the outgoing-arc adjacency for g. When weighted is false
// every arc carries weight 1, which turns Dijkstra into plain BFS distances.
func arcList(g *bgraph.Graph, weighted bool) [][]arc {
	n := g.Order()
	out := make([][]arc, n)
	for i, e := range g.Edges() {
		w := 1.0
		if weighted {
			w = e.Weight
		}
		out[e.From] = append(out[e.From], arc{to: e.To, edge: i, w: w})
		if !g.Directed() {
			out[e.To] = append(out[e.To], arc{to: e.From, edge: i, w: w})
		}
	}
	return out
}

// Distances computes the full pairwise shortest-path distance matrix.
// Unreachable pairs are +Inf, the diagonal is 0. With weighted set, edge
// weights are treated as costs and must be non-negative.
func Distances(g *bgraph.Graph, weighted bool) [][]float64 {
	n := g.Order()
	out := arcList(g, weighted)
	dist := make([][]float64, n)
	for s := 0; s < n; s++ {
		if weighted {
			dist[s] = dijkstraFrom(n, out, s)
		} else {
			dist[s] = bfsFrom(n, out, s)
		}
	}
	return dist
}

func bfsFrom(n int, out [][]arc, source int) []float64 {
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[source] = 0
	queue := []int{source}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, a := range out[v] {
			if math.IsInf(dist[a.to], 1) {
				dist[a.to] = dist[v] + 1
				queue = append(queue, a.to)
			}
		}
	}
	return dist
}

// distItem is a heap entry carrying the tentative distance it was pushed
// with. Stale entries are skipped on pop.
type distItem struct {
	v int
	d float64
}

type distHeap []distItem

func (h distHeap) Len() int           { return len(h) }
func (h distHeap) Less(i, j int) bool { return h[i].d < h[j].d }
func (h distHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *distHeap) Push(x any)        { *h = append(*h, x.(distItem)) }
func (h *distHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

func dijkstraFrom(n int, out [][]arc, source int) []float64 {
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[source] = 0

	h := &distHeap{{v: source, d: 0}}
	for h.Len() > 0 {
		it := heap.Pop(h).(distItem)
		if it.d > dist[it.v] {
			continue
		}
		for _, a := range out[it.v] {
			if d := it.d + a.w; d < dist[a.to] {
				dist[a.to] = d
				heap.Push(h, distItem{v: a.to, d: d})
			}
		}
	}
	return dist
}

// Eccentricity returns, per vertex, the largest finite distance to any other
// vertex. Isolated vertices get 0.
func Eccentricity(dist [][]float64) []float64 {
	ecc := make([]float64, len(dist))
	for v, row := range dist {
		for _, d := range row {
			if !math.IsInf(d, 1) && d > ecc[v] {
				ecc[v] = d
			}
		}
	}
	return ecc
}

// Diameter returns the largest finite pairwise distance. Disconnected pairs
// are ignored; an edgeless graph has diameter 0.
func Diameter(dist [][]float64) float64 {
	diam := 0.0
	for _, row := range dist {
		for _, d := range row {
			if !math.IsInf(d, 1) && d > diam {
				diam = d
			}
		}
	}
	return diam
}

// PathLength returns the characteristic path length per vertex (mean finite
// distance to the other vertices) and its graph-level mean. Unreachable
// pairs are excluded rather than counted as infinite.
func PathLength(dist [][]float64) (vertex []float64, graph float64) {
	n := len(dist)
	vertex = make([]float64, n)
	total, pairs := 0.0, 0
	for v, row := range dist {
		sum, cnt := 0.0, 0
		for u, d := range row {
			if u == v || math.IsInf(d, 1) {
				continue
			}
			sum += d
			cnt++
		}
		if cnt > 0 {
			vertex[v] = sum / float64(cnt)
		}
		total += sum
		pairs += cnt
	}
	if pairs > 0 {
		graph = total / float64(pairs)
	}
	return vertex, graph
}

// GlobalEfficiency is the mean inverse distance over all ordered vertex
// pairs. Unreachable pairs contribute 0, so the measure is defined on
// disconnected graphs.
func GlobalEfficiency(dist [][]float64) float64 {
	n := len(dist)
	if n < 2 {
		return 0
	}
	sum := 0.0
	for v, row := range dist {
		for u, d := range row {
			if u == v || d == 0 {
				continue
			}
			sum += 1 / d
		}
	}
	return sum / float64(n*(n-1))
}

// NodalEfficiency returns, per vertex, the mean inverse distance to every
// other vertex.
func NodalEfficiency(dist [][]float64) []float64 {
	n := len(dist)
	eff := make([]float64, n)
	if n < 2 {
		return eff
	}
	for v, row := range dist {
		sum := 0.0
		for u, d := range row {
			if u == v || d == 0 {
				continue
			}
			sum += 1 / d
		}
		eff[v] = sum / float64(n-1)
	}
	return eff
}

// LocalEfficiency returns, per vertex, the global efficiency of the subgraph
// induced by the vertex's neighbors. Vertices with fewer than two neighbors
// get 0. The per-vertex subgraph computations are independent and run on the
// configured worker count.
func LocalEfficiency(g *bgraph.Graph, weighted bool, opts ...Option) []float64 {
	o := buildOptions(opts)
	n := g.Order()
	eff := make([]float64, n)
	out := arcList(g, weighted)

	work := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < o.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for v := range work {
				eff[v] = neighborhoodEfficiency(g, out, v)
			}
		}()
	}
	for v := 0; v < n; v++ {
		work <- v
	}
	close(work)
	wg.Wait()
	return eff
}

// neighborhoodEfficiency computes global efficiency over the subgraph of
// v's neighbors, using distances measured within that subgraph only.
func neighborhoodEfficiency(g *bgraph.Graph, out [][]arc, v int) float64 {
	nbrs := g.Neighbors(v)
	k := len(nbrs)
	if k < 2 {
		return 0
	}
	local := make(map[int]int, k) // graph id -> subgraph id
	for i, u := range nbrs {
		local[u] = i
	}
	sub := make([][]arc, k)
	for i, u := range nbrs {
		for _, a := range out[u] {
			if j, ok := local[a.to]; ok {
				sub[i] = append(sub[i], arc{to: j, w: a.w})
			}
		}
	}
	sum := 0.0
	for i := 0; i < k; i++ {
		dist := dijkstraFrom(k, sub, i)
		for j, d := range dist {
			if j == i || d == 0 || math.IsInf(d, 1) {
				continue
			}
			sum += 1 / d
		}
	}
	return sum / float64(k*(k-1))
}

// Vulnerability measures the impact of removing each vertex on global
// efficiency: (E - E_v) / E, where E_v is the efficiency of the graph with
// vertex v removed. Returns the per-vertex values and their maximum, which
// serves as the graph-level vulnerability.
func Vulnerability(g *bgraph.Graph, weighted bool, opts ...Option) ([]float64, float64) {
	o := buildOptions(opts)
	n := g.Order()
	vuln := make([]float64, n)
	if n < 3 {
		return vuln, 0
	}
	out := arcList(g, weighted)
	base := GlobalEfficiency(Distances(g, weighted))
	if base == 0 {
		return vuln, 0
	}

	work := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < o.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for v := range work {
				vuln[v] = (base - removedEfficiency(n, out, v)) / base
			}
		}()
	}
	for v := 0; v < n; v++ {
		work <- v
	}
	close(work)
	wg.Wait()

	max := vuln[0]
	for _, x := range vuln[1:] {
		if x > max {
			max = x
		}
	}
	return vuln, max
}

// removedEfficiency computes global efficiency of the graph with vertex skip
// deleted, by relabeling the remaining n-1 vertices.
func removedEfficiency(n int, out [][]arc, skip int) float64 {
	m := n - 1
	if m < 2 {
		return 0
	}
	id := func(v int) int {
		if v > skip {
			return v - 1
		}
		return v
	}
	sub := make([][]arc, m)
	for v := 0; v < n; v++ {
		if v == skip {
			continue
		}
		for _, a := range out[v] {
			if a.to == skip {
				continue
			}
			sub[id(v)] = append(sub[id(v)], arc{to: id(a.to), w: a.w})
		}
	}
	sum := 0.0
	for i := 0; i < m; i++ {
		dist := dijkstraFrom(m, sub, i)
		for j, d := range dist {
			if j == i || d == 0 || math.IsInf(d, 1) {
				continue
			}
			sum += 1 / d
		}
	}
	return sum / float64(m*(m-1))
}
