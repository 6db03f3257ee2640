package metrics

import (
	"container/heap"
	"math"

	"github.com/cverad/connectome/pkg/bgraph"
)

// Betweenness runs a Brandes pass and returns raw betweenness centrality for
// every vertex and every edge. On undirected graphs each pair's contribution
// is halved so a pair of endpoints is counted once. With weighted set, edge
// weights are shortest-path costs and must be non-negative.
func Betweenness(g *bgraph.Graph, weighted bool) (vertex, edge []float64) {
	n := g.Order()
	out := arcList(g, weighted)
	vertex = make([]float64, n)
	edge = make([]float64, g.Size())

	for s := 0; s < n; s++ {
		var stack []int
		var preds [][]arc
		var sigma []float64
		if weighted {
			stack, preds, sigma = brandesDijkstra(n, out, s)
		} else {
			stack, preds, sigma = brandesBFS(n, out, s)
		}

		delta := make([]float64, n)
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, p := range preds[w] {
				c := (sigma[p.to] / sigma[w]) * (1 + delta[w])
				delta[p.to] += c
				edge[p.edge] += c
			}
			if w != s {
				vertex[w] += delta[w]
			}
		}
	}

	if !g.Directed() {
		for i := range vertex {
			vertex[i] /= 2
		}
		for i := range edge {
			edge[i] /= 2
		}
	}
	return vertex, edge
}

// brandesBFS performs the forward phase of Brandes' algorithm on unweighted
// structure: vertices in non-decreasing distance order, shortest-path
// predecessors (as arcs back to the predecessor), and path counts.
func brandesBFS(n int, out [][]arc, source int) (stack []int, preds [][]arc, sigma []float64) {
	preds = make([][]arc, n)
	sigma = make([]float64, n)
	dist := make([]int, n)
	for i := range dist {
		dist[i] = -1
	}
	sigma[source] = 1
	dist[source] = 0

	queue := []int{source}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		stack = append(stack, v)
		for _, a := range out[v] {
			if dist[a.to] < 0 {
				dist[a.to] = dist[v] + 1
				queue = append(queue, a.to)
			}
			if dist[a.to] == dist[v]+1 {
				sigma[a.to] += sigma[v]
				preds[a.to] = append(preds[a.to], arc{to: v, edge: a.edge})
			}
		}
	}
	return stack, preds, sigma
}

// brandesDijkstra is the weighted forward phase: same outputs as brandesBFS
// but ordered by shortest-path cost.
func brandesDijkstra(n int, out [][]arc, source int) (stack []int, preds [][]arc, sigma []float64) {
	preds = make([][]arc, n)
	sigma = make([]float64, n)
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	sigma[source] = 1
	dist[source] = 0

	const eps = 1e-12
	h := &distHeap{{v: source, d: 0}}
	for h.Len() > 0 {
		it := heap.Pop(h).(distItem)
		if it.d > dist[it.v]+eps {
			continue
		}
		stack = append(stack, it.v)
		for _, a := range out[it.v] {
			d := dist[it.v] + a.w
			switch {
			case d < dist[a.to]-eps:
				dist[a.to] = d
				sigma[a.to] = sigma[it.v]
				preds[a.to] = []arc{{to: it.v, edge: a.edge}}
				heap.Push(h, distItem{v: a.to, d: d})
			case math.Abs(d-dist[a.to]) <= eps:
				sigma[a.to] += sigma[it.v]
				preds[a.to] = append(preds[a.to], arc{to: it.v, edge: a.edge})
			}
		}
	}
	return stack, preds, sigma
}

// EigenvectorCentrality computes eigenvector centrality by power iteration
// on the (weighted) adjacency matrix, scaled so the largest value is 1.
// Edge weights are used when the graph is weighted.
func EigenvectorCentrality(g *bgraph.Graph) []float64 {
	n := g.Order()
	x := make([]float64, n)
	if n == 0 {
		return x
	}
	w := weightMatrix(g, g.Weighted())
	for i := range x {
		x[i] = 1
	}

	const maxIter = 200
	const tol = 1e-10
	next := make([]float64, n)
	for iter := 0; iter < maxIter; iter++ {
		for i := range next {
			sum := 0.0
			for j := 0; j < n; j++ {
				sum += w[i][j] * x[j]
			}
			next[i] = sum
		}
		norm := 0.0
		for _, v := range next {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			return x // no edges; all-ones start vector is as good as any
		}
		diff := 0.0
		for i := range next {
			next[i] /= norm
			diff += math.Abs(next[i] - x[i])
		}
		x, next = next, x
		if diff < tol {
			break
		}
	}

	max := 0.0
	for _, v := range x {
		if v > max {
			max = v
		}
	}
	if max > 0 {
		for i := range x {
			x[i] /= max
		}
	}
	return x
}

// LeverageCentrality measures how a vertex's degree compares to its
// neighbors' degrees: the mean of (k_v - k_u) / (k_v + k_u) over neighbors
// u. Isolated vertices get 0.
func LeverageCentrality(g *bgraph.Graph) []float64 {
	n := g.Order()
	deg := degrees(g)
	lev := make([]float64, n)
	for v := 0; v < n; v++ {
		nbrs := g.Neighbors(v)
		if len(nbrs) == 0 {
			continue
		}
		sum := 0.0
		for _, u := range nbrs {
			sum += float64(deg[v]-deg[u]) / float64(deg[v]+deg[u])
		}
		lev[v] = sum / float64(len(nbrs))
	}
	return lev
}

// HITS computes hub and authority scores by the iterative HITS algorithm,
// each vector scaled so its largest value is 1, plus the dominant eigenvalue
// estimate for the hub vector. On undirected graphs hubs and authorities
// coincide with eigenvector centrality.
func HITS(g *bgraph.Graph) (hub, authority []float64, value float64) {
	n := g.Order()
	hub = make([]float64, n)
	authority = make([]float64, n)
	if n == 0 {
		return hub, authority, 0
	}
	w := weightMatrix(g, g.Weighted())
	for i := range hub {
		hub[i] = 1
	}

	const maxIter = 200
	const tol = 1e-10
	prev := make([]float64, n)
	for iter := 0; iter < maxIter; iter++ {
		// authority = A^T hub
		for j := 0; j < n; j++ {
			sum := 0.0
			for i := 0; i < n; i++ {
				sum += w[i][j] * hub[i]
			}
			authority[j] = sum
		}
		// hub = A authority
		copy(prev, hub)
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := 0; j < n; j++ {
				sum += w[i][j] * authority[j]
			}
			hub[i] = sum
		}

		norm := 0.0
		for _, v := range hub {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			return hub, authority, 0
		}
		value = norm
		diff := 0.0
		for i := range hub {
			hub[i] /= norm
			diff += math.Abs(hub[i] - prev[i])
		}
		if diff < tol {
			break
		}
	}

	scaleMax(hub)
	scaleMax(authority)
	return hub, authority, value
}

func scaleMax(x []float64) {
	max := 0.0
	for _, v := range x {
		if v > max {
			max = v
		}
	}
	if max > 0 {
		for i := range x {
			x[i] /= max
		}
	}
}
