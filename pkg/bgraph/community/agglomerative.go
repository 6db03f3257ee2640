package community

import (
	"math"
	"math/rand"
)

// fastGreedy is the Clauset-Newman-Moore agglomerative optimizer: start
// from singleton communities and repeatedly merge the connected pair with
// the largest modularity gain, emitting the partition after every merge.
// Detect then keeps the best-scoring step of the dendrogram.
func fastGreedy(net *network, _ *rand.Rand) [][]int {
	comm := make([]int, net.n)
	for i := range comm {
		comm[i] = i + 1
	}
	if net.m == 0 {
		return nil
	}

	// Inter-community weights and community degrees, updated per merge.
	between := make(map[[2]int]float64)
	commDeg := make([]float64, net.n+1)
	alive := make([]bool, net.n+1)
	for v := 0; v < net.n; v++ {
		commDeg[v+1] = net.deg[v]
		alive[v+1] = true
		for _, l := range net.adj[v] {
			if v < l.to {
				between[pair(v+1, l.to+1)] += l.w
			}
		}
	}

	var levels [][]int
	for {
		// Best merge by modularity gain: delta = w_ab/m - d_a d_b / (2m^2).
		bestGain := math.Inf(-1)
		var bestA, bestB int
		for key, w := range between {
			a, b := key[0], key[1]
			gain := w/net.m - commDeg[a]*commDeg[b]/(2*net.m*net.m)
			if gain > bestGain || (gain == bestGain && lessPair(a, b, bestA, bestB)) {
				bestGain, bestA, bestB = gain, a, b
			}
		}
		if bestA == 0 {
			break // nothing left to merge
		}

		// Fold bestB into bestA.
		for v := range comm {
			if comm[v] == bestB {
				comm[v] = bestA
			}
		}
		commDeg[bestA] += commDeg[bestB]
		alive[bestB] = false
		delete(between, pair(bestA, bestB))
		moved := make(map[int]float64)
		for key, w := range between {
			if key[0] != bestB && key[1] != bestB {
				continue
			}
			other := key[0]
			if other == bestB {
				other = key[1]
			}
			delete(between, key)
			moved[other] += w
		}
		for other, w := range moved {
			between[pair(bestA, other)] += w
		}

		levels = append(levels, append([]int(nil), comm...))
	}
	return levels
}

// walktrap approximates the Pons-Latapy method: vertices are compared by
// their t-step random-walk distributions, and communities are merged
// agglomeratively by smallest walk distance, emitting each step. The walk
// length is fixed at 4, the conventional choice.
func walktrap(net *network, _ *rand.Rand) [][]int {
	if net.m == 0 {
		return nil
	}
	const walkLen = 4
	prob := walkProbabilities(net, walkLen)

	// Community state: member lists and averaged walk profiles.
	members := make(map[int][]int, net.n)
	profile := make(map[int][]float64, net.n)
	comm := make([]int, net.n)
	for v := 0; v < net.n; v++ {
		comm[v] = v + 1
		members[v+1] = []int{v}
		profile[v+1] = prob[v]
	}

	// Only merge communities that share at least one connection.
	connected := make(map[[2]int]bool)
	for v := 0; v < net.n; v++ {
		for _, l := range net.adj[v] {
			if v != l.to {
				connected[pair(v+1, l.to+1)] = true
			}
		}
	}

	var levels [][]int
	for len(members) > 1 {
		bestDist := math.Inf(1)
		var bestA, bestB int
		for key := range connected {
			a, b := key[0], key[1]
			d := walkDistance(net, profile[a], profile[b])
			if d < bestDist || (d == bestDist && lessPair(a, b, bestA, bestB)) {
				bestDist, bestA, bestB = d, a, b
			}
		}
		if bestA == 0 {
			break // remaining communities are in different components
		}

		// Fold bestB into bestA, averaging profiles by community size.
		na, nb := float64(len(members[bestA])), float64(len(members[bestB]))
		merged := make([]float64, net.n)
		for i := range merged {
			merged[i] = (na*profile[bestA][i] + nb*profile[bestB][i]) / (na + nb)
		}
		profile[bestA] = merged
		members[bestA] = append(members[bestA], members[bestB]...)
		for _, v := range members[bestB] {
			comm[v] = bestA
		}
		delete(members, bestB)
		delete(profile, bestB)
		delete(connected, pair(bestA, bestB))
		var rewired []int
		for key := range connected {
			if key[0] != bestB && key[1] != bestB {
				continue
			}
			other := key[0]
			if other == bestB {
				other = key[1]
			}
			delete(connected, key)
			if other != bestA {
				rewired = append(rewired, other)
			}
		}
		for _, other := range rewired {
			connected[pair(bestA, other)] = true
		}

		levels = append(levels, append([]int(nil), comm...))
	}
	return levels
}

// walkProbabilities returns, per vertex, the distribution of a walkLen-step
// random walk started there. Negative link weights are clamped to their
// absolute value so the rows stay distributions.
func walkProbabilities(net *network, walkLen int) [][]float64 {
	prob := make([][]float64, net.n)
	for v := 0; v < net.n; v++ {
		row := make([]float64, net.n)
		row[v] = 1
		prob[v] = row
	}
	for step := 0; step < walkLen; step++ {
		next := make([][]float64, net.n)
		for v := 0; v < net.n; v++ {
			next[v] = make([]float64, net.n)
		}
		for v := 0; v < net.n; v++ {
			total := 0.0
			for _, l := range net.adj[v] {
				total += math.Abs(l.w)
			}
			if total == 0 {
				next[v][v] = 1 // isolated vertex stays put
				continue
			}
			for u := 0; u < net.n; u++ {
				if prob[v][u] == 0 {
					continue
				}
				utotal := 0.0
				for _, l := range net.adj[u] {
					utotal += math.Abs(l.w)
				}
				if utotal == 0 {
					next[v][u] += prob[v][u]
					continue
				}
				for _, l := range net.adj[u] {
					next[v][l.to] += prob[v][u] * math.Abs(l.w) / utotal
				}
			}
		}
		prob = next
	}
	return prob
}

// walkDistance is the degree-normalized Euclidean distance between two walk
// distributions.
func walkDistance(net *network, a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := net.deg[i]
		if d == 0 {
			d = 1
		}
		diff := a[i] - b[i]
		sum += diff * diff / math.Abs(d)
	}
	return math.Sqrt(sum)
}

// lessPair orders community pairs for deterministic tie-breaking across
// map iteration order.
func lessPair(a, b, curA, curB int) bool {
	if curA == 0 {
		return true
	}
	if a != curA {
		return a < curA
	}
	return b < curB
}

// pair builds a canonical community-pair key.
func pair(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}
