package community

import (
	"math"
	"math/rand"
)

// spinglass implements the Reichardt-Bornholdt Potts model by simulated
// annealing: each vertex carries one of q spin states, and the energy
// rewards within-spin edges against a configuration null model. Negative
// weights are handled by splitting the energy into positive and negative
// layers, which is why this is one of the two methods allowed on graphs
// with negative correlations. The method assumes a connected graph; the
// resolver falls back to louvain otherwise.
func spinglass(net *network, rng *rand.Rand) [][]int {
	if net.m == 0 {
		return nil
	}
	const (
		spins     = 25
		startTemp = 1.0
		stopTemp  = 0.01
		cooling   = 0.99
		sweeps    = 50
	)

	spin := make([]int, net.n)
	for v := range spin {
		spin[v] = rng.Intn(spins) + 1
	}

	// Positive and negative weighted degrees and totals for the split null
	// model.
	posDeg := make([]float64, net.n)
	negDeg := make([]float64, net.n)
	var posM, negM float64
	for v := 0; v < net.n; v++ {
		for _, l := range net.adj[v] {
			if l.w >= 0 {
				posDeg[v] += l.w
				posM += l.w
			} else {
				negDeg[v] -= l.w
				negM -= l.w
			}
		}
	}
	posM /= 2
	negM /= 2

	spinPosDeg := make([]float64, spins+1)
	spinNegDeg := make([]float64, spins+1)
	for v := 0; v < net.n; v++ {
		spinPosDeg[spin[v]] += posDeg[v]
		spinNegDeg[spin[v]] += negDeg[v]
	}

	// energyDelta is the energy change of flipping v to state s: the
	// negated modularity gain, with the negative layer mirrored.
	energyDelta := func(v, s int) float64 {
		cur := spin[v]
		if s == cur {
			return 0
		}
		var toCur, toNew float64
		for _, l := range net.adj[v] {
			if l.to == v {
				continue
			}
			switch spin[l.to] {
			case cur:
				toCur += l.w
			case s:
				toNew += l.w
			}
		}
		delta := toNew - toCur
		if posM > 0 {
			delta -= posDeg[v] * (spinPosDeg[s] - spinPosDeg[cur] + posDeg[v]) / (2 * posM)
		}
		if negM > 0 {
			delta += negDeg[v] * (spinNegDeg[s] - spinNegDeg[cur] + negDeg[v]) / (2 * negM)
		}
		return -delta
	}

	adopt := func(v, s int) {
		cur := spin[v]
		spinPosDeg[cur] -= posDeg[v]
		spinNegDeg[cur] -= negDeg[v]
		spinPosDeg[s] += posDeg[v]
		spinNegDeg[s] += negDeg[v]
		spin[v] = s
	}

	for temp := startTemp; temp > stopTemp; temp *= cooling {
		for sweep := 0; sweep < sweeps; sweep++ {
			v := rng.Intn(net.n)
			s := rng.Intn(spins) + 1
			d := energyDelta(v, s)
			if d <= 0 || rng.Float64() < math.Exp(-d/temp) {
				adopt(v, s)
			}
		}
	}

	// Greedy zero-temperature polish: accept only improving flips.
	for changed := true; changed; {
		changed = false
		for v := 0; v < net.n; v++ {
			bestS, bestD := spin[v], 0.0
			for s := 1; s <= spins; s++ {
				if d := energyDelta(v, s); d < bestD {
					bestS, bestD = s, d
				}
			}
			if bestS != spin[v] {
				adopt(v, bestS)
				changed = true
			}
		}
	}

	return [][]int{append([]int(nil), spin...)}
}
