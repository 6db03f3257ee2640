package community

import (
	"math/rand"
)

// louvain is the classic two-phase modularity optimizer: local moving of
// vertices between neighboring communities until no gain remains, then
// aggregation of communities into super-vertices, repeated until stable.
// Each aggregation level contributes one candidate partition. Vertices are
// visited in index order, so runs are deterministic.
func louvain(net *network, _ *rand.Rand) [][]int {
	var levels [][]int

	// flat[v] is the current community (0-based) of original vertex v.
	flat := make([]int, net.n)
	for i := range flat {
		flat[i] = i
	}

	cur := net
	for {
		comm, k, improved := localMove(cur)
		if !improved && len(levels) > 0 {
			break
		}
		for v := range flat {
			flat[v] = comm[flat[v]]
		}
		membership := make([]int, net.n)
		for v, c := range flat {
			membership[v] = c + 1
		}
		levels = append(levels, membership)
		if k == cur.n {
			break
		}
		cur = cur.aggregate(comm, k)
	}
	return levels
}

// localMove runs the first Louvain phase on net: repeatedly move each
// vertex to the neighboring community with the largest modularity gain.
// Returns a compacted 0-based community assignment, the community count,
// and whether any move improved on the singleton start.
func localMove(net *network) (comm []int, k int, improved bool) {
	comm = make([]int, net.n)
	commDeg := make([]float64, net.n) // total degree per community
	for v := 0; v < net.n; v++ {
		comm[v] = v
		commDeg[v] = net.deg[v]
	}
	if net.m == 0 {
		comm, k = compact(comm)
		return comm, k, false
	}

	for changed := true; changed; {
		changed = false
		for v := 0; v < net.n; v++ {
			// Link weight from v into each neighboring community,
			// self-loops excluded.
			toComm := make(map[int]float64)
			for _, l := range net.adj[v] {
				if l.to == v {
					continue
				}
				toComm[comm[l.to]] += l.w
			}

			old := comm[v]
			commDeg[old] -= net.deg[v]

			bestComm, bestGain := old, 0.0
			base := toComm[old] - net.deg[v]*commDeg[old]/(2*net.m)
			for c, w := range toComm {
				gain := w - net.deg[v]*commDeg[c]/(2*net.m) - base
				if gain > bestGain || (gain == bestGain && c == old) {
					bestComm, bestGain = c, gain
				}
			}

			comm[v] = bestComm
			commDeg[bestComm] += net.deg[v]
			if bestComm != old {
				changed = true
				improved = true
			}
		}
	}

	comm, k = compact(comm)
	return comm, k, improved
}

// compact renumbers arbitrary 0-based ids to the dense range 0..k-1 in
// first-encountered order.
func compact(comm []int) ([]int, int) {
	ids := make(map[int]int)
	for i, c := range comm {
		id, ok := ids[c]
		if !ok {
			id = len(ids)
			ids[c] = id
		}
		comm[i] = id
	}
	return comm, len(ids)
}
