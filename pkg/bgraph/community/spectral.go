package community

import (
	"math"
	"math/rand"
)

// leadingEigen is Newman's leading-eigenvector method: recursively split
// vertex groups by the sign of the dominant eigenvector of the modularity
// matrix restricted to the group, stopping when a split no longer improves
// modularity. Emits the final partition.
func leadingEigen(net *network, _ *rand.Rand) [][]int {
	if net.m == 0 {
		return nil
	}
	membership := make([]int, net.n)
	for i := range membership {
		membership[i] = 1
	}
	next := 1

	var split func(group []int)
	split = func(group []int) {
		if len(group) < 2 {
			return
		}
		vec, ok := leadingVector(net, group)
		if !ok {
			return
		}
		var pos, neg []int
		for i, v := range group {
			if vec[i] >= 0 {
				pos = append(pos, v)
			} else {
				neg = append(neg, v)
			}
		}
		if len(pos) == 0 || len(neg) == 0 {
			return // indivisible group
		}

		// Accept the split only if modularity improves.
		before := net.modularity(membership)
		trial := append([]int(nil), membership...)
		id := next + 1
		for _, v := range neg {
			trial[v] = id
		}
		if net.modularity(trial) <= before {
			return
		}
		next = id
		copy(membership, trial)
		split(pos)
		split(neg)
	}

	group := make([]int, net.n)
	for i := range group {
		group[i] = i
	}
	split(group)
	return [][]int{membership}
}

// leadingVector computes the dominant eigenvector of the modularity matrix
// B_ij = A_ij - d_i d_j / 2m restricted to group, by shifted power
// iteration. Returns false when the dominant eigenvalue is not positive,
// meaning the group should not be split.
func leadingVector(net *network, group []int) ([]float64, bool) {
	k := len(group)
	local := make(map[int]int, k)
	for i, v := range group {
		local[v] = i
	}

	b := make([][]float64, k)
	for i := range b {
		b[i] = make([]float64, k)
	}
	for i, v := range group {
		for _, l := range net.adj[v] {
			if j, ok := local[l.to]; ok && l.to != v {
				b[i][j] += l.w
			}
		}
		for j, u := range group {
			b[i][j] -= net.deg[v] * net.deg[u] / (2 * net.m)
		}
	}

	// Shift by the largest absolute row sum so the matrix is positive
	// semidefinite and power iteration converges to the algebraic maximum.
	shift := 0.0
	for i := range b {
		sum := 0.0
		for j := range b[i] {
			sum += math.Abs(b[i][j])
		}
		if sum > shift {
			shift = sum
		}
	}
	for i := range b {
		b[i][i] += shift
	}

	x := make([]float64, k)
	for i := range x {
		x[i] = 1 + float64(i%3)*0.01 // break symmetry without randomness
	}
	eig := 0.0
	nextX := make([]float64, k)
	for iter := 0; iter < 500; iter++ {
		for i := range nextX {
			sum := 0.0
			for j := range x {
				sum += b[i][j] * x[j]
			}
			nextX[i] = sum
		}
		norm := 0.0
		for _, v := range nextX {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			return nil, false
		}
		diff := 0.0
		for i := range nextX {
			nextX[i] /= norm
			diff += math.Abs(nextX[i] - x[i])
		}
		eig = norm
		x, nextX = nextX, x
		if diff < 1e-10 {
			break
		}
	}

	// Undo the shift: dominant eigenvalue of B is eig - shift.
	if eig-shift <= 1e-12 {
		return nil, false
	}
	return x, true
}
