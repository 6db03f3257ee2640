package metrics

import (
	"math"

	"github.com/cverad/connectome/pkg/bgraph"
)

// HubThreshold is the score a vertex must exceed to count as a hub.
const HubThreshold = 2

// HubScores rates each vertex on four hub criteria, one point each: degree
// (strength in weighted mode) more than one standard deviation above the
// mean, betweenness likewise, local transitivity more than one standard
// deviation below the mean, and characteristic path length likewise below.
// Scores range 0 to 4; vertices scoring above [HubThreshold] are hubs.
func HubScores(g *bgraph.Graph, weighted bool, betweenness, transitivity, pathLength []float64) []int {
	n := g.Order()
	score := make([]int, n)
	if n == 0 {
		return score
	}

	deg := make([]float64, n)
	for v := 0; v < n; v++ {
		if weighted && g.Weighted() {
			deg[v] = g.Strength(v)
		} else {
			deg[v] = float64(g.Degree(v))
		}
	}

	addAbove(score, deg)
	addAbove(score, betweenness)
	addBelow(score, transitivity)
	addBelow(score, pathLength)
	return score
}

// NumHubs counts vertices whose hub score exceeds [HubThreshold].
func NumHubs(scores []int) int {
	n := 0
	for _, s := range scores {
		if s > HubThreshold {
			n++
		}
	}
	return n
}

func addAbove(score []int, vals []float64) {
	mean, sd := meanSD(vals)
	if sd == 0 {
		return
	}
	for v, x := range vals {
		if x > mean+sd {
			score[v]++
		}
	}
}

func addBelow(score []int, vals []float64) {
	mean, sd := meanSD(vals)
	if sd == 0 {
		return
	}
	for v, x := range vals {
		if x < mean-sd {
			score[v]++
		}
	}
}

func meanSD(vals []float64) (mean, sd float64) {
	n := float64(len(vals))
	if n == 0 {
		return 0, 0
	}
	for _, x := range vals {
		mean += x
	}
	mean /= n
	for _, x := range vals {
		sd += (x - mean) * (x - mean)
	}
	return mean, math.Sqrt(sd / n)
}
