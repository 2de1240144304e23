package mcts

import "math"

// visits and accumulated value of the node, the value is the sum of normalized
// outcomes in [0, 1], seen by the player to move at this node
type NodeStats struct {
	visits uint32
	value  float64
}

// Get number of visits to this node
func (stats *NodeStats) Visits() uint32 {
	return stats.visits
}

// Cumulated normalized outcomes for this node
func (stats *NodeStats) Value() float64 {
	return stats.value
}

// Average outcome for this node, NaN if never visited
func (stats *NodeStats) AvgValue() float64 {
	if stats.visits == 0 {
		return math.NaN()
	}
	return stats.value / float64(stats.visits)
}

// Add a search score in [-1, 1] to this node
func (stats *NodeStats) Update(score float64) {
	stats.value += (score + 1) / 2
	stats.visits++
}
