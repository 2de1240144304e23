package mcts

import "math"

// UCT score of a child, seen from its parent:
//
//	(1 - mean) + c * sqrt(2 * ln(parentVisits) / visits)
//
// The child's mean value belongs to the player to move at the child,
// so 1 - mean is the parent's exploitation term. With c == 0 the score
// is the parent's win rate alone.
func Score(stats *NodeStats, parentVisits uint32, c float64) float64 {
	if stats.visits == 0 {
		return math.Inf(1)
	}

	exploitation := 1 - stats.value/float64(stats.visits)
	if c == 0 {
		return exploitation
	}
	return exploitation + c*math.Sqrt(2*math.Log(float64(parentVisits))/float64(stats.visits))
}

// Child with the highest UCT score, on equal scores the later child wins.
// Returns NoHandle if the node has no children.
func (mcts *MCTS) bestChild(h Handle, c float64) Handle {
	parent := mcts.arena.Get(h)
	best := NoHandle
	bestScore := math.Inf(-1)

	for _, child := range parent.Children() {
		score := Score(&mcts.arena.Get(child).NodeStats, parent.Visits(), c)
		if score >= bestScore {
			bestScore = score
			best = child
		}
	}
	return best
}

// Return best child, based on the policy
func (mcts *MCTS) BestChild(h Handle, policy BestChildPolicy) Handle {
	if policy == BestChildWinRate {
		return mcts.bestChild(h, 0)
	}

	best := NoHandle
	maxVisits := uint32(0)
	for _, child := range mcts.arena.Get(h).Children() {
		if v := mcts.arena.Get(child).Visits(); v > maxVisits {
			maxVisits = v
			best = child
		}
	}
	return best
}
