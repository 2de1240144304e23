package mcts

import (
	"github.com/IlikeChooros/c4-mcts/pkg/c4"
)

// This function only sets the limits, resets the counters, and the stop flag
// doesn't actually start the search
func (mcts *MCTS) setupSearch() {
	mcts.Limiter.Reset()
	mcts.cps = 0
	mcts.cycles = 0
}

// Run the search until the limiter stops it, then return the root child with
// the best score under the final exploration parameter.
//
// The limits are checked once per iteration, so the search may overrun the
// movetime by one descent plus one rollout. At least one iteration runs if
// the root has not been expanded yet.
func (mcts *MCTS) Search() (c4.Move, error) {
	root := mcts.Root()
	if root.Terminal {
		return c4.Move{}, ErrGameOver
	}
	if len(root.Actions()) == 0 {
		return c4.Move{}, ErrNoMoves
	}

	mcts.setupSearch()
	for mcts.Limiter.Ok(mcts.Size(), uint32(mcts.cycles)) || len(mcts.Root().Children()) == 0 {
		mcts.search(mcts.root, 0)

		mcts.cycles++
		mcts.cps = uint32(mcts.cycles) * 1000 / mcts.Limiter.Elapsed()
		mcts.listener.invokeCycle(mcts)
	}

	mcts.Limiter.EvaluateStopReason(mcts.Size(), uint32(mcts.cycles))
	mcts.listener.invokeStop(mcts)
	return mcts.RootMove()
}

// The move Search would answer with right now
func (mcts *MCTS) RootMove() (c4.Move, error) {
	best := mcts.bestChild(mcts.root, mcts.params.FinalExplorationParam)
	if best == NoHandle {
		return c4.Move{}, ErrNoMoves
	}
	return mcts.arena.Get(best).Move, nil
}

// One descent from node h, returns the outcome in [-1, 1] for the player to move at h.
// The board must be at h's position, it is restored before returning.
func (mcts *MCTS) search(h Handle, depth int) float64 {
	node := mcts.arena.Get(h)
	if node.Terminal {
		// The move into this node won, the player to move here has lost
		return -1
	}
	if node.nactions == 0 {
		return 0
	}

	var score float64
	if node.CanExpand() {
		col := int(node.actions[node.tried])
		node.tried++

		row := mcts.board.ApplyMove(col)
		win := mcts.board.CheckWin(row, col)
		if win {
			// A winning move makes every alternative irrelevant
			for _, child := range node.Children() {
				mcts.arena.Remove(child)
			}
			node.truncate()
		}

		child := mcts.arena.Insert(mcts.newNode(win, c4.Move{Row: row, Col: col}))
		mcts.arena.Get(h).addChild(child)
		mcts.maxdepth = max(mcts.maxdepth, depth+1)

		outcome := -1.0
		if !win {
			outcome = mcts.simulate()
		}
		mcts.arena.Get(child).Update(outcome)
		score = -outcome

		mcts.board.UndoMove(col)
	} else {
		child := mcts.bestChild(h, mcts.params.ExplorationParam)
		col := mcts.arena.Get(child).Move.Col

		mcts.board.ApplyMove(col)
		score = -mcts.search(child, depth+1)
		mcts.board.UndoMove(col)
	}

	mcts.arena.Get(h).Update(score)
	return score
}

// Random playout from the current board, returns the outcome for the player
// to move: 1 win, -1 loss, 0 draw. Every move is undone before returning.
func (mcts *MCTS) simulate() float64 {
	score := 1.0
	played := mcts.played[:0]

	for {
		mcts.columns = mcts.board.LegalColumns(mcts.columns[:0])
		if len(mcts.columns) == 0 {
			score = 0
			break
		}

		col := mcts.columns[mcts.rand.Intn(len(mcts.columns))]
		row := mcts.board.ApplyMove(col)
		played = append(played, col)
		if mcts.board.CheckWin(row, col) {
			break
		}
		score = -score
	}

	for i := len(played) - 1; i >= 0; i-- {
		mcts.board.UndoMove(played[i])
	}
	mcts.played = played
	return score
}
