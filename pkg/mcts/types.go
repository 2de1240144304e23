package mcts

import "errors"

// Other types, which didn't fit to MCTS or Node files

// Index of a node inside the Arena
type Handle int32

const NoHandle Handle = -1

type BestChildPolicy int

var (
	ErrNoMoves     = errors.New("mcts: no legal moves in the root position")
	ErrGameOver    = errors.New("mcts: root position is already won")
	ErrIllegalMove = errors.New("mcts: illegal move")
)
