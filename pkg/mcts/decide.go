package mcts

import (
	"github.com/IlikeChooros/c4-mcts/pkg/c4"
)

// One-shot decision: build a fresh board and tree from the snapshot, search once
// and return the chosen move. The snapshot slices are copied, not retained.
func Decide(cfg c4.Config, heights []int, cells []c4.Piece, params Params) (c4.Move, error) {
	if err := cfg.Validate(); err != nil {
		return c4.Move{}, err
	}

	board, err := c4.NewBoardFrom(cfg, heights, cells)
	if err != nil {
		return c4.Move{}, err
	}
	return New(board, params).Search()
}
