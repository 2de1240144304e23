package c4

import (
	"errors"
	"fmt"
)

// Maximum number of columns, bounds the per-node action and children lists
const MaxCols = 12

type Piece uint8

const (
	Empty     Piece = 0
	PlayerOne Piece = 1
	PlayerTwo Piece = 2
)

// Returns the other player's piece, Empty stays Empty
func (p Piece) Opponent() Piece {
	if p == Empty {
		return Empty
	}
	return 3 - p
}

type Cell struct {
	Row, Col int
}

// Marks a board without a forbidden cell
var NoCell = Cell{-1, -1}

// A played move, Row is the landing row (0 is the top row)
type Move struct {
	Row, Col int
}

func (m Move) String() string {
	return fmt.Sprintf("%d %d", m.Row, m.Col)
}

var (
	ErrDimensions    = errors.New("c4: invalid board dimensions")
	ErrForbiddenCell = errors.New("c4: forbidden cell out of range")
	ErrSnapshot      = errors.New("c4: malformed board snapshot")
	ErrDesync        = errors.New("c4: board snapshot does not match engine state")
)
