package c4

import (
	"fmt"
	"slices"
)

// Mutable board state, shared by the whole search and updated in place
// with ApplyMove/UndoMove.
//
// heights[c] is the number of rows above the landing spot of column c plus one,
// so the next piece in column c lands at row heights[c]-1 (row 0 is the top row).
// The forbidden cell is never counted as free.
type Board struct {
	cfg     Config
	heights []int
	cells   []Piece
	mover   Piece
}

// Create an empty board, the engine plays PlayerTwo by default
func NewBoard(cfg Config) *Board {
	b := &Board{
		cfg:     cfg,
		heights: make([]int, cfg.Cols),
		cells:   make([]Piece, cfg.Size()),
		mover:   PlayerTwo,
	}

	for c := range b.heights {
		b.heights[c] = cfg.Rows
		if cfg.IsForbidden(cfg.Rows-1, c) {
			b.heights[c] = cfg.Rows - 1
		}
	}
	return b
}

// Create a board from a snapshot, the slices are copied
func NewBoardFrom(cfg Config, heights []int, cells []Piece) (*Board, error) {
	if len(heights) != cfg.Cols {
		return nil, fmt.Errorf("%w: got %d heights, want %d", ErrSnapshot, len(heights), cfg.Cols)
	}
	if len(cells) != cfg.Size() {
		return nil, fmt.Errorf("%w: got %d cells, want %d", ErrSnapshot, len(cells), cfg.Size())
	}
	for c, h := range heights {
		if h < 0 || h > cfg.Rows {
			return nil, fmt.Errorf("%w: height[%d]=%d out of range [0, %d]", ErrSnapshot, c, h, cfg.Rows)
		}
	}
	for i, p := range cells {
		if p > PlayerTwo {
			return nil, fmt.Errorf("%w: cell[%d]=%d is not a piece", ErrSnapshot, i, p)
		}
	}

	return &Board{
		cfg:     cfg,
		heights: slices.Clone(heights),
		cells:   slices.Clone(cells),
		mover:   PlayerTwo,
	}, nil
}

// Deep copy, shares no memory with this board
func (b *Board) Clone() *Board {
	return &Board{
		cfg:     b.cfg,
		heights: slices.Clone(b.heights),
		cells:   slices.Clone(b.cells),
		mover:   b.mover,
	}
}

func (b *Board) Config() Config {
	return b.cfg
}

func (b *Board) Rows() int {
	return b.cfg.Rows
}

func (b *Board) Cols() int {
	return b.cfg.Cols
}

// Piece of the player about to move
func (b *Board) Mover() Piece {
	return b.mover
}

func (b *Board) SetMover(p Piece) {
	b.mover = p
}

func (b *Board) At(r, c int) Piece {
	return b.cells[r*b.cfg.Cols+c]
}

func (b *Board) set(r, c int, p Piece) {
	b.cells[r*b.cfg.Cols+c] = p
}

func (b *Board) Height(c int) int {
	return b.heights[c]
}

// Copy of the column heights
func (b *Board) Heights() []int {
	return slices.Clone(b.heights)
}

// Copy of the cells, row-major
func (b *Board) Cells() []Piece {
	return slices.Clone(b.cells)
}

// Whether a piece can be dropped into column c
func (b *Board) Playable(c int) bool {
	return c >= 0 && c < b.cfg.Cols && b.heights[c] > 0
}

// No column can take another piece
func (b *Board) Full() bool {
	for _, h := range b.heights {
		if h > 0 {
			return false
		}
	}
	return true
}

// Drop the mover's piece into column c and flip the turn, returns the landing row.
// The column must be playable.
func (b *Board) ApplyMove(c int) int {
	row := b.heights[c] - 1
	if row > 0 && b.cfg.IsForbidden(row-1, c) {
		b.heights[c] = row - 1
	} else {
		b.heights[c] = row
	}
	b.set(row, c, b.mover)
	b.mover = b.mover.Opponent()
	return row
}

// Take back the last piece dropped into column c
func (b *Board) UndoMove(c int) {
	row := b.heights[c]
	if b.cfg.IsForbidden(row, c) {
		row++
	}
	b.set(row, c, Empty)
	b.heights[c] = row + 1
	b.mover = b.mover.Opponent()
}

// Verify the board against an external snapshot, returns ErrDesync
// describing the first difference
func (b *Board) Equal(heights []int, cells []Piece) error {
	if len(heights) != len(b.heights) || len(cells) != len(b.cells) {
		return fmt.Errorf("%w: snapshot has %d heights and %d cells, want %d and %d",
			ErrDesync, len(heights), len(cells), len(b.heights), len(b.cells))
	}
	for c := range b.heights {
		if heights[c] != b.heights[c] {
			return fmt.Errorf("%w: height[%d]=%d, engine has %d", ErrDesync, c, heights[c], b.heights[c])
		}
	}
	for i := range b.cells {
		if cells[i] != b.cells[i] {
			return fmt.Errorf("%w: cell (%d, %d)=%d, engine has %d",
				ErrDesync, i/b.cfg.Cols, i%b.cfg.Cols, cells[i], b.cells[i])
		}
	}
	return nil
}
