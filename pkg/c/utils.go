// Package cmcts holds the C side helpers of the shared library build:
// reading the caller's arrays and allocating the returned Point.
package cmcts

/*
#cgo CFLAGS: -I${SRCDIR} -O3
#include <stdlib.h>
#include "point.h"
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/IlikeChooros/c4-mcts/pkg/c4"
)

// Copy n C ints starting at p
func Ints(p unsafe.Pointer, n int) []int {
	if p == nil || n <= 0 {
		return nil
	}

	src := unsafe.Slice((*C.int)(p), n)
	dst := make([]int, n)
	for i, v := range src {
		dst[i] = int(v)
	}
	return dst
}

// Copy n C ints starting at p as board cells
func Pieces(p unsafe.Pointer, n int) ([]c4.Piece, error) {
	ints := Ints(p, n)
	if len(ints) != n {
		return nil, fmt.Errorf("%w: missing cells", c4.ErrSnapshot)
	}

	cells := make([]c4.Piece, n)
	for i, v := range ints {
		if v < int(c4.Empty) || v > int(c4.PlayerTwo) {
			return nil, fmt.Errorf("%w: cell[%d]=%d is not a piece", c4.ErrSnapshot, i, v)
		}
		cells[i] = c4.Piece(v)
	}
	return cells, nil
}

// Allocate a Point with malloc, the caller releases it with FreePoint
func NewPoint(m c4.Move) unsafe.Pointer {
	pt := (*C.Point)(C.malloc(C.sizeof_Point))
	pt.x = C.int(m.Row)
	pt.y = C.int(m.Col)
	return unsafe.Pointer(pt)
}

func PointMove(p unsafe.Pointer) c4.Move {
	pt := (*C.Point)(p)
	return c4.Move{Row: int(pt.x), Col: int(pt.y)}
}

// Release a Point from NewPoint, nil is ignored
func FreePoint(p unsafe.Pointer) {
	if p != nil {
		C.free(p)
	}
}
