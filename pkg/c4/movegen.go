package c4

// Center-out column walk: starting from the middle, alternately step left and right.
// Whether to step left is decided by the parity of l^r, which keeps the scan balanced
// for both odd and even widths.
type columnWalk struct {
	l, r, cols int
}

func newColumnWalk(cols int) columnWalk {
	return columnWalk{l: (cols + 1) / 2, r: (cols + 1) / 2, cols: cols}
}

func (w *columnWalk) next() (int, bool) {
	if w.l == 0 && w.r == w.cols {
		return 0, false
	}
	if ((w.l^w.r)&1 == 0 && w.l > 0) || w.r == w.cols {
		w.l--
		return w.l, true
	}
	w.r++
	return w.r - 1, true
}

// Every column index in center-out order
func ColumnOrder(cols int) []int {
	order := make([]int, 0, cols)
	walk := newColumnWalk(cols)
	for c, ok := walk.next(); ok; c, ok = walk.next() {
		order = append(order, c)
	}
	return order
}

// Append playable columns to dst in center-out order
func (b *Board) LegalColumns(dst []int) []int {
	walk := newColumnWalk(b.cfg.Cols)
	for c, ok := walk.next(); ok; c, ok = walk.next() {
		if b.heights[c] > 0 {
			dst = append(dst, c)
		}
	}
	return dst
}
