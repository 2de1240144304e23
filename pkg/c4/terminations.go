package c4

// Line directions checked for four in a row: vertical, horizontal and both diagonals
var _directions = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// Check whether the piece at (r, c) is part of four in a row
func (b *Board) CheckWin(r, c int) bool {
	who := b.At(r, c)
	if who == Empty {
		return false
	}

	for _, d := range _directions {
		if b.checkDirection(who, r, c, d[0], d[1]) {
			return true
		}
	}
	return false
}

func (b *Board) checkDirection(who Piece, r, c, dr, dc int) bool {
	count := 0
	for o := -3; o <= 3; o++ {
		rr, cc := r+o*dr, c+o*dc
		if !b.cfg.InBounds(rr, cc) || b.At(rr, cc) != who {
			count = 0
			continue
		}

		count++
		if count == 4 {
			return true
		}
	}
	return false
}
