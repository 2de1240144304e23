package c4

import (
	"math/rand"
	"testing"

	"github.com/muesli/termenv"
)

// Straightforward reference: look for 4 equal pieces in any window through (r, c)
func slowCheckWin(b *Board, r, c int) bool {
	who := b.At(r, c)
	if who == Empty {
		return false
	}
	for _, d := range _directions {
		for start := -3; start <= 0; start++ {
			count := 0
			for k := 0; k < 4; k++ {
				rr, cc := r+(start+k)*d[0], c+(start+k)*d[1]
				if b.cfg.InBounds(rr, cc) && b.At(rr, cc) == who {
					count++
				}
			}
			if count == 4 {
				return true
			}
		}
	}
	return false
}

func TestCheckWinPatterns(t *testing.T) {
	cfg := Config{6, 7, NoCell}
	tests := []struct {
		name  string
		cells []Cell
		probe Cell
		win   bool
	}{
		{"vertical", []Cell{{5, 0}, {4, 0}, {3, 0}, {2, 0}}, Cell{3, 0}, true},
		{"horizontal", []Cell{{5, 3}, {5, 4}, {5, 5}, {5, 6}}, Cell{5, 6}, true},
		{"diagonal", []Cell{{5, 0}, {4, 1}, {3, 2}, {2, 3}}, Cell{4, 1}, true},
		{"anti diagonal", []Cell{{2, 3}, {3, 4}, {4, 5}, {5, 6}}, Cell{2, 3}, true},
		{"three", []Cell{{5, 0}, {5, 1}, {5, 2}}, Cell{5, 1}, false},
		{"gap", []Cell{{5, 0}, {5, 1}, {5, 3}, {5, 4}}, Cell{5, 1}, false},
		{"edge wrap", []Cell{{4, 5}, {4, 6}, {5, 0}, {5, 1}}, Cell{5, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(cfg)
			for _, cell := range tt.cells {
				b.set(cell.Row, cell.Col, PlayerOne)
			}
			if got := b.CheckWin(tt.probe.Row, tt.probe.Col); got != tt.win {
				t.Fatalf("CheckWin(%v)=%v, want %v", tt.probe, got, tt.win)
			}
		})
	}
}

func TestCheckWinMixedColors(t *testing.T) {
	b := NewBoard(Config{6, 7, NoCell})
	b.set(5, 0, PlayerOne)
	b.set(5, 1, PlayerOne)
	b.set(5, 2, PlayerTwo)
	b.set(5, 3, PlayerOne)
	b.set(5, 4, PlayerOne)

	for c := 0; c < 5; c++ {
		if b.CheckWin(5, c) {
			t.Fatalf("mismatched run reported as a win at column %d", c)
		}
	}
	if b.CheckWin(0, 0) {
		t.Fatal("empty cell reported as a win")
	}
}

func TestCheckWinMatchesReference(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	cfg := Config{7, 9, Cell{3, 4}}

	for game := 0; game < 200; game++ {
		b := NewBoard(cfg)
		var cols []int
		for {
			cols = b.LegalColumns(cols[:0])
			if len(cols) == 0 {
				break
			}
			c := cols[r.Intn(len(cols))]
			row := b.ApplyMove(c)

			got, want := b.CheckWin(row, c), slowCheckWin(b, row, c)
			if got != want {
				t.Fatalf("game %d: CheckWin(%d, %d)=%v, reference %v\n%s", game, row, c, got, want, b.Render(termenv.Ascii))
			}
			if got {
				break
			}
		}
	}
}
