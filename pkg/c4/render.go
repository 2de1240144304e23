package c4

import (
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

var _pieceColors = [...]string{
	PlayerOne: "#E88388",
	PlayerTwo: "#DBAB79",
}

// Render the board as a grid, one row per line with column indices underneath.
// Pieces are coloured according to the profile, termenv.Ascii gives plain text.
func (b *Board) Render(profile termenv.Profile) string {
	var sb strings.Builder
	for r := 0; r < b.cfg.Rows; r++ {
		for c := 0; c < b.cfg.Cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.renderCell(profile, r, c))
		}
		sb.WriteByte('\n')
	}

	for c := 0; c < b.cfg.Cols; c++ {
		if c > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(profile.String(strconv.Itoa(c % 10)).Faint().String())
	}
	sb.WriteByte('\n')
	return sb.String()
}

func (b *Board) renderCell(profile termenv.Profile, r, c int) string {
	if b.cfg.IsForbidden(r, c) {
		return profile.String("#").Faint().String()
	}

	switch p := b.At(r, c); p {
	case PlayerOne, PlayerTwo:
		return profile.String(strconv.Itoa(int(p))).
			Foreground(profile.Color(_pieceColors[p])).
			Bold().
			String()
	default:
		return "."
	}
}
