package protocol

import (
	"bufio"
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/IlikeChooros/c4-mcts/pkg/c4"
)

func TestParseConfig(t *testing.T) {
	tests := []struct {
		line string
		want c4.Config
		err  error
	}{
		{"6 7 2 3", c4.Config{Rows: 6, Cols: 7, Forbidden: c4.Cell{Row: 2, Col: 3}}, nil},
		{"  12 12 11 0 \r", c4.Config{Rows: 12, Cols: 12, Forbidden: c4.Cell{Row: 11, Col: 0}}, nil},
		{"6 7 2", c4.Config{}, ErrMalformed},
		{"6 7 2 3 1", c4.Config{}, ErrMalformed},
		{"6 7 -1 -1", c4.Config{}, ErrMalformed},
		{"6 seven 2 3", c4.Config{}, ErrMalformed},
		{"6 13 2 3", c4.Config{}, c4.ErrDimensions},
		{"6 7 6 0", c4.Config{}, c4.ErrForbiddenCell},
	}

	for _, tt := range tests {
		got, err := ParseConfig(tt.line)
		if tt.err != nil {
			if !errors.Is(err, tt.err) {
				t.Errorf("ParseConfig(%q): err=%v, want %v", tt.line, err, tt.err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseConfig(%q) = %v, %v; want %v", tt.line, got, err, tt.want)
		}
	}
}

func TestParseTurn(t *testing.T) {
	cfg := c4.Config{Rows: 2, Cols: 3, Forbidden: c4.Cell{Row: 0, Col: 0}}

	turn, err := ParseTurn("-1 -1 0 2 1 0 0 0 1 0 2", cfg)
	if err != nil {
		t.Fatalf("ParseTurn: %v", err)
	}
	if turn.Last != (c4.Move{Row: -1, Col: -1}) {
		t.Errorf("last move %v, want -1 -1", turn.Last)
	}
	if want := []int{0, 2, 1}; !slices.Equal(turn.Heights, want) {
		t.Errorf("heights %v, want %v", turn.Heights, want)
	}
	if want := []c4.Piece{0, 0, 0, 1, 0, 2}; !slices.Equal(turn.Cells, want) {
		t.Errorf("cells %v, want %v", turn.Cells, want)
	}
	if got := turn.String(); got != "-1 -1 0 2 1 0 0 0 1 0 2" {
		t.Errorf("String() = %q", got)
	}

	bad := []string{
		"",
		"1 1 0 2 1 0 0 0 1 0",     // short
		"1 1 0 2 1 0 0 0 1 0 2 0", // long
		"1 1 0 2 1 0 0 0 3 0 2",   // not a piece
		"1 1 0 -2 1 0 0 0 1 0 2",  // negative height
		"a 1 0 2 1 0 0 0 1 0 2",
	}
	for _, line := range bad {
		if _, err := ParseTurn(line, cfg); !errors.Is(err, ErrMalformed) {
			t.Errorf("ParseTurn(%q): err=%v, want %v", line, err, ErrMalformed)
		}
	}
}

func TestWriteMoveFraming(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	if err := WriteMove(w, c4.Move{Row: 10, Col: 3}); err != nil {
		t.Fatalf("WriteMove: %v", err)
	}
	// Flushed without an explicit call
	want := []byte{0, 0, 0, 4, '1', '0', ' ', '3'}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("wrote %v, want %v", buf.Bytes(), want)
	}

	m, err := ReadMove(&buf)
	if err != nil {
		t.Fatalf("ReadMove: %v", err)
	}
	if m != (c4.Move{Row: 10, Col: 3}) {
		t.Errorf("read %v, want 10 3", m)
	}
}

func TestReadMoveRejectsHugeFrame(t *testing.T) {
	r := bytes.NewReader([]byte{0, 1, 0, 0, '1'})
	if _, err := ReadMove(r); !errors.Is(err, ErrMalformed) {
		t.Fatalf("err=%v, want %v", err, ErrMalformed)
	}
}
