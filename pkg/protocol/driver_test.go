package protocol

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/IlikeChooros/c4-mcts/pkg/c4"
	"github.com/IlikeChooros/c4-mcts/pkg/mcts"
)

func testParams() mcts.Params {
	return mcts.DefaultParams().WithSeed(7).WithLimits(mcts.DefaultLimits().SetCycles(300))
}

func snapshot(last c4.Move, b *c4.Board) string {
	return Turn{Last: last, Heights: b.Heights(), Cells: b.Cells()}.String() + "\n"
}

// Plays a whole game against the driver through pipes, the harness side
// always answers with the first legal column
func TestDriverPlaysGame(t *testing.T) {
	cfg, err := c4.NewConfig(6, 7, 2, 3)
	if err != nil {
		t.Fatal(err)
	}

	inR, inW := io.Pipe()
	outR, outW := io.Pipe()
	driver := NewDriver(testParams(), zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel))

	done := make(chan error, 1)
	go func() {
		err := driver.Run(context.Background(), inR, outW)
		outW.CloseWithError(io.EOF)
		done <- err
	}()

	board := c4.NewBoard(cfg)
	fmt.Fprintf(inW, "%d %d %d %d\n", cfg.Rows, cfg.Cols, cfg.Forbidden.Row, cfg.Forbidden.Col)
	fmt.Fprint(inW, snapshot(c4.Move{Row: -1, Col: -1}, board))

	turns := 0
	for {
		reply, err := ReadMove(outR)
		if err != nil {
			t.Fatalf("turn %d: ReadMove: %v", turns, err)
		}
		turns++
		if !board.Playable(reply.Col) {
			t.Fatalf("turn %d: engine played full column %v", turns, reply)
		}
		if row := board.ApplyMove(reply.Col); row != reply.Row {
			t.Fatalf("turn %d: engine reported row %d, piece landed on %d", turns, reply.Row, row)
		}
		if board.CheckWin(reply.Row, reply.Col) {
			break
		}

		cols := board.LegalColumns(nil)
		if len(cols) == 0 {
			break
		}
		col := cols[len(cols)-1]
		row := board.ApplyMove(col)
		if board.CheckWin(row, col) || len(board.LegalColumns(nil)) == 0 {
			break
		}
		fmt.Fprint(inW, snapshot(c4.Move{Row: row, Col: col}, board))
	}
	inW.Close()

	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
	t.Logf("game over after %d engine moves\n%s", turns, board.Render(termenv.Ascii))
}

func TestDriverDetectsDesync(t *testing.T) {
	cfg, _ := c4.NewConfig(6, 7, 0, 0)
	board := c4.NewBoard(cfg)

	// Same parameters, same answer
	first, err := mcts.Decide(cfg, board.Heights(), board.Cells(), testParams())
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	board.ApplyMove(first.Col)
	row := board.ApplyMove(first.Col)

	tests := []struct {
		name string
		turn string
	}{
		{"wrong row", Turn{Last: c4.Move{Row: 0, Col: first.Col}, Heights: board.Heights(), Cells: board.Cells()}.String()},
		{"wrong cells", Turn{Last: c4.Move{Row: row, Col: first.Col}, Heights: board.Heights(), Cells: make([]c4.Piece, cfg.Size())}.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "6 7 0 0\n" + snapshot(c4.Move{Row: -1, Col: -1}, c4.NewBoard(cfg)) + tt.turn + "\n"

			var out bytes.Buffer
			err := NewDriver(testParams(), zerolog.Nop()).Run(context.Background(), strings.NewReader(input), &out)
			if !errors.Is(err, c4.ErrDesync) {
				t.Fatalf("err=%v, want %v", err, c4.ErrDesync)
			}

			reply, err := ReadMove(&out)
			if err != nil || reply != first {
				t.Fatalf("first reply %v (%v), want %v", reply, err, first)
			}
		})
	}
}

func TestDriverInputErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{"empty input", "", nil},
		{"config only", "6 7 0 0\n\n", nil},
		{"bad config", "6 7 0\n", ErrMalformed},
		{"too many columns", "6 13 0 0\n", c4.ErrDimensions},
		{"short turn", "2 2 0 0\n-1 -1 2 2 0 0 0\n", ErrMalformed},
		{"illegal opponent move", "2 2 0 0\n-1 -1 2 2 0 0 0 0\n0 5 2 2 0 0 0 0\n", c4.ErrDesync},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDriver(testParams(), zerolog.Nop()).Run(context.Background(), strings.NewReader(tt.input), io.Discard)
			if tt.err == nil && err != nil {
				t.Fatalf("err=%v, want nil", err)
			}
			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Fatalf("err=%v, want %v", err, tt.err)
			}
		})
	}
}

func TestDriverCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := "2 2 0 0\n-1 -1 2 2 0 0 0 0\n"
	err := NewDriver(testParams(), zerolog.Nop()).Run(ctx, strings.NewReader(input), io.Discard)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v, want %v", err, context.Canceled)
	}
}
