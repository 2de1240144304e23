package protocol

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/IlikeChooros/c4-mcts/pkg/c4"
	"github.com/IlikeChooros/c4-mcts/pkg/mcts"
)

// Longest accepted line, a 12 column board with a few thousand rows fits
const maxLineSize = 1 << 20

// Plays one game over the line protocol, keeping the search tree between turns
type Driver struct {
	Params mcts.Params
	// Diagnostics only, the zero value discards everything
	Logger zerolog.Logger
	// Colour profile of the board dumps in debug logs
	Profile termenv.Profile
	// Optional per-search callbacks, installed on the tree before the first turn
	Listener *mcts.StatsListener
}

func NewDriver(params mcts.Params, logger zerolog.Logger) *Driver {
	return &Driver{
		Params:  params,
		Logger:  logger,
		Profile: termenv.Ascii,
	}
}

// Serve turns from r until EOF, writing replies to w. Returns nil on a clean EOF,
// any protocol violation or desync ends the game with an error.
func (d *Driver) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	out := bufio.NewWriter(w)

	line, ok := nextLine(scanner)
	if !ok {
		return scanner.Err()
	}
	cfg, err := ParseConfig(line)
	if err != nil {
		return err
	}
	d.Logger.Info().Stringer("config", cfg).Msg("game started")

	var tree *mcts.MCTS
	for turn := 1; ; turn++ {
		line, ok := nextLine(scanner)
		if !ok {
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := ParseTurn(line, cfg)
		if err != nil {
			return fmt.Errorf("turn %d: %w", turn, err)
		}

		if tree == nil {
			if tree, err = d.newTree(ctx, cfg, msg); err != nil {
				return fmt.Errorf("turn %d: %w", turn, err)
			}
		} else if err := d.sync(tree, msg); err != nil {
			return fmt.Errorf("turn %d: %w", turn, err)
		}

		move, err := d.think(tree)
		if err != nil {
			return fmt.Errorf("turn %d: %w", turn, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := WriteMove(out, move); err != nil {
			return fmt.Errorf("turn %d: write reply: %w", turn, err)
		}
	}
}

func (d *Driver) newTree(ctx context.Context, cfg c4.Config, msg Turn) (*mcts.MCTS, error) {
	board, err := c4.NewBoardFrom(cfg, msg.Heights, msg.Cells)
	if err != nil {
		return nil, err
	}

	tree := mcts.New(board, d.Params)
	tree.SetContext(ctx)
	if d.Listener != nil {
		tree.SetListener(*d.Listener)
	}
	return tree, nil
}

// Replay the opponent's move on the tree and check the harness agrees on the result
func (d *Driver) sync(tree *mcts.MCTS, msg Turn) error {
	move, err := tree.MakeMove(msg.Last.Col)
	if err != nil {
		return fmt.Errorf("%w: opponent move %v: %v", c4.ErrDesync, msg.Last, err)
	}
	if move.Row != msg.Last.Row {
		return fmt.Errorf("%w: opponent move %v landed on row %d", c4.ErrDesync, msg.Last, move.Row)
	}

	d.Logger.Debug().Stringer("move", move).Uint32("reused", tree.Root().Visits()).Msg("opponent moved")
	return tree.Board().Equal(msg.Heights, msg.Cells)
}

// Search the current position and play the result on the tree
func (d *Driver) think(tree *mcts.MCTS) (c4.Move, error) {
	d.Logger.Debug().Func(func(e *zerolog.Event) {
		e.Str("board", "\n"+tree.Board().Render(d.Profile))
	}).Msg("position")

	move, err := tree.Search()
	if err != nil {
		return c4.Move{}, err
	}

	lines := make([]string, 0, c4.MaxCols)
	for _, l := range tree.Lines() {
		lines = append(lines, fmt.Sprintf("%v:%.3f/%d", l.Move, l.WinRate, l.Visits))
	}
	d.Logger.Info().
		Stringer("move", move).
		Int("cycles", tree.Cycles()).
		Uint32("cps", tree.Cps()).
		Uint32("size", tree.Size()).
		Int("maxdepth", tree.MaxDepth()).
		Stringer("stop", tree.StopReason()).
		Strs("lines", lines).
		Msg("search finished")

	if _, err := tree.MakeMove(move.Col); err != nil {
		return c4.Move{}, err
	}
	return move, nil
}

// Next non-blank line, false on EOF or read error
func nextLine(scanner *bufio.Scanner) (string, bool) {
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line, true
		}
	}
	return "", false
}
