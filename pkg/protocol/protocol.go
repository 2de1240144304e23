// Package protocol implements the line protocol spoken with the match harness.
//
// The harness sends one configuration line, then one line per turn:
//
//	rows cols forbiddenRow forbiddenCol
//	lastRow lastCol heights[0..cols) cells[0..rows*cols)
//
// and the engine answers each turn with a 4-byte big-endian length followed
// by "row col".
package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/IlikeChooros/c4-mcts/pkg/c4"
)

var ErrMalformed = errors.New("protocol: malformed line")

// Upper bound on a reply length, replies are two small integers
const maxReplyLen = 64

// One turn message. Last is the opponent's previous move, meaningless on the
// first turn, where the harness may send negative values.
type Turn struct {
	Last    c4.Move
	Heights []int
	Cells   []c4.Piece
}

func ParseConfig(line string) (c4.Config, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return c4.Config{}, fmt.Errorf("%w: config has %d fields, want 4", ErrMalformed, len(fields))
	}

	var v [4]int
	for i, f := range fields {
		n, err := parseUint(f)
		if err != nil {
			return c4.Config{}, fmt.Errorf("%w: config field %d: %v", ErrMalformed, i, err)
		}
		v[i] = n
	}
	return c4.NewConfig(v[0], v[1], v[2], v[3])
}

func ParseTurn(line string, cfg c4.Config) (Turn, error) {
	fields := strings.Fields(line)
	if want := 2 + cfg.Cols + cfg.Size(); len(fields) != want {
		return Turn{}, fmt.Errorf("%w: turn has %d fields, want %d", ErrMalformed, len(fields), want)
	}

	var turn Turn
	var err error
	if turn.Last.Row, err = strconv.Atoi(fields[0]); err != nil {
		return Turn{}, fmt.Errorf("%w: last row: %v", ErrMalformed, err)
	}
	if turn.Last.Col, err = strconv.Atoi(fields[1]); err != nil {
		return Turn{}, fmt.Errorf("%w: last col: %v", ErrMalformed, err)
	}
	fields = fields[2:]

	turn.Heights = make([]int, cfg.Cols)
	for c := range turn.Heights {
		if turn.Heights[c], err = parseUint(fields[c]); err != nil {
			return Turn{}, fmt.Errorf("%w: height %d: %v", ErrMalformed, c, err)
		}
	}
	fields = fields[cfg.Cols:]

	turn.Cells = make([]c4.Piece, cfg.Size())
	for i := range turn.Cells {
		p, err := parseUint(fields[i])
		if err != nil || p > int(c4.PlayerTwo) {
			return Turn{}, fmt.Errorf("%w: cell %d: %q is not a piece", ErrMalformed, i, fields[i])
		}
		turn.Cells[i] = c4.Piece(p)
	}
	return turn, nil
}

// Format the turn back into a protocol line
func (turn Turn) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %d", turn.Last.Row, turn.Last.Col)
	for _, h := range turn.Heights {
		fmt.Fprintf(&sb, " %d", h)
	}
	for _, p := range turn.Cells {
		fmt.Fprintf(&sb, " %d", p)
	}
	return sb.String()
}

// Write the framed reply, flushing w if it buffers
func WriteMove(w io.Writer, m c4.Move) error {
	msg := m.String()
	var frame [4]byte
	binary.BigEndian.PutUint32(frame[:], uint32(len(msg)))

	if _, err := w.Write(frame[:]); err != nil {
		return err
	}
	if _, err := io.WriteString(w, msg); err != nil {
		return err
	}
	if f, ok := w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Read one framed reply, the harness side of WriteMove
func ReadMove(r io.Reader) (c4.Move, error) {
	var frame [4]byte
	if _, err := io.ReadFull(r, frame[:]); err != nil {
		return c4.Move{}, err
	}
	n := binary.BigEndian.Uint32(frame[:])
	if n > maxReplyLen {
		return c4.Move{}, fmt.Errorf("%w: reply length %d", ErrMalformed, n)
	}

	msg := make([]byte, n)
	if _, err := io.ReadFull(r, msg); err != nil {
		return c4.Move{}, err
	}

	var m c4.Move
	if _, err := fmt.Sscanf(string(msg), "%d %d", &m.Row, &m.Col); err != nil {
		return c4.Move{}, fmt.Errorf("%w: reply %q: %v", ErrMalformed, msg, err)
	}
	return m, nil
}

func parseUint(s string) (int, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	return int(n), err
}
