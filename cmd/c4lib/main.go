package main

/*

Shared library build of the engine, for hosts that call into C instead of
speaking the line protocol:

	go build -buildmode=c-shared -o libc4.so ./cmd/c4lib

Every getPoint call searches a fresh tree built from the given position, no
state survives between calls. The returned Point must be released with
clearPoint. Behaviour can be tuned through the environment:

	C4LIB_MOVETIME   thinking time per call, e.g. 1.5s
	C4LIB_LOG_LEVEL  zerolog level of the stderr diagnostics
	C4LIB_INPUT_LOG  append every call to this file, in the line protocol format

*/

/*
#cgo CFLAGS: -I${SRCDIR}/../../pkg/c
#include "point.h"
*/
import "C"

import (
	"fmt"
	"os"
	"sync"
	"time"
	"unsafe"

	"github.com/rs/zerolog"

	cmcts "github.com/IlikeChooros/c4-mcts/pkg/c"
	"github.com/IlikeChooros/c4-mcts/pkg/c4"
	"github.com/IlikeChooros/c4-mcts/pkg/logging"
	"github.com/IlikeChooros/c4-mcts/pkg/mcts"
	"github.com/IlikeChooros/c4-mcts/pkg/protocol"
)

var (
	setupOnce sync.Once
	logger    zerolog.Logger
	params    mcts.Params
)

func setup() {
	level := os.Getenv("C4LIB_LOG_LEVEL")
	if level == "" {
		level = "warn"
	}

	var err error
	if logger, err = logging.Setup(level, false); err != nil {
		logger, _ = logging.Setup("warn", false)
		logger.Warn().Err(err).Msg("ignoring C4LIB_LOG_LEVEL")
	}

	movetime := mcts.DefaultMovetime
	if v := os.Getenv("C4LIB_MOVETIME"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			movetime = d
		} else {
			logger.Warn().Str("value", v).Msg("ignoring C4LIB_MOVETIME")
		}
	}
	params = mcts.DefaultParams().WithLimits(mcts.DefaultLimits().SetMovetime(movetime))
}

//export getPoint
func getPoint(row, col C.int, top, board *C.int, lastX, lastY, noX, noY C.int) *C.Point {
	setupOnce.Do(setup)

	move, err := decide(int(row), int(col), unsafe.Pointer(top), unsafe.Pointer(board),
		c4.Move{Row: int(lastX), Col: int(lastY)}, c4.Cell{Row: int(noX), Col: int(noY)})
	if err != nil {
		logger.Error().Err(err).Msg("getPoint")
		return nil
	}
	return (*C.Point)(cmcts.NewPoint(move))
}

//export clearPoint
func clearPoint(point *C.Point) {
	cmcts.FreePoint(unsafe.Pointer(point))
}

func decide(rows, cols int, top, board unsafe.Pointer, last c4.Move, forbidden c4.Cell) (c4.Move, error) {
	cfg := c4.Config{Rows: rows, Cols: cols, Forbidden: forbidden}
	if err := cfg.Validate(); err != nil {
		return c4.Move{}, err
	}

	heights := cmcts.Ints(top, cols)
	cells, err := cmcts.Pieces(board, cfg.Size())
	if err != nil {
		return c4.Move{}, err
	}
	recordInput(cfg, protocol.Turn{Last: last, Heights: heights, Cells: cells})

	start := time.Now()
	move, err := mcts.Decide(cfg, heights, cells, params)
	if err != nil {
		return c4.Move{}, err
	}
	logger.Info().Stringer("move", move).Dur("elapsed", time.Since(start)).Msg("decided")
	return move, nil
}

// Append the call to C4LIB_INPUT_LOG, so it can be replayed through c4engine
func recordInput(cfg c4.Config, turn protocol.Turn) {
	path := os.Getenv("C4LIB_INPUT_LOG")
	if path == "" {
		return
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("cannot open input log")
		return
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%d %d %d %d\n%s\n",
		cfg.Rows, cfg.Cols, cfg.Forbidden.Row, cfg.Forbidden.Col, turn)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("cannot write input log")
	}
}

func main() {}
