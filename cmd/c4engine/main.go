package main

/*

Connect-four engine speaking the harness line protocol on stdin/stdout.

Reads the board configuration, then one line per turn, and answers each turn
with a length-prefixed "row col". Diagnostics go to stderr. Any protocol
violation or desync with the harness is fatal.

*/

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"

	"github.com/IlikeChooros/c4-mcts/pkg/logging"
	"github.com/IlikeChooros/c4-mcts/pkg/mcts"
	"github.com/IlikeChooros/c4-mcts/pkg/protocol"
)

func main() {
	var (
		movetime = flag.Duration("movetime", mcts.DefaultMovetime, "thinking time per move")
		cycles   = flag.Uint("cycles", 0, "iterations per move, 0 means no limit")
		explore  = flag.Float64("c", mcts.DefaultExplorationParam, "UCT exploration constant during selection")
		final    = flag.Float64("final-c", mcts.DefaultFinalExplorationParam, "UCT exploration constant for the final move")
		seed     = flag.Int64("seed", 0, "rollout random seed")
		level    = flag.String("log-level", "info", "log level (trace, debug, info, warn, error, disabled)")
		pretty   = flag.Bool("pretty", false, "human readable logs with colours")
	)
	flag.Parse()

	logger, err := logging.Setup(*level, *pretty)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -log-level")
	}

	limits := mcts.DefaultLimits()
	if *movetime > 0 {
		limits.SetMovetime(*movetime)
	}
	if *cycles > 0 {
		limits.SetCycles(uint32(*cycles))
	}
	if limits.Infinite {
		log.Fatal().Msg("either -movetime or -cycles must be positive")
	}

	params := mcts.DefaultParams().
		WithExploration(*explore).
		WithSeed(*seed).
		WithLimits(limits)
	params.FinalExplorationParam = *final

	driver := protocol.NewDriver(params, logger)
	if *pretty {
		driver.Profile = termenv.NewOutput(os.Stderr).Profile
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	if err := driver.Run(ctx, os.Stdin, os.Stdout); err != nil {
		stop()
		log.Fatal().Err(err).Dur("elapsed", time.Since(start)).Msg("game aborted")
	}
	logger.Info().Dur("elapsed", time.Since(start)).Msg("input closed")
}
