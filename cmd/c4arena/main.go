package main

/*

Connect-four engine arena, plays two engine configurations against each other.

	c4arena -games 100 -threads 4 -p1-movetime 200ms -p2-c 1.0 -record games.parquet

Colours alternate every game. With -tui a live progress view is shown,
otherwise one line is printed per finished game. The summary is printed
as JSON on stdout at the end.

*/

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/IlikeChooros/c4-mcts/pkg/bench"
	"github.com/IlikeChooros/c4-mcts/pkg/c4"
	"github.com/IlikeChooros/c4-mcts/pkg/logging"
	"github.com/IlikeChooros/c4-mcts/pkg/mcts"
)

func playerFlags(prefix, name string) func() bench.Player {
	var (
		playerName = flag.String(prefix+"-name", name, "display name")
		movetime   = flag.Duration(prefix+"-movetime", 100*time.Millisecond, "thinking time per move, 0 disables")
		cycles     = flag.Uint(prefix+"-cycles", 0, "iterations per move, 0 means no limit")
		explore    = flag.Float64(prefix+"-c", mcts.DefaultExplorationParam, "UCT exploration constant")
		seed       = flag.Int64(prefix+"-seed", 0, "base rollout seed")
	)

	return func() bench.Player {
		limits := mcts.DefaultLimits()
		if *movetime > 0 {
			limits.SetMovetime(*movetime)
		}
		if *cycles > 0 {
			limits.SetCycles(uint32(*cycles))
		}
		if limits.Infinite {
			log.Fatal().Str("player", prefix).Msg("either -movetime or -cycles must be positive")
		}

		return bench.Player{
			Name:   *playerName,
			Params: mcts.DefaultParams().WithExploration(*explore).WithSeed(*seed).WithLimits(limits),
		}
	}
}

func main() {
	var (
		rows      = flag.Int("rows", 6, "board rows")
		cols      = flag.Int("cols", 7, "board columns")
		forbidden = flag.String("forbidden", "none", "forbidden cell as row,col or none")
		games     = flag.Int("games", 20, "number of games")
		threads   = flag.Int("threads", 2, "games played in parallel")
		record    = flag.String("record", "", "write finished games to this parquet file")
		useTui    = flag.Bool("tui", false, "show live progress view")
		level     = flag.String("log-level", "info", "log level")
	)
	player1 := playerFlags("p1", "player1")
	player2 := playerFlags("p2", "player2")
	flag.Parse()

	if _, err := logging.Setup(*level, true); err != nil {
		log.Fatal().Err(err).Msg("bad -log-level")
	}

	fr, fc, err := parseCell(*forbidden)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -forbidden")
	}
	cfg, err := c4.NewConfig(*rows, *cols, fr, fc)
	if err != nil {
		log.Fatal().Err(err).Msg("bad board")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener := bench.NewArenaListener()
	var recorder *bench.RecordListener
	if *record != "" {
		writer, err := bench.NewRecordWriter(*record)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot record games")
		}
		defer func() {
			if err := writer.Close(); err != nil {
				log.Error().Err(err).Str("path", *record).Msg("closing records")
			}
		}()
		recorder = bench.NewRecordListener(cfg, writer)
		listener.Add(recorder)
	}

	arena := bench.NewVersusArena(cfg, player1(), player2()).Setup(*games, *threads)
	log.Info().Stringer("board", cfg).Str("p1", arena.Player1.Name).Str("p2", arena.Player2.Name).
		Int("games", *games).Int("threads", *threads).Msg("arena started")

	var summary bench.VersusSummaryInfo
	if *useTui {
		summary, err = runTui(ctx, arena, listener)
	} else {
		summary, err = arena.Start(ctx, listener.Add(bench.NewPrintListener(os.Stderr)))
	}
	if err != nil {
		log.Error().Err(err).Msg("arena stopped")
	}
	if recorder != nil {
		if rerr := recorder.Err(); rerr != nil {
			log.Error().Err(rerr).Msg("recording failed")
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		log.Error().Err(err).Msg("writing summary")
	}
}

// Run the arena behind the bubbletea view, quitting the view cancels the arena
func runTui(ctx context.Context, arena *bench.VersusArena, listener *bench.ArenaListener) (bench.VersusSummaryInfo, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tl := newTuiListener()
	listener.Add(tl)
	p := tea.NewProgram(initialModel(arena.Config, arena.NGames, tl), tea.WithContext(ctx))

	result := make(chan doneMsg, 1)
	go func() {
		summary, err := arena.Start(ctx, listener)
		result <- doneMsg{summary: summary, err: err}
		p.Send(doneMsg{summary: summary, err: err})
	}()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("tui")
	}
	cancel()
	done := <-result
	return done.summary, done.err
}

func parseCell(s string) (int, int, error) {
	if s == "none" || s == "" {
		return c4.NoCell.Row, c4.NoCell.Col, nil
	}
	var r, c int
	if _, err := fmt.Sscanf(s, "%d,%d", &r, &c); err != nil {
		return 0, 0, fmt.Errorf("%q: %w", s, err)
	}
	return r, c, nil
}
