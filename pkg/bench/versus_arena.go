package bench

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/IlikeChooros/c4-mcts/pkg/c4"
	"github.com/IlikeChooros/c4-mcts/pkg/mcts"
)

/*
Arena benchmark subpackage, plays a series of games between two engine
configurations on the same board setup.
*/

type VersusArena struct {
	VersusArenaStats
	Config   c4.Config
	Player1  Player
	Player2  Player
	NGames   int
	NThreads int
}

func NewVersusArena(cfg c4.Config, p1, p2 Player) *VersusArena {
	return &VersusArena{
		Config:   cfg,
		Player1:  p1,
		Player2:  p2,
		NGames:   100,
		NThreads: 2,
	}
}

func (va *VersusArena) Setup(nGames, nThreads int) *VersusArena {
	va.NGames = nGames
	va.NThreads = nThreads
	return va
}

// Play all games and block until done. Games are split evenly between the
// workers, player 1 moves first in even numbered games. The first failing
// game cancels the rest.
func (va *VersusArena) Start(ctx context.Context, listener ListenerLike) (VersusSummaryInfo, error) {
	if err := va.Config.Validate(); err != nil {
		return VersusSummaryInfo{}, err
	}
	if va.NGames < 1 || va.NThreads < 1 {
		return VersusSummaryInfo{}, fmt.Errorf("bench: need at least one game and one thread, got %d and %d", va.NGames, va.NThreads)
	}
	if listener == nil {
		listener = NopListener{}
	}

	nThreads := min(va.NThreads, va.NGames)
	nGames := va.NGames / nThreads
	rest := va.NGames % nThreads

	g, ctx := errgroup.WithContext(ctx)
	offset := 0
	for i := range nThreads {
		count := nGames
		if i < rest {
			count++
		}

		w := &worker{
			arena:    va,
			id:       i,
			offset:   offset,
			nGames:   count,
			listener: listener,
		}
		g.Go(func() error {
			return w.run(ctx)
		})
		offset += count
	}

	err := g.Wait()
	return va.Summary(), err
}

func (va *VersusArena) Summary() VersusSummaryInfo {
	return VersusSummaryInfo{
		TotalGames:       va.Total(),
		P1Wins:           va.P1Wins(),
		P2Wins:           va.P2Wins(),
		FirstToMoveWins:  va.FirstToMoveWins(),
		SecondToMoveWins: va.SecondToMoveWins(),
		Draws:            va.Draws(),
		Workers:          min(va.NThreads, va.NGames),
		P1Name:           va.Player1.Name,
		P2Name:           va.Player2.Name,
	}
}

type worker struct {
	arena    *VersusArena
	id       int
	offset   int
	nGames   int
	listener ListenerLike
	finished int
}

func (w *worker) run(ctx context.Context) error {
	for i := range w.nGames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.playGame(ctx, w.offset+i); err != nil {
			return fmt.Errorf("worker %d, game %d: %w", w.id, w.offset+i, err)
		}
		w.finished++
	}

	w.listener.OnFinishedWork(w.info(w.offset+w.nGames-1, nil, true))
	return nil
}

func (w *worker) info(game int, moves []c4.Move, p1First bool) VersusWorkerInfo {
	va := w.arena
	return VersusWorkerInfo{
		WorkerID:      w.id,
		NGames:        w.nGames,
		FinishedGames: w.finished,
		Game:          game,
		GameMoveNum:   len(moves),
		Moves:         moves,
		P1First:       p1First,
		P1Wins:        va.P1Wins(),
		P2Wins:        va.P2Wins(),
		Draws:         va.Draws(),
		P1Name:        va.Player1.Name,
		P2Name:        va.Player2.Name,
	}
}

// Each engine searches on its own board, the referee board decides the result.
// Rollout seeds depend on the game index, so repeated pairings differ.
func (w *worker) playGame(ctx context.Context, game int) error {
	va := w.arena
	p1First := game%2 == 0
	first, second := va.Player1, va.Player2
	if !p1First {
		first, second = second, first
	}

	referee := c4.NewBoard(va.Config)
	engines := [2]*mcts.MCTS{
		mcts.New(referee.Clone(), first.Params.WithSeed(first.Params.Seed+int64(2*game))),
		mcts.New(referee.Clone(), second.Params.WithSeed(second.Params.Seed+int64(2*game+1))),
	}
	for _, e := range engines {
		e.SetContext(ctx)
	}

	moves := make([]c4.Move, 0, va.Config.Size())
	for {
		move, err := engines[len(moves)%2].Search()
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if row := referee.ApplyMove(move.Col); row != move.Row {
			return fmt.Errorf("%w: engine answered %v, piece landed on row %d", c4.ErrDesync, move, row)
		}
		for _, e := range engines {
			if _, err := e.MakeMove(move.Col); err != nil {
				return err
			}
		}
		moves = append(moves, move)
		w.listener.OnMoveMade(w.info(game, moves, p1First))

		if outcome, over := computeOutcome(referee, move, len(moves)); over {
			result := toAgentResult(outcome, p1First)
			va.add(result, outcome)

			info := w.info(game, moves, p1First)
			info.Result = result
			w.listener.OnFinishedGame(info)
			return nil
		}
	}
}
