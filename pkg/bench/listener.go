package bench

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

// Arena progress callbacks. Workers call them concurrently.
type ListenerLike interface {
	OnMoveMade(info VersusWorkerInfo)
	OnFinishedGame(info VersusWorkerInfo)
	OnFinishedWork(info VersusWorkerInfo)
}

type NopListener struct{}

func (NopListener) OnMoveMade(VersusWorkerInfo)     {}
func (NopListener) OnFinishedGame(VersusWorkerInfo) {}
func (NopListener) OnFinishedWork(VersusWorkerInfo) {}

// Prints one line per finished game, colouring the winner
type PrintListener struct {
	mu  sync.Mutex
	out *termenv.Output
}

func NewPrintListener(w io.Writer) *PrintListener {
	return &PrintListener{out: termenv.NewOutput(w)}
}

func (p *PrintListener) OnMoveMade(VersusWorkerInfo) {}

func (p *PrintListener) OnFinishedGame(info VersusWorkerInfo) {
	first, second := info.P1Name, info.P2Name
	if !info.P1First {
		first, second = second, first
	}

	winner := "draw"
	color := "#DBAB79"
	switch info.Result {
	case VersusPl1Win:
		winner, color = info.P1Name, "#A8CC8C"
	case VersusPl2Win:
		winner, color = info.P2Name, "#E88388"
	}

	moves := make([]string, len(info.Moves))
	for i, m := range info.Moves {
		moves[i] = fmt.Sprint(m.Col)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "[w%d] game %d: %s vs %s -> %s in %d moves (%s)  score %d-%d-%d\n",
		info.WorkerID, info.Game, first, second,
		p.out.String(winner).Foreground(p.out.Color(color)).Bold(),
		len(info.Moves), strings.Join(moves, ""),
		info.P1Wins, info.Draws, info.P2Wins)
}

func (p *PrintListener) OnFinishedWork(info VersusWorkerInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "[w%d] done, %d games\n", info.WorkerID, info.NGames)
}
