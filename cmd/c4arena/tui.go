package main

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/IlikeChooros/c4-mcts/pkg/bench"
	"github.com/IlikeChooros/c4-mcts/pkg/c4"
)

type GameUpdate struct {
	Info bench.VersusWorkerInfo
}

type doneMsg struct {
	summary bench.VersusSummaryInfo
	err     error
}

type TickMsg time.Time

// Feeds arena progress into the TUI, never blocks the workers
type tuiListener struct {
	bench.NopListener
	updates chan GameUpdate
	moves   atomic.Int64
	latest  atomic.Pointer[bench.VersusWorkerInfo]
}

func newTuiListener() *tuiListener {
	return &tuiListener{updates: make(chan GameUpdate, 64)}
}

func (l *tuiListener) OnMoveMade(info bench.VersusWorkerInfo) {
	l.moves.Add(1)
	if info.WorkerID == 0 {
		info.Moves = append([]c4.Move(nil), info.Moves...)
		l.latest.Store(&info)
	}
}

func (l *tuiListener) OnFinishedGame(info bench.VersusWorkerInfo) {
	select {
	case l.updates <- GameUpdate{Info: info}:
	default:
	}
}

type model struct {
	cfg         c4.Config
	profile     termenv.Profile
	listener    *tuiListener
	total       int
	gamesPlayed int
	moves       int64
	score       [3]int // player 1 wins, draws, player 2 wins
	startTime   time.Time
	recentGames []string
	board       string
	done        *doneMsg
}

func initialModel(cfg c4.Config, total int, listener *tuiListener) model {
	return model{
		cfg:       cfg,
		profile:   termenv.ColorProfile(),
		listener:  listener,
		total:     total,
		startTime: time.Now(),
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func waitForUpdate(updates chan GameUpdate) tea.Cmd {
	return func() tea.Msg {
		return <-updates
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.listener.updates), tickCmd())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case TickMsg:
		m.moves = m.listener.moves.Load()
		if info := m.listener.latest.Load(); info != nil {
			m.board = renderMoves(m.cfg, info.Moves, m.profile)
		}
		return m, tickCmd()
	case GameUpdate:
		info := msg.Info
		m.gamesPlayed++
		m.score = [3]int{info.P1Wins, info.Draws, info.P2Wins}
		logMsg := fmt.Sprintf("Worker %d: game %d, %s in %d moves", info.WorkerID, info.Game, winnerName(info), len(info.Moves))
		m.recentGames = append([]string{logMsg}, m.recentGames...)
		if len(m.recentGames) > 10 {
			m.recentGames = m.recentGames[:10]
		}
		return m, waitForUpdate(m.listener.updates)
	case doneMsg:
		m.done = &msg
		m.score = [3]int{msg.summary.P1Wins, msg.summary.Draws, msg.summary.P2Wins}
		m.gamesPlayed = msg.summary.TotalGames
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	duration := time.Since(m.startTime)
	movesPerSec := 0.0
	if duration.Seconds() >= 1 {
		movesPerSec = float64(m.moves) / duration.Seconds()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Board:          %s\n", m.cfg)
	fmt.Fprintf(&sb, "Games Played:   %d/%d\n", m.gamesPlayed, m.total)
	fmt.Fprintf(&sb, "Score (W-D-L):  %d-%d-%d\n", m.score[0], m.score[1], m.score[2])
	fmt.Fprintf(&sb, "Total Moves:    %d\n", m.moves)
	fmt.Fprintf(&sb, "Duration:       %s\n", duration.Round(time.Second))
	fmt.Fprintf(&sb, "Moves/Sec:      %.2f\n\n", movesPerSec)

	if m.board != "" {
		sb.WriteString(m.board)
		sb.WriteString("\n\n")
	}

	sb.WriteString("Recent Games:\n")
	for _, g := range m.recentGames {
		sb.WriteString(g + "\n")
	}

	if m.done != nil {
		if m.done.err != nil {
			fmt.Fprintf(&sb, "\nArena failed: %v\n", m.done.err)
		}
		return sb.String()
	}
	sb.WriteString("\nPress q to quit.\n")
	return sb.String()
}

func winnerName(info bench.VersusWorkerInfo) string {
	switch info.Result {
	case bench.VersusPl1Win:
		return info.P1Name + " won"
	case bench.VersusPl2Win:
		return info.P2Name + " won"
	}
	return "draw"
}

func renderMoves(cfg c4.Config, moves []c4.Move, profile termenv.Profile) string {
	board := c4.NewBoard(cfg)
	for _, m := range moves {
		board.ApplyMove(m.Col)
	}
	return board.Render(profile)
}
