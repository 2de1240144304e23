package mcts

import "github.com/IlikeChooros/c4-mcts/pkg/c4"

// Summary of one root child
type SearchLine struct {
	Move     c4.Move
	Visits   uint32
	WinRate  float64 // from the root player's perspective
	Terminal bool
}

type ListenerTreeStats struct {
	Maxdepth   int
	Cycles     int
	TimeMs     int
	Cps        uint32
	Size       uint32
	RootVisits uint32
	Lines      []SearchLine
	StopReason StopReason
}

// Convert TreeStats to 'ListenerTreeStats' struct
func toListenerStats(tree *MCTS) ListenerTreeStats {
	return ListenerTreeStats{
		Lines:      tree.Lines(),
		Maxdepth:   tree.MaxDepth(),
		Cycles:     tree.Cycles(),
		TimeMs:     int(tree.Limiter.Elapsed()),
		Cps:        tree.Cps(),
		Size:       tree.Size(),
		RootVisits: tree.Root().Visits(),
		StopReason: tree.Limiter.StopReason(),
	}
}

// Listener function callback, will recieve current tree statistics, like
// max depth of tree, number of iterations so far
type ListenerFunc func(ListenerTreeStats)

type StatsListener struct {
	// called every N full iterations
	onCycle ListenerFunc
	nCycles int // call 'onCycle' every N cycles

	// called when the search stops, before the final move is read off
	onStop ListenerFunc
}

func NewStatsListener() StatsListener {
	return StatsListener{nCycles: 1}
}

// Attach new on iteration callback, this slows down the search
// because the root lines are rebuilt, so use a large interval
func (listener *StatsListener) OnCycle(onCycle ListenerFunc) *StatsListener {
	listener.onCycle = onCycle
	return listener
}

func (listener *StatsListener) SetCycleInterval(n int) *StatsListener {
	if n < 1 {
		n = 1
	}
	listener.nCycles = n
	return listener
}

// Attach 'on search end' callback, makes 'StopReason' available in the stats
func (listener *StatsListener) OnStop(onStop ListenerFunc) *StatsListener {
	listener.onStop = onStop
	return listener
}

func (listener *StatsListener) invokeCycle(tree *MCTS) {
	if listener.onCycle != nil && tree.Cycles()%max(listener.nCycles, 1) == 0 {
		listener.onCycle(toListenerStats(tree))
	}
}

func (listener *StatsListener) invokeStop(tree *MCTS) {
	if listener.onStop != nil {
		listener.onStop(toListenerStats(tree))
	}
}
