package mcts

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/IlikeChooros/c4-mcts/pkg/c4"
)

type TreeStats struct {
	maxdepth int
	cps      uint32
	cycles   int
}

// Monte Carlo tree search over a single board, which is mutated in place
// while descending and restored on the way back. The tree survives between
// decisions, MakeMove keeps the subtree of the played move.
//
// Not safe for concurrent use, apart from Stop.
type MCTS struct {
	TreeStats
	Limiter  *Limiter
	listener *StatsListener
	params   Params
	board    *c4.Board
	arena    *Arena
	root     Handle
	rand     *rand.Rand

	// scratch buffers reused by rollouts
	columns []int
	played  []int
}

// Create new tree rooted at the board's current position, the tree takes
// ownership of the board
func New(board *c4.Board, params Params) *MCTS {
	if params.Limits == nil {
		params.Limits = DefaultLimits().SetMovetime(DefaultMovetime)
	}

	listener := NewStatsListener()
	mcts := &MCTS{
		Limiter:  NewLimiter(),
		listener: &listener,
		params:   params,
		board:    board,
		arena:    NewArena(1024),
		rand:     rand.New(rand.NewSource(params.Seed)),
		columns:  make([]int, 0, c4.MaxCols),
		played:   make([]int, 0, board.Rows()*board.Cols()),
	}
	mcts.Limiter.SetLimits(params.Limits)
	mcts.Reset()
	return mcts
}

func (mcts *MCTS) newNode(terminal bool, move c4.Move) Node {
	if terminal {
		return newNode(true, move, nil)
	}
	mcts.columns = mcts.board.LegalColumns(mcts.columns[:0])
	return newNode(false, move, mcts.columns)
}

// Discard the whole tree and build a fresh root from the current board
func (mcts *MCTS) Reset() {
	mcts.arena.Clear()
	mcts.root = mcts.arena.Insert(mcts.newNode(false, c4.Move{Row: -1, Col: -1}))
	mcts.maxdepth = 0
}

// Play the move in column col on the board and advance the root.
// The root child with that column becomes the new root, keeping its statistics,
// every other subtree is freed. Without such a child the tree is rebuilt.
func (mcts *MCTS) MakeMove(col int) (c4.Move, error) {
	if !mcts.board.Playable(col) {
		return c4.Move{}, fmt.Errorf("%w: column %d, heights %v", ErrIllegalMove, col, mcts.board.Heights())
	}

	root := mcts.arena.Get(mcts.root)
	next := NoHandle
	for _, child := range root.Children() {
		if next == NoHandle && mcts.arena.Get(child).Move.Col == col {
			next = child
			continue
		}
		mcts.arena.Remove(child)
	}
	root.nchildren = 0
	mcts.arena.Remove(mcts.root)

	row := mcts.board.ApplyMove(col)
	if next == NoHandle {
		mcts.Reset()
		mcts.Root().Terminal = mcts.board.CheckWin(row, col)
	} else {
		mcts.root = next
		mcts.maxdepth = max(0, mcts.maxdepth-1)
	}
	return c4.Move{Row: row, Col: col}, nil
}

func (mcts *MCTS) Root() *Node {
	return mcts.arena.Get(mcts.root)
}

func (mcts *MCTS) RootHandle() Handle {
	return mcts.root
}

func (mcts *MCTS) Node(h Handle) *Node {
	return mcts.arena.Get(h)
}

// The board the tree searches on, reflects the root position between searches
func (mcts *MCTS) Board() *c4.Board {
	return mcts.board
}

func (mcts *MCTS) Params() Params {
	return mcts.params
}

// Adds custom context to the limiter, enabling cancellation through it.
// Cancellation is noticed between iterations.
func (mcts *MCTS) SetContext(ctx context.Context) {
	mcts.Limiter.SetContext(ctx)
}

// Stop the search, safe to call from another goroutine
func (mcts *MCTS) Stop() {
	mcts.Limiter.SetStop(true)
}

func (mcts *MCTS) SetLimits(limits *Limits) {
	mcts.params.Limits = limits
	mcts.Limiter.SetLimits(limits)
}

func (mcts *MCTS) Limits() *Limits {
	return mcts.Limiter.Limits()
}

func (mcts *MCTS) StatsListener() *StatsListener {
	return mcts.listener
}

func (mcts *MCTS) SetListener(listener StatsListener) {
	*mcts.listener = listener
}

func (mcts *MCTS) ResetListener() {
	mcts.listener.OnCycle(nil).OnStop(nil)
}

// Maxiumum depth reached during the search
func (mcts *MCTS) MaxDepth() int {
	return mcts.maxdepth
}

// Number of search iterations in the last search
func (mcts *MCTS) Cycles() int {
	return mcts.cycles
}

// Get cycles per second statistic
func (mcts *MCTS) Cps() uint32 {
	return mcts.cps
}

// Number of live nodes in the tree
func (mcts *MCTS) Size() uint32 {
	return uint32(mcts.arena.Len())
}

// Get the reason why the search was stopped, valid after search ends
func (mcts *MCTS) StopReason() StopReason {
	return mcts.Limiter.StopReason()
}

// Root children summaries, in expansion order
func (mcts *MCTS) Lines() []SearchLine {
	root := mcts.Root()
	lines := make([]SearchLine, 0, len(root.Children()))
	for _, h := range root.Children() {
		child := mcts.arena.Get(h)
		lines = append(lines, SearchLine{
			Move:     child.Move,
			Visits:   child.Visits(),
			WinRate:  1 - child.AvgValue(),
			Terminal: child.Terminal,
		})
	}
	return lines
}

// Get the principal variation from the root, following the policy
// until a leaf or a terminal node
func (mcts *MCTS) Pv(policy BestChildPolicy) []c4.Move {
	pv := make([]c4.Move, 0, mcts.MaxDepth()+1)
	h := mcts.root
	for {
		h = mcts.BestChild(h, policy)
		if h == NoHandle {
			return pv
		}

		node := mcts.arena.Get(h)
		pv = append(pv, node.Move)
		if node.Terminal {
			return pv
		}
	}
}

func (mcts *MCTS) String() string {
	root := mcts.Root()
	return fmt.Sprintf("MCTS={Size=%d, Stats:{maxdepth=%d, cps=%d, cycles=%d}, Root={visits=%d, value=%.3f, children=%d}}",
		mcts.Size(), mcts.MaxDepth(), mcts.Cps(), mcts.Cycles(),
		root.Visits(), root.Value(), len(root.Children()))
}
