package mcts

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

type Limits struct {
	Movetime time.Duration
	Nodes    uint32
	Cycles   uint32
	Infinite bool
}

func (l Limits) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(l)
	return builder.String()
}

const (
	DefaultNodeLimit     uint32        = math.MaxUint32
	DefaultMovetimeLimit time.Duration = -1
	DefaultCyclesLimit   uint32        = math.MaxUint32
)

// No limits at all, the search runs until stopped
func DefaultLimits() *Limits {
	return &Limits{
		Nodes:    DefaultNodeLimit,
		Cycles:   DefaultCyclesLimit,
		Movetime: DefaultMovetimeLimit,
		Infinite: true,
	}
}

// Set the maximum number of nodes the tree may hold
func (l *Limits) SetNodes(nodes uint32) *Limits {
	l.Nodes = nodes
	l.Infinite = false
	return l
}

// Set the number of search iterations
func (l *Limits) SetCycles(cycles uint32) *Limits {
	l.Cycles = cycles
	l.Infinite = false
	return l
}

// Set the maximum time for engine to think
func (l *Limits) SetMovetime(movetime time.Duration) *Limits {
	l.Movetime = movetime
	l.Infinite = false
	return l
}

func (l *Limits) SetInfinite(infinite bool) *Limits {
	l.Infinite = infinite
	return l
}
