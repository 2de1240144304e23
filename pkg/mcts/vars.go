package mcts

import (
	"math"
	"time"
)

// Exploration parameter used while descending the tree, sqrt(1/2)
var DefaultExplorationParam = math.Sqrt(0.5)

// Exploration parameter used to pick the final move, 0 means pure win rate
const DefaultFinalExplorationParam = 0.0

// Thinking time per decision
const DefaultMovetime = 2800 * time.Millisecond

const (
	// When choosing the best child, choose the one with most visits
	BestChildMostVisits BestChildPolicy = iota

	// Choose the child with the best win rate, this is what Search uses for the final move
	BestChildWinRate
)

// Engine parameters, one set per MCTS instance
type Params struct {
	// Exploration constant 'c' of the UCT score during selection
	ExplorationParam float64
	// Exploration constant used when reading off the final move
	FinalExplorationParam float64
	// Seed of the rollout random number generator
	Seed int64
	// Search limits, nil means DefaultMovetime
	Limits *Limits
}

func DefaultParams() Params {
	return Params{
		ExplorationParam:      DefaultExplorationParam,
		FinalExplorationParam: DefaultFinalExplorationParam,
		Seed:                  0,
		Limits:                DefaultLimits().SetMovetime(DefaultMovetime),
	}
}

// Set the exploration parameter used in the UCT formula
func (p Params) WithExploration(c float64) Params {
	p.ExplorationParam = max(0.0, c)
	return p
}

func (p Params) WithSeed(seed int64) Params {
	p.Seed = seed
	return p
}

func (p Params) WithLimits(limits *Limits) Params {
	p.Limits = limits
	return p
}
