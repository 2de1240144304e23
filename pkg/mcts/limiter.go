package mcts

import (
	"context"
	"sync/atomic"
)

type StopReason int

const (
	StopNone      StopReason = 0
	StopInterrupt StopReason = 1 // Stopped by user, by calling .SetStop(true) or context cancellation
	StopMovetime  StopReason = 2 // Time limit reached
	StopMemory    StopReason = 4 // Node limit reached
	StopCycles    StopReason = 8 // Cycle limit reached
)

func (sr StopReason) String() string {
	if sr == StopNone {
		return "None"
	}

	reasons := []struct {
		flag StopReason
		name string
	}{
		{StopInterrupt, "Interrupt"},
		{StopMovetime, "Movetime"},
		{StopMemory, "Memory"},
		{StopCycles, "Cycles"},
	}

	var result string
	for _, r := range reasons {
		if sr&r.flag == r.flag {
			if result != "" {
				result += "|"
			}
			result += r.name
		}
	}

	return result
}

// Decides when the search loop ends. It is consulted once per top-level
// iteration, never in the middle of a descent.
type Limiter struct {
	limits *Limits
	clock  clock
	stop   atomic.Bool
	reason StopReason
	ctx    context.Context
}

func NewLimiter() *Limiter {
	return &Limiter{
		limits: DefaultLimits(),
		ctx:    context.Background(),
	}
}

// Reset the limiter's flags and start the clock, called on search setup
func (l *Limiter) Reset() {
	l.clock.Restart(l.limits.Movetime)
	l.stop.Store(false)
	l.reason = StopNone
}

func (l *Limiter) SetContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	l.ctx = ctx
}

// Set the stop signal, safe to call from another goroutine
func (l *Limiter) SetStop(v bool) {
	l.stop.Store(v)
}

// Get the stop signal, context cancellation counts as stop
func (l *Limiter) Stop() bool {
	select {
	case <-l.ctx.Done():
		l.stop.Store(true)
	default:
	}
	return l.stop.Load()
}

func (l *Limiter) SetLimits(limits *Limits) {
	l.limits = limits
}

func (l *Limiter) Limits() *Limits {
	return l.limits
}

// Get elapsed time in ms (from the last 'Reset' call)
func (l *Limiter) Elapsed() uint32 {
	return uint32(l.clock.ElapsedMs())
}

// Bitmask of every limit reached by now
func (l *Limiter) LimitMask(size, cycles uint32) StopReason {
	reason := StopNone
	if l.Stop() {
		reason |= StopInterrupt
	}
	if l.limits.Infinite {
		return reason
	}

	if l.clock.Expired() {
		reason |= StopMovetime
	}
	if l.limits.Nodes <= size {
		reason |= StopMemory
	}
	if l.limits.Cycles <= cycles {
		reason |= StopCycles
	}
	return reason
}

// Whether the search may run another iteration
func (l *Limiter) Ok(size, cycles uint32) bool {
	return l.LimitMask(size, cycles) == StopNone
}

// Evaluate stop reason based on current state, and set it internally,
// called once after the search loop ends
func (l *Limiter) EvaluateStopReason(size, cycles uint32) {
	l.reason = l.LimitMask(size, cycles)
}

// Get the reason why the search was stopped, valid after search ends
func (l *Limiter) StopReason() StopReason {
	return l.reason
}
