package mcts

import (
	"context"
	"testing"
	"time"
)

func TestLimiterSingleLimits(t *testing.T) {
	limiter := NewLimiter()

	if !limiter.Ok(1000000, 1000000) {
		t.Error("Default limiter should search infinitely")
	}

	limiter.SetLimits(DefaultLimits().SetNodes(100))
	limiter.Reset()
	if ok := limiter.Ok(101, 1); ok {
		t.Errorf("<Nodes=%d: ok=%v, want=%v", 101, ok, !ok)
	}

	if ok := limiter.Ok(99, 1); !ok {
		t.Errorf(">Nodes=%d: ok=%v, want=%v", 99, ok, !ok)
	}

	limiter.SetLimits(DefaultLimits().SetCycles(10))
	limiter.Reset()
	if ok := limiter.Ok(1, 10); ok {
		t.Errorf("<Cycles=%d: ok=%v, want=%v", 10, ok, !ok)
	}

	if ok := limiter.Ok(1, 9); !ok {
		t.Errorf(">Cycles=%d: ok=%v, want=%v", 9, ok, !ok)
	}

	limiter.SetLimits(DefaultLimits().SetMovetime(100 * time.Millisecond))
	limiter.Reset()
	time.Sleep(time.Millisecond * 101)

	if ok := limiter.Ok(1, 1); ok {
		t.Errorf("<Movetime: ok=%v, want=%v", ok, !ok)
	}

	limiter.Reset()
	if ok := limiter.Ok(1, 1); !ok {
		t.Errorf(">Movetime: ok=%v, want=%v", ok, !ok)
	}
}

func TestLimiterCombos(t *testing.T) {
	limiter := NewLimiter()

	limiter.SetLimits(DefaultLimits().SetNodes(100).SetCycles(10))
	limiter.Reset()
	if mask := limiter.LimitMask(100, 10); mask != StopMemory|StopCycles {
		t.Errorf("Nodes+Cycles: mask=%s, want=%s", mask, StopMemory|StopCycles)
	}

	limiter.SetLimits(DefaultLimits().SetMovetime(50 * time.Millisecond).SetCycles(10))
	limiter.Reset()
	if !limiter.Ok(1, 9) {
		t.Error(">Time+Cycles: ok=false, want=true")
	}

	time.Sleep(time.Millisecond * 51)
	limiter.EvaluateStopReason(1, 9)
	if reason := limiter.StopReason(); reason != StopMovetime {
		t.Errorf("<Time+Cycles: reason=%s, want=%s", reason, StopMovetime)
	}
}

func TestLimiterInterrupt(t *testing.T) {
	limiter := NewLimiter()
	limiter.SetLimits(DefaultLimits().SetCycles(10))

	limiter.Reset()
	limiter.SetStop(true)
	if mask := limiter.LimitMask(1, 10); mask != StopInterrupt|StopCycles {
		t.Errorf("Stop+Cycles: mask=%s, want=%s", mask, StopInterrupt|StopCycles)
	}

	// Reset clears the stop flag, a cancelled context sets it again
	ctx, cancel := context.WithCancel(context.Background())
	limiter.SetContext(ctx)
	limiter.Reset()
	if !limiter.Ok(1, 1) {
		t.Fatal("Reset should clear the stop flag")
	}

	cancel()
	if limiter.Ok(1, 1) || !limiter.Stop() {
		t.Error("cancelled context should stop the search")
	}
}

func TestStopReasonString(t *testing.T) {
	tests := []struct {
		reason StopReason
		want   string
	}{
		{StopNone, "None"},
		{StopMovetime, "Movetime"},
		{StopInterrupt | StopCycles, "Interrupt|Cycles"},
		{StopMovetime | StopMemory | StopCycles, "Movetime|Memory|Cycles"},
	}

	for _, tt := range tests {
		if got := tt.reason.String(); got != tt.want {
			t.Errorf("StopReason(%d).String() = %q, want %q", int(tt.reason), got, tt.want)
		}
	}
}
