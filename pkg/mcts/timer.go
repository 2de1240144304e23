package mcts

import "time"

// Search clock, measures elapsed time and an optional deadline
type clock struct {
	start    time.Time
	deadline time.Time
	timed    bool
}

// Start the clock now, a negative movetime means no deadline
func (c *clock) Restart(movetime time.Duration) {
	c.start = time.Now()
	c.timed = movetime >= 0
	if c.timed {
		c.deadline = c.start.Add(movetime)
	}
}

func (c *clock) Expired() bool {
	return c.timed && !time.Now().Before(c.deadline)
}

// Elapsed milliseconds since Restart, at least 1
func (c *clock) ElapsedMs() int {
	return max(int(time.Since(c.start).Milliseconds()), 1)
}
