package world

import "time"

// Clock turns a stream of frame timestamps into per-tick deltas.
// The first tick and every tick while paused return zero and re-anchor,
// so resuming never produces a delta spike.
type Clock struct {
	last     time.Duration
	anchored bool
	paused   bool
}

func NewClock() *Clock { return &Clock{} }

// Tick returns the time elapsed since the previous call. A timestamp older
// than the previous one yields zero.
func (c *Clock) Tick(ts time.Duration) time.Duration {
	if !c.anchored || c.paused {
		c.last = ts
		c.anchored = true
		return 0
	}
	dt := ts - c.last
	c.last = ts
	if dt < 0 {
		return 0
	}
	return dt
}

func (c *Clock) Pause()  { c.paused = true }
func (c *Clock) Resume() { c.paused = false }

// Reset forgets the reference timestamp; the next Tick returns zero.
func (c *Clock) Reset() {
	c.anchored = false
	c.last = 0
}
