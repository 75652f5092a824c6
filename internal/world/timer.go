package world

import (
	"fmt"
	"time"
)

// DefaultSessionDuration is the length of one round.
const DefaultSessionDuration = 120 * time.Second

// Remaining returns max(0, duration-(now-start)).
func Remaining(now, start, duration time.Duration) time.Duration {
	left := duration - (now - start)
	if left < 0 {
		return 0
	}
	return left
}

// FormatRemaining renders a countdown as m:ss.
func FormatRemaining(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%d:%02d", ms/60000, (ms%60000)/1000)
}

// Timer is the session countdown. It reports expiry exactly once.
type Timer struct {
	Start    time.Duration
	Duration time.Duration

	remaining time.Duration
	expired   bool
}

func NewTimer(start, duration time.Duration) *Timer {
	return &Timer{Start: start, Duration: duration, remaining: duration}
}

// Tick updates the remaining time at now. expired is true only on the call
// that first reaches zero.
func (t *Timer) Tick(now time.Duration) (remaining time.Duration, expired bool) {
	if t.expired {
		return 0, false
	}
	t.remaining = Remaining(now, t.Start, t.Duration)
	if t.remaining == 0 {
		t.expired = true
		return 0, true
	}
	return t.remaining, false
}

func (t *Timer) Remaining() time.Duration { return t.remaining }
func (t *Timer) Expired() bool            { return t.expired }

// Restart begins a new countdown at start.
func (t *Timer) Restart(start time.Duration) {
	t.Start = start
	t.remaining = t.Duration
	t.expired = false
}
