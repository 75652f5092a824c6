package world

import "time"

// Spawn interval defaults.
const (
	DefaultSpawnInterval = 1500 * time.Millisecond
	DefaultSpawnStep     = 10 * time.Millisecond
	DefaultSpawnFloor    = 800 * time.Millisecond
)

// Session is the mutable state of one round. It is owned by the game loop
// and only touched from inside a tick.
type Session struct {
	FieldWidth  float64
	FieldHeight float64

	// Now is simulation time: the sum of clock deltas. It does not advance
	// while paused.
	Now time.Duration

	Score      int
	FinalScore int
	Terminal   bool
	Timer      *Timer

	SpawnInterval time.Duration
	LastSpawn     time.Duration
	Spawned       int
	Streak        int // consecutive hits without an escape

	FireHeld bool

	Actor    *Actor
	Entities *Registry
}

// AddScore credits points. Negative amounts are ignored so the score never
// decreases.
func (s *Session) AddScore(points int) int {
	if points > 0 {
		s.Score += points
	}
	return s.Score
}

// Remaining is the countdown at the current simulation time.
func (s *Session) Remaining() time.Duration {
	if s.Terminal {
		return 0
	}
	return Remaining(s.Now, s.Timer.Start, s.Timer.Duration)
}
