package event

import (
	"time"

	"github.com/reefshot/server/internal/core/ecs"
)

// CreatureSpawned is emitted when the spawner introduces a creature.
type CreatureSpawned struct {
	EntityID  ecs.EntityID
	Archetype string
	X, Y      float64
	Leftward  bool
	Interval  time.Duration // spawn interval after this spawn
}

// ProjectileFired is emitted for every successful shot.
type ProjectileFired struct {
	EntityID ecs.EntityID
	X, Y     float64
	Energy   float64
}

// CreatureHit is emitted once per resolved collision.
type CreatureHit struct {
	Creature   ecs.EntityID
	Projectile ecs.EntityID
	Archetype  string
	Points     int
	Score      int
}

// CreatureEscaped is emitted when a creature leaves the field unharmed.
type CreatureEscaped struct {
	EntityID  ecs.EntityID
	Archetype string
}

// SessionEnded is emitted once when the countdown reaches zero.
type SessionEnded struct {
	FinalScore int
	At         time.Duration
}

// SessionRestarted is emitted after a restart has reset the session.
type SessionRestarted struct {
	At time.Duration
}

// StateChanged is emitted for every controller state transition.
type StateChanged struct {
	From, To string
}
