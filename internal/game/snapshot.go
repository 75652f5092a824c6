package game

import (
	"time"

	"github.com/reefshot/server/internal/core/ecs"
	"github.com/reefshot/server/internal/world"
)

// Snapshot is a copy of everything a renderer needs for one frame.
type Snapshot struct {
	State         State
	Score         int
	Remaining     time.Duration
	RemainingText string
	Terminal      bool
	FinalScore    int

	Now           time.Duration
	Spawned       int
	SpawnInterval time.Duration
	FieldWidth    float64
	FieldHeight   float64
	Tick          uint64

	Actor       ActorView
	Creatures   []CreatureView
	Projectiles []ProjectileView
}

type ActorView struct {
	X, Y          float64
	Width, Height float64
	Energy        float64
	Recoil        float64
	FireHeld      bool
}

type CreatureView struct {
	ID            ecs.EntityID
	Archetype     world.Archetype
	Tag           string
	X, Y          float64
	Width, Height float64
	Dir           world.Direction
	Bob           float64
	Pulse         float64
	Segments      []world.Point
}

type ProjectileView struct {
	ID    ecs.EntityID
	X, Y  float64
	Trail []world.Point
}

// Snapshot copies the current session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	ss := c.session
	remaining := ss.Remaining()
	snap := Snapshot{
		State:         c.state,
		Score:         ss.Score,
		Remaining:     remaining,
		RemainingText: world.FormatRemaining(remaining),
		Terminal:      ss.Terminal,
		FinalScore:    ss.FinalScore,
		Now:           ss.Now,
		Spawned:       ss.Spawned,
		SpawnInterval: ss.SpawnInterval,
		FieldWidth:    ss.FieldWidth,
		FieldHeight:   ss.FieldHeight,
		Tick:          c.ticks,
		Actor: ActorView{
			X:        ss.Actor.X,
			Y:        ss.Actor.Y,
			Width:    ss.Actor.Width,
			Height:   ss.Actor.Height,
			Energy:   ss.Actor.Energy,
			Recoil:   ss.Actor.Recoil,
			FireHeld: ss.FireHeld,
		},
		Creatures:   make([]CreatureView, 0, ss.Entities.CreatureCount()),
		Projectiles: make([]ProjectileView, 0, ss.Entities.ProjectileCount()),
	}
	ss.Entities.EachCreature(func(id ecs.EntityID, cr *world.Creature) {
		snap.Creatures = append(snap.Creatures, CreatureView{
			ID:        id,
			Archetype: cr.Archetype,
			Tag:       cr.Tag,
			X:         cr.X,
			Y:         cr.Y,
			Width:     cr.Width,
			Height:    cr.Height,
			Dir:       cr.Dir,
			Bob:       cr.Bob,
			Pulse:     cr.Pulse,
			Segments:  append([]world.Point(nil), cr.Segments...),
		})
	})
	ss.Entities.EachProjectile(func(id ecs.EntityID, p *world.Projectile) {
		snap.Projectiles = append(snap.Projectiles, ProjectileView{
			ID:    id,
			X:     p.X,
			Y:     p.Y,
			Trail: append([]world.Point(nil), p.Trail...),
		})
	})
	return snap
}
