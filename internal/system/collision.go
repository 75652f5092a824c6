package system

import (
	"time"

	"github.com/reefshot/server/internal/core/ecs"
	"github.com/reefshot/server/internal/core/event"
	coresys "github.com/reefshot/server/internal/core/system"
	"github.com/reefshot/server/internal/scripting"
	"github.com/reefshot/server/internal/world"
	"go.uber.org/zap"
)

// Hit is one resolved projectile/creature collision.
type Hit struct {
	Projectile ecs.EntityID
	Creature   ecs.EntityID
	Archetype  world.Archetype
	Points     int
}

// Resolve matches every live projectile, in insertion order, against the
// first live creature whose head box overlaps the projectile's hit box.
// Both are killed, so a creature can be credited at most once per pass.
// credit returns the points for a hit; negative values are treated as 0.
func Resolve(reg *world.Registry, credit func(*world.Creature) int) []Hit {
	var hits []Hit
	reg.EachProjectile(func(pid ecs.EntityID, p *world.Projectile) {
		box := p.HitBox()
		cid, c, ok := reg.FirstCreature(func(c *world.Creature) bool {
			return box.Overlaps(c.Bounds())
		})
		if !ok {
			return
		}
		reg.Kill(cid)
		reg.Kill(pid)
		pts := credit(c)
		if pts < 0 {
			pts = 0
		}
		hits = append(hits, Hit{Projectile: pid, Creature: cid, Archetype: c.Archetype, Points: pts})
	})
	return hits
}

// CollisionSystem resolves hits and credits the score. Phase 3 (PostUpdate).
type CollisionSystem struct {
	session *world.Session
	lua     *scripting.Engine
	bus     *event.Bus
	log     *zap.Logger
}

func NewCollisionSystem(session *world.Session, lua *scripting.Engine, bus *event.Bus, log *zap.Logger) *CollisionSystem {
	return &CollisionSystem{session: session, lua: lua, bus: bus, log: log}
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *CollisionSystem) Update(_ time.Duration) {
	ss := s.session
	hits := Resolve(ss.Entities, s.points)
	for _, h := range hits {
		score := ss.AddScore(h.Points)
		s.log.Debug("creature hit",
			zap.Stringer("archetype", h.Archetype),
			zap.Int("points", h.Points),
			zap.Int("score", score))
		event.Emit(s.bus, event.CreatureHit{
			Creature:   h.Creature,
			Projectile: h.Projectile,
			Archetype:  h.Archetype.String(),
			Points:     h.Points,
			Score:      score,
		})
	}
}

// points credits one hit. The formula sees the streak before this hit, and
// the streak advances per hit so later hits in the same pass see it.
func (s *CollisionSystem) points(c *world.Creature) int {
	streak := s.session.Streak
	s.session.Streak++
	if v, ok := s.lua.HitScore(scripting.HitContext{
		Points:    c.Points,
		Archetype: c.Archetype.String(),
		Streak:    streak,
	}); ok {
		return v
	}
	return c.Points
}
