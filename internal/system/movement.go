package system

import (
	"time"

	"github.com/reefshot/server/internal/core/ecs"
	"github.com/reefshot/server/internal/core/event"
	coresys "github.com/reefshot/server/internal/core/system"
	"github.com/reefshot/server/internal/world"
)

// ProjectileSystem advances projectiles and prunes those past the top edge.
// Phase 2 (Update).
type ProjectileSystem struct {
	session *world.Session
}

func NewProjectileSystem(session *world.Session) *ProjectileSystem {
	return &ProjectileSystem{session: session}
}

func (s *ProjectileSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ProjectileSystem) Update(dt time.Duration) {
	reg := s.session.Entities
	reg.EachProjectile(func(_ ecs.EntityID, p *world.Projectile) {
		p.Advance(dt)
	})
	reg.PruneProjectiles()
}

// CreatureSystem advances creatures and prunes those that escaped.
// Phase 2 (Update).
type CreatureSystem struct {
	session *world.Session
	bus     *event.Bus
}

func NewCreatureSystem(session *world.Session, bus *event.Bus) *CreatureSystem {
	return &CreatureSystem{session: session, bus: bus}
}

func (s *CreatureSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *CreatureSystem) Update(dt time.Duration) {
	reg := s.session.Entities
	now := s.session.Now
	reg.EachCreature(func(_ ecs.EntityID, c *world.Creature) {
		c.Advance(dt, now)
	})
	for _, esc := range reg.PruneCreatures(s.session.FieldWidth) {
		s.session.Streak = 0
		event.Emit(s.bus, event.CreatureEscaped{EntityID: esc.ID, Archetype: esc.Archetype.String()})
	}
}
