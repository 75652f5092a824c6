package system

import (
	"time"

	"github.com/reefshot/server/internal/core/event"
	coresys "github.com/reefshot/server/internal/core/system"
	"github.com/reefshot/server/internal/world"
)

// ActorSystem regenerates the actor and runs autofire while fire intent is
// held. The fire delay gate gives autofire its fixed period. Phase 2 (Update).
type ActorSystem struct {
	session *world.Session
	bus     *event.Bus
}

func NewActorSystem(session *world.Session, bus *event.Bus) *ActorSystem {
	return &ActorSystem{session: session, bus: bus}
}

func (s *ActorSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ActorSystem) Update(dt time.Duration) {
	a := s.session.Actor
	a.Update(dt)
	if !s.session.FireHeld {
		return
	}
	p, ok := a.TryFire(s.session.Now)
	if !ok {
		return
	}
	id := s.session.Entities.AddProjectile(p)
	event.Emit(s.bus, event.ProjectileFired{EntityID: id, X: p.X, Y: p.Y, Energy: a.Energy})
}
