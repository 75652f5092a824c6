package system

import (
	"time"

	"github.com/reefshot/server/internal/core/event"
	coresys "github.com/reefshot/server/internal/core/system"
)

// EventDispatchSystem swaps the bus and delivers this tick's events once all
// simulation phases have run. Phase 4 (Output).
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
