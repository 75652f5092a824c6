package system

import (
	"fmt"
	"time"
)

const phaseCount = int(PhaseCleanup) + 1

// Runner holds systems bucketed by phase. Systems sharing a phase run in
// registration order.
type Runner struct {
	phases [phaseCount][]System
	count  int
}

func NewRunner() *Runner { return &Runner{} }

// Register adds s to its phase bucket. A phase outside the known range is a
// wiring error and panics.
func (r *Runner) Register(s System) {
	p := s.Phase()
	if p < 0 || int(p) >= phaseCount {
		panic(fmt.Sprintf("system: %T registered for unknown phase %d", s, p))
	}
	r.phases[p] = append(r.phases[p], s)
	r.count++
}

// Tick runs every phase in order.
func (r *Runner) Tick(dt time.Duration) {
	for p := range r.phases {
		r.TickPhase(Phase(p), dt)
	}
}

// TickPhase runs only the systems of one phase, so a caller can stop a tick
// part way (the game controller does once the session has ended).
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	for _, s := range r.phases[phase] {
		s.Update(dt)
	}
}

// Systems returns the systems registered for phase, in run order.
func (r *Runner) Systems(phase Phase) []System { return r.phases[phase] }

func (r *Runner) Len() int { return r.count }
