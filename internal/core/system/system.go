package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: drain buffered commands
	PhasePreUpdate               // 1: session timer
	PhaseUpdate                  // 2: spawn, actor, movement + pruning
	PhasePostUpdate              // 3: collision resolution
	PhaseOutput                  // 4: event dispatch
	PhaseCleanup                 // 5: destroy queued entities
)

var phaseNames = [...]string{"input", "pre-update", "update", "post-update", "output", "cleanup"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
