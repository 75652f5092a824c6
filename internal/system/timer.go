package system

import (
	"time"

	"github.com/reefshot/server/internal/core/event"
	coresys "github.com/reefshot/server/internal/core/system"
	"github.com/reefshot/server/internal/world"
	"go.uber.org/zap"
)

// TimerSystem advances the countdown and marks the session terminal when it
// runs out. Phase 1 (PreUpdate).
type TimerSystem struct {
	session *world.Session
	bus     *event.Bus
	log     *zap.Logger
}

func NewTimerSystem(session *world.Session, bus *event.Bus, log *zap.Logger) *TimerSystem {
	return &TimerSystem{session: session, bus: bus, log: log}
}

func (s *TimerSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *TimerSystem) Update(_ time.Duration) {
	ss := s.session
	if ss.Terminal {
		return
	}
	if _, expired := ss.Timer.Tick(ss.Now); !expired {
		return
	}
	ss.Terminal = true
	ss.FinalScore = ss.Score
	s.log.Info("session ended", zap.Int("final_score", ss.FinalScore), zap.Int("spawned", ss.Spawned))
	event.Emit(s.bus, event.SessionEnded{FinalScore: ss.FinalScore, At: ss.Now})
}
