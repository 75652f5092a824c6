package system

import (
	"time"

	coresys "github.com/reefshot/server/internal/core/system"
	"github.com/reefshot/server/internal/world"
	"go.uber.org/zap"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end.
// Phase 5 (Cleanup).
type CleanupSystem struct {
	entities *world.Registry
	log      *zap.Logger
}

func NewCleanupSystem(entities *world.Registry, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{entities: entities, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	if _, stale := s.entities.Flush(); stale > 0 {
		s.log.Error("flushed stale entity handles", zap.Int("count", stale))
	}
}
