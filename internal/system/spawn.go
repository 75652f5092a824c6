package system

import (
	"math/rand"
	"time"

	"github.com/reefshot/server/internal/core/event"
	coresys "github.com/reefshot/server/internal/core/system"
	"github.com/reefshot/server/internal/data"
	"github.com/reefshot/server/internal/scripting"
	"github.com/reefshot/server/internal/world"
	"go.uber.org/zap"
)

// SpawnRules are the tunables of the spawner.
type SpawnRules struct {
	Step         time.Duration
	Floor        time.Duration
	MarginTop    float64
	MarginBottom float64
}

// Spawner decides when a creature appears and what it is.
type Spawner struct {
	table *data.ArchetypeTable
	rules SpawnRules
	rng   *rand.Rand
	lua   *scripting.Engine
	log   *zap.Logger
}

func NewSpawner(table *data.ArchetypeTable, rules SpawnRules, rng *rand.Rand, lua *scripting.Engine, log *zap.Logger) *Spawner {
	return &Spawner{table: table, rules: rules, rng: rng, lua: lua, log: log}
}

// MaybeSpawn returns a new creature when more than interval has passed since
// lastSpawn, together with the interval to use from now on.
func (s *Spawner) MaybeSpawn(now, lastSpawn, interval time.Duration, fieldW, fieldH float64, spawned int) (*world.Creature, time.Duration, bool) {
	if now-lastSpawn <= interval {
		return nil, interval, false
	}

	arch := world.Archetype(s.rng.Intn(len(world.Archetypes())))
	dir := world.Right
	if s.rng.Intn(2) == 0 {
		dir = world.Left
	}
	x := 0.0
	if dir == world.Left {
		x = fieldW
	}
	y := s.rules.MarginTop
	if span := fieldH - s.rules.MarginBottom - s.rules.MarginTop; span > 0 {
		y += s.rng.Float64() * span
	}

	c := world.NewCreature(arch, s.table.Spec(arch), x, y, dir)
	return c, s.NextInterval(interval, spawned+1), true
}

// NextInterval applies the difficulty ramp. The scripted formula may shape
// the curve but the result is always clamped to [Floor, interval].
func (s *Spawner) NextInterval(interval time.Duration, spawned int) time.Duration {
	next := interval - s.rules.Step
	if v, ok := s.lua.NextSpawnInterval(scripting.SpawnContext{
		Interval: interval,
		Step:     s.rules.Step,
		Floor:    s.rules.Floor,
		Spawned:  spawned,
	}); ok {
		next = v
	}
	if next > interval {
		next = interval
	}
	if next < s.rules.Floor {
		next = s.rules.Floor
	}
	return next
}

// SpawnSystem introduces creatures into the session. Phase 2 (Update).
type SpawnSystem struct {
	session *world.Session
	spawner *Spawner
	bus     *event.Bus
	log     *zap.Logger
}

func NewSpawnSystem(session *world.Session, spawner *Spawner, bus *event.Bus, log *zap.Logger) *SpawnSystem {
	return &SpawnSystem{session: session, spawner: spawner, bus: bus, log: log}
}

func (s *SpawnSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *SpawnSystem) Update(_ time.Duration) {
	ss := s.session
	c, next, ok := s.spawner.MaybeSpawn(ss.Now, ss.LastSpawn, ss.SpawnInterval, ss.FieldWidth, ss.FieldHeight, ss.Spawned)
	if !ok {
		return
	}
	id := ss.Entities.AddCreature(c)
	ss.LastSpawn = ss.Now
	ss.SpawnInterval = next
	ss.Spawned++

	s.log.Debug("creature spawned",
		zap.Stringer("archetype", c.Archetype),
		zap.Stringer("dir", c.Dir),
		zap.Float64("y", c.Y),
		zap.Duration("interval", next))
	event.Emit(s.bus, event.CreatureSpawned{
		EntityID:  id,
		Archetype: c.Archetype.String(),
		X:         c.X,
		Y:         c.Y,
		Leftward:  c.Dir == world.Left,
		Interval:  next,
	})
}
