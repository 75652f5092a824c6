package system

import (
	"math/rand"
	"testing"
	"time"

	"github.com/reefshot/server/internal/core/event"
	"github.com/reefshot/server/internal/data"
	"github.com/reefshot/server/internal/world"
	"go.uber.org/zap"
)

const ms = time.Millisecond

func newTestSession() *world.Session {
	return &world.Session{
		FieldWidth:    800,
		FieldHeight:   600,
		Timer:         world.NewTimer(0, 120000*ms),
		SpawnInterval: world.DefaultSpawnInterval,
		Actor:         world.NewActor(60, 80, 800, 540, 200*ms),
		Entities:      world.NewRegistry(world.DefaultEscapeMargin),
	}
}

func newTestSpawner(seed int64) *Spawner {
	return NewSpawner(data.DefaultArchetypeTable(), SpawnRules{
		Step:         world.DefaultSpawnStep,
		Floor:        world.DefaultSpawnFloor,
		MarginTop:    50,
		MarginBottom: 150,
	}, rand.New(rand.NewSource(seed)), nil, zap.NewNop())
}

func TestMaybeSpawnGate(t *testing.T) {
	sp := newTestSpawner(1)
	if _, next, ok := sp.MaybeSpawn(1500*ms, 0, 1500*ms, 800, 600, 0); ok || next != 1500*ms {
		t.Fatalf("spawned at exactly the interval")
	}
	c, next, ok := sp.MaybeSpawn(1501*ms, 0, 1500*ms, 800, 600, 0)
	if !ok {
		t.Fatalf("no spawn after the interval")
	}
	if next != 1490*ms {
		t.Fatalf("next = %v, want 1490ms", next)
	}
	if c.Dir == world.Left && c.X != 800 || c.Dir == world.Right && c.X != 0 {
		t.Fatalf("spawn x = %v for %v", c.X, c.Dir)
	}
}

func TestSpawnPositionsAndArchetypes(t *testing.T) {
	sp := newTestSpawner(42)
	table := data.DefaultArchetypeTable()
	seenArch := map[world.Archetype]bool{}
	seenDir := map[world.Direction]bool{}
	for i := 0; i < 500; i++ {
		c, _, ok := sp.MaybeSpawn(10*time.Second, 0, 1500*ms, 800, 600, i)
		if !ok {
			t.Fatalf("spawn %d failed", i)
		}
		if c.Y < 50 || c.Y > 450 {
			t.Fatalf("spawn y = %v outside [50, 450]", c.Y)
		}
		spec := table.Spec(c.Archetype)
		if c.Width != spec.Width || c.Points != spec.Points || c.Speed != spec.Speed {
			t.Fatalf("%v spawned with %+v, want %+v", c.Archetype, c.Body, spec)
		}
		seenArch[c.Archetype] = true
		seenDir[c.Dir] = true
	}
	if len(seenArch) != 5 || len(seenDir) != 2 {
		t.Fatalf("archetypes %d, directions %d", len(seenArch), len(seenDir))
	}

	c, _, _ := sp.MaybeSpawn(10*time.Second, 0, 1500*ms, 800, 120, 0)
	if c.Y != 50 {
		t.Fatalf("short field spawn y = %v, want 50", c.Y)
	}
}

func TestSpawnIntervalRamp(t *testing.T) {
	ss := newTestSession()
	bus := event.NewBus()
	sys := NewSpawnSystem(ss, newTestSpawner(7), bus, zap.NewNop())

	prev := ss.SpawnInterval
	for i := 1; i <= 100; i++ {
		ss.Now = ss.LastSpawn + ss.SpawnInterval + ms
		sys.Update(0)
		if ss.Spawned != i {
			t.Fatalf("spawned = %d, want %d", ss.Spawned, i)
		}
		if ss.SpawnInterval > prev {
			t.Fatalf("interval grew from %v to %v", prev, ss.SpawnInterval)
		}
		if ss.SpawnInterval < 800*ms {
			t.Fatalf("interval %v below floor", ss.SpawnInterval)
		}
		if i == 50 && ss.SpawnInterval != 1000*ms {
			t.Fatalf("interval after 50 spawns = %v, want 1s", ss.SpawnInterval)
		}
		if i >= 70 && ss.SpawnInterval != 800*ms {
			t.Fatalf("interval after %d spawns = %v, want 800ms", i, ss.SpawnInterval)
		}
		prev = ss.SpawnInterval
	}
	if ss.Entities.CreatureCount() != 100 {
		t.Fatalf("creatures = %d", ss.Entities.CreatureCount())
	}
	if bus.Pending() != 100 {
		t.Fatalf("spawn events = %d, want 100", bus.Pending())
	}
}

func TestResolveCreditsOnce(t *testing.T) {
	reg := world.NewRegistry(world.DefaultEscapeMargin)
	fish := data.DefaultArchetypeTable().Spec(world.Fish)

	pid := reg.AddProjectile(world.NewProjectile(100, 100))
	cid := reg.AddCreature(world.NewCreature(world.Fish, fish, 105, 105, world.Right))

	hits := Resolve(reg, func(c *world.Creature) int { return c.Points })
	if len(hits) != 1 {
		t.Fatalf("hits = %d, want 1", len(hits))
	}
	if hits[0].Points != 50 || hits[0].Creature != cid || hits[0].Projectile != pid {
		t.Fatalf("hit = %+v", hits[0])
	}
	if _, ok := reg.Creature(cid); ok {
		t.Fatalf("creature still present")
	}
	if _, ok := reg.Projectile(pid); ok {
		t.Fatalf("projectile still present")
	}
	if removed, stale := reg.Flush(); removed != 2 || stale != 0 {
		t.Fatalf("flush = (%d, %d), want (2, 0)", removed, stale)
	}
}

func TestResolveNoDoubleCredit(t *testing.T) {
	reg := world.NewRegistry(world.DefaultEscapeMargin)
	table := data.DefaultArchetypeTable()

	p1 := reg.AddProjectile(world.NewProjectile(100, 100))
	p2 := reg.AddProjectile(world.NewProjectile(102, 100))
	first := reg.AddCreature(world.NewCreature(world.Shark, table.Spec(world.Shark), 100, 100, world.Left))
	second := reg.AddCreature(world.NewCreature(world.Fish, table.Spec(world.Fish), 101, 100, world.Right))
	reg.AddCreature(world.NewCreature(world.Fish, table.Spec(world.Fish), 500, 100, world.Right))

	hits := Resolve(reg, func(c *world.Creature) int { return c.Points })
	if len(hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(hits))
	}
	if hits[0].Projectile != p1 || hits[0].Creature != first {
		t.Fatalf("first hit = %+v, want p1 on first creature", hits[0])
	}
	if hits[1].Projectile != p2 || hits[1].Creature != second {
		t.Fatalf("second hit = %+v, want p2 on second creature", hits[1])
	}
	if reg.CreatureCount() != 1 || reg.ProjectileCount() != 0 {
		t.Fatalf("counts = (%d, %d)", reg.CreatureCount(), reg.ProjectileCount())
	}
}

func TestResolveMissAndNegativeCredit(t *testing.T) {
	reg := world.NewRegistry(world.DefaultEscapeMargin)
	fish := data.DefaultArchetypeTable().Spec(world.Fish)
	reg.AddProjectile(world.NewProjectile(100, 100))
	reg.AddCreature(world.NewCreature(world.Fish, fish, 300, 100, world.Right))
	if hits := Resolve(reg, func(*world.Creature) int { return 1 }); len(hits) != 0 {
		t.Fatalf("distant creature hit: %+v", hits)
	}

	reg.AddCreature(world.NewCreature(world.Fish, fish, 100, 100, world.Right))
	hits := Resolve(reg, func(*world.Creature) int { return -10 })
	if len(hits) != 1 || hits[0].Points != 0 {
		t.Fatalf("hits = %+v, want one hit worth 0", hits)
	}
}

func TestCollisionSystemScores(t *testing.T) {
	ss := newTestSession()
	bus := event.NewBus()
	var got []event.CreatureHit
	event.Subscribe(bus, func(h event.CreatureHit) { got = append(got, h) })

	fish := data.DefaultArchetypeTable().Spec(world.Fish)
	ss.Entities.AddProjectile(world.NewProjectile(100, 100))
	ss.Entities.AddCreature(world.NewCreature(world.Fish, fish, 105, 105, world.Right))

	NewCollisionSystem(ss, nil, bus, zap.NewNop()).Update(0)
	if ss.Score != 50 || ss.Streak != 1 {
		t.Fatalf("score = %d streak = %d", ss.Score, ss.Streak)
	}
	NewEventDispatchSystem(bus).Update(0)
	if len(got) != 1 || got[0].Score != 50 || got[0].Archetype != "fish" {
		t.Fatalf("events = %+v", got)
	}
}

func TestMovementPrunes(t *testing.T) {
	ss := newTestSession()
	bus := event.NewBus()
	var escaped []string
	event.Subscribe(bus, func(e event.CreatureEscaped) { escaped = append(escaped, e.Archetype) })

	table := data.DefaultArchetypeTable()
	ss.Entities.AddProjectile(world.NewProjectile(100, 10))
	ss.Entities.AddCreature(world.NewCreature(world.Shark, table.Spec(world.Shark), 899, 100, world.Right))
	ss.Entities.AddCreature(world.NewCreature(world.Turtle, table.Spec(world.Turtle), 400, 100, world.Left))
	ss.Streak = 3

	NewProjectileSystem(ss).Update(100 * ms)
	NewCreatureSystem(ss, bus).Update(100 * ms)
	if ss.Entities.ProjectileCount() != 0 {
		t.Fatalf("projectile above the top survived")
	}
	if ss.Entities.CreatureCount() != 1 {
		t.Fatalf("creatures = %d, want 1", ss.Entities.CreatureCount())
	}
	if ss.Streak != 0 {
		t.Fatalf("streak = %d after escape", ss.Streak)
	}

	NewCleanupSystem(ss.Entities, zap.NewNop()).Update(0)
	NewEventDispatchSystem(bus).Update(0)
	if len(escaped) != 1 || escaped[0] != "shark" {
		t.Fatalf("escaped = %v", escaped)
	}
}

func TestActorSystemAutofire(t *testing.T) {
	ss := newTestSession()
	bus := event.NewBus()
	sys := NewActorSystem(ss, bus)

	sys.Update(0)
	if ss.Entities.ProjectileCount() != 0 {
		t.Fatalf("fired without intent")
	}
	ss.FireHeld = true
	for now := time.Duration(0); now <= 1000*ms; now += 16 * ms {
		ss.Now = now
		sys.Update(16 * ms)
	}
	// shots at 0, 208, 416, 624, 832
	if n := ss.Entities.ProjectileCount(); n != 5 {
		t.Fatalf("projectiles = %d, want 5", n)
	}
}

func TestTimerSystemEndsOnce(t *testing.T) {
	ss := newTestSession()
	bus := event.NewBus()
	ended := 0
	event.Subscribe(bus, func(event.SessionEnded) { ended++ })
	sys := NewTimerSystem(ss, bus, zap.NewNop())
	ss.Score = 75

	for _, now := range []time.Duration{60000 * ms, 120000 * ms, 130000 * ms} {
		ss.Now = now
		sys.Update(0)
	}
	NewEventDispatchSystem(bus).Update(0)
	if !ss.Terminal || ss.FinalScore != 75 || ended != 1 {
		t.Fatalf("terminal=%v final=%d ended=%d", ss.Terminal, ss.FinalScore, ended)
	}
	if ss.Remaining() != 0 {
		t.Fatalf("remaining = %v", ss.Remaining())
	}
}

type recordHandler struct{ cmds []Command }

func (h *recordHandler) Apply(c Command) { h.cmds = append(h.cmds, c) }

func TestInputSystemDrainsInOrder(t *testing.T) {
	q := NewCommandQueue()
	h := &recordHandler{}
	sys := NewInputSystem(q, h, zap.NewNop())

	q.Push(Command{Kind: CmdAim, X: 10})
	q.Push(Command{Kind: CmdFireIntent, Held: true})
	q.Push(Command{Kind: CmdPause})
	sys.Update(0)

	if len(h.cmds) != 3 || h.cmds[0].Kind != CmdAim || h.cmds[2].Kind != CmdPause {
		t.Fatalf("cmds = %+v", h.cmds)
	}
	if q.Len() != 0 {
		t.Fatalf("queue not drained")
	}
	sys.Update(0)
	if len(h.cmds) != 3 {
		t.Fatalf("commands applied twice")
	}
	if CmdRestart.String() != "restart" {
		t.Fatalf("name = %q", CmdRestart.String())
	}
}
