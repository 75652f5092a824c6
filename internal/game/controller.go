package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/reefshot/server/internal/config"
	"github.com/reefshot/server/internal/core/event"
	coresys "github.com/reefshot/server/internal/core/system"
	"github.com/reefshot/server/internal/data"
	"github.com/reefshot/server/internal/scripting"
	"github.com/reefshot/server/internal/system"
	"github.com/reefshot/server/internal/world"
	"go.uber.org/zap"
)

// State is the controller's lifecycle state.
type State uint8

const (
	Running State = iota
	Paused
	Terminal
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Terminal:
		return "terminal"
	}
	return "unknown"
}

// Deps bundles everything a Controller needs. Only Config is required.
type Deps struct {
	Config     *config.Config
	Archetypes *data.ArchetypeTable // nil = built-in table
	Scripting  *scripting.Engine    // nil = compiled formulas
	Rand       *rand.Rand           // nil = seeded from Config.Spawn.Seed or the clock
	Bus        *event.Bus           // nil = private bus
	Log        *zap.Logger          // nil = no-op
}

// Controller runs one game session. Input methods may be called from any
// goroutine; they only enqueue commands. Tick is the single point where
// state changes, and concurrent Tick calls are serialized.
type Controller struct {
	mu sync.Mutex

	cfg     *config.Config
	state   State
	clock   *world.Clock
	session *world.Session
	queue   *system.CommandQueue
	runner  *coresys.Runner
	bus     *event.Bus
	ticks   uint64
	log     *zap.Logger
}

// NewController validates the configuration and builds a Running session.
func NewController(d Deps) (*Controller, error) {
	if d.Config == nil {
		return nil, fmt.Errorf("new controller: %w: nil config", config.ErrInvalidConfig)
	}
	if err := d.Config.Validate(); err != nil {
		return nil, fmt.Errorf("new controller: %w", err)
	}
	table := d.Archetypes
	if table == nil {
		table = data.DefaultArchetypeTable()
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("new controller: %w", err)
	}
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	rng := d.Rand
	if rng == nil {
		seed := d.Config.Spawn.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	bus := d.Bus
	if bus == nil {
		bus = event.NewBus()
	}

	cfg := d.Config
	pf := cfg.Playfield
	c := &Controller{
		cfg:   cfg,
		state: Running,
		clock: world.NewClock(),
		queue: system.NewCommandQueue(),
		bus:   bus,
		log:   log,
		session: &world.Session{
			FieldWidth:    pf.Width,
			FieldHeight:   pf.Height,
			Timer:         world.NewTimer(0, cfg.Session.Duration),
			SpawnInterval: cfg.Spawn.InitialInterval,
			Actor:         world.NewActor(cfg.Actor.Width, cfg.Actor.Height, pf.Width, pf.Height-cfg.Actor.BaseOffset, cfg.Actor.FireDelay),
			Entities:      world.NewRegistry(pf.EscapeMargin),
		},
	}

	spawner := system.NewSpawner(table, system.SpawnRules{
		Step:         cfg.Spawn.IntervalStep,
		Floor:        cfg.Spawn.IntervalFloor,
		MarginTop:    cfg.Spawn.MarginTop,
		MarginBottom: cfg.Spawn.MarginBottom,
	}, rng, d.Scripting, log)

	ss := c.session
	r := coresys.NewRunner()
	r.Register(system.NewInputSystem(c.queue, commandApplier{c}, log))
	r.Register(system.NewTimerSystem(ss, bus, log))
	r.Register(system.NewSpawnSystem(ss, spawner, bus, log))
	r.Register(system.NewActorSystem(ss, bus))
	r.Register(system.NewProjectileSystem(ss))
	r.Register(system.NewCreatureSystem(ss, bus))
	r.Register(system.NewCollisionSystem(ss, d.Scripting, bus, log))
	r.Register(system.NewEventDispatchSystem(bus))
	r.Register(system.NewCleanupSystem(ss.Entities, log))
	c.runner = r

	log.Info("session started",
		zap.Float64("width", pf.Width),
		zap.Float64("height", pf.Height),
		zap.Duration("duration", cfg.Session.Duration))
	return c, nil
}

// Bus returns the event bus. Handlers run inside Tick and must not call
// Tick or Snapshot.
func (c *Controller) Bus() *event.Bus { return c.bus }

// --- Input surface ---

func (c *Controller) SetAim(x float64) {
	c.queue.Push(system.Command{Kind: system.CmdAim, X: x})
}

func (c *Controller) SetFireIntent(held bool) {
	c.queue.Push(system.Command{Kind: system.CmdFireIntent, Held: held})
}

// SetPlayfieldBounds updates the clamp bounds. Existing entities keep their
// positions.
func (c *Controller) SetPlayfieldBounds(width, height float64) {
	c.queue.Push(system.Command{Kind: system.CmdBounds, X: width, Y: height})
}

func (c *Controller) Pause()   { c.queue.Push(system.Command{Kind: system.CmdPause}) }
func (c *Controller) Resume()  { c.queue.Push(system.Command{Kind: system.CmdResume}) }
func (c *Controller) Restart() { c.queue.Push(system.Command{Kind: system.CmdRestart}) }

// TogglePause pauses a running session or resumes a paused one. The choice
// is made when the command is applied, so repeated toggles queued within one
// frame alternate.
func (c *Controller) TogglePause() {
	c.queue.Push(system.Command{Kind: system.CmdTogglePause})
}

// --- Tick ---

// Tick advances the simulation to frame timestamp ts.
func (c *Controller) Tick(ts time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.runner.TickPhase(coresys.PhaseInput, 0)

	dt := c.clock.Tick(ts)
	if c.state == Running {
		ss := c.session
		ss.Now += dt
		c.runner.TickPhase(coresys.PhasePreUpdate, dt)
		if ss.Terminal {
			c.setState(Terminal)
		} else {
			c.runner.TickPhase(coresys.PhaseUpdate, dt)
			c.runner.TickPhase(coresys.PhasePostUpdate, dt)
		}
	}

	c.runner.TickPhase(coresys.PhaseOutput, dt)
	c.runner.TickPhase(coresys.PhaseCleanup, dt)
	c.ticks++
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// --- Command application (game loop only) ---

type commandApplier struct{ c *Controller }

func (a commandApplier) Apply(cmd system.Command) { a.c.apply(cmd) }

func (c *Controller) apply(cmd system.Command) {
	ss := c.session
	switch cmd.Kind {
	case system.CmdAim:
		ss.Actor.SetPosition(cmd.X)
	case system.CmdFireIntent:
		ss.FireHeld = cmd.Held
	case system.CmdBounds:
		if cmd.X <= 0 || cmd.Y <= 0 {
			c.log.Warn("ignoring non-positive playfield bounds",
				zap.Float64("width", cmd.X), zap.Float64("height", cmd.Y))
			return
		}
		ss.FieldWidth, ss.FieldHeight = cmd.X, cmd.Y
		ss.Actor.SetFieldWidth(cmd.X)
	case system.CmdPause:
		c.pause()
	case system.CmdResume:
		c.resume()
	case system.CmdTogglePause:
		switch c.state {
		case Running:
			c.pause()
		case Paused:
			c.resume()
		}
	case system.CmdRestart:
		if c.state == Paused {
			c.log.Debug("restart ignored while paused")
			return
		}
		c.restart()
	default:
		c.log.Warn("unknown command", zap.Uint8("kind", uint8(cmd.Kind)))
	}
}

func (c *Controller) pause() {
	if c.state != Running {
		return
	}
	c.clock.Pause()
	c.setState(Paused)
}

func (c *Controller) resume() {
	if c.state != Paused {
		return
	}
	c.clock.Resume()
	// Re-anchor on this tick's timestamp so the pause is not counted.
	c.clock.Reset()
	c.setState(Running)
}

// restart resets the session at the current simulation time.
func (c *Controller) restart() {
	ss := c.session
	now := ss.Now
	ss.Score = 0
	ss.FinalScore = 0
	ss.Terminal = false
	ss.Streak = 0
	ss.Spawned = 0
	ss.SpawnInterval = c.cfg.Spawn.InitialInterval
	ss.LastSpawn = now
	ss.Timer.Restart(now)
	ss.Entities.Clear()
	ss.Actor.Reset(ss.FieldHeight - c.cfg.Actor.BaseOffset)

	c.log.Info("session restarted", zap.Duration("at", now))
	event.Emit(c.bus, event.SessionRestarted{At: now})
	c.setState(Running)
}

func (c *Controller) setState(to State) {
	from := c.state
	if from == to {
		return
	}
	c.state = to
	c.log.Info("state changed", zap.Stringer("from", from), zap.Stringer("to", to))
	event.Emit(c.bus, event.StateChanged{From: from.String(), To: to.String()})
}
