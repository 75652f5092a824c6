package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for tunable game formulas.
// Single-goroutine access only (game loop). A nil *Engine is valid and makes
// every formula report "not handled" so callers use their compiled default.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory and its spawn/ and score/ subdirectories.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, dir := range []string{scriptsDir, filepath.Join(scriptsDir, "spawn"), filepath.Join(scriptsDir, "score")} {
		if err := e.loadDir(dir); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load scripts %s: %w", dir, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// LoadString runs a chunk of Lua source in the engine's VM.
func (e *Engine) LoadString(name, src string) error {
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	return nil
}

// Has reports whether a global Lua function is defined.
func (e *Engine) Has(name string) bool {
	if e == nil {
		return false
	}
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// --- Spawn difficulty ---

// SpawnContext is passed to next_spawn_interval.
type SpawnContext struct {
	Interval time.Duration
	Step     time.Duration
	Floor    time.Duration
	Spawned  int
}

// NextSpawnInterval calls Lua next_spawn_interval(ctx) and returns the new
// interval. ok is false when the function is missing or fails.
func (e *Engine) NextSpawnInterval(ctx SpawnContext) (next time.Duration, ok bool) {
	if e == nil {
		return 0, false
	}
	t := e.vm.NewTable()
	t.RawSetString("interval_ms", lua.LNumber(ctx.Interval.Milliseconds()))
	t.RawSetString("step_ms", lua.LNumber(ctx.Step.Milliseconds()))
	t.RawSetString("floor_ms", lua.LNumber(ctx.Floor.Milliseconds()))
	t.RawSetString("spawned", lua.LNumber(ctx.Spawned))

	v, ok := e.callNumber("next_spawn_interval", t)
	if !ok {
		return 0, false
	}
	return time.Duration(v * float64(time.Millisecond)), true
}

// --- Scoring ---

// HitContext is passed to hit_score.
type HitContext struct {
	Points    int
	Archetype string
	Streak    int
}

// HitScore calls Lua hit_score(ctx) and returns the points to credit.
func (e *Engine) HitScore(ctx HitContext) (points int, ok bool) {
	if e == nil {
		return 0, false
	}
	t := e.vm.NewTable()
	t.RawSetString("points", lua.LNumber(ctx.Points))
	t.RawSetString("archetype", lua.LString(ctx.Archetype))
	t.RawSetString("streak", lua.LNumber(ctx.Streak))

	v, ok := e.callNumber("hit_score", t)
	if !ok {
		return 0, false
	}
	return int(v), true
}

// --- Lua helpers ---

// callNumber calls a global Lua function with one table argument and reads a
// numeric result.
func (e *Engine) callNumber(name string, arg *lua.LTable) (float64, bool) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return 0, false
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, arg); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return 0, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua function returned non-number",
			zap.String("func", name), zap.String("type", result.Type().String()))
		return 0, false
	}
	return float64(n), true
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.vm.Close()
}
