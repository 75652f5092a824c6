package scripting

import (
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestShippedScripts(t *testing.T) {
	e, err := NewEngine(filepath.Join("..", "..", "scripts"), zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()

	if !e.Has("next_spawn_interval") || !e.Has("hit_score") {
		t.Fatalf("shipped formulas not loaded")
	}

	next, ok := e.NextSpawnInterval(SpawnContext{
		Interval: 1500 * time.Millisecond,
		Step:     10 * time.Millisecond,
		Floor:    800 * time.Millisecond,
	})
	if !ok || next != 1490*time.Millisecond {
		t.Fatalf("next = %v %v, want 1.49s", next, ok)
	}
	next, _ = e.NextSpawnInterval(SpawnContext{
		Interval: 805 * time.Millisecond,
		Step:     10 * time.Millisecond,
		Floor:    800 * time.Millisecond,
	})
	if next != 800*time.Millisecond {
		t.Fatalf("next at floor = %v, want 800ms", next)
	}

	pts, ok := e.HitScore(HitContext{Points: 150, Archetype: "shark", Streak: 3})
	if !ok || pts != 150 {
		t.Fatalf("hit score = %d %v, want 150", pts, ok)
	}
}

func TestMissingAndBrokenFormulas(t *testing.T) {
	e, err := NewEngine(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()

	if _, ok := e.HitScore(HitContext{Points: 1}); ok {
		t.Fatalf("missing function reported ok")
	}

	if err := e.LoadString("broken", `function hit_score(ctx) error("boom") end`); err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	if _, ok := e.HitScore(HitContext{Points: 1}); ok {
		t.Fatalf("erroring function reported ok")
	}

	if err := e.LoadString("wrong", `function hit_score(ctx) return "x" end`); err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	if _, ok := e.HitScore(HitContext{Points: 1}); ok {
		t.Fatalf("non-number result reported ok")
	}

	if err := e.LoadString("syntax", `function (`); err == nil {
		t.Fatalf("syntax error accepted")
	}
}

func TestNilEngine(t *testing.T) {
	var e *Engine
	if _, ok := e.NextSpawnInterval(SpawnContext{}); ok {
		t.Fatalf("nil engine reported ok")
	}
	if e.Has("hit_score") {
		t.Fatalf("nil engine has functions")
	}
	e.Close()
}
