package data

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/reefshot/server/internal/world"
)

func TestShippedArchetypesMatchDefaults(t *testing.T) {
	table, err := LoadArchetypeTable(filepath.Join("..", "..", "data", "yaml", "archetypes.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def := DefaultArchetypeTable()
	for _, a := range world.Archetypes() {
		if got, want := table.Spec(a), def.Spec(a); got != want {
			t.Fatalf("%s: yaml %+v, default %+v", a, got, want)
		}
	}
	if table.Count() != 5 {
		t.Fatalf("count = %d, want 5", table.Count())
	}
}

func TestParseArchetypeTableRejectsBadRows(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown", "archetypes:\n  - {name: bird, width: 1, height: 1, speed: 1}\n"},
		{"missing", "archetypes:\n  - {name: fish, width: 1, height: 1, speed: 1}\n"},
		{"duplicate", "archetypes:\n  - {name: fish, width: 1, height: 1, speed: 1}\n  - {name: fish, width: 1, height: 1, speed: 1}\n"},
	}
	for _, tt := range tests {
		_, err := ParseArchetypeTable([]byte(tt.yaml))
		if !errors.Is(err, ErrInvalidArchetype) {
			t.Fatalf("%s: err = %v, want ErrInvalidArchetype", tt.name, err)
		}
	}
}

func TestParseArchetypeTableRejectsZeroSize(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "data", "yaml", "archetypes.yaml"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	table, err := ParseArchetypeTable(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	spec := table.Spec(world.Shark)
	spec.Width = 0
	table.put(world.Shark, spec)
	if err := table.Validate(); !errors.Is(err, ErrInvalidArchetype) {
		t.Fatalf("validate = %v, want ErrInvalidArchetype", err)
	}
}
