package data

import (
	"errors"
	"fmt"
	"os"

	"github.com/reefshot/server/internal/world"
	"gopkg.in/yaml.v3"
)

// ErrInvalidArchetype is wrapped by every archetype table validation failure.
var ErrInvalidArchetype = errors.New("invalid archetype table")

// ArchetypeEntry is one row of archetypes.yaml.
type ArchetypeEntry struct {
	Name           string  `yaml:"name"`
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Speed          float64 `yaml:"speed"`
	Points         int     `yaml:"points"`
	Segments       int     `yaml:"segments"`
	SegmentSpacing float64 `yaml:"segment_spacing"`
	Tag            string  `yaml:"tag"`
}

type archetypeListFile struct {
	Archetypes []ArchetypeEntry `yaml:"archetypes"`
}

// ArchetypeTable maps every archetype to its immutable spec.
type ArchetypeTable struct {
	specs [5]world.CreatureSpec
	set   [5]bool
}

// DefaultArchetypeTable returns the built-in creature table.
func DefaultArchetypeTable() *ArchetypeTable {
	t := &ArchetypeTable{}
	t.put(world.Fish, world.CreatureSpec{Width: 40, Height: 25, Speed: 0.3, Points: 50, Tag: "#FF6B6B"})
	t.put(world.Jellyfish, world.CreatureSpec{Width: 35, Height: 45, Speed: 0.15, Points: 75, Tag: "#BB6BD9"})
	t.put(world.Turtle, world.CreatureSpec{Width: 50, Height: 35, Speed: 0.2, Points: 100, Tag: "#2ECC71"})
	t.put(world.Shark, world.CreatureSpec{Width: 70, Height: 40, Speed: 0.35, Points: 150, Tag: "#7F8C8D"})
	t.put(world.Snake, world.CreatureSpec{Width: 60, Height: 20, Speed: 0.25, Points: 125, Segments: 5, SegmentSpacing: 20, Tag: "#F1C40F"})
	return t
}

// LoadArchetypeTable loads and validates the creature table from a YAML file.
func LoadArchetypeTable(path string) (*ArchetypeTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archetypes: %w", err)
	}
	return ParseArchetypeTable(data)
}

// ParseArchetypeTable decodes archetypes.yaml content.
func ParseArchetypeTable(data []byte) (*ArchetypeTable, error) {
	var f archetypeListFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse archetypes: %w", err)
	}
	t := &ArchetypeTable{}
	for _, e := range f.Archetypes {
		a, err := world.ParseArchetype(e.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArchetype, err)
		}
		if t.set[a] {
			return nil, fmt.Errorf("%w: duplicate entry %q", ErrInvalidArchetype, e.Name)
		}
		t.put(a, world.CreatureSpec{
			Width:          e.Width,
			Height:         e.Height,
			Speed:          e.Speed,
			Points:         e.Points,
			Segments:       e.Segments,
			SegmentSpacing: e.SegmentSpacing,
			Tag:            e.Tag,
		})
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *ArchetypeTable) put(a world.Archetype, spec world.CreatureSpec) {
	t.specs[a] = spec
	t.set[a] = true
}

// Validate checks that every archetype is present with a usable spec.
func (t *ArchetypeTable) Validate() error {
	for _, a := range world.Archetypes() {
		if !t.set[a] {
			return fmt.Errorf("%w: missing %s", ErrInvalidArchetype, a)
		}
		s := t.specs[a]
		switch {
		case s.Width <= 0 || s.Height <= 0:
			return fmt.Errorf("%w: %s has non-positive size %vx%v", ErrInvalidArchetype, a, s.Width, s.Height)
		case s.Speed <= 0:
			return fmt.Errorf("%w: %s has non-positive speed %v", ErrInvalidArchetype, a, s.Speed)
		case s.Points < 0:
			return fmt.Errorf("%w: %s has negative points %d", ErrInvalidArchetype, a, s.Points)
		case s.Segments < 0:
			return fmt.Errorf("%w: %s has negative segment count", ErrInvalidArchetype, a)
		}
	}
	return nil
}

// Spec returns the row for a.
func (t *ArchetypeTable) Spec(a world.Archetype) world.CreatureSpec {
	return t.specs[a]
}

// Count returns the number of archetypes in the table.
func (t *ArchetypeTable) Count() int {
	n := 0
	for _, ok := range t.set {
		if ok {
			n++
		}
	}
	return n
}
