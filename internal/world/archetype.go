package world

import "fmt"

// Archetype is a creature category. It fixes size, speed and points at spawn.
type Archetype uint8

const (
	Fish Archetype = iota
	Jellyfish
	Turtle
	Shark
	Snake

	archetypeCount
)

var archetypeNames = [archetypeCount]string{"fish", "jellyfish", "turtle", "shark", "snake"}

// Archetypes lists every archetype in table order.
func Archetypes() []Archetype {
	out := make([]Archetype, archetypeCount)
	for i := range out {
		out[i] = Archetype(i)
	}
	return out
}

func (a Archetype) String() string {
	if a >= archetypeCount {
		return fmt.Sprintf("archetype(%d)", uint8(a))
	}
	return archetypeNames[a]
}

func (a Archetype) Valid() bool { return a < archetypeCount }

// ParseArchetype maps a lower-case name back to its Archetype.
func ParseArchetype(name string) (Archetype, error) {
	for i, n := range archetypeNames {
		if n == name {
			return Archetype(i), nil
		}
	}
	return 0, fmt.Errorf("unknown archetype %q", name)
}

// CreatureSpec is the immutable per-archetype configuration row.
type CreatureSpec struct {
	Width          float64
	Height         float64
	Speed          float64 // units per millisecond
	Points         int
	Segments       int     // trailing segments, presentation only
	SegmentSpacing float64 // initial gap between segments
	Tag            string  // visual tag handed to the renderer
}

// Direction is the horizontal travel direction of a creature.
type Direction uint8

const (
	Right Direction = iota
	Left
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Sign is +1 for Right and -1 for Left.
func (d Direction) Sign() float64 {
	if d == Left {
		return -1
	}
	return 1
}
