package world

import (
	"math"
	"time"
)

// Projectile constants.
const (
	ProjectileWidth  = 6.0
	ProjectileHeight = 20.0
	ProjectileSpeed  = 0.8 // units per millisecond, upward
	TrailLength      = 5
)

// Creature bob and snake follow constants, presentation only.
const (
	bobAmplitude  = 5.0
	bobFrequency  = 0.05 // radians per millisecond
	segmentFollow = 0.2

	pulseAmplitude = 10.0
	pulseFrequency = 0.003 // radians per millisecond, jellyfish only
)

// Millis converts a duration to fractional milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Point is a position in playfield units.
type Point struct {
	X, Y float64
}

// Box is an axis-aligned bounding box.
type Box struct {
	Left, Right, Top, Bottom float64
}

// Overlaps reports AABB intersection. Touching edges count as overlap.
func (b Box) Overlaps(o Box) bool {
	return !(b.Left > o.Right ||
		b.Right < o.Left ||
		b.Top > o.Bottom ||
		b.Bottom < o.Top)
}

// Body is the shape shared by every moving entity.
type Body struct {
	X, Y          float64
	Width, Height float64
	Dir           Direction
	Speed         float64
}

// Creature is a spawned target.
type Creature struct {
	Body
	Archetype Archetype
	Points    int
	Tag       string

	// Presentation only; never read by collision or pruning.
	Bob      float64
	Pulse    float64 // jellyfish bell swell
	Segments []Point
}

// NewCreature builds a creature from its archetype row.
func NewCreature(a Archetype, spec CreatureSpec, x, y float64, dir Direction) *Creature {
	c := &Creature{
		Body: Body{
			X:      x,
			Y:      y,
			Width:  spec.Width,
			Height: spec.Height,
			Dir:    dir,
			Speed:  spec.Speed,
		},
		Archetype: a,
		Points:    spec.Points,
		Tag:       spec.Tag,
	}
	if spec.Segments > 0 {
		c.Segments = make([]Point, spec.Segments)
		for i := range c.Segments {
			c.Segments[i] = Point{X: x - float64(i)*spec.SegmentSpacing, Y: y}
		}
	}
	return c
}

// Bounds is the hit box: the head box for every archetype.
func (c *Creature) Bounds() Box {
	hw, hh := c.Width/2, c.Height/2
	return Box{Left: c.X - hw, Right: c.X + hw, Top: c.Y - hh, Bottom: c.Y + hh}
}

// Advance moves the creature horizontally and updates presentation state.
func (c *Creature) Advance(dt, now time.Duration) {
	c.X += c.Dir.Sign() * c.Speed * Millis(dt)
	c.Bob = math.Sin(Millis(now)*bobFrequency) * bobAmplitude
	if c.Archetype == Jellyfish {
		c.Pulse = math.Sin(Millis(now)*pulseFrequency) * pulseAmplitude
	}

	headX, headY := c.X, c.Y+c.Bob
	for i := range c.Segments {
		tx, ty := headX, headY
		if i > 0 {
			tx, ty = c.Segments[i-1].X, c.Segments[i-1].Y
		}
		c.Segments[i].X += (tx - c.Segments[i].X) * segmentFollow
		c.Segments[i].Y += (ty - c.Segments[i].Y) * segmentFollow
	}
}

// Escaped reports whether the creature has travelled margin units past the
// edge it was heading for.
func (c *Creature) Escaped(fieldWidth, margin float64) bool {
	if c.Dir == Right {
		return c.X > fieldWidth+margin
	}
	return c.X < -margin
}

// Projectile is a shot travelling straight up.
type Projectile struct {
	Body
	// Trail holds recent positions, most recent first. Presentation only.
	Trail []Point
}

func NewProjectile(x, y float64) *Projectile {
	return &Projectile{
		Body: Body{
			X:      x,
			Y:      y,
			Width:  ProjectileWidth,
			Height: ProjectileHeight,
			Speed:  ProjectileSpeed,
		},
		Trail: make([]Point, 0, TrailLength+1),
	}
}

// HitBox is the box used for collision tests. It is twice the drawn core on
// each axis.
func (p *Projectile) HitBox() Box {
	return Box{
		Left:   p.X - p.Width,
		Right:  p.X + p.Width,
		Top:    p.Y - p.Height,
		Bottom: p.Y + p.Height,
	}
}

// Advance records the current position in the trail and moves up.
func (p *Projectile) Advance(dt time.Duration) {
	p.Trail = append(p.Trail, Point{})
	copy(p.Trail[1:], p.Trail)
	p.Trail[0] = Point{X: p.X, Y: p.Y}
	if len(p.Trail) > TrailLength {
		p.Trail = p.Trail[:TrailLength]
	}
	p.Y -= p.Speed * Millis(dt)
}

// Gone reports whether the projectile has passed the top boundary.
func (p *Projectile) Gone() bool { return p.Y < 0 }
