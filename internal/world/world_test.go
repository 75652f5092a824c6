package world

import (
	"math"
	"testing"
	"time"
)

const ms = time.Millisecond

func TestActorSetPositionClamps(t *testing.T) {
	a := NewActor(60, 80, 800, 540, 200*ms)
	tests := []struct {
		in, want float64
	}{
		{-50, 30},
		{10000, 770},
		{400, 400},
		{30, 30},
		{770, 770},
	}
	for _, tt := range tests {
		a.SetPosition(tt.in)
		if a.X != tt.want {
			t.Fatalf("SetPosition(%v): x = %v, want %v", tt.in, a.X, tt.want)
		}
		a.SetPosition(tt.in)
		if a.X != tt.want {
			t.Fatalf("SetPosition(%v) not idempotent: x = %v", tt.in, a.X)
		}
	}

	a.SetPosition(770)
	a.SetFieldWidth(400)
	if a.X != 370 {
		t.Fatalf("x after shrink = %v, want 370", a.X)
	}
}

func TestActorFireRate(t *testing.T) {
	a := NewActor(60, 80, 800, 540, 200*ms)
	shots := 0
	for _, at := range []time.Duration{0, 100 * ms, 250 * ms} {
		if _, ok := a.TryFire(at); ok {
			shots++
		}
		switch at {
		case 0:
			if shots != 1 {
				t.Fatalf("fire at t=0 failed")
			}
		case 100 * ms:
			if shots != 1 {
				t.Fatalf("fire at t=100ms succeeded inside the delay")
			}
		case 250 * ms:
			if shots != 2 {
				t.Fatalf("fire at t=250ms failed")
			}
		}
	}
}

func TestActorShotOrigin(t *testing.T) {
	a := NewActor(60, 80, 800, 540, 200*ms)
	a.SetPosition(123)
	p, ok := a.TryFire(0)
	if !ok {
		t.Fatalf("first shot failed")
	}
	if p.X != 123 || p.Y != 500 {
		t.Fatalf("projectile at (%v, %v), want (123, 500)", p.X, p.Y)
	}
	if p.Width != ProjectileWidth || p.Height != ProjectileHeight {
		t.Fatalf("projectile size %vx%v", p.Width, p.Height)
	}
}

func TestActorEnergyNeverGatesFiring(t *testing.T) {
	a := NewActor(60, 80, 800, 540, 200*ms)
	now := time.Duration(0)
	for i := 0; i < 30; i++ {
		if _, ok := a.TryFire(now); !ok {
			t.Fatalf("shot %d refused with energy %v", i, a.Energy)
		}
		now += 200 * ms
	}
	if a.Energy != 0 {
		t.Fatalf("energy = %v after 30 shots, want 0", a.Energy)
	}

	a.Update(1000 * ms)
	if a.Energy != 20 {
		t.Fatalf("energy after 1s regen = %v, want 20", a.Energy)
	}
	a.Update(time.Hour)
	if a.Energy != MaxEnergy {
		t.Fatalf("energy = %v, want cap %v", a.Energy, MaxEnergy)
	}
	if a.Recoil != 0 {
		t.Fatalf("recoil = %v, want 0", a.Recoil)
	}
}

func TestClock(t *testing.T) {
	c := NewClock()
	if dt := c.Tick(1000 * ms); dt != 0 {
		t.Fatalf("first tick = %v, want 0", dt)
	}
	if dt := c.Tick(1016 * ms); dt != 16*ms {
		t.Fatalf("dt = %v, want 16ms", dt)
	}
	if dt := c.Tick(1010 * ms); dt != 0 {
		t.Fatalf("backwards dt = %v, want 0", dt)
	}

	c.Pause()
	if dt := c.Tick(5000 * ms); dt != 0 {
		t.Fatalf("paused dt = %v, want 0", dt)
	}
	if dt := c.Tick(9000 * ms); dt != 0 {
		t.Fatalf("paused dt = %v, want 0", dt)
	}
	c.Resume()
	if dt := c.Tick(9016 * ms); dt != 16*ms {
		t.Fatalf("dt after resume = %v, want 16ms", dt)
	}

	c.Reset()
	if dt := c.Tick(20000 * ms); dt != 0 {
		t.Fatalf("dt after reset = %v, want 0", dt)
	}
}

func TestTimerExpiresOnce(t *testing.T) {
	tm := NewTimer(0, 120000*ms)

	left, expired := tm.Tick(60000 * ms)
	if left != 60000*ms || expired {
		t.Fatalf("tick(60s) = (%v, %v)", left, expired)
	}
	left, expired = tm.Tick(120000 * ms)
	if left != 0 || !expired {
		t.Fatalf("tick(120s) = (%v, %v), want (0, true)", left, expired)
	}
	left, expired = tm.Tick(130000 * ms)
	if left != 0 || expired {
		t.Fatalf("tick(130s) = (%v, %v), want (0, false)", left, expired)
	}
	if !tm.Expired() {
		t.Fatalf("timer not expired")
	}

	tm.Restart(130000 * ms)
	if tm.Expired() || tm.Remaining() != 120000*ms {
		t.Fatalf("restart left expired=%v remaining=%v", tm.Expired(), tm.Remaining())
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{120000 * ms, "2:00"},
		{119999 * ms, "1:59"},
		{65000 * ms, "1:05"},
		{9999 * ms, "0:09"},
		{0, "0:00"},
		{-5 * ms, "0:00"},
	}
	for _, tt := range tests {
		if got := FormatRemaining(tt.in); got != tt.want {
			t.Fatalf("FormatRemaining(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := Remaining(200*ms, 100*ms, 50*ms); got != 0 {
		t.Fatalf("Remaining past end = %v", got)
	}
}

func TestBoxOverlapTouchingCounts(t *testing.T) {
	a := Box{Left: 0, Right: 10, Top: 0, Bottom: 10}
	tests := []struct {
		b    Box
		want bool
	}{
		{Box{Left: 10, Right: 20, Top: 0, Bottom: 10}, true},
		{Box{Left: 10.01, Right: 20, Top: 0, Bottom: 10}, false},
		{Box{Left: 0, Right: 10, Top: 10, Bottom: 20}, true},
		{Box{Left: -5, Right: -0.5, Top: 0, Bottom: 10}, false},
		{Box{Left: 2, Right: 3, Top: 2, Bottom: 3}, true},
	}
	for i, tt := range tests {
		if got := a.Overlaps(tt.b); got != tt.want {
			t.Fatalf("case %d: overlap = %v, want %v", i, got, tt.want)
		}
		if got := tt.b.Overlaps(a); got != tt.want {
			t.Fatalf("case %d: overlap not symmetric", i)
		}
	}
}

func TestProjectileTrail(t *testing.T) {
	p := NewProjectile(50, 500)
	for i := 0; i < 8; i++ {
		p.Advance(10 * ms)
	}
	if len(p.Trail) != TrailLength {
		t.Fatalf("trail len = %d, want %d", len(p.Trail), TrailLength)
	}
	if p.Trail[0].Y != 500-7*8 {
		t.Fatalf("trail[0].y = %v, want most recent %v", p.Trail[0].Y, 500-7*8)
	}
	if p.Y != 500-8*8 {
		t.Fatalf("y = %v, want %v", p.Y, 500-8*8)
	}
}

func TestCreatureMovementAndEscape(t *testing.T) {
	spec := CreatureSpec{Width: 60, Height: 20, Speed: 0.25, Points: 125, Segments: 5, SegmentSpacing: 20}
	c := NewCreature(Snake, spec, 0, 100, Right)
	if len(c.Segments) != 5 || c.Segments[4].X != -80 {
		t.Fatalf("segments = %+v", c.Segments)
	}
	c.Advance(400*ms, 0)
	if c.X != 100 {
		t.Fatalf("x = %v, want 100", c.X)
	}
	if c.Segments[0].X != 20 {
		t.Fatalf("head segment x = %v, want 20", c.Segments[0].X)
	}
	if c.Escaped(800, 100) {
		t.Fatalf("escaped too early")
	}
	c.X = 900.5
	if !c.Escaped(800, 100) {
		t.Fatalf("right-moving creature past 900 not escaped")
	}

	l := NewCreature(Fish, CreatureSpec{Width: 40, Height: 25, Speed: 0.3, Points: 50}, 800, 100, Left)
	l.Advance(1000*ms, 0)
	if l.X != 500 {
		t.Fatalf("left x = %v, want 500", l.X)
	}
	l.X = -100
	if l.Escaped(800, 100) {
		t.Fatalf("x = -100 is still inside the margin")
	}
	l.X = -100.5
	if !l.Escaped(800, 100) {
		t.Fatalf("left-moving creature past -100 not escaped")
	}
}

func TestRegistryPrune(t *testing.T) {
	r := NewRegistry(DefaultEscapeMargin)
	fish := CreatureSpec{Width: 40, Height: 25, Speed: 0.3, Points: 50}

	keep := r.AddCreature(NewCreature(Fish, fish, 400, 100, Right))
	r.AddCreature(NewCreature(Fish, fish, 901, 100, Right))
	r.AddCreature(NewCreature(Fish, fish, -101, 100, Left))
	r.AddCreature(NewCreature(Fish, fish, 901, 100, Left))

	p := NewProjectile(10, -1)
	r.AddProjectile(p)
	live := r.AddProjectile(NewProjectile(10, 0))

	projectiles, creatures := r.Prune(800)
	if projectiles != 1 || creatures != 2 {
		t.Fatalf("pruned (%d, %d), want (1, 2)", projectiles, creatures)
	}
	if r.CreatureCount() != 2 || r.ProjectileCount() != 1 {
		t.Fatalf("counts = (%d, %d)", r.CreatureCount(), r.ProjectileCount())
	}
	if _, ok := r.Creature(keep); !ok {
		t.Fatalf("in-field creature pruned")
	}
	if _, ok := r.Projectile(live); !ok {
		t.Fatalf("projectile at y=0 pruned")
	}
	if removed, stale := r.Flush(); removed != 0 || stale != 0 {
		t.Fatalf("second flush = (%d, %d)", removed, stale)
	}
}

func TestRegistryKillOnce(t *testing.T) {
	r := NewRegistry(DefaultEscapeMargin)
	id := r.AddProjectile(NewProjectile(0, 0))
	if !r.Kill(id) {
		t.Fatalf("first kill failed")
	}
	if r.Kill(id) {
		t.Fatalf("second kill succeeded")
	}
	if _, ok := r.Projectile(id); ok {
		t.Fatalf("killed projectile still visible")
	}
	removed, stale := r.Flush()
	if removed != 1 || stale != 0 {
		t.Fatalf("flush = (%d, %d), want (1, 0)", removed, stale)
	}

	r.AddProjectile(NewProjectile(0, 0))
	r.AddCreature(NewCreature(Fish, CreatureSpec{Width: 1, Height: 1}, 0, 0, Right))
	r.Clear()
	if r.CreatureCount() != 0 || r.ProjectileCount() != 0 {
		t.Fatalf("clear left entities")
	}
}

func TestArchetypeNames(t *testing.T) {
	for _, a := range Archetypes() {
		got, err := ParseArchetype(a.String())
		if err != nil || got != a {
			t.Fatalf("round trip %v: %v %v", a, got, err)
		}
	}
	if _, err := ParseArchetype("bird"); err == nil {
		t.Fatalf("unknown archetype accepted")
	}
	if len(Archetypes()) != 5 {
		t.Fatalf("archetype count = %d", len(Archetypes()))
	}
}

func TestJellyfishPulse(t *testing.T) {
	spec := CreatureSpec{Width: 35, Height: 45, Speed: 0.15, Points: 75}
	j := NewCreature(Jellyfish, spec, 0, 100, Right)
	f := NewCreature(Fish, spec, 0, 100, Right)

	// sin(500ms * 0.003) * 10 = sin(1.5) * 10
	now := 500 * time.Millisecond
	j.Advance(16*time.Millisecond, now)
	f.Advance(16*time.Millisecond, now)

	want := math.Sin(1.5) * 10
	if math.Abs(j.Pulse-want) > 1e-9 {
		t.Fatalf("jellyfish pulse = %v, want %v", j.Pulse, want)
	}
	if f.Pulse != 0 {
		t.Fatalf("fish pulse = %v, want 0", f.Pulse)
	}
	if j.Y != 100 {
		t.Fatalf("pulse moved the creature: y = %v", j.Y)
	}
}
