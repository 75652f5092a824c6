package world

import (
	"math"
	"time"
)

// Actor energy and recoil constants.
const (
	MaxEnergy      = 100.0
	ShotEnergyCost = 5.0
	EnergyRegen    = 0.02 // per millisecond
	MaxRecoil      = 10.0
	RecoilDecay    = 0.05 // per millisecond
)

// Actor is the player-controlled emitter at the bottom of the field.
// Energy is a meter only: it is spent and regenerated but never blocks a shot.
type Actor struct {
	X, Y          float64
	Width, Height float64
	FireDelay     time.Duration

	Energy float64
	Recoil float64

	fieldWidth float64
	lastShot   time.Duration
	fired      bool
}

// NewActor places the actor centred horizontally at y.
func NewActor(width, height, fieldWidth, y float64, fireDelay time.Duration) *Actor {
	a := &Actor{
		Width:      width,
		Height:     height,
		FireDelay:  fireDelay,
		Energy:     MaxEnergy,
		fieldWidth: fieldWidth,
		Y:          y,
	}
	a.SetPosition(fieldWidth / 2)
	return a
}

// SetPosition clamps x to [Width/2, fieldWidth-Width/2].
func (a *Actor) SetPosition(x float64) {
	hw := a.Width / 2
	a.X = math.Max(hw, math.Min(x, a.fieldWidth-hw))
}

// SetFieldWidth updates the clamp range and re-clamps the current position.
func (a *Actor) SetFieldWidth(w float64) {
	a.fieldWidth = w
	a.SetPosition(a.X)
}

// CanFire reports whether the fire delay has elapsed at now.
func (a *Actor) CanFire(now time.Duration) bool {
	return !a.fired || now-a.lastShot >= a.FireDelay
}

// TryFire emits a projectile from the muzzle if the fire delay has elapsed.
func (a *Actor) TryFire(now time.Duration) (*Projectile, bool) {
	if !a.CanFire(now) {
		return nil, false
	}
	a.lastShot = now
	a.fired = true
	a.Recoil = MaxRecoil
	a.Energy = math.Max(0, a.Energy-ShotEnergyCost)
	return NewProjectile(a.X, a.Y-a.Height/2), true
}

// Update regenerates energy and decays recoil.
func (a *Actor) Update(dt time.Duration) {
	ms := Millis(dt)
	a.Energy = math.Min(MaxEnergy, a.Energy+ms*EnergyRegen)
	if a.Recoil > 0 {
		a.Recoil = math.Max(0, a.Recoil-ms*RecoilDecay)
	}
}

// Reset restores a fresh actor at y without moving it horizontally.
func (a *Actor) Reset(y float64) {
	a.Y = y
	a.Energy = MaxEnergy
	a.Recoil = 0
	a.lastShot = 0
	a.fired = false
}
