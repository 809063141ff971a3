package gamestate

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultTurnRate is the rotation speed in degrees per second.
	DefaultTurnRate = 120.0
	// DefaultMoveRate is the walking speed in world units per second.
	DefaultMoveRate = 150.0
)

// Actor is the player: a continuous position, a heading and the view cone.
// It performs no validation; the Gamestate owns that.
type Actor struct {
	pos     mgl64.Vec2
	heading float64

	fov          float64
	viewDistance float64

	// Rates are stored per nanosecond so a time.Duration scales them directly.
	turnRate float64
	moveRate float64
}

// NewActor returns an Actor at x, y facing along the positive x axis.
func NewActor(x, y, fov, viewDistance float64) *Actor {
	a := &Actor{
		pos:          mgl64.Vec2{x, y},
		fov:          fov,
		viewDistance: viewDistance,
	}
	a.SetRates(DefaultTurnRate, DefaultMoveRate)
	return a
}

// SetRates sets the turn rate in degrees per second and the move rate in
// world units per second.
func (a *Actor) SetRates(turn, move float64) {
	a.turnRate = turn / float64(time.Second)
	a.moveRate = move / float64(time.Second)
}

// Rotate turns the actor by sign*turnRate*dt. Positive signs turn toward
// increasing angles.
func (a *Actor) Rotate(sign float64, dt time.Duration) {
	a.heading = normalizeHeading(a.heading + sign*a.turnRate*float64(dt))
}

// Move displaces the actor by sign*moveRate*dt along its heading. A positive
// sign walks forward, toward the centre of the ray fan.
func (a *Actor) Move(sign float64, dt time.Duration) {
	a.pos = a.pos.Add(direction(a.heading).Mul(sign * a.moveRate * float64(dt)))
}

// SetPosition overwrites the position.
func (a *Actor) SetPosition(x, y float64) {
	a.pos = mgl64.Vec2{x, y}
}

// SetHeading overwrites the heading, normalising it into [0, 360).
func (a *Actor) SetHeading(deg float64) {
	a.heading = normalizeHeading(deg)
}

// Position returns the current position.
func (a *Actor) Position() mgl64.Vec2 { return a.pos }

// Heading returns the heading in degrees, in [0, 360).
func (a *Actor) Heading() float64 { return a.heading }

// FieldOfView returns the view cone width in degrees.
func (a *Actor) FieldOfView() float64 { return a.fov }

// ViewDistance returns the maximum ray length in world units.
func (a *Actor) ViewDistance() float64 { return a.viewDistance }
