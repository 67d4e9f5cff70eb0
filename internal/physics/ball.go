package physics

import "math"

// Ball is the single simulated body. Velocity is in pixels per frame.
type Ball struct {
	X, Y       float64
	DX, DY     float64
	Radius     float64
	Bounciness float64 // Restitution on wall contact, 0-1
	Resistance float64 // Per-frame velocity damping, 0 <= r < 1
}

// Integrate advances the ball by one frame of dt seconds. Gravity accumulates
// into DY, both components are damped by Resistance, then position moves by
// the velocity. Non-positive or non-finite dt leaves the ball untouched.
func Integrate(b *Ball, dt, gravity float64) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return
	}

	b.DY += dt * gravity

	damp := 1 - b.Resistance
	b.DX *= damp
	b.DY *= damp

	b.X += b.DX
	b.Y += b.DY
}
