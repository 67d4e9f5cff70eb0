// Package effect implements the timed ball-parameter overrides triggered by
// special coins.
package effect

import (
	"time"

	"github.com/olivierh59500/coin-bounce-go/internal/physics"
)

// State of the slow effect
type State uint8

const (
	Normal State = iota
	Slowed
)

func (s State) String() string {
	if s == Slowed {
		return "slowed"
	}
	return "normal"
}

// Params are the ball fields the effect owns
type Params struct {
	Radius     float64
	Resistance float64
}

// Engine is the Normal/Slowed state machine. The countdown is polled from the
// frame loop with the same delta used for physics.
type Engine struct {
	duration  time.Duration
	defaults  Params
	slowed    Params
	state     State
	remaining time.Duration

	// Set on trigger so the countdown starts with the next frame
	fresh bool
}

// NewEngine creates an engine in the Normal state
func NewEngine(duration time.Duration, defaults, slowed Params) *Engine {
	return &Engine{
		duration: duration,
		defaults: defaults,
		slowed:   slowed,
	}
}

// Trigger applies the slowed parameters and restarts the countdown at full
// duration. Retriggering while slowed does not stack.
func (e *Engine) Trigger(b *physics.Ball) {
	e.state = Slowed
	e.remaining = e.duration
	e.fresh = true
	apply(b, e.slowed)
}

// Tick advances the countdown by delta and restores the defaults once it
// runs out. It reports whether the effect expired on this tick.
func (e *Engine) Tick(b *physics.Ball, delta time.Duration) bool {
	if e.state != Slowed {
		return false
	}
	if e.fresh {
		e.fresh = false
		return false
	}
	if delta <= 0 {
		return false
	}

	e.remaining -= delta
	if e.remaining > 0 {
		return false
	}

	e.Expire(b)
	return true
}

// Expire restores the default parameters unconditionally
func (e *Engine) Expire(b *physics.Ball) {
	e.state = Normal
	e.remaining = 0
	e.fresh = false
	apply(b, e.defaults)
}

func (e *Engine) State() State {
	return e.state
}

// Remaining is the time left on the countdown, zero when Normal
func (e *Engine) Remaining() time.Duration {
	return e.remaining
}

// Fraction is the share of the countdown left, 0 when Normal
func (e *Engine) Fraction() float64 {
	if e.state != Slowed || e.duration <= 0 {
		return 0
	}
	return float64(e.remaining) / float64(e.duration)
}

func apply(b *physics.Ball, p Params) {
	b.Radius = p.Radius
	b.Resistance = p.Resistance
}
