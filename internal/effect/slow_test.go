package effect

import (
	"testing"
	"time"

	"github.com/olivierh59500/coin-bounce-go/internal/physics"
)

var (
	defaults = Params{Radius: 10, Resistance: 0.01}
	degraded = Params{Radius: 5, Resistance: 0.05}
)

func newBall() *physics.Ball {
	return &physics.Ball{Radius: defaults.Radius, Resistance: defaults.Resistance, Bounciness: 0.8}
}

func TestTriggerAppliesOverride(t *testing.T) {
	e := NewEngine(3*time.Second, defaults, degraded)
	b := newBall()

	if e.State() != Normal {
		t.Fatalf("initial state = %v, want normal", e.State())
	}

	e.Trigger(b)

	if e.State() != Slowed {
		t.Fatalf("state = %v, want slowed", e.State())
	}
	if b.Radius != degraded.Radius || b.Resistance != degraded.Resistance {
		t.Errorf("ball params = (%g,%g), want (%g,%g)", b.Radius, b.Resistance, degraded.Radius, degraded.Resistance)
	}
	if b.Bounciness != 0.8 {
		t.Errorf("bounciness touched: %g", b.Bounciness)
	}
	if e.Remaining() != 3*time.Second {
		t.Errorf("remaining = %v, want 3s", e.Remaining())
	}
}

func TestExpiresExactlyAfterDuration(t *testing.T) {
	const frame = 10 * time.Millisecond
	e := NewEngine(3*time.Second, defaults, degraded)
	b := newBall()

	// Trigger frame: the tick that follows in the same frame does not count
	e.Trigger(b)
	e.Tick(b, frame)

	for i := 1; i < 300; i++ {
		if e.Tick(b, frame) {
			t.Fatalf("expired early after %d frames", i)
		}
		if b.Radius != degraded.Radius {
			t.Fatalf("frame %d: radius = %g, want %g", i, b.Radius, degraded.Radius)
		}
	}

	if !e.Tick(b, frame) {
		t.Fatal("did not expire after 3s")
	}
	if e.State() != Normal {
		t.Errorf("state = %v after expiry", e.State())
	}
	if b.Radius != defaults.Radius || b.Resistance != defaults.Resistance {
		t.Errorf("defaults not restored: (%g,%g)", b.Radius, b.Resistance)
	}
}

func TestRetriggerRestartsCountdown(t *testing.T) {
	const frame = 100 * time.Millisecond
	e := NewEngine(3*time.Second, defaults, degraded)
	b := newBall()

	e.Trigger(b)
	e.Tick(b, frame)

	// 2s later, second slow coin
	for i := 0; i < 20; i++ {
		e.Tick(b, frame)
	}
	e.Trigger(b)
	e.Tick(b, frame)

	// Still slowed up to (but not including) the 3s mark after the second trigger
	for i := 1; i < 30; i++ {
		if e.Tick(b, frame) {
			t.Fatalf("expired %v after retrigger, countdown stacked or kept old clock", time.Duration(i)*frame)
		}
	}
	if e.State() != Slowed || b.Radius != degraded.Radius {
		t.Fatalf("expected slowed just before 3s after retrigger, state=%v radius=%g", e.State(), b.Radius)
	}

	if !e.Tick(b, frame) {
		t.Fatal("retriggered effect did not expire at 3s")
	}
	if b.Radius != defaults.Radius {
		t.Errorf("radius = %g after expiry", b.Radius)
	}
}

func TestTickWhileNormal(t *testing.T) {
	e := NewEngine(time.Second, defaults, degraded)
	b := newBall()
	b.Radius = 42

	if e.Tick(b, time.Hour) {
		t.Error("normal engine reported expiry")
	}
	if b.Radius != 42 {
		t.Error("normal tick modified ball")
	}
}

func TestZeroDeltaDoesNotAdvance(t *testing.T) {
	e := NewEngine(time.Second, defaults, degraded)
	b := newBall()
	e.Trigger(b)
	e.Tick(b, 0)

	for i := 0; i < 100; i++ {
		e.Tick(b, 0)
	}
	if e.Remaining() != time.Second {
		t.Errorf("remaining = %v, zero deltas advanced the clock", e.Remaining())
	}
}

func TestExpireIsUnconditional(t *testing.T) {
	e := NewEngine(time.Second, defaults, degraded)
	b := newBall()
	b.Radius = 1

	e.Expire(b)

	if b.Radius != defaults.Radius || e.State() != Normal || e.Fraction() != 0 {
		t.Errorf("Expire from normal: radius=%g state=%v", b.Radius, e.State())
	}
}

func TestFraction(t *testing.T) {
	e := NewEngine(2*time.Second, defaults, degraded)
	b := newBall()
	e.Trigger(b)
	e.Tick(b, time.Second) // trigger frame
	e.Tick(b, 500*time.Millisecond)

	if f := e.Fraction(); f != 0.75 {
		t.Errorf("Fraction = %g, want 0.75", f)
	}
}
