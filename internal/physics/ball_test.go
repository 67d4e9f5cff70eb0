package physics

import (
	"math"
	"testing"

	"github.com/olivierh59500/coin-bounce-go/internal/arena"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestIntegrate(t *testing.T) {
	b := &Ball{X: 100, Y: 50, DX: 2, DY: 1, Resistance: 0.1}

	Integrate(b, 0.5, 10)

	// DY = (1 + 0.5*10) * 0.9, DX = 2 * 0.9
	if !near(b.DY, 5.4) {
		t.Errorf("DY = %g, want 5.4", b.DY)
	}
	if !near(b.DX, 1.8) {
		t.Errorf("DX = %g, want 1.8", b.DX)
	}
	if !near(b.X, 101.8) || !near(b.Y, 55.4) {
		t.Errorf("position = (%g,%g), want (101.8,55.4)", b.X, b.Y)
	}
}

func TestIntegrateDegenerateDelta(t *testing.T) {
	deltas := []struct {
		name string
		dt   float64
	}{
		{"zero", 0},
		{"negative", -0.016},
		{"nan", math.NaN()},
		{"inf", math.Inf(1)},
	}

	for _, tt := range deltas {
		t.Run(tt.name, func(t *testing.T) {
			b := &Ball{X: 10, Y: 10, DX: 3, DY: -2, Resistance: 0.01}
			before := *b

			Integrate(b, tt.dt, 9.81)

			if *b != before {
				t.Errorf("ball changed on %s delta: %+v -> %+v", tt.name, before, *b)
			}
		})
	}
}

func TestIntegrateNoResistance(t *testing.T) {
	b := &Ball{DX: 4}
	for i := 0; i < 10; i++ {
		Integrate(b, 0.1, 0)
	}
	if b.DX != 4 || b.X != 40 {
		t.Errorf("undamped ball drifted: DX=%g X=%g", b.DX, b.X)
	}
}

func TestResolveWalls(t *testing.T) {
	const w, h = 400.0, 300.0

	tests := []struct {
		name   string
		ball   Ball
		wantX  float64
		wantY  float64
		wantDX float64
		wantDY float64
	}{
		{
			name:  "bottom",
			ball:  Ball{X: 200, Y: 295, DY: 6, Radius: 10, Bounciness: 0.5},
			wantX: 200, wantY: 290, wantDY: -3,
		},
		{
			name:  "top",
			ball:  Ball{X: 200, Y: 4, DY: -8, Radius: 10, Bounciness: 0.5},
			wantX: 200, wantY: 10, wantDY: 4,
		},
		{
			name:  "left",
			ball:  Ball{X: -3, Y: 100, DX: -10, Radius: 10, Bounciness: 0.8},
			wantX: 10, wantY: 100, wantDX: 8,
		},
		{
			name:  "right",
			ball:  Ball{X: 399, Y: 100, DX: 10, Radius: 10, Bounciness: 0.8},
			wantX: 390, wantY: 100, wantDX: -8,
		},
		{
			name:  "corner",
			ball:  Ball{X: 405, Y: 305, DX: 2, DY: 4, Radius: 10, Bounciness: 1},
			wantX: 390, wantY: 290, wantDX: -2, wantDY: -4,
		},
		{
			name:  "inside",
			ball:  Ball{X: 200, Y: 150, DX: 1, DY: 1, Radius: 10, Bounciness: 0.8},
			wantX: 200, wantY: 150, wantDX: 1, wantDY: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.ball
			ResolveWalls(&b, w, h)

			if !near(b.X, tt.wantX) || !near(b.Y, tt.wantY) {
				t.Errorf("position = (%g,%g), want (%g,%g)", b.X, b.Y, tt.wantX, tt.wantY)
			}
			if !near(b.DX, tt.wantDX) || !near(b.DY, tt.wantDY) {
				t.Errorf("velocity = (%g,%g), want (%g,%g)", b.DX, b.DY, tt.wantDX, tt.wantDY)
			}
		})
	}
}

// Ball touching the right wall and moving into it comes back at
// -dx*bounciness with its edge on the wall after one step.
func TestRightWallSingleStep(t *testing.T) {
	const width, height = 440.0, 400.0
	b := &Ball{X: width - 10, Y: 200, DX: 5, Radius: 10, Bounciness: 0.8}

	Integrate(b, 1.0/60, 0)
	ResolveWalls(b, width, height)

	if !near(b.DX, -5*0.8) {
		t.Errorf("DX = %g, want %g", b.DX, -5*0.8)
	}
	if !near(b.X, width-b.Radius) {
		t.Errorf("X = %g, want %g", b.X, width-b.Radius)
	}
}

func TestResolveWallsNoTunneling(t *testing.T) {
	const w, h = 100.0, 100.0
	b := &Ball{X: 50, Y: 50, DX: 37, DY: -53, Radius: 6, Bounciness: 0.9}

	for i := 0; i < 500; i++ {
		Integrate(b, 1.0/60, 9.81)
		ResolveWalls(b, w, h)

		if b.X-b.Radius < -eps || b.X+b.Radius > w+eps || b.Y-b.Radius < -eps || b.Y+b.Radius > h+eps {
			t.Fatalf("frame %d: ball escaped arena at (%g,%g)", i, b.X, b.Y)
		}
	}
}

func TestResolveTile(t *testing.T) {
	a, err := arena.Build([]string{".o", "x."}, 100, 100, 5)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	coin := a.At(0, 1) // center (75,25)

	b := &Ball{X: 75, Y: 40, Radius: 10}
	// Distance 15 == 10+5: touching is not overlapping
	if ResolveTile(b, coin) {
		t.Fatal("touching circles should not collide")
	}
	if !coin.Visible {
		t.Fatal("tile hidden without collision")
	}

	b.Y = 39.9
	if !ResolveTile(b, coin) {
		t.Fatal("overlapping circles should collide")
	}
	if coin.Visible {
		t.Fatal("collected tile still visible")
	}

	// One-shot: never collides again
	b.Y = 25
	if ResolveTile(b, coin) {
		t.Error("invisible tile collided a second time")
	}
	if coin.Visible {
		t.Error("tile visibility went back to true")
	}

	// Empty tiles have no geometry
	empty := a.At(0, 0)
	b.X, b.Y = empty.X, empty.Y
	if ResolveTile(b, empty) {
		t.Error("empty tile collided")
	}

	slow := a.At(1, 0)
	b.X, b.Y = slow.X+3, slow.Y
	if !ResolveTile(b, slow) {
		t.Error("slow coin should collide")
	}
}
