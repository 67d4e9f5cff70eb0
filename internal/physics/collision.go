package physics

import (
	"math"

	"github.com/olivierh59500/coin-bounce-go/internal/arena"
)

// ResolveWalls reflects the ball off the arena edges. A crossed edge flips
// and scales the matching velocity component by Bounciness and puts the
// ball's edge exactly on the boundary.
func ResolveWalls(b *Ball, width, height float64) {
	// Bottom
	if b.Y+b.Radius >= height {
		b.DY = -b.DY * b.Bounciness
		b.Y = height - b.Radius
	}

	// Top
	if b.Y-b.Radius <= 0 {
		b.DY = -b.DY * b.Bounciness
		b.Y = b.Radius
	}

	// Left
	if b.X-b.Radius <= 0 {
		b.DX = -b.DX * b.Bounciness
		b.X = b.Radius
	}

	// Right
	if b.X+b.Radius >= width {
		b.DX = -b.DX * b.Bounciness
		b.X = width - b.Radius
	}
}

// ResolveTile tests the ball against a single tile. On overlap the tile is
// hidden and true is returned; the caller decides what the kind means.
func ResolveTile(b *Ball, t *arena.Tile) bool {
	if !t.Visible || !t.Kind.Collectible() {
		return false
	}

	d := math.Hypot(b.X-t.X, b.Y-t.Y)
	if d >= b.Radius+t.Radius {
		return false
	}

	t.Visible = false
	return true
}
