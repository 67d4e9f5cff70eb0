// Package palette holds the colors shared by the window and terminal
// frontends.
package palette

import (
	"image/color"
	"math"

	"github.com/olivierh59500/coin-bounce-go/internal/effect"
)

const (
	BallHue   = 343.0
	SlowedHue = 205.0
)

var (
	Background = color.RGBA{13, 13, 13, 255}
	Coin       = color.RGBA{242, 183, 5, 255}
	SlowCoin   = color.RGBA{64, 156, 242, 255}
	Text       = color.RGBA{242, 39, 93, 255}
)

// Ball shifts the ball hue toward blue while slowed, fading back as the
// effect runs out
func Ball(state effect.State, fraction float64) color.RGBA {
	h := BallHue
	if state == effect.Slowed {
		h = BallHue - (BallHue-SlowedHue)*fraction
	}
	return HSV(h, 0.84, 0.95)
}

// HSV converts hue (degrees), saturation and value to an opaque color
func HSV(h, s, v float64) color.RGBA {
	r, g, b := hsvToRGB(h, s, v)
	return color.RGBA{uint8(math.Round(r * 255)), uint8(math.Round(g * 255)), uint8(math.Round(b * 255)), 255}
}

// hsvToRGB helper
func hsvToRGB(h, s, v float64) (float64, float64, float64) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}
