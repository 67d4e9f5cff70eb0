package config

import (
	"fmt"
	"time"

	"github.com/olivierh59500/coin-bounce-go/internal/arena"
	"github.com/olivierh59500/coin-bounce-go/internal/effect"
	"github.com/olivierh59500/coin-bounce-go/internal/physics"
	"github.com/olivierh59500/coin-bounce-go/internal/session"
)

// Layout resolves the configured layout rows
func (c *Config) Layout() ([]string, error) {
	switch c.Arena.Layout {
	case "custom":
		rows := make([]string, len(c.Arena.Rows))
		copy(rows, c.Arena.Rows)
		return rows, nil
	case "noise":
		seed := c.Arena.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return arena.Generate(c.Arena.NoiseCols, c.Arena.NoiseRows, seed, c.Arena.Density), nil
	default:
		return arena.Builtin(c.Arena.Layout)
	}
}

// BuildArena builds the tile grid over the window surface
func (c *Config) BuildArena() (*arena.Arena, error) {
	rows, err := c.Layout()
	if err != nil {
		return nil, err
	}
	a, err := arena.Build(rows, float64(c.Window.Width), float64(c.Window.Height), c.Arena.CoinRadius)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", c.Arena.Layout, err)
	}
	return a, nil
}

// SessionOptions maps the config onto session options. The ball starts
// horizontally centered near the top.
func (c *Config) SessionOptions() session.Options {
	return session.Options{
		Gravity:  c.World.Gravity,
		MaxDelta: c.World.MaxFrameDelta,
		Ball: physics.Ball{
			X:          float64(c.Window.Width) / 2,
			Y:          c.Ball.Radius,
			Radius:     c.Ball.Radius,
			Bounciness: c.Ball.Bounciness,
			Resistance: c.Ball.Resistance,
		},
		EffectDuration: c.Effect.Duration,
		Slowed:         effect.Params{Radius: c.Effect.Radius, Resistance: c.Effect.Resistance},
		KeySpeed:       c.Input.KeySpeed,
		FlingScale:     c.Input.FlingScale,
	}
}
