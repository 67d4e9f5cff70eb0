package session

import (
	"time"

	"github.com/olivierh59500/coin-bounce-go/internal/arena"
	"github.com/olivierh59500/coin-bounce-go/internal/effect"
	"github.com/olivierh59500/coin-bounce-go/internal/physics"
)

// Collision is one tile collected during a frame
type Collision struct {
	Kind     arena.Kind
	Row, Col int
}

// TileView is a visible tile as the renderer sees it
type TileView struct {
	Kind   arena.Kind
	X, Y   float64
	Radius float64
}

// Frame is the render snapshot produced by Step. It shares no memory with
// the session.
type Frame struct {
	Ball   physics.Ball
	Tiles  []TileView
	Width  float64
	Height float64

	Score     int
	Remaining int
	Won       bool

	Effect         effect.State
	EffectLeft     time.Duration
	EffectFraction float64

	Collisions []Collision
}

func (s *Session) snapshot(hits []Collision) Frame {
	f := Frame{
		Ball:           s.ball,
		Width:          s.arena.SurfaceWidth,
		Height:         s.arena.SurfaceHeight,
		Score:          s.score.Score,
		Remaining:      s.score.Remaining,
		Won:            s.won,
		Effect:         s.effect.State(),
		EffectLeft:     s.effect.Remaining(),
		EffectFraction: s.effect.Fraction(),
		Collisions:     hits,
	}

	tiles := s.arena.Tiles()
	f.Tiles = make([]TileView, 0, len(tiles))
	for _, t := range tiles {
		if !t.Visible {
			continue
		}
		f.Tiles = append(f.Tiles, TileView{Kind: t.Kind, X: t.X, Y: t.Y, Radius: t.Radius})
	}

	return f
}
