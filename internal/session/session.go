// Package session owns the game state of one play-through and runs the
// per-frame update: queued input, integration, wall and tile collisions,
// scoring, effect countdown and the render snapshot.
package session

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/olivierh59500/coin-bounce-go/internal/arena"
	"github.com/olivierh59500/coin-bounce-go/internal/effect"
	"github.com/olivierh59500/coin-bounce-go/internal/physics"
	"github.com/olivierh59500/coin-bounce-go/internal/score"
)

const commandQueueSize = 64

// Sink receives collision sounds. Playback is best effort.
type Sink interface {
	PlayRandomPop()
}

// Options configure a session
type Options struct {
	Gravity float64
	// MaxDelta clamps the frame delta before physics; 0 disables clamping
	MaxDelta time.Duration

	// Ball is the starting state; its Radius and Resistance are the defaults
	// the slow effect restores
	Ball physics.Ball

	EffectDuration time.Duration
	Slowed         effect.Params

	KeySpeed   float64 // Velocity set by a direction key
	FlingScale float64 // Velocity for a drag across the whole surface
}

// Session is the single-player game state. All mutation happens inside Step;
// Steer, Fling and Reset only record requests and are safe to call from other
// goroutines.
type Session struct {
	opts   Options
	arena  *arena.Arena
	ball   physics.Ball
	score  *score.Tracker
	effect *effect.Engine
	sink   Sink
	log    logrus.FieldLogger

	commands     chan command
	resetPending atomic.Bool
	won          bool
	frames       uint64
}

// New creates a session on a built arena. sink and log may be nil.
func New(a *arena.Arena, opts Options, sink Sink, log logrus.FieldLogger) *Session {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	defaults := effect.Params{Radius: opts.Ball.Radius, Resistance: opts.Ball.Resistance}

	s := &Session{
		opts:     opts,
		arena:    a,
		ball:     opts.Ball,
		score:    score.New(a.CoinCount()),
		effect:   effect.NewEngine(opts.EffectDuration, defaults, opts.Slowed),
		sink:     sink,
		log:      log,
		commands: make(chan command, commandQueueSize),
	}
	s.won = s.score.IsWin()

	return s
}

// Step runs one frame with the elapsed time since the previous one and
// returns the state to draw.
func (s *Session) Step(delta time.Duration) Frame {
	s.frames++
	s.drain()

	delta = s.clamp(delta)

	physics.Integrate(&s.ball, delta.Seconds(), s.opts.Gravity)
	physics.ResolveWalls(&s.ball, s.arena.SurfaceWidth, s.arena.SurfaceHeight)

	hits := s.collide()
	s.apply(hits)

	if s.effect.Tick(&s.ball, delta) {
		s.log.Debug("slow effect expired")
	}

	if won := s.score.IsWin(); won != s.won {
		s.won = won
		if won {
			s.log.WithFields(logrus.Fields{
				"score":  s.score.Score,
				"frames": s.frames,
			}).Info("all coins collected")
		}
	}

	return s.snapshot(hits)
}

func (s *Session) clamp(delta time.Duration) time.Duration {
	if delta < 0 {
		return 0
	}
	if s.opts.MaxDelta > 0 && delta > s.opts.MaxDelta {
		s.log.WithFields(logrus.Fields{
			"delta": delta,
			"max":   s.opts.MaxDelta,
		}).Debug("frame delta clamped")
		return s.opts.MaxDelta
	}
	return delta
}

// collide tests every tile in row-major order and returns what was hit.
// Outcomes are applied after the pass so an effect triggered by one tile
// does not change the ball for the rest of the frame's tests.
func (s *Session) collide() []Collision {
	var hits []Collision
	tiles := s.arena.Tiles()
	for i := range tiles {
		t := &tiles[i]
		if physics.ResolveTile(&s.ball, t) {
			hits = append(hits, Collision{Kind: t.Kind, Row: t.Row, Col: t.Col})
		}
	}
	return hits
}

func (s *Session) apply(hits []Collision) {
	for _, h := range hits {
		switch h.Kind {
		case arena.Coin:
			s.score.OnCoinCollected()
		case arena.SlowCoin:
			s.score.OnSlowCoinCollected()
			s.effect.Trigger(&s.ball)
			s.log.WithField("duration", s.opts.EffectDuration).Debug("slow effect started")
		case arena.Empty:
			continue
		}

		s.log.WithFields(logrus.Fields{
			"kind":  h.Kind,
			"row":   h.Row,
			"col":   h.Col,
			"score": s.score.Score,
		}).Debug("collision")

		s.pop()
	}
}

func (s *Session) pop() {
	if s.sink == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.WithField("panic", r).Warn("audio sink failed")
		}
	}()
	s.sink.PlayRandomPop()
}

// Ball returns a copy of the ball state
func (s *Session) Ball() physics.Ball {
	return s.ball
}

func (s *Session) Arena() *arena.Arena {
	return s.arena
}

func (s *Session) Score() score.Tracker {
	return *s.score
}

func (s *Session) Effect() effect.State {
	return s.effect.State()
}
