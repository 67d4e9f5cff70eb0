package session

import "github.com/sirupsen/logrus"

// Direction of a steering key
type Direction uint8

const (
	Left Direction = iota
	Up
	Right
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// command is a queued velocity assignment
type command struct {
	dx, dy     float64
	setX, setY bool
}

// Steer queues a velocity assignment for one axis: KeySpeed in the pressed
// direction. The other axis is left as is.
func (s *Session) Steer(d Direction) {
	v := s.opts.KeySpeed
	var c command
	switch d {
	case Left:
		c.dx, c.setX = -v, true
	case Right:
		c.dx, c.setX = v, true
	case Up:
		c.dy, c.setY = -v, true
	case Down:
		c.dy, c.setY = v, true
	default:
		return
	}
	s.enqueue(c)
}

// Fling queues a velocity from a drag gesture. The drag vector is normalised
// by the surface size and scaled by FlingScale on both axes.
func (s *Session) Fling(startX, startY, endX, endY float64) {
	w, h := s.arena.SurfaceWidth, s.arena.SurfaceHeight
	s.enqueue(command{
		dx:   (endX - startX) / w * s.opts.FlingScale,
		dy:   (endY - startY) / h * s.opts.FlingScale,
		setX: true,
		setY: true,
	})
}

// Reset requests a board reset: every coin visible again, score zeroed and
// the coin count restored. It takes effect at the start of the next Step and
// is never dropped, however much input is queued.
func (s *Session) Reset() {
	s.resetPending.Store(true)
}

func (s *Session) enqueue(c command) {
	select {
	case s.commands <- c:
	default:
		s.log.WithFields(logrus.Fields{
			"dx": c.dx,
			"dy": c.dy,
		}).Warn("command queue full, velocity dropped")
	}
}

// drain applies a pending reset, then every queued command, before the
// frame's physics
func (s *Session) drain() {
	if s.resetPending.Swap(false) {
		s.resetBoard()
	}
	for {
		select {
		case c := <-s.commands:
			s.execute(c)
		default:
			return
		}
	}
}

func (s *Session) execute(c command) {
	if c.setX {
		s.ball.DX = c.dx
	}
	if c.setY {
		s.ball.DY = c.dy
	}
}

func (s *Session) resetBoard() {
	s.arena.Reset()
	s.score.Reset()
	s.won = s.score.IsWin()
	s.log.WithFields(logrus.Fields{
		"coins": s.score.Remaining,
	}).Info("board reset")
}
