// Command bounce-term plays the coin arena in a terminal. The arena surface is
// scaled onto the terminal grid below a one-line HUD.
package main

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/sirupsen/logrus"

	"github.com/olivierh59500/coin-bounce-go/internal/arena"
	"github.com/olivierh59500/coin-bounce-go/internal/audio"
	"github.com/olivierh59500/coin-bounce-go/internal/config"
	"github.com/olivierh59500/coin-bounce-go/internal/effect"
	"github.com/olivierh59500/coin-bounce-go/internal/logger"
	"github.com/olivierh59500/coin-bounce-go/internal/palette"
	"github.com/olivierh59500/coin-bounce-go/internal/session"
)

const (
	hudRows  = 1
	winText  = "You win. Well done, you."
	helpText = "arrows steer · drag fling · r reset · m mute · esc quit"

	glyphBall     = '●'
	glyphCoin     = 'o'
	glyphSlowCoin = '◆'
)

type termGame struct {
	screen  tcell.Screen
	session *session.Session
	pool    *audio.Pool
	log     logrus.FieldLogger

	width, height float64 // Arena surface in pixels
	frame         session.Frame

	dragging     bool
	dragX, dragY int
}

func newTermGame(screen tcell.Screen, s *session.Session, pool *audio.Pool, width, height float64, log logrus.FieldLogger) *termGame {
	screen.EnableMouse()
	screen.HideCursor()
	return &termGame{
		screen:  screen,
		session: s,
		pool:    pool,
		log:     log,
		width:   width,
		height:  height,
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// project maps an arena pixel position to a terminal cell in the play area
func project(x, y, w, h float64, cols, rows int) (int, int) {
	cx := int(x / w * float64(cols))
	cy := int(y / h * float64(rows))
	if cx >= cols {
		cx = cols - 1
	}
	if cy >= rows {
		cy = rows - 1
	}
	if cx < 0 {
		cx = 0
	}
	if cy < 0 {
		cy = 0
	}
	return cx, cy + hudRows
}

// unproject maps a terminal cell back to the arena pixel at its center
func unproject(cx, cy int, w, h float64, cols, rows int) (float64, float64) {
	return (float64(cx) + 0.5) / float64(cols) * w, (float64(cy-hudRows) + 0.5) / float64(rows) * h
}

func (g *termGame) playArea() (int, int) {
	cols, rows := g.screen.Size()
	rows -= hudRows
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

func (g *termGame) draw() {
	f := g.frame
	g.screen.Clear()

	cols, rows := g.playArea()
	bg := tcell.StyleDefault.Background(rgb(palette.Background))

	for y := hudRows; y < rows+hudRows; y++ {
		for x := 0; x < cols; x++ {
			g.screen.SetContent(x, y, ' ', nil, bg)
		}
	}

	for _, t := range f.Tiles {
		x, y := project(t.X, t.Y, f.Width, f.Height, cols, rows)
		glyph, col := glyphCoin, palette.Coin
		if t.Kind == arena.SlowCoin {
			glyph, col = glyphSlowCoin, palette.SlowCoin
		}
		g.screen.SetContent(x, y, glyph, nil, bg.Foreground(rgb(col)))
	}

	bx, by := project(f.Ball.X, f.Ball.Y, f.Width, f.Height, cols, rows)
	g.screen.SetContent(bx, by, glyphBall, nil, bg.Foreground(rgb(palette.Ball(f.Effect, f.EffectFraction))))

	hud := fmt.Sprintf("score %d  coins %d", f.Score, f.Remaining)
	if f.Effect == effect.Slowed {
		hud += fmt.Sprintf("  slowed %.1fs", f.EffectLeft.Seconds())
	}
	if g.pool != nil && g.pool.Muted() {
		hud += "  muted"
	}
	hud += "  │ " + helpText
	g.text(0, 0, hud, tcell.StyleDefault.Foreground(rgb(palette.Text)))

	if f.Won {
		x := (cols - len([]rune(winText))) / 2
		g.text(x, hudRows+rows/2, winText, bg.Foreground(rgb(palette.Text)).Bold(true))
	}

	g.screen.Show()
}

func (g *termGame) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		g.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// handleEvent queues input on the session. Returns false to quit.
func (g *termGame) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			g.session.Steer(session.Left)
		case tcell.KeyRight:
			g.session.Steer(session.Right)
		case tcell.KeyUp:
			g.session.Steer(session.Up)
		case tcell.KeyDown:
			g.session.Steer(session.Down)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'r', 'R':
				g.session.Reset()
			case 'm', 'M':
				if g.pool != nil {
					g.pool.SetMuted(!g.pool.Muted())
					g.log.WithField("muted", g.pool.Muted()).Info("audio toggled")
				}
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		pressed := ev.Buttons()&tcell.Button1 != 0
		switch {
		case pressed && !g.dragging:
			g.dragging, g.dragX, g.dragY = true, x, y
		case !pressed && g.dragging:
			g.dragging = false
			cols, rows := g.playArea()
			sx, sy := unproject(g.dragX, g.dragY, g.width, g.height, cols, rows)
			ex, ey := unproject(x, y, g.width, g.height, cols, rows)
			g.session.Fling(sx, sy, ex, ey)
		}

	case *tcell.EventResize:
		g.screen.Sync()
	}

	return true
}

func (g *termGame) run(tps int) {
	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	var last time.Time
	for {
		select {
		case ev := <-eventChan:
			if !g.handleEvent(ev) {
				return
			}

		case now := <-ticker.C:
			var delta time.Duration
			if !last.IsZero() {
				delta = now.Sub(last)
			}
			last = now

			g.frame = g.session.Step(delta)
			g.draw()
		}
	}
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	if cfg.Log.File != "" {
		closer, err := logger.ToFile(log, cfg.Log.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer closer.Close()
	}
	for _, w := range cfg.Warnings {
		log.Warn(w)
	}
	for _, key := range cfg.Undecoded {
		log.WithField("key", key).Warn("unknown config key")
	}

	a, err := cfg.BuildArena()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build arena: %v\n", err)
		os.Exit(1)
	}
	if a.Unknown > 0 {
		log.WithField("symbols", a.Unknown).Warn("unknown layout symbols treated as empty")
	}

	// Non-fatal, game can run without sound
	var pool *audio.Pool
	var sink session.Sink
	if cfg.Audio.Enabled {
		p, closeAudio, err := audio.NewSpeakerPool(beep.SampleRate(cfg.Audio.SampleRate), cfg.Audio.Volume, time.Now().UnixNano())
		if err != nil {
			log.WithError(err).Warn("audio disabled")
		} else {
			defer closeAudio()
			pool, sink = p, p
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	s := session.New(a, cfg.SessionOptions(), sink, log)
	game := newTermGame(screen, s, pool, float64(cfg.Window.Width), float64(cfg.Window.Height), log)

	log.WithFields(logrus.Fields{
		"layout": cfg.Arena.Layout,
		"coins":  a.CoinCount(),
	}).Info("starting terminal session")

	game.run(cfg.Window.TPS)
}
