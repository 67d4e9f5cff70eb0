package main

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"

	"github.com/olivierh59500/coin-bounce-go/internal/arena"
	"github.com/olivierh59500/coin-bounce-go/internal/audio"
	"github.com/olivierh59500/coin-bounce-go/internal/effect"
	"github.com/olivierh59500/coin-bounce-go/internal/palette"
	"github.com/olivierh59500/coin-bounce-go/internal/session"
)

// Render constants
const (
	winText = "You win. Well done, you."
	glyphW  = 6 // ebitenutil debug font cell
	glyphH  = 16
)

// Game adapts a session to ebiten's Update/Draw loop
type Game struct {
	session *session.Session
	pool    *audio.Pool // nil when audio is off
	log     logrus.FieldLogger

	width, height int
	frame         session.Frame
	last          time.Time // Previous Update, zero before the first frame

	// Drag gestures in progress
	touches  map[ebiten.TouchID][2]float64
	touchIDs []ebiten.TouchID
	mouseX   float64
	mouseY   float64
	mouseOn  bool
	unlocked bool
}

// NewGame creates the ebiten game around a session
func NewGame(s *session.Session, pool *audio.Pool, width, height int, log logrus.FieldLogger) *Game {
	g := &Game{
		session: s,
		pool:    pool,
		log:     log,
		width:   width,
		height:  height,
		touches: make(map[ebiten.TouchID][2]float64),
	}
	return g
}

// Update is called each tick by Ebitengine
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// Input only queues commands; they apply inside Step
	g.handleInput()

	now := time.Now()
	var delta time.Duration
	if !g.last.IsZero() {
		delta = now.Sub(g.last)
	}
	g.last = now

	g.frame = g.session.Step(delta)
	return nil
}

// Draw paints the last frame snapshot
func (g *Game) Draw(screen *ebiten.Image) {
	f := g.frame
	screen.Fill(palette.Background)

	for _, t := range f.Tiles {
		col := palette.Coin
		if t.Kind == arena.SlowCoin {
			col = palette.SlowCoin
		}
		vector.DrawFilledCircle(screen, float32(t.X), float32(t.Y), float32(t.Radius), col, true)
	}

	vector.DrawFilledCircle(screen, float32(f.Ball.X), float32(f.Ball.Y), float32(f.Ball.Radius), palette.Ball(f.Effect, f.EffectFraction), true)

	ebitenutil.DebugPrintAt(screen, fmt.Sprint(f.Score), 5, 4)
	if f.Effect == effect.Slowed {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("slowed %.1fs", f.EffectLeft.Seconds()), 5, 4+glyphH)
	}
	if g.pool != nil && g.pool.Muted() {
		ebitenutil.DebugPrintAt(screen, "muted", g.width-5-5*glyphW, 4)
	}

	if f.Won {
		x := (g.width - len(winText)*glyphW) / 2
		ebitenutil.DebugPrintAt(screen, winText, x, g.height/2-glyphH/2)
	}
}

// Layout returns the screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// handleInput maps keys, touches and mouse drags onto session commands
func (g *Game) handleInput() {
	keys := []struct {
		key ebiten.Key
		dir session.Direction
	}{
		{ebiten.KeyArrowLeft, session.Left},
		{ebiten.KeyArrowUp, session.Up},
		{ebiten.KeyArrowRight, session.Right},
		{ebiten.KeyArrowDown, session.Down},
	}
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k.key) {
			g.session.Steer(k.dir)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.session.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) && g.pool != nil {
		g.pool.SetMuted(!g.pool.Muted())
		g.log.WithField("muted", g.pool.Muted()).Info("audio toggled")
	}

	// Touch fling
	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		g.touches[id] = [2]float64{float64(x), float64(y)}
	}
	g.touchIDs = inpututil.AppendJustReleasedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		start, ok := g.touches[id]
		if !ok {
			continue
		}
		delete(g.touches, id)
		x, y := inpututil.TouchPositionInPreviousTick(id)
		g.session.Fling(start[0], start[1], float64(x), float64(y))
		g.unlockAudio()
	}

	// Mouse drag behaves like a touch
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.mouseX, g.mouseY, g.mouseOn = float64(x), float64(y), true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.mouseOn {
		x, y := ebiten.CursorPosition()
		g.session.Fling(g.mouseX, g.mouseY, float64(x), float64(y))
		g.mouseOn = false
	}
}

// unlockAudio primes every voice on the first touch, which mobile browsers
// require before they play anything
func (g *Game) unlockAudio() {
	if g.unlocked || g.pool == nil {
		return
	}
	g.pool.Unlock()
	g.unlocked = true
}
