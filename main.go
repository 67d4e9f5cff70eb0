package main

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/sirupsen/logrus"

	"github.com/olivierh59500/coin-bounce-go/internal/audio"
	"github.com/olivierh59500/coin-bounce-go/internal/config"
	"github.com/olivierh59500/coin-bounce-go/internal/logger"
	"github.com/olivierh59500/coin-bounce-go/internal/session"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	for _, w := range cfg.Warnings {
		log.Warn(w)
	}
	for _, key := range cfg.Undecoded {
		log.WithField("key", key).Warn("unknown config key")
	}

	a, err := cfg.BuildArena()
	if err != nil {
		log.WithError(err).Fatal("build arena")
	}
	if a.Unknown > 0 {
		log.WithField("symbols", a.Unknown).Warn("unknown layout symbols treated as empty")
	}

	// Audio is optional, the game runs silent without it
	var pool *audio.Pool
	var sink session.Sink
	if cfg.Audio.Enabled {
		ctx := ebaudio.NewContext(cfg.Audio.SampleRate)
		pool, err = audio.NewEbitenPool(ctx, cfg.Audio.Volume, time.Now().UnixNano())
		if err != nil {
			log.WithError(err).Warn("audio disabled")
			pool = nil
		} else {
			sink = pool
		}
	}

	s := session.New(a, cfg.SessionOptions(), sink, log)
	game := NewGame(s, pool, cfg.Window.Width, cfg.Window.Height, log)

	log.WithFields(logrus.Fields{
		"layout": cfg.Arena.Layout,
		"coins":  a.CoinCount(),
		"grid":   [2]int{a.Cols, a.Rows},
	}).Info("starting")

	// Set up Ebitengine game
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Window.TPS)

	// Run the game loop
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.WithError(err).Fatal("run game")
	}
}
