package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const DefaultPath = "bounce.toml"

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window WindowConfig `toml:"window"`
	World  WorldConfig  `toml:"world"`
	Ball   BallConfig   `toml:"ball"`
	Effect EffectConfig `toml:"effect"`
	Arena  ArenaConfig  `toml:"arena"`
	Input  InputConfig  `toml:"input"`
	Audio  AudioConfig  `toml:"audio"`
	Log    LogConfig    `toml:"log"`

	// Keys present in the file that no field consumed
	Undecoded []string `toml:"-"`

	// Non-fatal load problems, such as an unreadable .env
	Warnings []string `toml:"-"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	TPS    int    `toml:"tps"`
}

type WorldConfig struct {
	Gravity       float64       `toml:"gravity"`
	MaxFrameDelta time.Duration `toml:"max_frame_delta"`
}

type BallConfig struct {
	Radius     float64 `toml:"radius"`
	Bounciness float64 `toml:"bounciness"`
	Resistance float64 `toml:"resistance"`
}

type EffectConfig struct {
	Duration   time.Duration `toml:"duration"`
	Radius     float64       `toml:"radius"`
	Resistance float64       `toml:"resistance"`
}

type ArenaConfig struct {
	Layout     string   `toml:"layout"` // classic, diamond, noise or custom
	Rows       []string `toml:"rows"`   // custom layout
	CoinRadius float64  `toml:"coin_radius"`
	Seed       int64    `toml:"seed"` // noise; 0 picks one from the clock
	Density    float64  `toml:"density"`
	NoiseCols  int      `toml:"noise_cols"`
	NoiseRows  int      `toml:"noise_rows"`
}

type InputConfig struct {
	KeySpeed   float64 `toml:"key_speed"`
	FlingScale float64 `toml:"fling_scale"`
}

type AudioConfig struct {
	Enabled    bool    `toml:"enabled"`
	Volume     float64 `toml:"volume"`
	SampleRate int     `toml:"sample_rate"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"` // terminal frontend only
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Window: WindowConfig{Width: 440, Height: 400, Title: "Coin Bounce", TPS: 60},
		World:  WorldConfig{Gravity: 9.81, MaxFrameDelta: 250 * time.Millisecond},
		Ball:   BallConfig{Radius: 10, Bounciness: 0.8, Resistance: 0.01},
		Effect: EffectConfig{Duration: 3 * time.Second, Radius: 5, Resistance: 0.05},
		Arena: ArenaConfig{
			Layout:     "classic",
			CoinRadius: 8,
			Density:    0.3,
			NoiseCols:  11,
			NoiseRows:  10,
		},
		Input: InputConfig{KeySpeed: 10, FlingScale: 20},
		Audio: AudioConfig{Enabled: true, Volume: 0, SampleRate: 44100},
		Log:   LogConfig{Level: "info", Format: "text", File: "bounce.log"},
	}
}

// Load reads an optional .env, then the TOML file at path (BOUNCE_CONFIG or
// bounce.toml when empty), then environment overrides. A missing file is not
// an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("load .env: %v", err))
	}

	if path == "" {
		path = getEnv("BOUNCE_CONFIG", DefaultPath)
	}

	if _, err := os.Stat(path); err == nil {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		for _, k := range md.Undecoded() {
			cfg.Undecoded = append(cfg.Undecoded, k.String())
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Log.Level = getEnv("BOUNCE_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("BOUNCE_LOG_FORMAT", c.Log.Format)
	c.Arena.Layout = getEnv("BOUNCE_LAYOUT", c.Arena.Layout)

	if v, ok := os.LookupEnv("BOUNCE_AUDIO"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: BOUNCE_AUDIO=%q", ErrInvalid, v)
		}
		c.Audio.Enabled = b
	}

	if v, ok := os.LookupEnv("BOUNCE_SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: BOUNCE_SEED=%q", ErrInvalid, v)
		}
		c.Arena.Seed = n
	}
	return nil
}

// Validate checks ranges the simulation depends on
func (c *Config) Validate() error {
	var problems []string
	check := func(ok bool, msg string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(msg, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	check(c.Window.TPS > 0, "window.tps %d", c.Window.TPS)
	check(c.World.MaxFrameDelta >= 0, "world.max_frame_delta %v", c.World.MaxFrameDelta)
	check(c.Ball.Radius > 0, "ball.radius %g", c.Ball.Radius)
	check(c.Ball.Bounciness >= 0 && c.Ball.Bounciness <= 1, "ball.bounciness %g not in [0,1]", c.Ball.Bounciness)
	check(c.Ball.Resistance >= 0 && c.Ball.Resistance < 1, "ball.resistance %g not in [0,1)", c.Ball.Resistance)
	check(c.Effect.Duration > 0, "effect.duration %v", c.Effect.Duration)
	check(c.Effect.Radius > 0, "effect.radius %g", c.Effect.Radius)
	check(c.Effect.Resistance >= 0 && c.Effect.Resistance < 1, "effect.resistance %g not in [0,1)", c.Effect.Resistance)
	check(c.Arena.CoinRadius > 0, "arena.coin_radius %g", c.Arena.CoinRadius)
	check(c.Audio.SampleRate > 0, "audio.sample_rate %d", c.Audio.SampleRate)

	switch c.Arena.Layout {
	case "classic", "diamond":
	case "noise":
		check(c.Arena.NoiseCols > 0 && c.Arena.NoiseRows > 0, "arena noise size %dx%d", c.Arena.NoiseCols, c.Arena.NoiseRows)
	case "custom":
		check(len(c.Arena.Rows) > 0, "arena.rows empty for custom layout")
	default:
		check(false, "arena.layout %q", c.Arena.Layout)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
