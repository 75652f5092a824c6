package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Playfield PlayfieldConfig `toml:"playfield"`
	Actor     ActorConfig     `toml:"actor"`
	Spawn     SpawnConfig     `toml:"spawn"`
	Session   SessionConfig   `toml:"session"`
	Frontend  FrontendConfig  `toml:"frontend"`
	Data      DataConfig      `toml:"data"`
	Logging   LoggingConfig   `toml:"logging"`
}

type PlayfieldConfig struct {
	Width        float64 `toml:"width"         env:"REEFSHOT_PLAYFIELD_WIDTH"`
	Height       float64 `toml:"height"        env:"REEFSHOT_PLAYFIELD_HEIGHT"`
	EscapeMargin float64 `toml:"escape_margin" env:"REEFSHOT_ESCAPE_MARGIN"` // distance past the far edge before a creature is pruned
}

type ActorConfig struct {
	Width      float64       `toml:"width"`
	Height     float64       `toml:"height"`
	BaseOffset float64       `toml:"base_offset"` // actor y = field height - base offset
	FireDelay  time.Duration `toml:"fire_delay"  env:"REEFSHOT_FIRE_DELAY"`
}

type SpawnConfig struct {
	InitialInterval time.Duration `toml:"initial_interval" env:"REEFSHOT_SPAWN_INITIAL"`
	IntervalStep    time.Duration `toml:"interval_step"    env:"REEFSHOT_SPAWN_STEP"`
	IntervalFloor   time.Duration `toml:"interval_floor"   env:"REEFSHOT_SPAWN_FLOOR"`
	MarginTop       float64       `toml:"margin_top"`    // lowest spawn y
	MarginBottom    float64       `toml:"margin_bottom"` // spawn y stays this far above the bottom
	Seed            int64         `toml:"seed"           env:"REEFSHOT_SEED"` // 0 = time-based
}

type SessionConfig struct {
	Duration time.Duration `toml:"duration" env:"REEFSHOT_SESSION_DURATION"`
}

type FrontendConfig struct {
	FrameRate  time.Duration `toml:"frame_rate"  env:"REEFSHOT_FRAME_RATE"`
	CellWidth  float64       `toml:"cell_width"`  // playfield units per terminal column
	CellHeight float64       `toml:"cell_height"` // playfield units per terminal row
	Locale     string        `toml:"locale"      env:"REEFSHOT_LOCALE"`
}

type DataConfig struct {
	Archetypes string `toml:"archetypes"  env:"REEFSHOT_ARCHETYPES"` // empty = built-in table
	ScriptsDir string `toml:"scripts_dir" env:"REEFSHOT_SCRIPTS"`    // empty = compiled formulas
}

type LoggingConfig struct {
	Level  string `toml:"level"  env:"REEFSHOT_LOG_LEVEL"`
	Format string `toml:"format"` // "json" or "console"
	Output string `toml:"output" env:"REEFSHOT_LOG_OUTPUT"`
}

// Load reads defaults, then the TOML file at path (if it exists), then
// REEFSHOT_* environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults returns the stock configuration.
func Defaults() *Config {
	return &Config{
		Playfield: PlayfieldConfig{
			Width:        800,
			Height:       600,
			EscapeMargin: 100,
		},
		Actor: ActorConfig{
			Width:      60,
			Height:     80,
			BaseOffset: 60,
			FireDelay:  200 * time.Millisecond,
		},
		Spawn: SpawnConfig{
			InitialInterval: 1500 * time.Millisecond,
			IntervalStep:    10 * time.Millisecond,
			IntervalFloor:   800 * time.Millisecond,
			MarginTop:       50,
			MarginBottom:    150,
		},
		Session: SessionConfig{
			Duration: 120 * time.Second,
		},
		Frontend: FrontendConfig{
			FrameRate:  16 * time.Millisecond,
			CellWidth:  10,
			CellHeight: 20,
			Locale:     "en",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "reefshot.log",
		},
	}
}

// Validate rejects configurations the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Playfield.Width <= 0 || c.Playfield.Height <= 0:
		return fmt.Errorf("%w: playfield %vx%v must be positive", ErrInvalidConfig, c.Playfield.Width, c.Playfield.Height)
	case c.Playfield.EscapeMargin < 0:
		return fmt.Errorf("%w: escape_margin %v is negative", ErrInvalidConfig, c.Playfield.EscapeMargin)
	case c.Actor.Width <= 0 || c.Actor.Height <= 0:
		return fmt.Errorf("%w: actor %vx%v must be positive", ErrInvalidConfig, c.Actor.Width, c.Actor.Height)
	case c.Actor.Width > c.Playfield.Width:
		return fmt.Errorf("%w: actor width %v exceeds playfield width %v", ErrInvalidConfig, c.Actor.Width, c.Playfield.Width)
	case c.Actor.FireDelay <= 0:
		return fmt.Errorf("%w: fire_delay %s must be positive", ErrInvalidConfig, c.Actor.FireDelay)
	case c.Spawn.InitialInterval <= 0:
		return fmt.Errorf("%w: initial_interval %s must be positive", ErrInvalidConfig, c.Spawn.InitialInterval)
	case c.Spawn.IntervalFloor <= 0:
		return fmt.Errorf("%w: interval_floor %s must be positive", ErrInvalidConfig, c.Spawn.IntervalFloor)
	case c.Spawn.IntervalFloor > c.Spawn.InitialInterval:
		return fmt.Errorf("%w: interval_floor %s above initial_interval %s", ErrInvalidConfig, c.Spawn.IntervalFloor, c.Spawn.InitialInterval)
	case c.Spawn.IntervalStep < 0:
		return fmt.Errorf("%w: interval_step %s is negative", ErrInvalidConfig, c.Spawn.IntervalStep)
	case c.Spawn.MarginTop < 0 || c.Spawn.MarginBottom < 0:
		return fmt.Errorf("%w: spawn margins must not be negative", ErrInvalidConfig)
	case c.Session.Duration <= 0:
		return fmt.Errorf("%w: session duration %s must be positive", ErrInvalidConfig, c.Session.Duration)
	case c.Frontend.FrameRate <= 0:
		return fmt.Errorf("%w: frame_rate %s must be positive", ErrInvalidConfig, c.Frontend.FrameRate)
	case c.Frontend.CellWidth <= 0 || c.Frontend.CellHeight <= 0:
		return fmt.Errorf("%w: cell size %vx%v must be positive", ErrInvalidConfig, c.Frontend.CellWidth, c.Frontend.CellHeight)
	}
	return nil
}
