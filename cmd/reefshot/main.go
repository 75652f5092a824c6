package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/reefshot/server/internal/config"
	"github.com/reefshot/server/internal/core/event"
	"github.com/reefshot/server/internal/data"
	"github.com/reefshot/server/internal/frontend"
	"github.com/reefshot/server/internal/game"
	"github.com/reefshot/server/internal/scripting"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/reefshot.toml"
	if p := os.Getenv("REEFSHOT_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Load data tables and scripts
	table := data.DefaultArchetypeTable()
	if cfg.Data.Archetypes != "" {
		table, err = data.LoadArchetypeTable(cfg.Data.Archetypes)
		if err != nil {
			return fmt.Errorf("load archetypes: %w", err)
		}
		log.Info("archetypes loaded", zap.String("path", cfg.Data.Archetypes), zap.Int("count", table.Count()))
	}

	var engine *scripting.Engine
	if cfg.Data.ScriptsDir != "" {
		engine, err = scripting.NewEngine(cfg.Data.ScriptsDir, log)
		if err != nil {
			return fmt.Errorf("lua engine: %w", err)
		}
		defer engine.Close()
		log.Info("lua engine ready",
			zap.Bool("next_spawn_interval", engine.Has("next_spawn_interval")),
			zap.Bool("hit_score", engine.Has("hit_score")))
	}

	// 4. Open the terminal; the playfield is sized to it before the
	// controller places the actor.
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	final, err := play(screen, cfg, game.Deps{Archetypes: table, Scripting: engine, Log: log})
	screen.Fini()
	if err != nil {
		return err
	}
	fmt.Printf("score: %d\n", final)
	return nil
}

// play builds the controller for the screen's size and runs the front-end
// until the user quits. It returns the score to report.
func play(screen tcell.Screen, cfg *config.Config, deps game.Deps) (int, error) {
	log := deps.Log
	cols, rows := screen.Size()
	if frontend.FitPlayfield(cols, rows, cfg) {
		log.Info("playfield sized to terminal",
			zap.Int("cols", cols), zap.Int("rows", rows),
			zap.Float64("width", cfg.Playfield.Width), zap.Float64("height", cfg.Playfield.Height))
	}

	bus := event.NewBus()
	deps.Config = cfg
	deps.Bus = bus
	ctrl, err := game.NewController(deps)
	if err != nil {
		return 0, err
	}
	event.Subscribe(bus, func(e event.SessionEnded) {
		log.Info("time up", zap.Int("final_score", e.FinalScore))
	})
	event.Subscribe(bus, func(e event.CreatureHit) {
		log.Debug("hit", zap.String("archetype", e.Archetype), zap.Int("points", e.Points), zap.Int("score", e.Score))
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := frontend.NewApp(screen, ctrl, cfg.Frontend, log)
	if err := app.Run(ctx); err != nil {
		return 0, err
	}
	snap := ctrl.Snapshot()
	if snap.Terminal {
		return snap.FinalScore, nil
	}
	return snap.Score, nil
}

// newLogger builds the process logger. The terminal belongs to the game, so
// output defaults to a file.
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.Output != "" {
		zapCfg.OutputPaths = []string{cfg.Output}
		zapCfg.ErrorOutputPaths = []string{cfg.Output}
	}

	return zapCfg.Build()
}
