// Package main is the entry point for the terminal slot machine.
package main

import (
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"termslots/internal/config"
	"termslots/internal/game"
	"termslots/internal/handler"
	"termslots/internal/sound"
	"termslots/internal/stats"
	"termslots/internal/ui"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Logging goes to a file: stdout belongs to the renderer.
	logFile, err := openLogFile(cfg.Log.File)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open log file")
	}
	defer logFile.Close()

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: logFile, TimeFormat: time.RFC3339, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()

	log.Info().Msg("Configuration loaded successfully")

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("Game crashed")
	}
	log.Info().Msg("Session ended")
}

func run(cfg *config.Config) error {
	// Raw mode for key-at-a-time input; restore on exit.
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, oldState)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	beeper := sound.NewBeeper(os.Stdout, cfg.Sound.Enabled)

	engine := game.NewEngine(game.Config{
		InitialBalance:   cfg.Game.InitialBalance,
		MinBet:           cfg.Game.MinBet,
		MaxBet:           cfg.Game.MaxBet,
		DefaultBet:       cfg.Game.DefaultBet,
		JackpotSeed:      cfg.Game.JackpotSeed,
		JackpotIncrement: cfg.Game.JackpotIncrement,
		HistorySize:      cfg.Game.HistorySize,
		NearMissChance:   cfg.Game.NearMissChance,
		Anim: game.AnimConfig{
			FastSteps:        cfg.Animation.FastSteps,
			StaggerSteps:     cfg.Animation.StaggerSteps,
			SlowSteps:        cfg.Animation.SlowSteps,
			StepDelay:        cfg.Animation.StepDelay,
			SlowDelay:        cfg.Animation.SlowDelay,
			SlowRamp:         cfg.Animation.SlowRamp,
			DoubleStepChance: cfg.Animation.DoubleStepChance,
			InterSpinDelay:   cfg.Animation.InterSpinDelay,
		},
	}, rng, beeper)

	renderer := ui.NewRenderer(os.Stdout)
	renderer.Init()
	defer renderer.Close()

	keys := ui.ReadKeys(os.Stdin)
	keyHandler := handler.New(engine, cfg.Game.BetStep)

	// Cooperative game loop: input, engine tick, render - in that order,
	// once per frame. The engine paces animation steps internally.
	ticker := time.NewTicker(cfg.Animation.FrameDelay)
	defer ticker.Stop()

	for {
		select {
		case k, ok := <-keys:
			if !ok {
				return nil
			}
			if keyHandler.Handle(k, time.Now()) {
				return nil
			}
		case now := <-ticker.C:
			if err := engine.Tick(now); err != nil {
				log.Warn().Err(err).Msg("Spin sequence stopped")
			}
			draw(renderer, keyHandler, engine, now)
		}
	}
}

func draw(renderer *ui.Renderer, keyHandler *handler.KeyHandler, engine *game.Engine, now time.Time) {
	if !keyHandler.ShowStats() {
		renderer.Machine(engine.Snapshot())
		return
	}
	history := engine.History()
	snap := engine.Snapshot()
	sum := stats.Summarize(history, snap.SessionStart, now)
	series := stats.BalanceSeries(engine.InitialBalance(), history)
	renderer.Stats(keyHandler.Tab(), sum, history, series)
}

// openLogFile opens (creating directories as needed) the game log file.
func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}
