// Package config provides configuration management using viper.
// It supports loading from YAML files and environment variable overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Game      GameConfig      `mapstructure:"game"`
	Animation AnimationConfig `mapstructure:"animation"`
	Sound     SoundConfig     `mapstructure:"sound"`
	Log       LogConfig       `mapstructure:"log"`
}

// GameConfig holds the core machine settings.
type GameConfig struct {
	InitialBalance   int64   `mapstructure:"initial_balance"`
	MinBet           int64   `mapstructure:"min_bet"`
	MaxBet           int64   `mapstructure:"max_bet"`
	DefaultBet       int64   `mapstructure:"default_bet"`
	BetStep          int64   `mapstructure:"bet_step"`
	JackpotSeed      int64   `mapstructure:"jackpot_seed"`
	JackpotIncrement int64   `mapstructure:"jackpot_increment"`
	HistorySize      int     `mapstructure:"history_size"`
	NearMissChance   float64 `mapstructure:"near_miss_chance"`
}

// AnimationConfig holds spin animation pacing.
type AnimationConfig struct {
	FastSteps        int           `mapstructure:"fast_steps"`
	StaggerSteps     int           `mapstructure:"stagger_steps"`
	SlowSteps        int           `mapstructure:"slow_steps"`
	StepDelay        time.Duration `mapstructure:"step_delay"`
	SlowDelay        time.Duration `mapstructure:"slow_delay"`
	SlowRamp         time.Duration `mapstructure:"slow_ramp"`
	DoubleStepChance float64       `mapstructure:"double_step_chance"`
	InterSpinDelay   time.Duration `mapstructure:"inter_spin_delay"`
	FrameDelay       time.Duration `mapstructure:"frame_delay"`
}

// SoundConfig holds terminal sound settings.
type SoundConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LogConfig holds logging settings. Logs go to a file because the terminal
// itself belongs to the renderer.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load reads configuration from file and environment variables.
// It looks for config.yaml in the given directory.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variables use underscore separator and the SLOTS prefix,
	// e.g. SLOTS_GAME_INITIAL_BALANCE, SLOTS_LOG_LEVEL.
	v.SetEnvPrefix("slots")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file not found is OK - defaults and env vars cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Game defaults
	v.SetDefault("game.initial_balance", 1000)
	v.SetDefault("game.min_bet", 1)
	v.SetDefault("game.max_bet", 100)
	v.SetDefault("game.default_bet", 10)
	v.SetDefault("game.bet_step", 10)
	v.SetDefault("game.jackpot_seed", 1000)
	v.SetDefault("game.jackpot_increment", 10)
	v.SetDefault("game.history_size", 1000)
	v.SetDefault("game.near_miss_chance", 0.2)

	// Animation defaults
	v.SetDefault("animation.fast_steps", 20)
	v.SetDefault("animation.stagger_steps", 8)
	v.SetDefault("animation.slow_steps", 5)
	v.SetDefault("animation.step_delay", "50ms")
	v.SetDefault("animation.slow_delay", "100ms")
	v.SetDefault("animation.slow_ramp", "50ms")
	v.SetDefault("animation.double_step_chance", 0.3)
	v.SetDefault("animation.inter_spin_delay", "200ms")
	v.SetDefault("animation.frame_delay", "50ms")

	// Sound defaults
	v.SetDefault("sound.enabled", true)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/slots.log")
}
