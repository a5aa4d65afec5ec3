package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SimulationConfig holds frame loop settings.
type SimulationConfig struct {
	TickRate           int   `mapstructure:"tick_rate"`
	Seed               int64 `mapstructure:"seed"`
	StartWave          int   `mapstructure:"start_wave"`
	Frames             int   `mapstructure:"frames"`
	ParallelPerception bool  `mapstructure:"parallel_perception"`
}

// AssetsConfig locates external data files. Empty paths select the embedded
// defaults.
type AssetsConfig struct {
	KindsPath  string `mapstructure:"kinds_path"`
	LevelPath  string `mapstructure:"level_path"`
	Arena      string `mapstructure:"arena"`
	WatchKinds bool   `mapstructure:"watch_kinds"`
}

// ViewerConfig holds settings for the windowed collaborator.
type ViewerConfig struct {
	Width         int     `mapstructure:"width"`
	Height        int     `mapstructure:"height"`
	PixelsPerUnit float64 `mapstructure:"pixels_per_unit"`
	RecordsApp    string  `mapstructure:"records_app"`
}

// EngineConfig is the process-level configuration of the arena binary.
type EngineConfig struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Assets     AssetsConfig     `mapstructure:"assets"`
	Viewer     ViewerConfig     `mapstructure:"viewer"`
}

// Validate checks the configuration for values the binary cannot run with.
//
// Postcondition: Returns nil if valid, or an error describing the first
// problem found.
func (c EngineConfig) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console; got %q", c.Logging.Format)
	}
	if c.Simulation.TickRate <= 0 {
		return fmt.Errorf("simulation.tick_rate must be > 0, got %d", c.Simulation.TickRate)
	}
	if c.Simulation.StartWave < 0 {
		return fmt.Errorf("simulation.start_wave must be >= 0, got %d", c.Simulation.StartWave)
	}
	if c.Simulation.Frames < 0 {
		return errors.New("simulation.frames must be >= 0")
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return fmt.Errorf("viewer size must be positive, got %dx%d", c.Viewer.Width, c.Viewer.Height)
	}
	if c.Viewer.PixelsPerUnit <= 0 {
		return fmt.Errorf("viewer.pixels_per_unit must be > 0, got %v", c.Viewer.PixelsPerUnit)
	}
	return nil
}

// LoadEngine reads engine settings from path, with ASHFALL_ environment
// overrides. An empty path uses defaults and environment only.
//
// Postcondition: Returns a valid EngineConfig or a non-nil error.
func LoadEngine(path string) (EngineConfig, error) {
	v := viper.New()

	v.SetEnvPrefix("ASHFALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setEngineDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return EngineConfig{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg EngineConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return EngineConfig{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return EngineConfig{}, err
	}
	return cfg, nil
}

func setEngineDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("simulation.tick_rate", 60)
	v.SetDefault("simulation.seed", 1)
	v.SetDefault("simulation.start_wave", 0)
	v.SetDefault("simulation.frames", 0)
	v.SetDefault("simulation.parallel_perception", false)

	v.SetDefault("assets.kinds_path", "")
	v.SetDefault("assets.level_path", "")
	v.SetDefault("assets.arena", "arena")
	v.SetDefault("assets.watch_kinds", false)

	v.SetDefault("viewer.width", 960)
	v.SetDefault("viewer.height", 960)
	v.SetDefault("viewer.pixels_per_unit", 6)
	v.SetDefault("viewer.records_app", "ashfall")
}
