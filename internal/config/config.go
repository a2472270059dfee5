package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete minotaur configuration
type Config struct {
	Exploration ExplorationConfig `mapstructure:"exploration"`
	Simulation  SimulationConfig  `mapstructure:"simulation"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Server      ServerConfig      `mapstructure:"server"`
}

// ExplorationConfig holds the parameters every robot's decision core shares
type ExplorationConfig struct {
	// VisionRadius is the sensing range in tiles (default: 7, min: 3)
	VisionRadius int `mapstructure:"vision_radius"`
	// DoorWidth is the assumed doorway width in tiles (default: 2)
	DoorWidth int `mapstructure:"door_width"`
	// Clockwise selects the wall-following orientation
	Clockwise bool `mapstructure:"clockwise"`
	// SlamUpdateInterval is the number of ticks between map refreshes (default: 2)
	SlamUpdateInterval int `mapstructure:"slam_update_interval"`
	// DoorwayTolerance is the distance under which two doorways or walls are considered equal
	DoorwayTolerance float64 `mapstructure:"doorway_tolerance"`
	// AuctionTimeoutTicks is how long a doorway auction waits for missing bids
	AuctionTimeoutTicks int `mapstructure:"auction_timeout_ticks"`
}

// SimulationConfig controls the local harness that drives the decision cores
type SimulationConfig struct {
	// MaxTicks bounds a run (default: 5000)
	MaxTicks int `mapstructure:"max_ticks"`
	// Seed seeds message shuffling and duplication
	Seed int64 `mapstructure:"seed"`
	// Scenario is a path to a scenario YAML file. Empty uses the built-in two-room plan.
	Scenario string `mapstructure:"scenario"`
	// ShuffleMessages delivers each robot's inbox in random order
	ShuffleMessages bool `mapstructure:"shuffle_messages"`
	// DuplicateRate is the probability that a delivered message is delivered twice
	DuplicateRate float64 `mapstructure:"duplicate_rate"`
	// TickIntervalMs paces ticks in watch and serve modes
	TickIntervalMs int `mapstructure:"tick_interval_ms"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum log level to record (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the directory receiving minotaur.log. Empty logs to stderr.
	Dir string `mapstructure:"dir"`
}

// ServerConfig controls the websocket state stream
type ServerConfig struct {
	// Addr is the listen address for `minotaur serve` (default: ":8080")
	Addr string `mapstructure:"addr"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Exploration: ExplorationConfig{
			VisionRadius:        7,
			DoorWidth:           2,
			Clockwise:           false,
			SlamUpdateInterval:  2,
			DoorwayTolerance:    1.5,
			AuctionTimeoutTicks: 6,
		},
		Simulation: SimulationConfig{
			MaxTicks:        5000,
			Seed:            1,
			Scenario:        "",
			ShuffleMessages: true,
			DuplicateRate:   0,
			TickIntervalMs:  100,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Dir:     "",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// TickInterval returns the tick pacing as a time.Duration
func (c *SimulationConfig) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Exploration defaults
	viper.SetDefault("exploration.vision_radius", defaults.Exploration.VisionRadius)
	viper.SetDefault("exploration.door_width", defaults.Exploration.DoorWidth)
	viper.SetDefault("exploration.clockwise", defaults.Exploration.Clockwise)
	viper.SetDefault("exploration.slam_update_interval", defaults.Exploration.SlamUpdateInterval)
	viper.SetDefault("exploration.doorway_tolerance", defaults.Exploration.DoorwayTolerance)
	viper.SetDefault("exploration.auction_timeout_ticks", defaults.Exploration.AuctionTimeoutTicks)

	// Simulation defaults
	viper.SetDefault("simulation.max_ticks", defaults.Simulation.MaxTicks)
	viper.SetDefault("simulation.seed", defaults.Simulation.Seed)
	viper.SetDefault("simulation.scenario", defaults.Simulation.Scenario)
	viper.SetDefault("simulation.shuffle_messages", defaults.Simulation.ShuffleMessages)
	viper.SetDefault("simulation.duplicate_rate", defaults.Simulation.DuplicateRate)
	viper.SetDefault("simulation.tick_interval_ms", defaults.Simulation.TickIntervalMs)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)

	// Server defaults
	viper.SetDefault("server.addr", defaults.Server.Addr)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "minotaur")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".minotaur"
	}
	return filepath.Join(home, ".config", "minotaur")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
