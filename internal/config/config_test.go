package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}
	if cfg.Exploration.VisionRadius != 7 {
		t.Errorf("Exploration.VisionRadius = %d, want 7", cfg.Exploration.VisionRadius)
	}
	if cfg.Exploration.DoorWidth != 2 {
		t.Errorf("Exploration.DoorWidth = %d, want 2", cfg.Exploration.DoorWidth)
	}
	if cfg.Exploration.Clockwise {
		t.Error("Exploration.Clockwise should be false by default")
	}
	if cfg.Exploration.SlamUpdateInterval != 2 {
		t.Errorf("Exploration.SlamUpdateInterval = %d, want 2", cfg.Exploration.SlamUpdateInterval)
	}
	if cfg.Simulation.MaxTicks != 5000 {
		t.Errorf("Simulation.MaxTicks = %d, want 5000", cfg.Simulation.MaxTicks)
	}
	if !cfg.Simulation.ShuffleMessages {
		t.Error("Simulation.ShuffleMessages should be true by default")
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Default() should validate, got %v", errs)
	}
}

func TestSimulationConfig_TickInterval(t *testing.T) {
	s := SimulationConfig{TickIntervalMs: 250}
	if got := s.TickInterval(); got != 250*time.Millisecond {
		t.Errorf("TickInterval() = %v, want 250ms", got)
	}
}

func TestConfigDir(t *testing.T) {
	orig := os.Getenv("XDG_CONFIG_HOME")
	defer func() { _ = os.Setenv("XDG_CONFIG_HOME", orig) }()

	_ = os.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got := ConfigDir(); got != "/custom/config/minotaur" {
		t.Errorf("ConfigDir() = %q", got)
	}
	if got := ConfigFile(); got != "/custom/config/minotaur/config.yaml" {
		t.Errorf("ConfigFile() = %q", got)
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()
		SetDefaults()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Exploration.AuctionTimeoutTicks != 6 {
			t.Errorf("AuctionTimeoutTicks = %d, want 6", cfg.Exploration.AuctionTimeoutTicks)
		}
		if cfg.Exploration.DoorwayTolerance != 1.5 {
			t.Errorf("DoorwayTolerance = %v, want 1.5", cfg.Exploration.DoorwayTolerance)
		}
	})

	t.Run("override", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()
		SetDefaults()
		viper.Set("exploration.vision_radius", 9)
		viper.Set("exploration.clockwise", true)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Exploration.VisionRadius != 9 || !cfg.Exploration.Clockwise {
			t.Errorf("overrides not applied: %+v", cfg.Exploration)
		}
	})

	t.Run("invalid value fails", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()
		SetDefaults()
		viper.Set("exploration.vision_radius", 2)

		_, err := Load()
		if err == nil {
			t.Fatal("Load() should fail for vision_radius 2")
		}
		if _, ok := err.(ValidationErrors); !ok {
			t.Errorf("Load() error type = %T, want ValidationErrors", err)
		}
	})
}
