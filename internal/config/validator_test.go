package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"vision radius too small", func(c *Config) { c.Exploration.VisionRadius = 2 }, "exploration.vision_radius"},
		{"door width zero", func(c *Config) { c.Exploration.DoorWidth = 0 }, "exploration.door_width"},
		{"slam interval zero", func(c *Config) { c.Exploration.SlamUpdateInterval = 0 }, "exploration.slam_update_interval"},
		{"tolerance zero", func(c *Config) { c.Exploration.DoorwayTolerance = 0 }, "exploration.doorway_tolerance"},
		{"auction timeout zero", func(c *Config) { c.Exploration.AuctionTimeoutTicks = 0 }, "exploration.auction_timeout_ticks"},
		{"max ticks zero", func(c *Config) { c.Simulation.MaxTicks = 0 }, "simulation.max_ticks"},
		{"duplicate rate one", func(c *Config) { c.Simulation.DuplicateRate = 1 }, "simulation.duplicate_rate"},
		{"duplicate rate negative", func(c *Config) { c.Simulation.DuplicateRate = -0.1 }, "simulation.duplicate_rate"},
		{"negative tick interval", func(c *Config) { c.Simulation.TickIntervalMs = -1 }, "simulation.tick_interval_ms"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"empty addr", func(c *Config) { c.Server.Addr = " " }, "server.addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			errs := cfg.Validate()
			if len(errs) != 1 {
				t.Fatalf("Validate() returned %d errors, want 1: %v", len(errs), errs)
			}
			if errs[0].Field != tt.field {
				t.Errorf("Field = %q, want %q", errs[0].Field, tt.field)
			}
		})
	}
}

func TestValidate_UppercaseLevel(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "DEBUG"
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Validate() = %v, want no errors", errs)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	var empty ValidationErrors
	if empty.Error() != "" {
		t.Errorf("empty.Error() = %q", empty.Error())
	}

	one := ValidationErrors{{Field: "a", Value: 1, Message: "bad"}}
	if one.Error() != "a: bad (got: 1)" {
		t.Errorf("one.Error() = %q", one.Error())
	}

	two := ValidationErrors{{Field: "a", Value: 1, Message: "bad"}, {Field: "b", Value: 2, Message: "worse"}}
	got := two.Error()
	if !strings.HasPrefix(got, "2 validation errors:") || !strings.Contains(got, "2. b: worse (got: 2)") {
		t.Errorf("two.Error() = %q", got)
	}
}
