package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "exploration.vision_radius")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateExploration()...)
	errors = append(errors, c.validateSimulation()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateServer()...)

	return errors
}

func (c *Config) validateExploration() []ValidationError {
	var errors []ValidationError
	e := c.Exploration

	// The wall-following lookahead needs vision_radius - 2 >= 1
	if e.VisionRadius < 3 {
		errors = append(errors, ValidationError{
			Field:   "exploration.vision_radius",
			Value:   e.VisionRadius,
			Message: "must be at least 3",
		})
	}
	if e.DoorWidth < 1 {
		errors = append(errors, ValidationError{
			Field:   "exploration.door_width",
			Value:   e.DoorWidth,
			Message: "must be at least 1",
		})
	}
	if e.SlamUpdateInterval < 1 {
		errors = append(errors, ValidationError{
			Field:   "exploration.slam_update_interval",
			Value:   e.SlamUpdateInterval,
			Message: "must be at least 1",
		})
	}
	if e.DoorwayTolerance <= 0 {
		errors = append(errors, ValidationError{
			Field:   "exploration.doorway_tolerance",
			Value:   e.DoorwayTolerance,
			Message: "must be positive",
		})
	}
	if e.AuctionTimeoutTicks < 1 {
		errors = append(errors, ValidationError{
			Field:   "exploration.auction_timeout_ticks",
			Value:   e.AuctionTimeoutTicks,
			Message: "must be at least 1",
		})
	}

	return errors
}

func (c *Config) validateSimulation() []ValidationError {
	var errors []ValidationError
	s := c.Simulation

	if s.MaxTicks < 1 {
		errors = append(errors, ValidationError{
			Field:   "simulation.max_ticks",
			Value:   s.MaxTicks,
			Message: "must be at least 1",
		})
	}
	if s.DuplicateRate < 0 || s.DuplicateRate >= 1 {
		errors = append(errors, ValidationError{
			Field:   "simulation.duplicate_rate",
			Value:   s.DuplicateRate,
			Message: "must be in [0, 1)",
		})
	}
	if s.TickIntervalMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "simulation.tick_interval_ms",
			Value:   s.TickIntervalMs,
			Message: "must be non-negative",
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}

func (c *Config) validateServer() []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(c.Server.Addr) == "" {
		errors = append(errors, ValidationError{
			Field:   "server.addr",
			Value:   c.Server.Addr,
			Message: "must not be empty",
		})
	}

	return errors
}
