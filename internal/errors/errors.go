// Package errors provides centralized error definitions and error handling
// utilities for minotaur. It defines domain-specific errors, error
// constructors with context wrapping, and classification helpers.
//
// # Error Types
//
//   - RobotError: a failure inside one robot's decision core (path queries,
//     bounds, message handling). These are recovered locally.
//   - ScenarioError: a malformed scenario file or floor plan.
//
// # Usage
//
//	err := errors.NewRobotError("path to doorway", errors.ErrNoPath).WithRobotID(2)
//
//	if errors.Is(err, errors.ErrNoPath) { ... }
//
//	var robotErr *errors.RobotError
//	if errors.As(err, &robotErr) { ... }
//
//	if errors.IsLocal(err) { ... } // recovered inside the robot, never surfaced
//
// # Error Classification
//
// Every failure inside the exploration core is local and non-fatal. IsLocal
// separates those from setup failures (configuration, scenarios) that the
// CLI reports to the user.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are expected during normal exploration.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Map and movement sentinel errors
var (
	// ErrNoPath indicates that no path exists between two tiles.
	ErrNoPath = New("no path")
	// ErrOutOfBounds indicates a tile outside the map.
	ErrOutOfBounds = New("tile out of bounds")
)

// Coordination sentinel errors
var (
	// ErrUnknownMessage indicates a message kind the core cannot dispatch.
	ErrUnknownMessage = New("unknown message kind")
	// ErrInvalidTransition indicates a state change the exploration state machine forbids.
	ErrInvalidTransition = New("invalid state transition")
)

// Setup sentinel errors
var (
	// ErrInvalidScenario indicates a scenario that cannot be simulated.
	ErrInvalidScenario = New("invalid scenario")
	// ErrNoRobots indicates a scenario without robots.
	ErrNoRobots = New("scenario has no robots")
)

// localSentinels are failures recovered inside a robot.
var localSentinels = []error{ErrNoPath, ErrOutOfBounds, ErrUnknownMessage, ErrInvalidTransition}

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// MinotaurError is the base interface for typed errors in this module.
type MinotaurError interface {
	error
	Unwrap() error
	Severity() Severity
}

type baseError struct {
	message  string
	cause    error
	severity Severity
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Unwrap() error { return e.cause }

func (e *baseError) Severity() Severity { return e.severity }

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// RobotError represents a failure inside a single robot's decision core.
//
// Example:
//
//	err := errors.NewRobotError("bid on doorway", errors.ErrNoPath).WithRobotID(3).WithOp("bidding")
//	fmt.Println(err) // "robot error [robot=3, op=bidding]: bid on doorway: no path"
type RobotError struct {
	baseError
	RobotID int
	Op      string
	hasID   bool
}

// NewRobotError creates a new RobotError.
func NewRobotError(message string, cause error) *RobotError {
	return &RobotError{
		baseError: baseError{
			message:  message,
			cause:    cause,
			severity: SeverityDebug,
		},
	}
}

// WithRobotID adds the robot identifier to the error context.
func (e *RobotError) WithRobotID(id int) *RobotError {
	e.RobotID = id
	e.hasID = true
	return e
}

// WithOp names the operation that failed.
func (e *RobotError) WithOp(op string) *RobotError {
	e.Op = op
	return e
}

// WithSeverity sets the error severity.
func (e *RobotError) WithSeverity(s Severity) *RobotError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *RobotError) Error() string {
	var parts []string
	if e.hasID {
		parts = append(parts, fmt.Sprintf("robot=%d", e.RobotID))
	}
	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("op=%s", e.Op))
	}

	prefix := "robot error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("robot error [%s]", strings.Join(parts, ", "))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// ScenarioError represents a problem loading or validating a scenario.
//
// Example:
//
//	err := errors.NewScenarioError("unknown tile 'x'", errors.ErrInvalidScenario).WithPath("two-rooms.yaml").WithLine(4)
type ScenarioError struct {
	baseError
	Path string
	Line int
}

// NewScenarioError creates a new ScenarioError.
func NewScenarioError(message string, cause error) *ScenarioError {
	return &ScenarioError{
		baseError: baseError{
			message:  message,
			cause:    cause,
			severity: SeverityError,
		},
	}
}

// WithPath adds the scenario file path.
func (e *ScenarioError) WithPath(path string) *ScenarioError {
	e.Path = path
	return e
}

// WithLine adds the 1-based floor plan row.
func (e *ScenarioError) WithLine(line int) *ScenarioError {
	e.Line = line
	return e
}

// Error returns the formatted error message.
func (e *ScenarioError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}
	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line=%d", e.Line))
	}

	prefix := "scenario error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("scenario error [%s]", strings.Join(parts, ", "))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

// IsLocal returns true if the error is recovered inside a robot and must
// never be surfaced outside the exploration core.
func IsLocal(err error) bool {
	if err == nil {
		return false
	}
	var robotErr *RobotError
	if As(err, &robotErr) {
		return true
	}
	for _, sentinel := range localSentinels {
		if Is(err, sentinel) {
			return true
		}
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement MinotaurError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	var typed MinotaurError
	if As(err, &typed) {
		return typed.Severity()
	}
	return SeverityError
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
