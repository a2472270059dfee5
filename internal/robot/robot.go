// Package robot defines the controller the exploration core drives. The
// controller owns motion, sensing and messaging; the core only decides.
package robot

import (
	"github.com/Iron-Ham/minotaur/internal/bidding"
	"github.com/Iron-Ham/minotaur/internal/grid"
	"github.com/Iron-Ham/minotaur/internal/occupancy"
)

// Status is the controller's motion status.
type Status int

const (
	// Idle means no movement task is running.
	Idle Status = iota
	// Moving means a move, path move or free-run is in progress.
	Moving
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Moving:
		return "moving"
	default:
		return "unknown"
	}
}

// Controller is a single robot as seen by its exploration core.
type Controller interface {
	// ID returns the robot's identifier, unique within the team.
	ID() int
	// Position returns the tile the robot occupies, in the map frame.
	Position() grid.Tile
	// Heading returns the facing in degrees, counter-clockwise from +x.
	Heading() float64

	// MoveTo drives straight toward t without path planning.
	MoveTo(t grid.Tile)
	// PathAndMoveTo plans a path to t on the robot's map and follows it.
	PathAndMoveTo(t grid.Tile) error
	// Move drives distance tiles along the heading, backwards if reverse.
	Move(distance int, reverse bool)
	// StartMoving drives forward until stopped.
	StartMoving()
	// Stop cancels the current movement task.
	Stop()
	// Status reports whether a movement task is running.
	Status() Status
	// IsColliding reports whether the robot is touching an obstacle.
	IsColliding() bool

	// Broadcast sends a message to every other robot.
	Broadcast(m bidding.Message)
	// Receive drains the messages delivered since the last call.
	Receive() []bidding.Message

	// Map returns the robot's occupancy knowledge.
	Map() occupancy.Map
}
