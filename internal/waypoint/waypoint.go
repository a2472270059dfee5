// Package waypoint defines the committed movement target a robot works
// toward between decisions.
package waypoint

import (
	"fmt"

	"github.com/Iron-Ham/minotaur/internal/grid"
)

// Kind tags why a waypoint was chosen. The tag decides which detection
// logic runs while the robot travels.
type Kind uint8

const (
	// Wall is set by wall-following and arms doorway detection.
	Wall Kind = iota
	// Corner is set by the corner coverage sweep.
	Corner
	// Edge is set by the nearest-edge search.
	Edge
	// Greedy is set by the flood-fill frontier search.
	Greedy
	// Door is set while confirming or passing through a doorway.
	Door
)

func (k Kind) String() string {
	switch k {
	case Wall:
		return "wall"
	case Corner:
		return "corner"
	case Edge:
		return "edge"
	case Greedy:
		return "greedy"
	case Door:
		return "door"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Waypoint is a destination tile with its tag. Pathing selects a planned
// path move instead of a direct kinematic move.
type Waypoint struct {
	Destination grid.Tile
	Kind        Kind
	Pathing     bool
}

// Direct returns a waypoint reached by a direct move.
func Direct(dest grid.Tile, kind Kind) Waypoint {
	return Waypoint{Destination: dest, Kind: kind}
}

// Pathed returns a waypoint reached by a path-planned move.
func Pathed(dest grid.Tile, kind Kind) Waypoint {
	return Waypoint{Destination: dest, Kind: kind, Pathing: true}
}

func (w Waypoint) String() string {
	mode := "direct"
	if w.Pathing {
		mode = "path"
	}
	return fmt.Sprintf("%s %v (%s)", w.Kind, w.Destination, mode)
}

// Slot holds at most one active waypoint. The zero value is empty.
type Slot struct {
	current Waypoint
	set     bool
}

// Get returns the active waypoint and whether one is set.
func (s *Slot) Get() (Waypoint, bool) { return s.current, s.set }

// Set replaces the active waypoint.
func (s *Slot) Set(w Waypoint) {
	s.current = w
	s.set = true
}

// Clear removes the active waypoint.
func (s *Slot) Clear() {
	s.current = Waypoint{}
	s.set = false
}

// Active reports whether a waypoint is set.
func (s *Slot) Active() bool { return s.set }

// Is reports whether the active waypoint has the given kind.
func (s *Slot) Is(kind Kind) bool { return s.set && s.current.Kind == kind }

// Reached reports whether a waypoint is set and pos is its destination.
func (s *Slot) Reached(pos grid.Tile) bool { return s.set && s.current.Destination == pos }
