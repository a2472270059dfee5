package explore

import "slices"

// State is the top-level exploration state of one robot.
type State uint8

const (
	// Idle is the state before the first tick.
	Idle State = iota
	// FirstWall drives forward until a wall is close.
	FirstWall
	// ExploreRoom covers the current room and watches for doorways.
	ExploreRoom
	// Auctioning waits for the claim on a found doorway to resolve.
	Auctioning
	// MovingToDoorway heads to the nearest unexplored doorway.
	MovingToDoorway
	// MovingToNearestUnexplored is reserved; no transition enters it.
	MovingToNearestUnexplored
	// Done is terminal.
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case FirstWall:
		return "first_wall"
	case ExploreRoom:
		return "explore_room"
	case Auctioning:
		return "auctioning"
	case MovingToDoorway:
		return "moving_to_doorway"
	case MovingToNearestUnexplored:
		return "moving_to_nearest_unexplored"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// ValidTransitions lists the states each state may move to.
var ValidTransitions = map[State][]State{
	Idle:      {FirstWall},
	FirstWall: {ExploreRoom},
	ExploreRoom: {
		MovingToDoorway, // room exhausted or doorway won
		Auctioning,      // found a doorway
	},
	Auctioning: {
		ExploreRoom,     // lost the claim
		MovingToDoorway, // won the claim
	},
	MovingToDoorway: {
		ExploreRoom, // entered the next room
		Done,        // nothing left to explore
	},
	MovingToNearestUnexplored: {ExploreRoom},
	Done:                      {},
}

// CanTransition reports whether from may move to to.
func CanTransition(from, to State) bool {
	targets, ok := ValidTransitions[from]
	if !ok {
		return false
	}
	return slices.Contains(targets, to)
}

// IsTerminal reports whether s has no outgoing transitions.
func (s State) IsTerminal() bool {
	return len(ValidTransitions[s]) == 0
}
