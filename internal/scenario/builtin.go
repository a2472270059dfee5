package scenario

import "strings"

// BuiltinName names the scenario used when no file is given.
const BuiltinName = "two-rooms"

// SharedRoomName names the built-in scenario with both robots in one room.
const SharedRoomName = "shared-room"

// Builtin returns two rooms joined by a two tile doorway, one robot in
// each room.
func Builtin() *Scenario {
	const (
		edge = "########################"
		room = "#..........#...........#"
		door = "#......................#"
	)
	return &Scenario{
		Name:        BuiltinName,
		Description: "two rooms joined by a single doorway",
		Map: []string{
			edge,
			room, room, room, room,
			door, door,
			room, room, room, room,
			edge,
		},
		Robots: []Spawn{
			{ID: 1, X: 3, Y: 3, Heading: 0},
			{ID: 2, X: 18, Y: 8, Heading: 180},
		},
	}
}

// SharedRoom returns a 60x27 hall split by a wall at x=29 with a two tile
// doorway at y=12..13. Both robots start in the west room, so they have to
// settle which of them crosses into the east room.
func SharedRoom() *Scenario {
	const (
		width  = 60
		height = 27
		wallX  = 29
	)
	rows := make([]string, height)
	for i := range rows {
		y := height - 1 - i
		if y == 0 || y == height-1 {
			rows[i] = strings.Repeat("#", width)
			continue
		}
		row := []byte("#" + strings.Repeat(".", width-2) + "#")
		if y != 12 && y != 13 {
			row[wallX] = '#'
		}
		rows[i] = string(row)
	}
	return &Scenario{
		Name:        SharedRoomName,
		Description: "two robots share a room beside another one",
		Map:         rows,
		Robots: []Spawn{
			{ID: 1, X: 5, Y: 5, Heading: 0},
			{ID: 2, X: 8, Y: 5, Heading: 0},
		},
	}
}

// Named returns the built-in scenario called name.
func Named(name string) (*Scenario, bool) {
	switch name {
	case BuiltinName:
		return Builtin(), true
	case SharedRoomName:
		return SharedRoom(), true
	default:
		return nil, false
	}
}
