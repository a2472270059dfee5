package grid

import "math"

// Direction is one of the eight compass directions, ordered counter-clockwise
// starting at east.
type Direction uint8

const (
	East Direction = iota
	NorthEast
	North
	NorthWest
	West
	SouthWest
	South
	SouthEast
)

var directionVectors = [8]Tile{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// AllDirections returns the eight directions in counter-clockwise order.
func AllDirections() []Direction {
	return []Direction{East, NorthEast, North, NorthWest, West, SouthWest, South, SouthEast}
}

// Vector is the unit step for d.
func (d Direction) Vector() Tile { return directionVectors[d%8] }

// Degrees is the bearing of d.
func (d Direction) Degrees() float64 { return float64(d%8) * 45 }

// IsDiagonal reports whether d moves along both axes.
func (d Direction) IsDiagonal() bool { return d%2 == 1 }

// Next is the direction 45 degrees counter-clockwise of d.
func (d Direction) Next() Direction { return (d + 1) % 8 }

// Previous is the direction 45 degrees clockwise of d.
func (d Direction) Previous() Direction { return (d + 7) % 8 }

// Opposite is the direction 180 degrees from d.
func (d Direction) Opposite() Direction { return (d + 4) % 8 }

func (d Direction) String() string {
	switch d % 8 {
	case East:
		return "east"
	case NorthEast:
		return "north-east"
	case North:
		return "north"
	case NorthWest:
		return "north-west"
	case West:
		return "west"
	case SouthWest:
		return "south-west"
	case South:
		return "south"
	default:
		return "south-east"
	}
}

// DirectionFromDegrees returns the direction closest to the bearing deg.
func DirectionFromDegrees(deg float64) Direction {
	return Direction(int(math.Round(NormalizeDegrees(deg)/45)) % 8)
}

// DirectionOf returns the direction closest to the bearing of v.
func DirectionOf(v Tile) Direction { return DirectionFromDegrees(v.Bearing()) }

// PerpendicularTo returns the direction 90 degrees counter-clockwise of v.
func PerpendicularTo(v Tile) Direction { return DirectionFromDegrees(v.Bearing() + 90) }
