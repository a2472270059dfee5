package grid

import (
	"fmt"
	"math"
)

// Tile is a cell of the occupancy map.
type Tile struct{ X, Y int }

// T is a convenience constructor for Tile.
func T(x, y int) Tile { return Tile{x, y} }

// TileAt returns the tile containing the continuous point (x, y).
func TileAt(x, y float64) Tile {
	return Tile{int(math.Floor(x)), int(math.Floor(y))}
}

// Add returns the component-wise sum.
func (t Tile) Add(o Tile) Tile { return Tile{t.X + o.X, t.Y + o.Y} }

// Sub returns the component-wise difference.
func (t Tile) Sub(o Tile) Tile { return Tile{t.X - o.X, t.Y - o.Y} }

// Mul scales both components by n.
func (t Tile) Mul(n int) Tile { return Tile{t.X * n, t.Y * n} }

// Scale multiplies each component by the matching component of o.
func (t Tile) Scale(o Tile) Tile { return Tile{t.X * o.X, t.Y * o.Y} }

// Abs returns a copy with non-negative components.
func (t Tile) Abs() Tile {
	if t.X < 0 {
		t.X = -t.X
	}
	if t.Y < 0 {
		t.Y = -t.Y
	}
	return t
}

// IsZero reports whether t is the origin.
func (t Tile) IsZero() bool { return t.X == 0 && t.Y == 0 }

// Dist is the Euclidean distance between the centers of two tiles.
func (t Tile) Dist(o Tile) float64 {
	return math.Hypot(float64(t.X-o.X), float64(t.Y-o.Y))
}

// Bearing is the angle of t viewed as a vector, in degrees [0, 360).
// The zero vector has bearing 0.
func (t Tile) Bearing() float64 {
	if t.IsZero() {
		return 0
	}
	return NormalizeDegrees(math.Atan2(float64(t.Y), float64(t.X)) * 180 / math.Pi)
}

// BearingTo is the bearing of o as seen from t.
func (t Tile) BearingTo(o Tile) float64 { return o.Sub(t).Bearing() }

// Neighbors4 returns the four edge-adjacent tiles in east, north, west, south order.
func (t Tile) Neighbors4() [4]Tile {
	return [4]Tile{
		{t.X + 1, t.Y},
		{t.X, t.Y + 1},
		{t.X - 1, t.Y},
		{t.X, t.Y - 1},
	}
}

func (t Tile) String() string { return fmt.Sprintf("(%d,%d)", t.X, t.Y) }

// Project returns the tile reached by walking distance from t along bearing
// degrees, floored to the containing tile.
func (t Tile) Project(degrees, distance float64) Tile {
	rad := degrees * math.Pi / 180
	return TileAt(float64(t.X)+0.5+math.Cos(rad)*distance, float64(t.Y)+0.5+math.Sin(rad)*distance)
}

// NormalizeDegrees maps any angle onto [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// SweepOffset is how far counter-clockwise bearing lies from reference,
// in [0, 360). It is the ordering key for counter-clockwise sweeps.
func SweepOffset(bearing, reference float64) float64 {
	return NormalizeDegrees(bearing - reference)
}
