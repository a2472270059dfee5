package grid

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Line is a segment between the centers of two tiles.
type Line struct {
	Start Tile
	End   Tile
}

// L is a convenience constructor for Line.
func L(start, end Tile) Line { return Line{start, end} }

func point(t Tile) orb.Point { return orb.Point{float64(t.X), float64(t.Y)} }

// Length is the Euclidean length of the segment.
func (l Line) Length() float64 { return planar.Distance(point(l.Start), point(l.End)) }

// Reversed swaps the endpoints.
func (l Line) Reversed() Line { return Line{l.End, l.Start} }

// Direction is the compass direction from Start to End.
func (l Line) Direction() Direction { return DirectionOf(l.End.Sub(l.Start)) }

// DistanceTo is the shortest distance from t to the segment.
func (l Line) DistanceTo(t Tile) float64 {
	return planar.DistanceFromSegment(point(l.Start), point(l.End), point(t))
}

// Equal reports whether both segments have the same endpoints, in either
// orientation, within eps.
func (l Line) Equal(o Line, eps float64) bool {
	same := l.Start.Dist(o.Start) <= eps && l.End.Dist(o.End) <= eps
	flipped := l.Start.Dist(o.End) <= eps && l.End.Dist(o.Start) <= eps
	return same || flipped
}

// Contains reports whether both endpoints of o lie on l within eps.
func (l Line) Contains(o Line, eps float64) bool {
	return l.DistanceTo(o.Start) <= eps && l.DistanceTo(o.End) <= eps
}

// StrictlyContains reports whether o is a shorter sub-segment of l.
func (l Line) StrictlyContains(o Line, eps float64) bool {
	return l.Contains(o, eps) && !l.Equal(o, eps) && l.Length() > o.Length()
}

// Rasterize returns every tile crossed by the segment, endpoints included,
// walking from Start to End with Bresenham's algorithm.
func (l Line) Rasterize() []Tile {
	x0, y0 := l.Start.X, l.Start.Y
	x1, y1 := l.End.X, l.End.Y

	dx, dy := x1-x0, y1-y0
	absDx, absDy := dx, dy
	if absDx < 0 {
		absDx = -absDx
	}
	if absDy < 0 {
		absDy = -absDy
	}
	stepX, stepY := 1, 1
	if dx < 0 {
		stepX = -1
	}
	if dy < 0 {
		stepY = -1
	}

	tiles := make([]Tile, 0, max(absDx, absDy)+1)
	err := absDx - absDy
	x, y := x0, y0
	for {
		tiles = append(tiles, Tile{x, y})
		if x == x1 && y == y1 {
			return tiles
		}
		e2 := 2 * err
		if e2 > -absDy {
			err -= absDy
			x += stepX
		}
		if e2 < absDx {
			err += absDx
			y += stepY
		}
	}
}
