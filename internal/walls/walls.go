// Package walls turns nearby Solid occupancy samples into maximal straight
// wall segments.
package walls

import (
	"cmp"
	"slices"

	"github.com/Iron-Ham/minotaur/internal/grid"
	"github.com/Iron-Ham/minotaur/internal/occupancy"
)

// collinear is the tolerance used when testing raw segments for containment.
// Raw endpoints are tile coordinates so only exact overlap should count.
const collinear = 1e-6

// Segment is an unbroken run of Solid tiles.
type Segment struct {
	// Line runs between the endpoints snapped onto their open side. It is
	// the form compared across ticks.
	Line grid.Line
	// Raw runs between the Solid endpoint tiles themselves.
	Raw grid.Line
}

// Sample is a Solid tile seen by the robot with its distance from it.
type Sample struct {
	Tile     grid.Tile
	Distance float64
}

// Visible returns the Solid tiles of the latest sensor sweep, nearest first.
// Ties are ordered by y then x so the result does not depend on map iteration.
func Visible(m occupancy.Map, pos grid.Tile) []Sample {
	var samples []Sample
	for t, s := range m.Visible() {
		if s == grid.Solid {
			samples = append(samples, Sample{Tile: t, Distance: t.Dist(pos)})
		}
	}
	slices.SortFunc(samples, func(a, b Sample) int {
		return cmp.Or(
			cmp.Compare(a.Distance, b.Distance),
			cmp.Compare(a.Tile.Y, b.Tile.Y),
			cmp.Compare(a.Tile.X, b.Tile.X),
		)
	})
	return samples
}

// Tiles returns the tile of every sample, preserving order.
func Tiles(samples []Sample) []grid.Tile {
	tiles := make([]grid.Tile, len(samples))
	for i, s := range samples {
		tiles[i] = s.Tile
	}
	return tiles
}

// snap moves a Solid tile onto its first Open neighbour east, north or
// north-east, compensating for sensor-thickened walls. Tiles without such
// a neighbour are kept as they are.
func snap(m occupancy.Map, t grid.Tile) grid.Tile {
	for _, d := range [...]grid.Direction{grid.East, grid.North, grid.NorthEast} {
		if n := t.Add(d.Vector()); m.Status(n) == grid.Open {
			return n
		}
	}
	return t
}

func unbroken(m occupancy.Map, l grid.Line) bool {
	for _, t := range l.Rasterize() {
		if m.Status(t) != grid.Solid {
			return false
		}
	}
	return true
}

// Extract returns the maximal wall segments through the given Solid tiles.
// Every pair of tiles forms a candidate; a candidate survives when every
// tile on its raster is Solid and it is not a strict sub-segment of another
// survivor. Zero or one tile yields no segments.
func Extract(m occupancy.Map, tiles []grid.Tile) []Segment {
	if len(tiles) < 2 {
		return nil
	}

	snapped := make([]grid.Tile, len(tiles))
	for i, t := range tiles {
		snapped[i] = snap(m, t)
	}

	var candidates []Segment
	for i := range tiles {
		for j := i + 1; j < len(tiles); j++ {
			if tiles[i] == tiles[j] {
				continue
			}
			seg := Segment{
				Line: grid.L(snapped[i], snapped[j]),
				Raw:  grid.L(tiles[i], tiles[j]),
			}
			if slices.ContainsFunc(candidates, func(c Segment) bool { return c.Raw.Equal(seg.Raw, 0) }) {
				continue
			}
			if unbroken(m, seg.Raw) {
				candidates = append(candidates, seg)
			}
		}
	}

	var maximal []Segment
	for i, seg := range candidates {
		covered := false
		for j, other := range candidates {
			if i != j && other.Raw.StrictlyContains(seg.Raw, collinear) {
				covered = true
				break
			}
		}
		if !covered {
			maximal = append(maximal, seg)
		}
	}
	return maximal
}

// Same reports whether two segments describe the same physical wall: their
// snapped lines are equal within eps, or one lies along the other. A wall
// seen from a new position often shows a different extent.
func Same(a, b Segment, eps float64) bool {
	return a.Line.Equal(b.Line, eps) || a.Line.Contains(b.Line, eps) || b.Line.Contains(a.Line, eps)
}

// ContainsSame reports whether any segment in segs is the same wall as s.
func ContainsSame(segs []Segment, s Segment, eps float64) bool {
	return slices.ContainsFunc(segs, func(o Segment) bool { return Same(o, s, eps) })
}
