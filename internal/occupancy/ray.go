package occupancy

import (
	"slices"

	"github.com/Iron-Ham/minotaur/internal/grid"
)

// Ray walks from origin along a bearing for up to radius tiles. It returns
// every tile passed, ending at the first tile whose status is in stop or at
// the map edge.
func Ray(m Map, origin grid.Tile, degrees float64, radius int, stop ...grid.Status) []grid.Tile {
	var out []grid.Tile
	prev := origin
	for r := 1; r <= radius; r++ {
		t := origin.Project(degrees, float64(r))
		if t == prev {
			continue
		}
		if !m.InBounds(t) {
			break
		}
		out = append(out, t)
		prev = t
		if slices.Contains(stop, m.Status(t)) {
			break
		}
	}
	return out
}

// Furthest returns the last tile of a Ray, or origin when the ray is empty.
func Furthest(m Map, origin grid.Tile, degrees float64, radius int, stop ...grid.Status) grid.Tile {
	tiles := Ray(m, origin, degrees, radius, stop...)
	if len(tiles) == 0 {
		return origin
	}
	return tiles[len(tiles)-1]
}

// CutsCorner reports whether the step between two adjacent tiles is
// diagonal with a Solid tile on either orthogonal side.
func CutsCorner(m Map, from, to grid.Tile) bool {
	d := to.Sub(from)
	if d.X == 0 || d.Y == 0 {
		return false
	}
	return m.Status(from.Add(grid.T(d.X, 0))) == grid.Solid ||
		m.Status(from.Add(grid.T(0, d.Y))) == grid.Solid
}
