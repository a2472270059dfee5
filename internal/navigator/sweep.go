package navigator

import (
	"github.com/Iron-Ham/minotaur/internal/grid"
	"github.com/Iron-Ham/minotaur/internal/occupancy"
)

// sweep casts a ray every degree counter-clockwise from the bearing from
// through to the bearing to, and returns the distinct tiles passed in sweep
// order.
func sweep(m occupancy.Map, origin grid.Tile, from, to float64, radius int, stop ...grid.Status) []grid.Tile {
	seen := make(map[grid.Tile]bool)
	var out []grid.Tile
	for deg := from; deg < to; deg++ {
		for _, t := range occupancy.Ray(m, origin, deg, radius, stop...) {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}

func withStatus(m occupancy.Map, tiles []grid.Tile, s grid.Status) []grid.Tile {
	var out []grid.Tile
	for _, t := range tiles {
		if m.Status(t) == s {
			out = append(out, t)
		}
	}
	return out
}
