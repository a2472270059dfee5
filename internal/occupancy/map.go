// Package occupancy defines the read-only map service consumed by the
// exploration core and an in-memory implementation of it.
package occupancy

import (
	"github.com/Iron-Ham/minotaur/internal/grid"
	"github.com/zyedidia/generic/mapset"
)

// Map is a robot's incrementally built occupancy knowledge.
// All tiles are in the map frame unless a method says otherwise.
type Map interface {
	// Status returns the classification of t. Tiles outside the map are Solid.
	Status(t grid.Tile) grid.Status
	// InBounds reports whether t lies inside the map.
	InBounds(t grid.Tile) bool
	// Visible returns the tiles observed by the most recent sensor sweep.
	// The returned map must not be modified.
	Visible() map[grid.Tile]grid.Status
	// Path returns the tile sequence from one tile to another, both included,
	// or errors.ErrNoPath.
	Path(from, to grid.Tile) ([]grid.Tile, error)
	// NearestFloodFill returns the tile with the given status closest to from,
	// searching breadth-first through Open tiles and never entering excluded tiles.
	NearestFloodFill(from grid.Tile, status grid.Status, exclude mapset.Set[grid.Tile]) (grid.Tile, bool)
	// ToMap converts a robot-local tile into the map frame.
	ToMap(local grid.Tile) grid.Tile
	// FromMap converts a map-frame tile into the robot-local frame.
	FromMap(t grid.Tile) grid.Tile
	// Revision increases every time a sensor sweep is merged.
	Revision() int
}

// PathLength returns the travelled distance along path, summing the
// Euclidean length of each step.
func PathLength(path []grid.Tile) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += path[i-1].Dist(path[i])
	}
	return total
}

// PathCrosses reports whether any tile of path is in tiles.
func PathCrosses(path []grid.Tile, tiles mapset.Set[grid.Tile]) bool {
	for _, t := range path {
		if tiles.Has(t) {
			return true
		}
	}
	return false
}
