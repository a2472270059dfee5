package occupancy

import (
	"github.com/Iron-Ham/minotaur/internal/grid"
	"github.com/zyedidia/generic/mapset"
)

// Grid is a bounded, in-memory occupancy map. It is used both as ground
// truth and as a robot's knowledge in the simulation harness.
//
// Grid is not safe for concurrent use; each robot owns its own Grid.
type Grid struct {
	width, height int
	cells         []grid.Status
	visible       map[grid.Tile]grid.Status
	origin        grid.Tile
	revision      int
}

// NewGrid creates a width x height map with every tile Unseen.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:   width,
		height:  height,
		cells:   make([]grid.Status, width*height),
		visible: make(map[grid.Tile]grid.Status),
	}
}

// WithOrigin sets the map-frame tile that the robot-local origin maps to.
func (g *Grid) WithOrigin(origin grid.Tile) *Grid {
	g.origin = origin
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether t lies inside the map.
func (g *Grid) InBounds(t grid.Tile) bool {
	return t.X >= 0 && t.Y >= 0 && t.X < g.width && t.Y < g.height
}

// Status returns the classification of t, Solid outside the map.
func (g *Grid) Status(t grid.Tile) grid.Status {
	if !g.InBounds(t) {
		return grid.Solid
	}
	return g.cells[t.Y*g.width+t.X]
}

// Set classifies t. Out of bounds tiles are ignored.
func (g *Grid) Set(t grid.Tile, s grid.Status) {
	if !g.InBounds(t) {
		return
	}
	g.cells[t.Y*g.width+t.X] = s
}

// Count returns how many tiles currently have status s.
func (g *Grid) Count(s grid.Status) int {
	n := 0
	for _, c := range g.cells {
		if c == s {
			n++
		}
	}
	return n
}

// Reveal classifies tiles as if the latest observation had seen them,
// adding them to the visible set.
func (g *Grid) Reveal(s grid.Status, tiles ...grid.Tile) {
	for _, t := range tiles {
		if !g.InBounds(t) {
			continue
		}
		g.Set(t, s)
		g.visible[t] = s
	}
}

// RevealAll marks every classified tile as visible.
func (g *Grid) RevealAll() {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			t := grid.T(x, y)
			if s := g.Status(t); s != grid.Unseen {
				g.visible[t] = s
			}
		}
	}
}

// Visible returns the tiles seen by the latest observation.
func (g *Grid) Visible() map[grid.Tile]grid.Status { return g.visible }

// Revision increases every time an observation is merged.
func (g *Grid) Revision() int { return g.revision }

// ToMap converts a robot-local tile into the map frame.
func (g *Grid) ToMap(local grid.Tile) grid.Tile { return local.Add(g.origin) }

// FromMap converts a map-frame tile into the robot-local frame.
func (g *Grid) FromMap(t grid.Tile) grid.Tile { return t.Sub(g.origin) }

// NearestFloodFill implements Map.
func (g *Grid) NearestFloodFill(from grid.Tile, status grid.Status, exclude mapset.Set[grid.Tile]) (grid.Tile, bool) {
	visited := mapset.New[grid.Tile]()
	visited.Put(from)
	queue := []grid.Tile{from}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		excluded := exclude.Has(current)
		if !excluded && g.InBounds(current) && g.Status(current) == status {
			return current, true
		}
		if current != from && (excluded || g.Status(current) != grid.Open) {
			continue
		}

		for _, n := range current.Neighbors4() {
			if !g.InBounds(n) || visited.Has(n) {
				continue
			}
			visited.Put(n)
			queue = append(queue, n)
		}
	}
	return grid.Tile{}, false
}
