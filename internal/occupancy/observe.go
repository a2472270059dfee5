package occupancy

import (
	"github.com/Iron-Ham/minotaur/internal/grid"
)

// Observe ray-casts from origin over truth out to radius, copying every
// reached tile's status into g and replacing g's visible set. Rays stop at
// the first Solid tile. The revision counter is incremented.
func (g *Grid) Observe(truth *Grid, origin grid.Tile, radius int) {
	visible := make(map[grid.Tile]grid.Status)
	for x := -radius; x <= radius; x++ {
		for y := -radius; y <= radius; y++ {
			if max(abs(x), abs(y)) != radius {
				continue
			}
			target := origin.Add(grid.T(x, y))
			for _, t := range grid.L(origin, target).Rasterize() {
				if t.Dist(origin) > float64(radius) || !truth.InBounds(t) {
					break
				}
				s := truth.Status(t)
				visible[t] = s
				g.Set(t, s)
				if s == grid.Solid {
					break
				}
			}
		}
	}
	g.visible = visible
	g.revision++
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
