// Package doorway holds detected openings between rooms, the per-robot
// registry of known doorways, and the detector that infers them from walls.
package doorway

import (
	"fmt"
	"slices"

	"github.com/Iron-Ham/minotaur/internal/grid"
	"github.com/zyedidia/generic/mapset"
)

// Doorway is an opening between two rooms.
type Doorway struct {
	Center   grid.Tile      `json:"center"`
	Width    int            `json:"width"`
	Approach grid.Direction `json:"approach"`
	// Tiles cover the opening from jamb to jamb. They act as a barrier
	// that keeps flood-fill searches inside the current room.
	Tiles    []grid.Tile `json:"tiles"`
	Explored bool        `json:"explored"`
}

// New builds a doorway spanning the two jamb tiles.
func New(a, b grid.Tile, approach grid.Direction, width int) Doorway {
	center := grid.TileAt(float64(a.X+b.X)/2, float64(a.Y+b.Y)/2)
	tiles := grid.L(a, b).Rasterize()
	if !slices.Contains(tiles, center) {
		tiles = append(tiles, center)
	}
	return Doorway{
		Center:   center,
		Width:    width,
		Approach: approach,
		Tiles:    tiles,
	}
}

// Across returns the unit step that carries a robot coming from from
// through the opening. It is perpendicular to the opening's dominant axis
// and points away from from. When from is level with the opening, or the
// opening is a single tile, the approach direction decides.
func (d Doorway) Across(from grid.Tile) grid.Tile {
	span := d.span()
	if span.IsZero() {
		return d.Approach.Vector()
	}
	across := grid.T(0, 1)
	if abs := span.Abs(); abs.Y >= abs.X {
		across = grid.T(1, 0)
	}
	side := dot(d.Center.Sub(from), across)
	if side == 0 {
		side = dot(d.Approach.Vector(), across)
	}
	if side < 0 {
		return across.Mul(-1)
	}
	return across
}

// span is the vector from the first tile to the tile furthest from it.
func (d Doorway) span() grid.Tile {
	if len(d.Tiles) < 2 {
		return grid.Tile{}
	}
	first, far := d.Tiles[0], d.Tiles[0]
	for _, t := range d.Tiles[1:] {
		if first.Dist(t) > first.Dist(far) {
			far = t
		}
	}
	return far.Sub(first)
}

func dot(a, b grid.Tile) int { return a.X*b.X + a.Y*b.Y }

// Equal reports whether two doorways describe the same physical opening:
// their centers lie within eps of each other.
func (d Doorway) Equal(o Doorway, eps float64) bool {
	return d.Center.Dist(o.Center) <= eps
}

// Clone returns a deep copy so a received doorway never aliases the sender's.
func (d Doorway) Clone() Doorway {
	d.Tiles = slices.Clone(d.Tiles)
	return d
}

func (d Doorway) String() string {
	state := "unexplored"
	if d.Explored {
		state = "explored"
	}
	return fmt.Sprintf("doorway %v width=%d approach=%v %s", d.Center, d.Width, d.Approach, state)
}

// Registry is one robot's list of known doorways. Registration is
// idempotent under geometric equality.
type Registry struct {
	doors []Doorway
	eps   float64
}

// NewRegistry creates an empty registry comparing doorways within eps.
func NewRegistry(eps float64) *Registry {
	return &Registry{eps: eps}
}

// Len returns the number of known doorways.
func (r *Registry) Len() int { return len(r.doors) }

// Get returns a copy of the doorway at index i.
func (r *Registry) Get(i int) Doorway { return r.doors[i].Clone() }

// All returns copies of every known doorway in registration order.
func (r *Registry) All() []Doorway {
	out := make([]Doorway, len(r.doors))
	for i, d := range r.doors {
		out[i] = d.Clone()
	}
	return out
}

// Find returns the index of the known doorway equal to d.
func (r *Registry) Find(d Doorway) (int, bool) {
	i := slices.IndexFunc(r.doors, func(k Doorway) bool { return k.Equal(d, r.eps) })
	return i, i >= 0
}

// Register adds d unless an equal doorway is already known. It returns the
// index of the stored doorway and whether it was added.
func (r *Registry) Register(d Doorway) (int, bool) {
	if i, ok := r.Find(d); ok {
		return i, false
	}
	r.doors = append(r.doors, d.Clone())
	return len(r.doors) - 1, true
}

// MarkExplored sets the Explored flag of the doorway at index i.
func (r *Registry) MarkExplored(i int) {
	r.doors[i].Explored = true
}

// Unexplored returns the indices of doorways not yet explored.
func (r *Registry) Unexplored() []int {
	var idx []int
	for i, d := range r.doors {
		if !d.Explored {
			idx = append(idx, i)
		}
	}
	return idx
}

// Tiles returns every tile covered by a known doorway.
func (r *Registry) Tiles() mapset.Set[grid.Tile] {
	return r.tiles(-1)
}

// TilesExcept returns the tiles of every known doorway other than the one
// at index skip.
func (r *Registry) TilesExcept(skip int) mapset.Set[grid.Tile] {
	return r.tiles(skip)
}

func (r *Registry) tiles(skip int) mapset.Set[grid.Tile] {
	set := mapset.New[grid.Tile]()
	for i, d := range r.doors {
		if i == skip {
			continue
		}
		for _, t := range d.Tiles {
			set.Put(t)
		}
	}
	return set
}
