package sim

import (
	"github.com/Iron-Ham/minotaur/internal/grid"
	"github.com/Iron-Ham/minotaur/internal/occupancy"
	"github.com/zyedidia/generic/mapset"
)

// Tracker measures how much of the ground truth floor the team has seen.
type Tracker struct {
	floor int
	seen  mapset.Set[grid.Tile]
	truth *occupancy.Grid
}

// NewTracker creates a tracker over the Open tiles of truth.
func NewTracker(truth *occupancy.Grid) *Tracker {
	return &Tracker{
		floor: truth.Count(grid.Open),
		seen:  mapset.New[grid.Tile](),
		truth: truth,
	}
}

// Record adds every Open tile in visible.
func (t *Tracker) Record(visible map[grid.Tile]grid.Status) {
	for tile, s := range visible {
		if s == grid.Open && t.truth.Status(tile) == grid.Open {
			t.seen.Put(tile)
		}
	}
}

// Seen returns how many floor tiles have been observed.
func (t *Tracker) Seen() int { return t.seen.Size() }

// Coverage returns the observed fraction of floor tiles, in [0, 1].
func (t *Tracker) Coverage() float64 {
	if t.floor == 0 {
		return 1
	}
	return float64(t.seen.Size()) / float64(t.floor)
}
