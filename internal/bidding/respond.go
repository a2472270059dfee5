package bidding

import (
	"github.com/Iron-Ham/minotaur/internal/doorway"
	"github.com/Iron-Ham/minotaur/internal/grid"
	"github.com/Iron-Ham/minotaur/internal/occupancy"
)

// Responder is the receiving robot's view while answering a DoorwayFound.
type Responder struct {
	ID       int
	Position grid.Tile
	Map      occupancy.Map
	Doorways *doorway.Registry
}

// Respond registers the announced doorway and returns the receiver's bid.
// It abstains when no path exists or the path passes through another known
// doorway, which means the doorway lies outside the receiver's room.
func Respond(msg DoorwayFound, r Responder) (Bidding, bool) {
	idx, _ := r.Doorways.Register(msg.Doorway)

	path, err := r.Map.Path(r.Position, msg.Doorway.Center)
	if err != nil {
		return Bidding{}, false
	}
	if occupancy.PathCrosses(path, r.Doorways.TilesExcept(idx)) {
		return Bidding{}, false
	}
	return Bidding{
		RequesterID: msg.RequesterID,
		Bids:        map[int]int{r.ID: len(path)},
		Doorway:     msg.Doorway.Clone(),
	}, true
}

// Bid returns a robot's own path-length bid for a doorway.
func Bid(m occupancy.Map, pos grid.Tile, d doorway.Doorway) (int, bool) {
	path, err := m.Path(pos, d.Center)
	if err != nil {
		return 0, false
	}
	return len(path), true
}
