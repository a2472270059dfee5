// Package navigator picks the next movement target while a robot covers a
// room. It tries its heuristics in a fixed order and returns a decision;
// the caller issues the move.
package navigator

import (
	"github.com/Iron-Ham/minotaur/internal/grid"
	"github.com/Iron-Ham/minotaur/internal/occupancy"
	"github.com/Iron-Ham/minotaur/internal/waypoint"
	"github.com/zyedidia/generic/mapset"
)

// Action is what a Decision asks the robot to do.
type Action uint8

const (
	// Nothing means no target was found this tick.
	Nothing Action = iota
	// Move means travel to the decision's waypoint.
	Move
	// Wait means no sweep has been merged since the last plan; decide
	// again later.
	Wait
	// Exhausted means the room holds no reachable Unseen tile.
	Exhausted
)

func (a Action) String() string {
	switch a {
	case Nothing:
		return "nothing"
	case Move:
		return "move"
	case Wait:
		return "wait"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Tier names the heuristic that produced a decision.
type Tier string

const (
	TierFloodFill  Tier = "flood_fill"
	TierWallFollow Tier = "wall_follow"
	TierCorner     Tier = "corner"
	TierEdge       Tier = "edge"
)

// Decision is the navigator's answer for one tick.
type Decision struct {
	Action   Action
	Waypoint waypoint.Waypoint
	Tier     Tier
}

// Params configures a Navigator.
type Params struct {
	VisionRadius int
}

// Input is the robot's view on one tick.
type Input struct {
	Map      occupancy.Map
	Position grid.Tile
	Heading  float64
	// DoorTiles are the tiles of every known doorway. Flood fill never
	// crosses them, which keeps it inside the current room.
	DoorTiles mapset.Set[grid.Tile]
}

// Navigator holds the per-room memory of the coverage heuristics.
type Navigator struct {
	params Params
	// tried holds destinations already handed out by the direct-move
	// heuristics in this room.
	tried mapset.Set[grid.Tile]
	// unreachable holds Unseen tiles flood fill could not get next to.
	unreachable mapset.Set[grid.Tile]
	// planned is the map revision the direct-move heuristics last ran on.
	planned int
}

// New creates a Navigator.
func New(p Params) *Navigator {
	return &Navigator{
		params:      p,
		tried:       mapset.New[grid.Tile](),
		unreachable: mapset.New[grid.Tile](),
		planned:     -1,
	}
}

// Reset forgets per-room memory. Call it on entering a new room.
func (n *Navigator) Reset() {
	n.tried = mapset.New[grid.Tile]()
	n.unreachable = mapset.New[grid.Tile]()
	n.planned = -1
}

// Next returns the first applicable decision, trying in order: flood fill
// when nothing nearby is unexplored, wall following, corner coverage,
// nearest edge, and flood fill again as the fallback. The direct-move
// heuristics run at most once per map revision, so every plan uses the
// newest sweep.
func (n *Navigator) Next(in Input) Decision {
	if !n.aroundExplorable(in, 2) {
		return n.floodFill(in)
	}
	rev := in.Map.Revision()
	if rev == n.planned {
		return Decision{Action: Wait, Tier: TierWallFollow}
	}
	n.planned = rev
	if w, ok := n.wallFollow(in); ok {
		return n.move(w, TierWallFollow)
	}
	if w, ok := n.corner(in); ok {
		return n.move(w, TierCorner)
	}
	if w, ok := n.edge(in); ok {
		return n.move(w, TierEdge)
	}
	return n.floodFill(in)
}

func (n *Navigator) move(w waypoint.Waypoint, tier Tier) Decision {
	if !w.Pathing {
		n.tried.Put(w.Destination)
	}
	return Decision{Action: Move, Waypoint: w, Tier: tier}
}

// usable reports whether a direct-move heuristic may hand out dest.
func (n *Navigator) usable(in Input, dest grid.Tile) bool {
	return dest != in.Position && in.Map.InBounds(dest) && !n.tried.Has(dest)
}

// aroundExplorable reports whether an Unseen tile is in line of sight
// within visionRadius+extra.
func (n *Navigator) aroundExplorable(in Input, extra int) bool {
	tiles := sweep(in.Map, in.Position, 0, 360, n.params.VisionRadius+extra, grid.Solid)
	return len(withStatus(in.Map, tiles, grid.Unseen)) > 0
}

// floodFill finds the nearest Unseen tile reachable without crossing a
// doorway and paths to the Open tile next to it.
func (n *Navigator) floodFill(in Input) Decision {
	exclude := mapset.New[grid.Tile]()
	in.DoorTiles.Each(func(t grid.Tile) { exclude.Put(t) })
	n.unreachable.Each(func(t grid.Tile) { exclude.Put(t) })

	unseen, ok := in.Map.NearestFloodFill(in.Position, grid.Unseen, exclude)
	if !ok {
		return Decision{Action: Exhausted, Tier: TierFloodFill}
	}
	open, ok := in.Map.NearestFloodFill(unseen, grid.Open, mapset.New[grid.Tile]())
	if !ok || open == in.Position {
		n.unreachable.Put(unseen)
		return Decision{Action: Nothing, Tier: TierFloodFill}
	}
	if _, err := in.Map.Path(in.Position, open); err != nil {
		n.unreachable.Put(unseen)
		return Decision{Action: Nothing, Tier: TierFloodFill}
	}
	return n.move(waypoint.Pathed(open, waypoint.Greedy), TierFloodFill)
}
