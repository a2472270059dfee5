package navigator

import (
	"cmp"
	"slices"

	"github.com/Iron-Ham/minotaur/internal/grid"
	"github.com/Iron-Ham/minotaur/internal/occupancy"
	"github.com/Iron-Ham/minotaur/internal/walls"
	"github.com/Iron-Ham/minotaur/internal/waypoint"
)

// wallFollow moves to a point perpendicular to a nearby wall when the
// area past that point along the wall is still Unseen.
func (n *Navigator) wallFollow(in Input) (waypoint.Waypoint, bool) {
	vr := n.params.VisionRadius
	tiles := withStatus(in.Map, sweep(in.Map, in.Position, 0, 360, vr+2, grid.Solid), grid.Solid)
	if len(tiles) < 2 {
		return waypoint.Waypoint{}, false
	}

	localLeft := in.Heading
	if ahead := occupancy.Furthest(in.Map, in.Position, in.Heading, vr, grid.Solid); in.Map.Status(ahead) == grid.Solid {
		localLeft += 90
	}

	var ends []grid.Tile
	for _, s := range walls.Extract(in.Map, tiles) {
		for _, t := range []grid.Tile{s.Raw.Start, s.Raw.End} {
			if !slices.Contains(ends, t) {
				ends = append(ends, t)
			}
		}
	}
	slices.SortStableFunc(ends, func(a, b grid.Tile) int {
		return cmp.Or(
			cmp.Compare(grid.SweepOffset(in.Position.BearingTo(b), localLeft), grid.SweepOffset(in.Position.BearingTo(a), localLeft)),
			cmp.Compare(a.Y, b.Y),
			cmp.Compare(a.X, b.X),
		)
	})

	for _, end := range ends {
		perp := end.Add(grid.PerpendicularTo(end.Sub(in.Position)).Vector().Mul(vr - 2))
		if !n.usable(in, perp) || in.Map.Status(perp) == grid.Solid {
			continue
		}
		if n.unseenAlong(in, end, perp) {
			return waypoint.Direct(perp, waypoint.Wall), true
		}
		return waypoint.Waypoint{}, false
	}
	return waypoint.Waypoint{}, false
}

// unseenAlong looks a few tiles past perp, continuing along the wall that
// end belongs to, for an Unseen tile.
func (n *Navigator) unseenAlong(in Input, end, perp grid.Tile) bool {
	reach := n.params.VisionRadius - 2
	turn := grid.DirectionFromDegrees(in.Position.BearingTo(perp) + 270).Vector()
	third := perp.Add(turn.Mul(reach))

	along := grid.DirectionOf(third.Sub(end)).Vector()
	side := grid.PerpendicularTo(along).Vector()
	for i := 1; i < 4; i++ {
		t := third.Add(along.Mul(i)).Add(side)
		if in.Map.InBounds(t) && in.Map.Status(t) == grid.Unseen {
			return true
		}
	}
	return false
}

// aheadUnseen reports whether the tile visionRadius+extra straight ahead
// is Unseen.
func (n *Navigator) aheadUnseen(in Input, extra int) bool {
	dir := grid.DirectionFromDegrees(in.Heading).Vector()
	t := in.Position.Add(dir.Mul(n.params.VisionRadius + extra))
	return in.Map.InBounds(t) && in.Map.Status(t) == grid.Unseen
}

// corner sweeps the 30 degrees to the robot's forward right for an Unseen
// tile.
func (n *Navigator) corner(in Input) (waypoint.Waypoint, bool) {
	if n.aheadUnseen(in, 1) && n.aheadUnseen(in, 2) {
		return waypoint.Waypoint{}, false
	}
	tiles := sweep(in.Map, in.Position, in.Heading-30, in.Heading, n.params.VisionRadius+2, grid.Unseen, grid.Solid)
	for _, t := range withStatus(in.Map, tiles, grid.Unseen) {
		if n.usable(in, t) {
			return waypoint.Direct(t, waypoint.Corner), true
		}
	}
	return waypoint.Waypoint{}, false
}

// edge finds known tiles next to Unseen space and heads toward the one
// first met sweeping counter-clockwise from the robot's right.
func (n *Navigator) edge(in Input) (waypoint.Waypoint, bool) {
	vr := n.params.VisionRadius
	var candidates []grid.Tile
	for x := in.Position.X - vr; x <= in.Position.X+vr; x++ {
		for y := in.Position.Y - vr; y <= in.Position.Y+vr; y++ {
			t := grid.T(x, y)
			if t == in.Position || !in.Map.InBounds(t) {
				continue
			}
			status := in.Map.Status(t)
			if status == grid.Unseen {
				continue
			}
			dir := grid.PerpendicularTo(t.Sub(in.Position)).Vector()
			if next := t.Add(dir); !in.Map.InBounds(next) || in.Map.Status(next) != grid.Unseen {
				continue
			}
			perp := t.Add(dir.Mul(vr - 1))
			if !in.Map.InBounds(perp) {
				continue
			}
			if status == grid.Solid {
				if _, err := in.Map.Path(in.Position, perp); err != nil {
					continue
				}
			}
			candidates = append(candidates, perp)
		}
	}

	localRight := in.Heading + 270
	slices.SortStableFunc(candidates, func(a, b grid.Tile) int {
		return cmp.Compare(
			grid.SweepOffset(in.Position.BearingTo(a), localRight),
			grid.SweepOffset(in.Position.BearingTo(b), localRight),
		)
	})
	for _, c := range candidates {
		dest := in.Position.Project(in.Position.BearingTo(c), float64(vr+1))
		if n.usable(in, dest) {
			return waypoint.Direct(dest, waypoint.Edge), true
		}
	}
	return waypoint.Waypoint{}, false
}
