package doorway

import (
	"cmp"
	"slices"

	"github.com/Iron-Ham/minotaur/internal/grid"
	"github.com/Iron-Ham/minotaur/internal/occupancy"
	"github.com/Iron-Ham/minotaur/internal/walls"
	"github.com/Iron-Ham/minotaur/internal/waypoint"
)

// State is the doorway detection sub-state.
type State uint8

const (
	// None waits for a single wall with an opening along it.
	None State = iota
	// Single is travelling to the confirmation waypoint past an opening.
	Single
	// Intersection is reserved for junctions of several walls. No
	// transition enters it yet.
	Intersection
)

func (s State) String() string {
	switch s {
	case None:
		return "none"
	case Single:
		return "single"
	case Intersection:
		return "intersection"
	default:
		return "unknown"
	}
}

// Params configures a Detector.
type Params struct {
	VisionRadius int
	DoorWidth    int
	Clockwise    bool
	// Tolerance is the distance under which two walls are the same wall.
	Tolerance float64
}

// Input is what the detector sees on one tick.
type Input struct {
	Map      occupancy.Map
	Position grid.Tile
	Heading  float64
	// Waypoint is the robot's active waypoint, if Active is set.
	Waypoint waypoint.Waypoint
	Active   bool
}

// Outcome reports what the detector decided on one tick.
type Outcome struct {
	// Move is a new confirmation waypoint to travel to directly.
	Move    waypoint.Waypoint
	HasMove bool
	// Doorway is a finalized doorway, not yet deduplicated.
	Doorway Doorway
	Found   bool
	// Discarded is set when a candidate was dropped.
	Discarded bool
}

// Detector is the doorway detection state machine of one robot.
type Detector struct {
	params   Params
	state    State
	corner   grid.Tile
	lastWall []walls.Segment
}

// NewDetector creates a Detector in the None state.
func NewDetector(p Params) *Detector {
	return &Detector{params: p}
}

// State returns the current sub-state.
func (d *Detector) State() State { return d.state }

// Corner returns the far wall corner recorded for the pending candidate.
func (d *Detector) Corner() (grid.Tile, bool) { return d.corner, d.state == Single }

// Update advances the detector by one tick.
func (d *Detector) Update(in Input) Outcome {
	switch d.state {
	case None:
		if in.Active && in.Waypoint.Kind == waypoint.Wall {
			return d.detect(in)
		}
	case Single:
		return d.confirm(in)
	case Intersection:
	}
	return Outcome{}
}

// detect looks for a single wall with a visible Open tile along it.
func (d *Detector) detect(in Input) Outcome {
	samples := walls.Visible(in.Map, in.Position)
	segs := walls.Extract(in.Map, walls.Tiles(samples))
	if len(segs) != 1 {
		return Outcome{}
	}

	start, end := orderEndpoints(segs[0].Raw, in.Position, in.Heading)
	dir := grid.DirectionOf(end.Sub(start)).Vector()

	gap, ok := d.scan(in.Map, start, dir)
	if !ok {
		return Outcome{}
	}

	along := gap.Sub(in.Position).Scale(dir.Abs())
	dest := in.Position.Add(along).Add(dir.Mul(d.params.DoorWidth))

	d.state = Single
	d.corner = end
	d.lastWall = segs
	return Outcome{Move: waypoint.Direct(dest, waypoint.Door), HasMove: true}
}

// scan walks from start along dir for up to twice the vision radius and
// returns the first currently visible Open tile.
func (d *Detector) scan(m occupancy.Map, start, dir grid.Tile) (grid.Tile, bool) {
	visible := m.Visible()
	for r := 0; r < 2*d.params.VisionRadius; r++ {
		t := start.Add(dir.Mul(r))
		if s, seen := visible[t]; seen && s == grid.Open {
			return t, true
		}
	}
	return grid.Tile{}, false
}

// confirm finalizes or discards the pending candidate once the robot has
// reached the confirmation waypoint.
func (d *Detector) confirm(in Input) Outcome {
	if !in.Active || in.Waypoint.Kind != waypoint.Door {
		d.reset()
		return Outcome{Discarded: true}
	}
	if in.Waypoint.Destination != in.Position {
		return Outcome{}
	}

	corner, previous := d.corner, d.lastWall
	d.reset()

	samples := walls.Visible(in.Map, in.Position)
	if len(samples) == 0 {
		return Outcome{Discarded: true}
	}
	segs := walls.Extract(in.Map, walls.Tiles(samples))
	still := slices.ContainsFunc(segs, func(s walls.Segment) bool {
		return walls.ContainsSame(previous, s, d.params.Tolerance)
	})
	if !still {
		return Outcome{Discarded: true}
	}

	jamb := nearestOffWall(samples, previous)
	door := New(corner, jamb, d.approach(in.Heading), d.params.DoorWidth)
	return Outcome{Doorway: door, Found: true}
}

func (d *Detector) approach(heading float64) grid.Direction {
	if d.params.Clockwise {
		return grid.DirectionFromDegrees(heading + 90)
	}
	return grid.DirectionFromDegrees(heading + 270)
}

func (d *Detector) reset() {
	d.state = None
	d.corner = grid.Tile{}
	d.lastWall = nil
}

// orderEndpoints returns the wall's endpoints ordered by their bearing
// from pos, swept counter-clockwise from directly behind the robot.
func orderEndpoints(l grid.Line, pos grid.Tile, heading float64) (grid.Tile, grid.Tile) {
	behind := heading + 180
	a := grid.SweepOffset(pos.BearingTo(l.Start), behind)
	b := grid.SweepOffset(pos.BearingTo(l.End), behind)
	if cmp.Less(b, a) {
		return l.End, l.Start
	}
	return l.Start, l.End
}

// nearestOffWall returns the nearest sample that does not lie on the
// previously seen wall, or the nearest sample if all of them do.
func nearestOffWall(samples []walls.Sample, previous []walls.Segment) grid.Tile {
	for _, s := range samples {
		onWall := slices.ContainsFunc(previous, func(seg walls.Segment) bool {
			return slices.Contains(seg.Raw.Rasterize(), s.Tile)
		})
		if !onWall {
			return s.Tile
		}
	}
	return samples[0].Tile
}
