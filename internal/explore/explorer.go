// Package explore is the per-robot exploration core. An Explorer decides,
// once per tick, what its robot does next: drive to the first wall, cover
// the room, confirm doorways, bid for them, and move on to the next room.
package explore

import (
	"fmt"
	"math"

	"github.com/Iron-Ham/minotaur/internal/bidding"
	"github.com/Iron-Ham/minotaur/internal/config"
	"github.com/Iron-Ham/minotaur/internal/doorway"
	"github.com/Iron-Ham/minotaur/internal/errors"
	"github.com/Iron-Ham/minotaur/internal/event"
	"github.com/Iron-Ham/minotaur/internal/grid"
	"github.com/Iron-Ham/minotaur/internal/logging"
	"github.com/Iron-Ham/minotaur/internal/navigator"
	"github.com/Iron-Ham/minotaur/internal/occupancy"
	"github.com/Iron-Ham/minotaur/internal/robot"
	"github.com/Iron-Ham/minotaur/internal/walls"
	"github.com/Iron-Ham/minotaur/internal/waypoint"
)

// Params configures an Explorer.
type Params struct {
	VisionRadius int
	DoorWidth    int
	Clockwise    bool
	// Tolerance is the distance under which doorways and walls are equal.
	Tolerance float64
	// AuctionTimeout is how many ticks an auction waits for bids.
	AuctionTimeout int
	// TeamSize is the number of robots that could bid.
	TeamSize int
}

// ParamsFromConfig builds Params from the exploration settings.
func ParamsFromConfig(c config.ExplorationConfig, teamSize int) Params {
	return Params{
		VisionRadius:   c.VisionRadius,
		DoorWidth:      c.DoorWidth,
		Clockwise:      c.Clockwise,
		Tolerance:      c.DoorwayTolerance,
		AuctionTimeout: c.AuctionTimeoutTicks,
		TeamSize:       teamSize,
	}
}

// Option configures an Explorer.
type Option func(*Explorer)

// WithLogger sets the logger. The robot id is added to every entry.
func WithLogger(l *logging.Logger) Option {
	return func(e *Explorer) { e.logger = l }
}

// WithBus publishes exploration events to b.
func WithBus(b *event.Bus) Option {
	return func(e *Explorer) { e.bus = b }
}

// Explorer is the decision core of one robot. It is not safe for
// concurrent use; the caller ticks it from a single goroutine.
type Explorer struct {
	ctl    robot.Controller
	params Params
	logger *logging.Logger
	bus    *event.Bus

	state    State
	tick     int
	waypoint waypoint.Slot
	doorways *doorway.Registry
	detector *doorway.Detector
	nav      *navigator.Navigator
	ledger   *bidding.Ledger

	// claim is the registry index of a doorway won at auction.
	claim    int
	hasClaim bool

	// entering is set while the robot heads for a doorway's center; once
	// there it steps through, away from enterFrom.
	entering  bool
	enterDoor doorway.Doorway
	enterFrom grid.Tile
}

// New creates an Explorer in the Idle state driving ctl.
func New(ctl robot.Controller, p Params, opts ...Option) *Explorer {
	e := &Explorer{
		ctl:      ctl,
		params:   p,
		logger:   logging.NopLogger(),
		doorways: doorway.NewRegistry(p.Tolerance),
		detector: doorway.NewDetector(doorway.Params{
			VisionRadius: p.VisionRadius,
			DoorWidth:    p.DoorWidth,
			Clockwise:    p.Clockwise,
			Tolerance:    p.Tolerance,
		}),
		nav:    navigator.New(navigator.Params{VisionRadius: p.VisionRadius}),
		ledger: bidding.NewLedger(p.TeamSize, p.AuctionTimeout, p.Tolerance),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.WithRobot(ctl.ID())
	return e
}

// ID returns the robot id.
func (e *Explorer) ID() int { return e.ctl.ID() }

// State returns the current exploration state.
func (e *Explorer) State() State { return e.state }

// DoorState returns the doorway detection sub-state.
func (e *Explorer) DoorState() doorway.State { return e.detector.State() }

// Ticks returns the number of logic ticks run so far.
func (e *Explorer) Ticks() int { return e.tick }

// Waypoint returns the active waypoint, if any.
func (e *Explorer) Waypoint() (waypoint.Waypoint, bool) { return e.waypoint.Get() }

// Doorways returns a copy of the known doorways.
func (e *Explorer) Doorways() []doorway.Doorway { return e.doorways.All() }

// PendingAuctions returns the number of auctions awaiting resolution.
func (e *Explorer) PendingAuctions() int { return e.ledger.Pending() }

// DebugInfo summarizes the robot's decision state on one line.
func (e *Explorer) DebugInfo() string {
	pos := e.ctl.Position()
	wp := "none"
	if w, ok := e.waypoint.Get(); ok {
		wp = w.String()
	}
	return fmt.Sprintf("robot %d state=%s door=%s pos=%v local=%v heading=%.0f waypoint=%s doorways=%d auctions=%d",
		e.ctl.ID(), e.state, e.detector.State(), pos, e.ctl.Map().FromMap(pos), e.ctl.Heading(),
		wp, e.doorways.Len(), e.ledger.Pending())
}

// Update runs one logic tick.
func (e *Explorer) Update() {
	e.tick++
	if e.state == Done {
		return
	}

	if e.ctl.IsColliding() {
		e.recoverFromCollision()
		return
	}

	e.handleMessages()
	e.resolveAuctions()

	samples := walls.Visible(e.ctl.Map(), e.ctl.Position())
	e.detectDoorway()
	if e.followWaypoint() {
		return
	}
	e.step(samples)
}

func (e *Explorer) recoverFromCollision() {
	if e.ctl.Status() != robot.Idle {
		e.ctl.Stop()
	} else {
		e.ctl.Move(1, true)
	}
	e.dropWaypoint()
	e.logger.Debug("collision", "tick", e.tick, "position", e.ctl.Position().String())
	e.publish(event.NewCollisionEvent(e.ctl.ID(), e.ctl.Position(), e.tick))
}

// detectDoorway advances the doorway detector and acts on its outcome.
func (e *Explorer) detectDoorway() {
	w, active := e.waypoint.Get()
	out := e.detector.Update(doorway.Input{
		Map:      e.ctl.Map(),
		Position: e.ctl.Position(),
		Heading:  e.ctl.Heading(),
		Waypoint: w,
		Active:   active,
	})
	switch {
	case out.HasMove:
		e.logger.Debug("doorway candidate", "tick", e.tick, "waypoint", out.Move.String())
		e.setWaypoint(out.Move)
	case out.Found:
		e.foundDoorway(out.Doorway)
	case out.Discarded:
		e.logger.Debug("doorway candidate discarded", "tick", e.tick)
	}
}

// followWaypoint keeps the robot moving toward its waypoint. It reports
// whether a waypoint was active, in which case the tick is over.
func (e *Explorer) followWaypoint() bool {
	w, ok := e.waypoint.Get()
	if !ok {
		return false
	}

	if w.Pathing {
		if err := e.ctl.PathAndMoveTo(w.Destination); err != nil {
			e.logLocal("follow waypoint", "waypoint", err)
			e.dropWaypoint()
			e.ctl.Stop()
			return true
		}
	} else {
		if e.blocked(w.Destination) {
			e.logger.Debug("waypoint blocked", "tick", e.tick, "waypoint", w.String())
			e.dropWaypoint()
			e.ctl.Stop()
			return true
		}
		e.ctl.MoveTo(w.Destination)
	}

	if e.waypoint.Reached(e.ctl.Position()) {
		e.waypoint.Clear()
		if e.entering {
			e.passThrough()
		}
	}
	return true
}

// dropWaypoint abandons the active waypoint along with any doorway
// passage in progress.
func (e *Explorer) dropWaypoint() {
	e.waypoint.Clear()
	e.entering = false
}

// passThrough steps from a doorway's center into the room beyond it, up
// to Width+1 tiles, stopping before the first tile not known to be Open.
func (e *Explorer) passThrough() {
	door, from := e.enterDoor, e.enterFrom
	e.entering = false

	m := e.ctl.Map()
	pos := e.ctl.Position()
	step := door.Across(from)
	target := pos
	for i := 1; i <= door.Width+1; i++ {
		t := pos.Add(step.Mul(i))
		if m.Status(t) != grid.Open {
			break
		}
		target = t
	}
	if target == pos {
		e.logger.Debug("no room past doorway", "tick", e.tick, "doorway", door.Center.String())
		return
	}
	e.logger.Debug("passing doorway", "tick", e.tick, "doorway", door.Center.String(), "target", target.String())
	e.setWaypoint(waypoint.Pathed(target, waypoint.Door))
}

// blocked reports whether a Solid tile lies between the robot and dest
// within visionRadius-2, or a diagonal step on the way squeezes past a
// Solid corner.
func (e *Explorer) blocked(dest grid.Tile) bool {
	pos := e.ctl.Position()
	reach := min(e.params.VisionRadius-2, int(math.Ceil(pos.Dist(dest))))
	m := e.ctl.Map()
	prev := pos
	for _, t := range occupancy.Ray(m, pos, pos.BearingTo(dest), reach, grid.Solid) {
		if m.Status(t) == grid.Solid || occupancy.CutsCorner(m, prev, t) {
			return true
		}
		prev = t
	}
	return false
}

func (e *Explorer) step(samples []walls.Sample) {
	switch e.state {
	case Idle:
		e.ctl.StartMoving()
		e.transition(FirstWall)
	case FirstWall:
		if len(samples) > 0 && samples[0].Distance/2 < float64(e.params.VisionRadius-1) {
			e.ctl.Stop()
			e.transition(ExploreRoom)
		}
	case ExploreRoom:
		e.exploreRoom()
	case Auctioning, MovingToNearestUnexplored, Done:
	case MovingToDoorway:
		e.moveToDoorway()
	}
}

func (e *Explorer) exploreRoom() {
	if e.ctl.Status() != robot.Idle || e.detector.State() != doorway.None {
		return
	}
	d := e.nav.Next(navigator.Input{
		Map:       e.ctl.Map(),
		Position:  e.ctl.Position(),
		Heading:   e.ctl.Heading(),
		DoorTiles: e.doorways.Tiles(),
	})
	switch d.Action {
	case navigator.Move:
		e.logger.Debug("navigate", "tick", e.tick, "tier", string(d.Tier), "waypoint", d.Waypoint.String())
		e.setWaypoint(d.Waypoint)
	case navigator.Exhausted:
		e.logger.Info("room exhausted", "tick", e.tick)
		e.transition(MovingToDoorway)
	case navigator.Wait, navigator.Nothing:
	}
}

// moveToDoorway heads for the claimed doorway, or else the nearest
// unexplored one by path distance, and marks it explored. The robot passes
// through once it reaches the center.
func (e *Explorer) moveToDoorway() {
	idx, ok := e.claimed()
	if !ok {
		idx, ok = e.nearestUnexplored()
	}
	if !ok {
		e.transition(Done)
		return
	}

	door := e.doorways.Get(idx)
	e.doorways.MarkExplored(idx)
	e.hasClaim = false
	e.setWaypoint(waypoint.Pathed(door.Center, waypoint.Door))
	if e.waypoint.Active() {
		e.entering, e.enterDoor, e.enterFrom = true, door, e.ctl.Position()
	}
	e.nav.Reset()
	e.logger.Info("entering doorway", "tick", e.tick, "doorway", door.Center.String())
	e.transition(ExploreRoom)
}

func (e *Explorer) claimed() (int, bool) {
	if !e.hasClaim || e.doorways.Get(e.claim).Explored {
		e.hasClaim = false
		return 0, false
	}
	return e.claim, true
}

func (e *Explorer) nearestUnexplored() (int, bool) {
	m := e.ctl.Map()
	pos := e.ctl.Position()
	best, found := 0, false
	bestDist := math.Inf(1)
	for _, i := range e.doorways.Unexplored() {
		path, err := m.Path(pos, e.doorways.Get(i).Center)
		if err != nil {
			e.logLocal("path to doorway", "doorway", err)
			continue
		}
		if d := occupancy.PathLength(path); d < bestDist {
			best, bestDist, found = i, d, true
		}
	}
	return best, found
}

// setWaypoint makes w the active waypoint and issues the move.
func (e *Explorer) setWaypoint(w waypoint.Waypoint) {
	e.waypoint.Set(w)
	if !w.Pathing {
		e.ctl.MoveTo(w.Destination)
		return
	}
	if err := e.ctl.PathAndMoveTo(w.Destination); err != nil {
		e.logLocal("issue waypoint", "waypoint", err)
		e.waypoint.Clear()
	}
}

func (e *Explorer) transition(to State) bool {
	from := e.state
	if !CanTransition(from, to) {
		e.logger.Warn("state transition refused",
			"from", from.String(), "to", to.String(), "tick", e.tick,
			"error", errors.ErrInvalidTransition)
		return false
	}
	e.state = to
	e.logger.WithState(to.String()).Info("state changed", "from", from.String(), "tick", e.tick)
	e.publish(event.NewStateChangedEvent(e.ctl.ID(), from.String(), to.String(), e.tick))
	if to == Done {
		e.publish(event.NewRobotDoneEvent(e.ctl.ID(), e.tick))
	}
	return true
}

// logLocal records a failure that the robot recovers from on its own.
func (e *Explorer) logLocal(msg, op string, err error) {
	rerr := errors.NewRobotError(msg, err).WithRobotID(e.ctl.ID()).WithOp(op)
	e.logger.Debug(msg, "tick", e.tick, "error", rerr.Error(), "local", errors.IsLocal(err))
}

func (e *Explorer) publish(ev event.Event) {
	if e.bus != nil {
		e.bus.Publish(ev)
	}
}
