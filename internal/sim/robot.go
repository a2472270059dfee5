package sim

import (
	"github.com/Iron-Ham/minotaur/internal/bidding"
	"github.com/Iron-Ham/minotaur/internal/grid"
	"github.com/Iron-Ham/minotaur/internal/mailbox"
	"github.com/Iron-Ham/minotaur/internal/occupancy"
	"github.com/Iron-Ham/minotaur/internal/robot"
)

type task uint8

const (
	taskNone task = iota
	taskDirect
	taskPath
	taskForward
	taskSteps
)

// Robot is a simulated robot. It moves one tile per tick on the ground
// truth grid and keeps its own knowledge grid, refreshed by Observe.
type Robot struct {
	id      int
	pos     grid.Tile
	heading float64

	truth *occupancy.Grid
	known *occupancy.Grid
	mail  *mailbox.Mailbox

	task      task
	target    grid.Tile
	path      []grid.Tile
	remaining int
	reverse   bool
	colliding bool
	moved     int
}

var _ robot.Controller = (*Robot)(nil)

// NewRobot places a robot on truth with an empty knowledge grid of the
// same size.
func NewRobot(id int, pos grid.Tile, heading float64, truth *occupancy.Grid, mail *mailbox.Mailbox) *Robot {
	mail.Join(id)
	return &Robot{
		id:      id,
		pos:     pos,
		heading: grid.NormalizeDegrees(heading),
		truth:   truth,
		known:   occupancy.NewGrid(truth.Width(), truth.Height()),
		mail:    mail,
	}
}

// ID implements robot.Controller.
func (r *Robot) ID() int { return r.id }

// Position implements robot.Controller.
func (r *Robot) Position() grid.Tile { return r.pos }

// Heading implements robot.Controller.
func (r *Robot) Heading() float64 { return r.heading }

// MoveTo implements robot.Controller.
func (r *Robot) MoveTo(t grid.Tile) {
	r.reset()
	if t != r.pos {
		r.task = taskDirect
		r.target = t
	}
}

// PathAndMoveTo implements robot.Controller. The path is planned on the
// robot's own knowledge.
func (r *Robot) PathAndMoveTo(t grid.Tile) error {
	path, err := r.known.Path(r.pos, t)
	if err != nil {
		return err
	}
	r.reset()
	if len(path) > 1 {
		r.task = taskPath
		r.path = path[1:]
	}
	return nil
}

// Move implements robot.Controller. Backing off clears a collision.
func (r *Robot) Move(distance int, reverse bool) {
	r.reset()
	if reverse {
		r.colliding = false
	}
	if distance > 0 {
		r.task = taskSteps
		r.remaining = distance
		r.reverse = reverse
	}
}

// StartMoving implements robot.Controller.
func (r *Robot) StartMoving() {
	r.reset()
	r.task = taskForward
}

// Stop implements robot.Controller.
func (r *Robot) Stop() { r.reset() }

// Status implements robot.Controller.
func (r *Robot) Status() robot.Status {
	if r.task == taskNone {
		return robot.Idle
	}
	return robot.Moving
}

// IsColliding implements robot.Controller.
func (r *Robot) IsColliding() bool { return r.colliding }

// Broadcast implements robot.Controller.
func (r *Robot) Broadcast(m bidding.Message) { r.mail.Post(r.id, m) }

// Receive implements robot.Controller.
func (r *Robot) Receive() []bidding.Message { return r.mail.Receive(r.id) }

// Map implements robot.Controller.
func (r *Robot) Map() occupancy.Map { return r.known }

// Known returns the robot's knowledge grid.
func (r *Robot) Known() *occupancy.Grid { return r.known }

// Distance returns the number of tiles travelled.
func (r *Robot) Distance() int { return r.moved }

// Observe refreshes the knowledge grid from the robot's position.
func (r *Robot) Observe(radius int) {
	r.known.Observe(r.truth, r.pos, radius)
}

func (r *Robot) reset() {
	r.task = taskNone
	r.path = nil
	r.remaining = 0
	r.reverse = false
}

// advance runs one tick of motion. A step into anything but an Open tile
// of the ground truth is a collision; backing off into a wall just stops.
func (r *Robot) advance() {
	next, ok := r.next()
	if !ok {
		r.reset()
		return
	}
	if !r.passable(next) {
		backing := r.task == taskSteps && r.reverse
		r.reset()
		if !backing {
			r.colliding = true
		}
		return
	}

	step := next.Sub(r.pos)
	if r.task != taskSteps {
		r.heading = step.Bearing()
	}
	r.pos = next
	r.moved++
	r.colliding = false

	switch r.task {
	case taskDirect:
		if r.pos == r.target {
			r.reset()
		}
	case taskPath:
		r.path = r.path[1:]
		if len(r.path) == 0 {
			r.reset()
		}
	case taskSteps:
		r.remaining--
		if r.remaining <= 0 {
			r.reset()
		}
	}
}

func (r *Robot) next() (grid.Tile, bool) {
	switch r.task {
	case taskDirect:
		d := r.target.Sub(r.pos)
		return r.pos.Add(grid.T(sign(d.X), sign(d.Y))), true
	case taskPath:
		n := r.path[0]
		if d := n.Sub(r.pos).Abs(); d.X > 1 || d.Y > 1 {
			return grid.Tile{}, false
		}
		return n, true
	case taskForward:
		return r.pos.Add(grid.DirectionFromDegrees(r.heading).Vector()), true
	case taskSteps:
		v := grid.DirectionFromDegrees(r.heading).Vector()
		if r.reverse {
			v = v.Mul(-1)
		}
		return r.pos.Add(v), true
	default:
		return grid.Tile{}, false
	}
}

// passable reports whether the robot can step onto next. Diagonal steps
// need both orthogonal neighbours free.
func (r *Robot) passable(next grid.Tile) bool {
	if r.truth.Status(next) != grid.Open {
		return false
	}
	d := next.Sub(r.pos)
	if d.X != 0 && d.Y != 0 {
		return r.truth.Status(r.pos.Add(grid.T(d.X, 0))) == grid.Open &&
			r.truth.Status(r.pos.Add(grid.T(0, d.Y))) == grid.Open
	}
	return true
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
