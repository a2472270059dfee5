package sim

import (
	"strings"

	"github.com/Iron-Ham/minotaur/internal/doorway"
	"github.com/Iron-Ham/minotaur/internal/grid"
)

// RobotResult is one robot's final state.
type RobotResult struct {
	ID       int       `json:"id"`
	State    string    `json:"state"`
	Position grid.Tile `json:"position"`
	Distance int       `json:"distance"`
	Doorways int       `json:"doorways"`
}

// Result summarizes a run.
type Result struct {
	Scenario          string            `json:"scenario"`
	Ticks             int               `json:"ticks"`
	Coverage          float64           `json:"coverage"`
	AllDone           bool              `json:"all_done"`
	Doorways          []doorway.Doorway `json:"doorways"`
	Robots            []RobotResult     `json:"robots"`
	MessagesPosted    int               `json:"messages_posted"`
	MessagesDelivered int               `json:"messages_delivered"`
}

// Result summarizes the run so far. Doorways known to several robots are
// merged; a doorway is explored if any robot explored it.
func (w *World) Result() Result {
	posted, delivered := w.mail.Stats()
	res := Result{
		Scenario:          w.scenario.Name,
		Ticks:             w.tick,
		Coverage:          w.tracker.Coverage(),
		AllDone:           w.AllDone(),
		MessagesPosted:    posted,
		MessagesDelivered: delivered,
	}

	merged := doorway.NewRegistry(w.cfg.Exploration.DoorwayTolerance)
	for _, m := range w.team {
		known := m.Explorer.Doorways()
		res.Robots = append(res.Robots, RobotResult{
			ID:       m.Robot.ID(),
			State:    m.Explorer.State().String(),
			Position: m.Robot.Position(),
			Distance: m.Robot.Distance(),
			Doorways: len(known),
		})
		for _, d := range known {
			i, _ := merged.Register(d)
			if d.Explored {
				merged.MarkExplored(i)
			}
		}
	}
	res.Doorways = merged.All()
	return res
}

// RobotSnapshot is one robot's state at the end of a tick.
type RobotSnapshot struct {
	ID        int      `json:"id"`
	X         int      `json:"x"`
	Y         int      `json:"y"`
	Heading   float64  `json:"heading"`
	State     string   `json:"state"`
	DoorState string   `json:"door_state"`
	Waypoint  string   `json:"waypoint,omitempty"`
	Colliding bool     `json:"colliding"`
	Doorways  int      `json:"doorways"`
	Map       []string `json:"map,omitempty"`
}

// Snapshot is the world at the end of a tick.
type Snapshot struct {
	Tick     int             `json:"tick"`
	Coverage float64         `json:"coverage"`
	Finished bool            `json:"finished"`
	Robots   []RobotSnapshot `json:"robots"`
}

// Snapshot captures the current tick. withMaps adds each robot's knowledge
// grid as floor plan rows.
func (w *World) Snapshot(withMaps bool) Snapshot {
	snap := Snapshot{
		Tick:     w.tick,
		Coverage: w.tracker.Coverage(),
		Finished: w.finished,
	}
	for _, m := range w.team {
		pos := m.Robot.Position()
		rs := RobotSnapshot{
			ID:        m.Robot.ID(),
			X:         pos.X,
			Y:         pos.Y,
			Heading:   m.Robot.Heading(),
			State:     m.Explorer.State().String(),
			DoorState: m.Explorer.DoorState().String(),
			Colliding: m.Robot.IsColliding(),
			Doorways:  len(m.Explorer.Doorways()),
		}
		if wp, ok := m.Explorer.Waypoint(); ok {
			rs.Waypoint = wp.String()
		}
		if withMaps {
			rs.Map = strings.Split(m.Robot.Known().String(), "\n")
		}
		snap.Robots = append(snap.Robots, rs)
	}
	return snap
}
