package sim

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/Iron-Ham/minotaur/internal/config"
	"github.com/Iron-Ham/minotaur/internal/event"
	"github.com/Iron-Ham/minotaur/internal/explore"
	"github.com/Iron-Ham/minotaur/internal/grid"
	"github.com/Iron-Ham/minotaur/internal/logging"
	"github.com/Iron-Ham/minotaur/internal/mailbox"
	"github.com/Iron-Ham/minotaur/internal/occupancy"
	"github.com/Iron-Ham/minotaur/internal/scenario"
)

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger shared by the world and every explorer.
func WithLogger(l *logging.Logger) Option {
	return func(w *World) { w.logger = l }
}

// WithBus publishes simulation and exploration events to b.
func WithBus(b *event.Bus) Option {
	return func(w *World) { w.bus = b }
}

// WithTrace records every delivered message to s.
func WithTrace(s *mailbox.Store) Option {
	return func(w *World) { w.trace = s }
}

// Member pairs a simulated robot with the explorer driving it.
type Member struct {
	Robot    *Robot
	Explorer *explore.Explorer
}

// World is one simulation run. It is not safe for concurrent use.
type World struct {
	scenario *scenario.Scenario
	cfg      config.Config
	truth    *occupancy.Grid
	team     []Member
	mail     *mailbox.Mailbox
	tracker  *Tracker

	logger *logging.Logger
	bus    *event.Bus
	trace  *mailbox.Store

	tick     int
	finished bool
}

// New builds a world from a validated scenario.
func New(sc *scenario.Scenario, cfg *config.Config, opts ...Option) (*World, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	truth, err := sc.World()
	if err != nil {
		return nil, err
	}

	w := &World{
		scenario: sc,
		cfg:      *cfg,
		truth:    truth,
		tracker:  NewTracker(truth),
		logger:   logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(w)
	}

	mailOpts := []mailbox.Option{
		mailbox.WithSeed(cfg.Simulation.Seed),
		mailbox.WithShuffle(cfg.Simulation.ShuffleMessages),
		mailbox.WithDuplicateRate(cfg.Simulation.DuplicateRate),
	}
	if w.bus != nil {
		mailOpts = append(mailOpts, mailbox.WithBus(w.bus))
	}
	if w.trace != nil {
		mailOpts = append(mailOpts, mailbox.WithStore(w.trace))
	}
	w.mail = mailbox.New(mailOpts...)

	params := explore.ParamsFromConfig(cfg.Exploration, len(sc.Robots))
	exOpts := []explore.Option{explore.WithLogger(w.logger)}
	if w.bus != nil {
		exOpts = append(exOpts, explore.WithBus(w.bus))
	}

	spawns := slices.SortedFunc(slices.Values(sc.Robots), func(a, b scenario.Spawn) int {
		return cmp.Compare(a.ID, b.ID)
	})
	for _, s := range spawns {
		r := NewRobot(s.ID, s.Tile(), s.Heading, truth, w.mail)
		r.Observe(cfg.Exploration.VisionRadius)
		w.tracker.Record(r.Known().Visible())
		w.team = append(w.team, Member{Robot: r, Explorer: explore.New(r, params, exOpts...)})
	}

	w.logger.Info("simulation ready",
		"scenario", sc.Name,
		"robots", len(w.team),
		"floor", truth.Count(grid.Open),
	)
	return w, nil
}

// Scenario returns the scenario the world was built from.
func (w *World) Scenario() *scenario.Scenario { return w.scenario }

// Truth returns the ground truth grid.
func (w *World) Truth() *occupancy.Grid { return w.truth }

// Team returns the robots in id order.
func (w *World) Team() []Member { return w.team }

// Tick returns the number of ticks simulated.
func (w *World) Tick() int { return w.tick }

// Coverage returns the observed fraction of the floor.
func (w *World) Coverage() float64 { return w.tracker.Coverage() }

// Finished reports whether the run has stopped.
func (w *World) Finished() bool { return w.finished }

// AllDone reports whether every explorer has reached its terminal state.
func (w *World) AllDone() bool {
	for _, m := range w.team {
		if !m.Explorer.State().IsTerminal() {
			return false
		}
	}
	return true
}

// Step runs one tick and reports whether the run continues.
func (w *World) Step() bool {
	if w.finished {
		return false
	}
	w.tick++

	if err := w.mail.Deliver(w.tick); err != nil {
		w.logger.Warn("message trace write failed", "tick", w.tick, "error", err)
	}
	for _, m := range w.team {
		m.Explorer.Update()
	}
	for _, m := range w.team {
		m.Robot.advance()
	}
	if w.slamTick() {
		for _, m := range w.team {
			m.Robot.Observe(w.cfg.Exploration.VisionRadius)
			w.tracker.Record(m.Robot.Known().Visible())
		}
	}

	coverage := w.tracker.Coverage()
	w.publish(event.NewSimulationTickEvent(w.tick, coverage))

	allDone := w.AllDone()
	if allDone || w.tick >= w.cfg.Simulation.MaxTicks {
		w.finished = true
		w.logger.Info("simulation finished",
			"tick", w.tick,
			"coverage", coverage,
			"all_done", allDone,
		)
		w.publish(event.NewSimulationFinishedEvent(w.tick, coverage, allDone))
	}
	return !w.finished
}

func (w *World) slamTick() bool {
	interval := w.cfg.Exploration.SlamUpdateInterval
	return interval <= 1 || w.tick%interval == 0
}

// Run steps the world until it finishes or ctx is cancelled. A positive
// interval paces the ticks; otherwise they run back to back.
func (w *World) Run(ctx context.Context, interval time.Duration) Result {
	if interval <= 0 {
		for ctx.Err() == nil && w.Step() {
		}
		return w.Result()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return w.Result()
		case <-ticker.C:
			if !w.Step() {
				return w.Result()
			}
		}
	}
}

func (w *World) publish(ev event.Event) {
	if w.bus != nil {
		w.bus.Publish(ev)
	}
}
