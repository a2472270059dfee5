package sim

import (
	"context"
	"testing"

	"github.com/Iron-Ham/minotaur/internal/config"
	"github.com/Iron-Ham/minotaur/internal/errors"
	"github.com/Iron-Ham/minotaur/internal/event"
	"github.com/Iron-Ham/minotaur/internal/grid"
	"github.com/Iron-Ham/minotaur/internal/mailbox"
	"github.com/Iron-Ham/minotaur/internal/scenario"
)

func TestNew_RejectsInvalidScenario(t *testing.T) {
	sc := scenario.Builtin()
	sc.Robots = nil
	if _, err := New(sc, config.Default()); !errors.Is(err, errors.ErrNoRobots) {
		t.Errorf("New() error = %v, want ErrNoRobots", err)
	}
}

func TestNew_ObservesAtSpawn(t *testing.T) {
	w, err := New(scenario.Builtin(), config.Default())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	team := w.Team()
	if len(team) != 2 || team[0].Robot.ID() != 1 || team[1].Robot.ID() != 2 {
		t.Fatalf("Team() = %v, want robots 1 and 2 in order", team)
	}
	if len(team[0].Robot.Known().Visible()) == 0 {
		t.Error("robots should observe their surroundings before the first tick")
	}
	if w.Coverage() <= 0 || w.Coverage() >= 1 {
		t.Errorf("Coverage() = %v, want partial coverage at spawn", w.Coverage())
	}
}

func TestStep_TickBudget(t *testing.T) {
	cfg := config.Default()
	cfg.Simulation.MaxTicks = 3

	bus := event.NewBus()
	var ticks []int
	var finished []event.SimulationFinishedEvent
	bus.Subscribe(event.TypeSimulationTick, func(ev event.Event) {
		ticks = append(ticks, ev.(event.SimulationTickEvent).Tick)
	})
	bus.Subscribe(event.TypeSimulationFinished, func(ev event.Event) {
		finished = append(finished, ev.(event.SimulationFinishedEvent))
	})

	w, err := New(scenario.Builtin(), cfg, WithBus(bus))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	steps := 0
	for w.Step() {
		steps++
	}
	if steps != 2 || w.Tick() != 3 || !w.Finished() {
		t.Errorf("steps=%d tick=%d finished=%v, want 2, 3, true", steps, w.Tick(), w.Finished())
	}
	if w.Step() {
		t.Error("Step() after the run finished should report false")
	}
	if len(ticks) != 3 || len(finished) != 1 || finished[0].AllDone {
		t.Errorf("ticks=%v finished=%v", ticks, finished)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	w, err := New(scenario.Builtin(), config.Default())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := w.Run(ctx, 0)
	if res.Ticks != 0 {
		t.Errorf("Ticks = %d, want 0", res.Ticks)
	}
}

func TestRun_BuiltinScenario(t *testing.T) {
	cfg := config.Default()
	cfg.Simulation.MaxTicks = 3000

	bus := event.NewBus()
	var coverage []float64
	bus.Subscribe(event.TypeSimulationTick, func(ev event.Event) {
		coverage = append(coverage, ev.(event.SimulationTickEvent).Coverage)
	})

	trace := mailbox.NewStore(t.TempDir())
	w, err := New(scenario.Builtin(), cfg, WithBus(bus), WithTrace(trace))
	if err != nil {
		t.Fatal(err)
	}
	res := w.Run(context.Background(), 0)

	if res.Ticks == 0 || res.Ticks > cfg.Simulation.MaxTicks {
		t.Errorf("Ticks = %d", res.Ticks)
	}
	if res.Coverage < 0.5 {
		t.Errorf("Coverage = %.2f, want at least half the floor", res.Coverage)
	}
	for i := 1; i < len(coverage); i++ {
		if coverage[i] < coverage[i-1] {
			t.Fatalf("coverage dropped at tick %d: %v -> %v", i+1, coverage[i-1], coverage[i])
		}
	}
	if len(res.Robots) != 2 {
		t.Errorf("Robots = %v", res.Robots)
	}
	if res.AllDone {
		for _, r := range res.Robots {
			if r.State != "done" {
				t.Errorf("robot %d state = %s with AllDone set", r.ID, r.State)
			}
		}
	}
	if res.MessagesDelivered < res.MessagesPosted {
		t.Errorf("delivered %d < posted %d", res.MessagesDelivered, res.MessagesPosted)
	}
}

func TestSnapshot(t *testing.T) {
	w, err := New(scenario.Builtin(), config.Default())
	if err != nil {
		t.Fatal(err)
	}
	w.Step()

	snap := w.Snapshot(true)
	if snap.Tick != 1 || len(snap.Robots) != 2 {
		t.Fatalf("Snapshot() = %+v", snap)
	}
	r := snap.Robots[0]
	if r.ID != 1 || r.State != "first_wall" || len(r.Map) != 12 {
		t.Errorf("robot snapshot = %+v", r)
	}
	if got := w.Snapshot(false).Robots[0].Map; got != nil {
		t.Errorf("Snapshot(false) included maps: %v", got)
	}
}

func TestTracker(t *testing.T) {
	truth := corridor()
	tr := NewTracker(truth)
	if tr.Coverage() != 0 {
		t.Errorf("Coverage() = %v, want 0", tr.Coverage())
	}
	r := NewRobot(1, grid.T(1, 1), 0, truth, mailbox.New())
	r.Observe(5)
	tr.Record(r.Known().Visible())
	if tr.Seen() != 3 || tr.Coverage() != 1 {
		t.Errorf("Seen()=%d Coverage()=%v, want 3 and 1", tr.Seen(), tr.Coverage())
	}
}
