package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/minotaur/internal/config"
	"github.com/Iron-Ham/minotaur/internal/logging"
	"github.com/Iron-Ham/minotaur/internal/scenario"
	"github.com/Iron-Ham/minotaur/internal/sim"
	"github.com/Iron-Ham/minotaur/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Step through a simulation in an interactive viewer",
	Long: `Open an interactive viewer on a simulation. The map shows what the
focused robot knows; the sidebar lists every robot's state.

Keys: space pause, n step, tab next robot, +/- speed, ? help, q quit.

When a scenario file is given, saving it restarts the simulation with
the new floor plan.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringP("scenario", "s", "", "scenario file (default: built-in two rooms)")
	watchCmd.Flags().IntP("ticks", "t", 0, "tick budget (default: simulation.max_ticks)")
	watchCmd.Flags().Int64("seed", 0, "message shuffling seed (default: simulation.seed)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	simFlags(cmd, cfg)

	path := scenarioPath(cmd, cfg)
	sc, err := loadScenario(path)
	if err != nil {
		return err
	}

	// The viewer owns the terminal, so logs only go to a file.
	logger := logging.NopLogger()
	if cfg.Logging.Enabled && cfg.Logging.Dir != "" {
		if logger, err = logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level); err != nil {
			return err
		}
	}
	defer func() { _ = logger.Close() }()

	build := func(s *scenario.Scenario) (*sim.World, error) {
		return sim.New(s, cfg, sim.WithLogger(logger))
	}
	world, err := build(sc)
	if err != nil {
		return err
	}

	app := tui.New(world, build, cfg.Simulation.TickInterval())
	if path != "" {
		w, err := scenario.NewWatcher(path, app.Reload)
		if err != nil {
			return err
		}
		w.Start()
		defer w.Stop()
	}
	return app.Run()
}
