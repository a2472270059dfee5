package cmd

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/minotaur/internal/config"
	"github.com/Iron-Ham/minotaur/internal/mailbox"
	"github.com/Iron-Ham/minotaur/internal/render"
	"github.com/Iron-Ham/minotaur/internal/sim"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation headless and print a summary",
	Long: `Run a simulation as fast as possible and print a summary of the run:
ticks, floor coverage, doorways found and every robot's final state.

Examples:
  # Run the built-in two-room scenario
  minotaur run

  # Run a scenario file and show every robot's final map
  minotaur run --scenario office.yaml --render

  # Two robots starting in the same room bid for the doorway
  minotaur run --scenario shared-room

  # Record every delivered message for 'minotaur trace'
  minotaur run --trace ./trace`,
	RunE: runRun,
}

var (
	runScenario string
	runTicks    int
	runSeed     int64
	runRender   bool
	runJSON     bool
	runTraceDir string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runScenario, "scenario", "s", "", "scenario file or built-in name (default: two-rooms)")
	runCmd.Flags().IntVarP(&runTicks, "ticks", "t", 0, "tick budget (default: simulation.max_ticks)")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "message shuffling seed (default: simulation.seed)")
	runCmd.Flags().BoolVar(&runRender, "render", false, "print every robot's final knowledge map")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "print the summary as JSON")
	runCmd.Flags().StringVar(&runTraceDir, "trace", "", "directory receiving a JSONL message trace")
}

// simFlags applies the simulation flags shared by run, watch and serve.
func simFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("ticks") {
		cfg.Simulation.MaxTicks, _ = cmd.Flags().GetInt("ticks")
	}
	if cmd.Flags().Changed("seed") {
		cfg.Simulation.Seed, _ = cmd.Flags().GetInt64("seed")
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	simFlags(cmd, cfg)

	sc, err := loadScenario(scenarioPath(cmd, cfg))
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	opts := []sim.Option{sim.WithLogger(logger)}
	if runTraceDir != "" {
		if err := os.MkdirAll(runTraceDir, 0o755); err != nil {
			return err
		}
		opts = append(opts, sim.WithTrace(mailbox.NewStore(runTraceDir)))
	}
	world, err := sim.New(sc, cfg, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	res := world.Run(ctx, 0)

	if runJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	printf(cmd, "%s\n", render.Summary(res))
	if runRender {
		printMaps(cmd, world)
	}
	return nil
}

func printMaps(cmd *cobra.Command, world *sim.World) {
	plain := plainOutput()
	width := terminalWidth(0)
	for i, m := range world.Team() {
		known := m.Robot.Known()
		printf(cmd, "\nrobot %d\n", m.Robot.ID())
		if width > 0 && known.Width() > width {
			printf(cmd, "%s\n", render.Muted.Render("(map wider than the terminal)"))
		}
		printf(cmd, "%s\n", render.Map(known, render.Focus(world.Team(), i), plain))
	}
}
