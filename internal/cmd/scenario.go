package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/minotaur/internal/render"
	"github.com/Iron-Ham/minotaur/internal/scenario"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Inspect scenario files",
}

var scenarioShowCmd = &cobra.Command{
	Use:   "show [file|name]",
	Short: "Validate a scenario and draw its floor plan",
	Long: `Validate a scenario and draw its floor plan with the robots at their
spawn points. Without a file, shows the built-in scenario. The built-in
scenarios are two-rooms and shared-room.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScenarioShow,
}

var scenarioExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the built-in scenario as YAML",
	Long: `Write the built-in scenario as YAML, to a file or to stdout. Use it as
a starting point for your own floor plans.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScenarioExport,
}

func init() {
	rootCmd.AddCommand(scenarioCmd)
	scenarioCmd.AddCommand(scenarioShowCmd)
	scenarioCmd.AddCommand(scenarioExportCmd)
}

func runScenarioShow(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	sc, err := loadScenario(path)
	if err != nil {
		return err
	}
	world, err := sc.World()
	if err != nil {
		return err
	}

	var layers render.Layers
	for _, r := range sc.Robots {
		layers.Robots = append(layers.Robots, render.Marker{ID: r.ID, Position: r.Tile()})
	}
	printf(cmd, "%s\n", render.Title.Render(sc.Name))
	if sc.Description != "" {
		printf(cmd, "%s\n", render.Muted.Render(sc.Description))
	}
	printf(cmd, "%dx%d, %d robots\n\n", world.Width(), world.Height(), len(sc.Robots))
	printf(cmd, "%s\n", render.Map(world, layers, plainOutput()))
	return nil
}

func runScenarioExport(cmd *cobra.Command, args []string) error {
	out, err := scenario.Builtin().Marshal()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		printf(cmd, "%s", out)
		return nil
	}
	if err := os.WriteFile(args[0], out, 0o644); err != nil {
		return err
	}
	printf(cmd, "wrote %s\n", args[0])
	return nil
}
