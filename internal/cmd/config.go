package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/minotaur/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or check minotaur configuration",
	Long: `View or check minotaur configuration.

Without arguments, displays the effective configuration. Values come from
defaults, the config file and MINOTAUR_* environment variables, in
increasing precedence.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration for invalid values",
	RunE:  runConfigValidate,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if viper.ConfigFileUsed() != "" {
		printf(cmd, "# config file: %s\n", viper.ConfigFileUsed())
	} else {
		printf(cmd, "# config file: (none - using defaults)\n")
	}

	settings := viper.AllSettings()
	delete(settings, "config")
	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	printf(cmd, "%s", out)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	printf(cmd, "configuration is valid (vision radius %d, door width %d, %d ticks)\n",
		cfg.Exploration.VisionRadius, cfg.Exploration.DoorWidth, cfg.Simulation.MaxTicks)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	if used := viper.ConfigFileUsed(); used != "" {
		printf(cmd, "%s\n", used)
		return nil
	}
	printf(cmd, "%s (not created)\n", config.ConfigFile())
	return nil
}
