// Package cmd implements the minotaur command line.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Iron-Ham/minotaur/internal/config"
	"github.com/Iron-Ham/minotaur/internal/logging"
	"github.com/Iron-Ham/minotaur/internal/scenario"
)

var rootCmd = &cobra.Command{
	Use:   "minotaur",
	Short: "Decentralized multi-robot room exploration",
	Long: `Minotaur simulates a team of robots exploring an unknown building room
by room. Each robot follows walls, detects doorways and bids against its
teammates for who explores the next room, with no central coordinator.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/minotaur/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("MINOTAUR")
	// e.g. MINOTAUR_EXPLORATION_VISION_RADIUS for exploration.vision_radius
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = viper.ReadInConfig()
}

// newLogger opens the configured logger. Disabled logging yields a
// logger that discards everything.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	return logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
}

// loadScenario reads path, or returns the built-in scenario when path is
// empty or names one.
func loadScenario(path string) (*scenario.Scenario, error) {
	if path == "" {
		return scenario.Builtin(), nil
	}
	if sc, ok := scenario.Named(path); ok {
		return sc, nil
	}
	return scenario.Load(path)
}

// plainOutput reports whether stdout should get unstyled text.
func plainOutput() bool {
	return !term.IsTerminal(int(os.Stdout.Fd()))
}

// terminalWidth returns the width of stdout, or fallback when it is not a
// terminal.
func terminalWidth(fallback int) int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return fallback
}

func scenarioPath(cmd *cobra.Command, cfg *config.Config) string {
	if f := cmd.Flags().Lookup("scenario"); f != nil && f.Changed {
		return f.Value.String()
	}
	return cfg.Simulation.Scenario
}

func printf(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
