package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/minotaur/internal/config"
	"github.com/Iron-Ham/minotaur/internal/logging"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View exploration logs",
	Long: `View and filter the JSON log written by a run with logging.dir set.

Examples:
  # Last 50 entries
  minotaur logs --dir ./logs

  # Everything robot 2 logged while auctioning
  minotaur logs --dir ./logs --robot 2 --state auctioning -n 0

  # Warnings and errors only
  minotaur logs --dir ./logs --level warn`,
	RunE: runLogs,
}

var (
	logsDir   string
	logsTail  int
	logsLevel string
	logsRobot int
	logsState string
	logsGrep  string
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().StringVar(&logsDir, "dir", "", "log directory (default: logging.dir)")
	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "number of entries to show (0 for all)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "minimum level (debug/info/warn/error)")
	logsCmd.Flags().IntVar(&logsRobot, "robot", 0, "only entries from this robot")
	logsCmd.Flags().StringVar(&logsState, "state", "", "only entries logged in this exploration state")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "only entries whose message contains this text")
}

func runLogs(cmd *cobra.Command, args []string) error {
	dir := logsDir
	if dir == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		dir = cfg.Logging.Dir
	}
	if dir == "" {
		return fmt.Errorf("no log directory: pass --dir or set logging.dir")
	}

	entries, err := logging.ReadLogs(dir)
	if err != nil {
		return err
	}
	entries = logging.FilterLogs(entries, logging.LogFilter{
		Level:           logsLevel,
		RobotID:         logsRobot,
		HasRobot:        cmd.Flags().Changed("robot"),
		State:           logsState,
		MessageContains: logsGrep,
	})
	if logsTail > 0 && len(entries) > logsTail {
		entries = entries[len(entries)-logsTail:]
	}
	for _, e := range entries {
		printf(cmd, "%s\n", formatLogEntry(e))
	}
	return nil
}

func formatLogEntry(e logging.LogEntry) string {
	var sb strings.Builder
	sb.WriteString(e.Timestamp.Format("15:04:05.000"))
	sb.WriteString(fmt.Sprintf(" %-5s", e.Level))
	switch {
	case e.HasRobot && e.State != "":
		sb.WriteString(fmt.Sprintf(" [robot %d %s]", e.RobotID, e.State))
	case e.HasRobot:
		sb.WriteString(fmt.Sprintf(" [robot %d]", e.RobotID))
	}
	sb.WriteString(" ")
	sb.WriteString(e.Message)
	for _, k := range slices.Sorted(maps.Keys(e.Attrs)) {
		sb.WriteString(fmt.Sprintf(" %s=%v", k, e.Attrs[k]))
	}
	return sb.String()
}
