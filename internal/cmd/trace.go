package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/minotaur/internal/bidding"
	"github.com/Iron-Ham/minotaur/internal/mailbox"
)

var traceCmd = &cobra.Command{
	Use:   "trace <dir>",
	Short: "Show the messages recorded by 'run --trace'",
	Long: `Show the message trace recorded by 'minotaur run --trace <dir>', grouped
by delivery tick.

Examples:
  # Only bids, from tick 100 on
  minotaur trace ./trace --kind bidding --since 100

  # Everything robot 1 broadcast, including duplicate deliveries
  minotaur trace ./trace --from 1 --duplicates -n 0`,
	Args: cobra.ExactArgs(1),
	RunE: runTrace,
}

var (
	traceKinds      []string
	traceFrom       int
	traceSince      int
	traceDuplicates bool
	traceTail       int
)

func init() {
	rootCmd.AddCommand(traceCmd)

	traceCmd.Flags().StringSliceVar(&traceKinds, "kind", nil, "only these message kinds (doorway_found, bidding)")
	traceCmd.Flags().IntVar(&traceFrom, "from", 0, "only messages from this robot")
	traceCmd.Flags().IntVar(&traceSince, "since", 0, "only deliveries at or after this tick")
	traceCmd.Flags().BoolVar(&traceDuplicates, "duplicates", false, "include duplicate deliveries")
	traceCmd.Flags().IntVarP(&traceTail, "tail", "n", 100, "number of deliveries to show (0 for all)")
}

func runTrace(cmd *cobra.Command, args []string) error {
	recs, err := mailbox.ReadTrace(args[0])
	if err != nil {
		return err
	}

	opts := mailbox.FilterOptions{
		From:       traceFrom,
		HasFrom:    cmd.Flags().Changed("from"),
		SinceTick:  traceSince,
		Duplicates: traceDuplicates,
		MaxRecords: traceTail,
	}
	for _, k := range traceKinds {
		opts.Kinds = append(opts.Kinds, bidding.Kind(k))
	}

	out := mailbox.FormatTrace(mailbox.FilterRecords(recs, opts))
	if out == "" {
		printf(cmd, "no messages\n")
		return nil
	}
	printf(cmd, "%s\n", out)
	return nil
}
