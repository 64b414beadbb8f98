package cli

import (
	"fmt"

	"github.com/froemosen/focuspartitioner/internal/report"
	"github.com/spf13/cobra"
)

// reportCommand loads a positions file, runs trials the same way run
// does, but prints the best snapshot in full instead of the run
// counters — focuses, hulls, own/external sets, and load factors.
func (a *app) reportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <input>",
		Short: "Load positions, run trials, and print the best snapshot as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := a.loadAndRun(cmd, args[0])
			if err != nil {
				return err
			}
			if summary.Best == nil {
				return fmt.Errorf("partitioner: no trial satisfied the load-factor cap")
			}
			out, err := report.Snapshot(summary.Best)
			if err != nil {
				return fmt.Errorf("partitioner: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().IntVar(&a.trials, "trials", 1000, "number of trials to run")
	cmd.Flags().IntVar(&a.workers, "workers", 1, "number of concurrent worker goroutines (1 = sequential)")
	return cmd
}
