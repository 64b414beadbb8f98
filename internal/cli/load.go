package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// loadCommand parses an input file and prints basic stats, so a caller
// can sanity-check a dataset before committing to a long run.
func (a *app) loadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <input>",
		Short: "Parse a positions file and report its size and bounds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureSimulation(cmd); err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("partitioner: %w", err)
			}
			defer f.Close()

			if err := a.sim.Load(context.Background(), f); err != nil {
				return fmt.Errorf("partitioner: %w", err)
			}

			count, bbox := a.sim.Dataset()
			fmt.Fprintf(cmd.OutOrStdout(), "loaded %d positions from %s, bounds %.2f x %.2f\n",
				count, args[0], bbox.Width(), bbox.Height())
			return nil
		},
	}
	return cmd
}
