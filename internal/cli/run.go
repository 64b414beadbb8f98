package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/froemosen/focuspartitioner/internal/report"
	"github.com/froemosen/focuspartitioner/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// runCommand loads a positions file and drives trials to completion,
// printing the run counters. --workers > 1 switches to the concurrent
// runner described in §5.
func (a *app) runCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <input>",
		Short: "Load positions and run randomized placement trials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := a.loadAndRun(cmd, args[0])
			if err != nil {
				return err
			}
			out, err := report.Run(summary.Trials, summary.Failures, summary.Elapsed)
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

// loadAndRun is shared by run and report: resolve config, build the
// Simulation, optionally serve metrics, load the file, and execute the
// configured number of trials.
func (a *app) loadAndRun(cmd *cobra.Command, inputPath string) (service.RunSummary, error) {
	if err := a.ensureSimulation(cmd); err != nil {
		return service.RunSummary{}, err
	}

	if a.cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: a.cfg.MetricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("partitioner: metrics server: %v", err)
			}
		}()
		log.Printf("partitioner: metrics endpoint http://%s/metrics", a.cfg.MetricsAddr)
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return service.RunSummary{}, fmt.Errorf("partitioner: %w", err)
	}
	defer f.Close()

	ctx := context.Background()
	if err := a.sim.Load(ctx, f); err != nil {
		return service.RunSummary{}, fmt.Errorf("partitioner: %w", err)
	}

	if a.workers > 1 {
		return a.sim.RunConcurrent(ctx, a.trials, a.workers), nil
	}
	return a.sim.RunSequential(a.trials), nil
}
