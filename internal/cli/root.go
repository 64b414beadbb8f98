// Package cli builds the Cobra command tree for cmd/partitioner: thin
// handlers over the internal/service façade, the same division of
// responsibility the teacher draws between its HTTP handlers and
// internal/service.
package cli

import (
	"fmt"

	"github.com/froemosen/focuspartitioner/internal/config"
	"github.com/froemosen/focuspartitioner/internal/service"
	"github.com/spf13/cobra"
)

// app bundles the one Simulation a CLI invocation operates on, along
// with the flag values Cobra populates before RunE fires.
type app struct {
	sim *service.Simulation
	cfg config.Config

	trials   int
	workers  int
	cfgFlags configFlags
}

// configFlags mirrors internal/config.Config's tunables as pflag
// destinations; zero values mean "flag not set, keep the default".
type configFlags struct {
	focuses       int
	strategy      string
	maxLoadFactor float64
	cellExponent  int
	neighbors     int
	seed          int64
	metricsAddr   string
}

// NewRoot builds the root `partitioner` command and its subcommands.
func NewRoot() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "partitioner",
		Short:         "Randomized focus-placement partitioning simulator",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().IntVar(&a.cfgFlags.focuses, "focuses", 0, "number of focuses F (default 1)")
	root.PersistentFlags().StringVar(&a.cfgFlags.strategy, "strategy", "", "placement strategy: player-positions or bounding-box")
	root.PersistentFlags().Float64Var(&a.cfgFlags.maxLoadFactor, "max-load-factor", 0, "max comfortable load factor percent")
	root.PersistentFlags().IntVar(&a.cfgFlags.cellExponent, "cell-exponent", 0, "spatial index cell size exponent")
	root.PersistentFlags().IntVar(&a.cfgFlags.neighbors, "neighbors", 0, "K nearest neighbors precomputed per player")
	root.PersistentFlags().Int64Var(&a.cfgFlags.seed, "seed", 0, "RNG seed; 0 means time-seeded")
	root.PersistentFlags().StringVar(&a.cfgFlags.metricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on, empty disables it")

	root.AddCommand(a.loadCommand(), a.runCommand(), a.reportCommand())
	return root
}

// resolveConfig builds the effective config.Config from defaults,
// PARTITIONER_* environment overrides, and any flags the user actually
// set on the command line, in that order of increasing precedence.
func (a *app) resolveConfig(cmd *cobra.Command) config.Config {
	cfg := config.Load(config.Default())

	if cmd.Flags().Changed("focuses") {
		cfg.NumberOfFocuses = a.cfgFlags.focuses
	}
	if cmd.Flags().Changed("strategy") {
		cfg.Strategy = config.Strategy(a.cfgFlags.strategy)
	}
	if cmd.Flags().Changed("max-load-factor") {
		cfg.MaxComfortableLoadFactor = a.cfgFlags.maxLoadFactor
	}
	if cmd.Flags().Changed("cell-exponent") {
		cfg.CellSizeExponent = uint(a.cfgFlags.cellExponent)
	}
	if cmd.Flags().Changed("neighbors") {
		cfg.NeighborCount = a.cfgFlags.neighbors
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = a.cfgFlags.seed
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.MetricsAddr = a.cfgFlags.metricsAddr
	}

	a.cfg = cfg
	return cfg
}

// ensureSimulation lazily builds the Simulation for this invocation
// once the effective config is known.
func (a *app) ensureSimulation(cmd *cobra.Command) error {
	cfg := a.resolveConfig(cmd)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("partitioner: %w", err)
	}
	a.sim = service.New(cfg)
	return nil
}
