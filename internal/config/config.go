// Package config defines the partitioner's configuration surface: the
// tunable constants and run-time controls the engine is built from, kept
// out of process-wide state per the teacher's own split between
// config.LoadConfig and the rest of the service layer.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Strategy names a focus-placement strategy.
type Strategy string

const (
	PlayerPositions Strategy = "player-positions"
	BoundingBox     Strategy = "bounding-box"
)

const (
	// DefaultNeighborCount is K in the K-NN precomputation.
	DefaultNeighborCount = 100
	// DefaultProcMineMicros is processing time per own player per tick, in microseconds.
	DefaultProcMineMicros = 20
	// DefaultProcOtherMicros is processing time per external player per tick, in microseconds.
	DefaultProcOtherMicros = 1
	// DefaultSendFreqHz is the state-send frequency.
	DefaultSendFreqHz = 5
	// DefaultMaxComfortableLoadFactor is the acceptance cap, in percent.
	DefaultMaxComfortableLoadFactor = 50
	// DefaultCellSizeExponent is the grid cell side exponent (cell side = 2^e).
	DefaultCellSizeExponent = 13
)

// Config is the explicit configuration struct passed to partition.New and
// service.New. The partitioner never reads os.Getenv or any
// other process-wide state itself; only Load (below) does.
type Config struct {
	NumberOfFocuses          int
	Strategy                 Strategy
	MaxComfortableLoadFactor float64
	CellSizeExponent         uint
	NeighborCount            int
	ProcMineMicros           float64
	ProcOtherMicros          float64
	SendFreqHz               float64
	Seed                     int64
	MetricsAddr              string
}

// Default returns the configuration with every value at its documented
// default.
func Default() Config {
	return Config{
		NumberOfFocuses:          1,
		Strategy:                 PlayerPositions,
		MaxComfortableLoadFactor: DefaultMaxComfortableLoadFactor,
		CellSizeExponent:         DefaultCellSizeExponent,
		NeighborCount:            DefaultNeighborCount,
		ProcMineMicros:           DefaultProcMineMicros,
		ProcOtherMicros:          DefaultProcOtherMicros,
		SendFreqHz:               DefaultSendFreqHz,
	}
}

// Load overlays PARTITIONER_* environment variables onto a base Config,
// the same pattern the teacher's config.LoadConfig uses for PORT.
func Load(base Config) Config {
	cfg := base

	if v := os.Getenv("PARTITIONER_FOCUSES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.NumberOfFocuses = n
		}
	}
	if v := os.Getenv("PARTITIONER_STRATEGY"); v != "" {
		cfg.Strategy = Strategy(v)
	}
	if v := os.Getenv("PARTITIONER_MAX_LOAD_FACTOR"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MaxComfortableLoadFactor = f
		}
	}
	if v := os.Getenv("PARTITIONER_CELL_EXPONENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.CellSizeExponent = uint(n)
		}
	}
	if v := os.Getenv("PARTITIONER_NEIGHBORS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.NeighborCount = n
		}
	}
	if v := os.Getenv("PARTITIONER_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
	if v := os.Getenv("PARTITIONER_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}

	return cfg
}

// Validate reports whether the configuration is usable. partition.New
// does not check its Config itself; the CLI calls Validate before
// building a Simulation.
func (c Config) Validate() error {
	if c.NumberOfFocuses < 1 {
		return fmt.Errorf("config: number of focuses must be >= 1, got %d", c.NumberOfFocuses)
	}
	if c.Strategy != PlayerPositions && c.Strategy != BoundingBox {
		return fmt.Errorf("config: unknown strategy %q", c.Strategy)
	}
	if c.NeighborCount < 1 {
		return fmt.Errorf("config: neighbor count must be >= 1, got %d", c.NeighborCount)
	}
	return nil
}
