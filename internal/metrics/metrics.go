// Package metrics carries the ambient observability stack forward from
// the teacher's websocket server: the same promauto-registered
// collector style, repointed at trial/run counters instead of
// connection/session counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Trial metrics
	RunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "partitioner_runs_total",
		Help: "Total number of randomized partitioning trials executed",
	})

	FailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "partitioner_failures_total",
		Help: "Total number of trials rejected for exceeding the load-factor cap",
	})

	ImprovementsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "partitioner_improvements_total",
		Help: "Total number of trials that replaced the best snapshot",
	})

	TrialDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "partitioner_trial_duration_seconds",
		Help:    "Wall-clock time spent inside a single randomize() trial",
		Buckets: prometheus.DefBuckets,
	})

	// Result-quality metrics
	BestForwards = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "partitioner_best_forwards",
		Help: "numberOfForwards of the current best snapshot",
	})

	LoadFactor = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "partitioner_load_factor_percent",
		Help:    "Per-focus load factor observed across accepted and rejected trials",
		Buckets: []float64{10, 25, 50, 75, 90, 100, 125, 150, 200},
	})

	// Dataset preparation metrics
	NeighborBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "partitioner_neighbor_build_duration_seconds",
		Help:    "Time spent building the per-player K-nearest-neighbor lists for a loaded dataset",
		Buckets: prometheus.DefBuckets,
	})

	DatasetSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "partitioner_dataset_size",
		Help: "Number of player positions currently loaded",
	})
)
