// Package service wraps a partition.Partitioner behind a mutex-guarded
// façade, the same shape as the teacher's GameState/GameSession: a
// single owner of mutable shared state exposing narrow locked
// accessors, with every mutation an external observer cares about
// mirrored into a metric.
package service

import (
	"context"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/froemosen/focuspartitioner/internal/config"
	"github.com/froemosen/focuspartitioner/internal/geometry"
	"github.com/froemosen/focuspartitioner/internal/input"
	"github.com/froemosen/focuspartitioner/internal/partition"
)

// RunSummary reports the outcome of a batch of trials.
type RunSummary struct {
	Trials       int
	Improvements int
	Failures     int
	Elapsed      time.Duration
	Best         *partition.Snapshot
}

// Simulation owns a Partitioner and makes it safe for a reader (a
// report command, a metrics scrape) to observe Best/Counts while a run
// is in progress.
type Simulation struct {
	mu sync.RWMutex
	p  *partition.Partitioner

	seq int64 // atomic, stamped onto snapshots during RunConcurrent's CAS
}

// New builds a Simulation around a freshly constructed Partitioner.
func New(cfg config.Config) *Simulation {
	return &Simulation{p: partition.New(cfg)}
}

// Load parses positions from r and (re)initializes the underlying
// Partitioner. ctx is honored only up to the point ReadPositions
// returns; parsing itself is not cancelable mid-line, matching the
// core's single-threaded, non-suspending-on-I/O contract (§5).
func (s *Simulation) Load(ctx context.Context, r io.Reader) error {
	positions, err := input.ReadPositions(r)
	if err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.p.Load(positions); err != nil {
		return err
	}
	log.Printf("simulation: loaded %d positions", len(positions))
	return nil
}

// RunSequential calls Randomize trials times in a tight loop, the
// default single-threaded mode the core spec describes exactly.
func (s *Simulation) RunSequential(trials int) RunSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := RunSummary{Trials: trials}
	_, failuresBefore, _ := s.p.Counts()
	start := time.Now()
	for i := 0; i < trials; i++ {
		improved, err := s.p.Randomize()
		if err != nil {
			log.Printf("simulation: trial %d: %v", i, err)
			break
		}
		if improved {
			summary.Improvements++
		}
	}
	summary.Elapsed = time.Since(start)
	_, failures, _ := s.p.Counts()
	summary.Failures = failures - failuresBefore
	summary.Best = s.p.Best()
	return summary
}

// RunConcurrent splits trials across workers goroutines, each driving
// its own private Partitioner clone over the same (immutable) dataset,
// and reduces results with a mutex-guarded compare-and-swap on the
// shared best snapshot, keyed by NumberOfForwards with ties broken by
// creation order — the §5-sanctioned parallel extension of the
// single-threaded core.
func (s *Simulation) RunConcurrent(ctx context.Context, trials, workers int) RunSummary {
	if workers < 1 {
		workers = 1
	}

	s.mu.RLock()
	base := s.p
	s.mu.RUnlock()

	clones := make([]*partition.Partitioner, workers)
	for i := range clones {
		clones[i] = base.Clone()
	}

	perWorker := trials / workers
	remainder := trials % workers

	var (
		wg           sync.WaitGroup
		reduceMu     sync.Mutex
		best         *partition.Snapshot
		improvements int64
		failuresSum  int64
	)

	for w := 0; w < workers; w++ {
		n := perWorker
		if w < remainder {
			n++
		}
		wg.Add(1)
		go func(worker *partition.Partitioner, trials int) {
			defer wg.Done()
			for i := 0; i < trials; i++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				improved, err := worker.Randomize()
				if err != nil {
					log.Printf("simulation: concurrent trial: %v", err)
					return
				}
				if !improved {
					continue
				}
				candidate := worker.Best()
				candidate.Seq = atomic.AddInt64(&s.seq, 1)

				reduceMu.Lock()
				if best == nil || betterSnapshot(candidate, best) {
					best = candidate
					improvements++
				}
				reduceMu.Unlock()
			}
		}(clones[w], n)
	}
	start := time.Now()
	wg.Wait()
	elapsed := time.Since(start)

	for _, c := range clones {
		_, f, _ := c.Counts()
		failuresSum += int64(f)
	}

	s.mu.Lock()
	if best != nil && (s.p.Best() == nil || betterSnapshot(best, s.p.Best())) {
		s.p.AdoptBest(best)
	}
	s.mu.Unlock()

	return RunSummary{
		Trials:       trials,
		Improvements: int(improvements),
		Failures:     int(failuresSum),
		Elapsed:      elapsed,
		Best:         s.Best(),
	}
}

// betterSnapshot reports whether candidate should replace current:
// fewer forwards wins outright; a tie is broken by creation order.
func betterSnapshot(candidate, current *partition.Snapshot) bool {
	if candidate.NumberOfForwards != current.NumberOfForwards {
		return candidate.NumberOfForwards < current.NumberOfForwards
	}
	return candidate.Seq < current.Seq
}

// Best returns the current best snapshot, or nil if no trial has been
// accepted since the last Load. Safe to call concurrently with a run in
// progress.
func (s *Simulation) Best() *partition.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.Best()
}

// Counts mirrors the teacher's GameState.GetCounts.
func (s *Simulation) Counts() (runs, failures int, elapsed time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.Counts()
}

// Dataset reports the size and normalized bounding box of the currently
// loaded positions, for diagnostic commands that run before any trial.
func (s *Simulation) Dataset() (count int, bbox *geometry.BoundingBox) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.p.Positions()), s.p.BoundingBox()
}
