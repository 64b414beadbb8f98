// Package report formats partitioner results as JSON, in the same
// "marshal, log on error" idiom as the teacher's internal/events
// package — adapted to return the error instead of swallowing it behind
// a nil return, since a CLI report command has no graceful way to
// recover from a silently empty payload.
package report

import (
	"encoding/json"
	"time"

	"github.com/froemosen/focuspartitioner/internal/geometry"
	"github.com/froemosen/focuspartitioner/internal/partition"
)

// FocusReport is one focus's contribution to a Snapshot report.
type FocusReport struct {
	Focus            geometry.Position   `json:"focus"`
	OwnPlayers       []int               `json:"ownPlayers"`
	ExternalInterest []int               `json:"externalInterest"`
	InnerHull        []geometry.Position `json:"innerHull"`
	OuterHull        []geometry.Position `json:"outerHull"`
	LoadFactor       float64             `json:"loadFactor"`
}

// SnapshotReport is the JSON shape of a full Snapshot.
type SnapshotReport struct {
	Focuses                        []FocusReport `json:"focuses"`
	NumberOfForwards               int           `json:"numberOfForwards"`
	IsWithinComfortableLFThreshold bool          `json:"isWithinComfortableLfThreshold"`
}

// Snapshot marshals s to JSON, emitting sorted player-index slices
// rather than raw bitset internals so the output is deterministic.
func Snapshot(s *partition.Snapshot) ([]byte, error) {
	rep := SnapshotReport{
		Focuses:                        make([]FocusReport, s.NumberOfFocuses()),
		NumberOfForwards:               s.NumberOfForwards,
		IsWithinComfortableLFThreshold: s.IsWithinComfortableLFThreshold,
	}
	for i := range rep.Focuses {
		rep.Focuses[i] = FocusReport{
			Focus:            s.Focuses[i],
			OwnPlayers:       s.SortedOwnPlayers(i),
			ExternalInterest: s.SortedExternalInterest(i),
			InnerHull:        s.InnerHull(i),
			OuterHull:        s.OuterHull(i),
			LoadFactor:       s.LoadFactor[i],
		}
	}
	return json.Marshal(rep)
}

// RunReport is the JSON shape of a batch of trials' counters.
type RunReport struct {
	NumberOfRuns     int     `json:"numberOfRuns"`
	NumberOfFailures int     `json:"numberOfFailures"`
	ElapsedSeconds   float64 `json:"totalElapsedSeconds"`
}

// Run marshals the run/failure/elapsed counters to JSON.
func Run(runs, failures int, elapsed time.Duration) ([]byte, error) {
	return json.Marshal(RunReport{
		NumberOfRuns:     runs,
		NumberOfFailures: failures,
		ElapsedSeconds:   elapsed.Seconds(),
	})
}
