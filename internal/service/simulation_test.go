package service

import (
	"context"
	"strings"
	"testing"

	"github.com/froemosen/focuspartitioner/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.NumberOfFocuses = 2
	cfg.NeighborCount = 3
	cfg.MaxComfortableLoadFactor = 1000
	cfg.Seed = 7
	return cfg
}

func samplePositions() string {
	return "0\t0\n1\t0\n0\t1\n1\t1\n20\t20\n21\t20\n20\t21\n"
}

func TestSimulationLoadAndRunSequential(t *testing.T) {
	sim := New(testConfig())
	require.NoError(t, sim.Load(context.Background(), strings.NewReader(samplePositions())))

	summary := sim.RunSequential(10)
	assert.Equal(t, 10, summary.Trials)
	require.NotNil(t, summary.Best)

	runs, _, _ := sim.Counts()
	assert.Equal(t, 10, runs)
}

func TestSimulationLoadRejectsMalformedInput(t *testing.T) {
	sim := New(testConfig())
	err := sim.Load(context.Background(), strings.NewReader("not-a-position\n"))
	assert.Error(t, err)
}

func TestSimulationRunConcurrentMatchesTrialCount(t *testing.T) {
	sim := New(testConfig())
	require.NoError(t, sim.Load(context.Background(), strings.NewReader(samplePositions())))

	summary := sim.RunConcurrent(context.Background(), 40, 4)
	assert.Equal(t, 40, summary.Trials)
	require.NotNil(t, summary.Best)

	count, _ := sim.Dataset()
	assert.Equal(t, 7, count)
}

func TestSimulationRunConcurrentSingleWorkerFallsBackSafely(t *testing.T) {
	sim := New(testConfig())
	require.NoError(t, sim.Load(context.Background(), strings.NewReader(samplePositions())))

	summary := sim.RunConcurrent(context.Background(), 5, 0)
	assert.Equal(t, 5, summary.Trials)
}
