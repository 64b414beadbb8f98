package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempInput(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "positions.tsv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestRootHasExpectedSubcommands(t *testing.T) {
	root := NewRoot()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["load"])
	assert.True(t, names["run"])
	assert.True(t, names["report"])
}

func TestRunCommandEndToEnd(t *testing.T) {
	input := writeTempInput(t, "0\t0\n1\t0\n0\t1\n20\t20\n21\t20\n")

	root := NewRoot()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetArgs([]string{"run", input, "--focuses", "2", "--trials", "5", "--seed", "3"})

	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "numberOfRuns")
}

func TestLoadCommandReportsCounts(t *testing.T) {
	input := writeTempInput(t, "0\t0\n1\t1\n")

	root := NewRoot()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetArgs([]string{"load", input, "--focuses", "1"})

	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "loaded 2 positions")
}
