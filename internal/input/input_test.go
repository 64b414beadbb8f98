package input

import (
	"strings"
	"testing"

	"github.com/froemosen/focuspartitioner/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPositions(t *testing.T) {
	r := strings.NewReader("1.5\t2.5\n3\t4\n")
	positions, err := ReadPositions(r)
	require.NoError(t, err)
	assert.Equal(t, []geometry.Position{{X: 1.5, Y: 2.5}, {X: 3, Y: 4}}, positions)
}

func TestReadPositionsIgnoresTrailingBlankLine(t *testing.T) {
	r := strings.NewReader("1\t2\n\n")
	positions, err := ReadPositions(r)
	require.NoError(t, err)
	assert.Len(t, positions, 1)
}

func TestReadPositionsBadFieldCount(t *testing.T) {
	r := strings.NewReader("1\t2\t3\n")
	_, err := ReadPositions(r)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Line)
}

func TestReadPositionsBadNumber(t *testing.T) {
	r := strings.NewReader("1\tabc\n")
	_, err := ReadPositions(r)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}
