package echogram

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToLinearToLogRoundTrip(t *testing.T) {
	g := makeGrid(t, Sv, 1, 3)
	copy(g.Samples()[0], []float64{0, -10, -30})

	g.ToLinear()
	assert.Equal(t, SvLinear, g.DataType())
	assert.Nil(t, g.Container().Grid(string(Sv)))

	row := g.Samples()[0]
	assert.InDelta(t, 1.0, row[0], 1e-12)
	assert.InDelta(t, 0.1, row[1], 1e-12)
	assert.InDelta(t, 0.001, row[2], 1e-12)

	g.ToLog()
	assert.Equal(t, Sv, g.DataType())
	assert.Nil(t, g.Container().Grid(string(SvLinear)))

	row = g.Samples()[0]
	assert.InDelta(t, 0.0, row[0], 1e-9)
	assert.InDelta(t, -10.0, row[1], 1e-9)
	assert.InDelta(t, -30.0, row[2], 1e-9)
}

func TestToLinearPreservesNaN(t *testing.T) {
	g := makeGrid(t, Sp, 1, 2)
	g.Samples()[0][1] = math.NaN()

	g.ToLinear()
	require.Equal(t, SpLinear, g.DataType())
	assert.True(t, math.IsNaN(g.Samples()[0][1]))
}

func TestToLinearNoOpForUnpairedTypes(t *testing.T) {
	g := makeGrid(t, Power, 1, 3)
	g.ToLinear()

	assert.Equal(t, Power, g.DataType())
	assert.Equal(t, []float64{0, 1, 2}, g.Samples()[0])
}

func TestToLogNoOpForLogData(t *testing.T) {
	g := makeGrid(t, Sv, 1, 3)
	g.ToLog()

	assert.Equal(t, Sv, g.DataType())
	assert.Equal(t, []float64{0, 1, 2}, g.Samples()[0])
}
