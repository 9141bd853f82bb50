package echogram

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGather_SampleMask(t *testing.T) {
	g := makeGrid(t, Sv, 2, 3)
	m := NewSampleMask(g)
	m.Sample[0][1] = true
	m.Sample[1][2] = true

	values, err := g.Gather(m)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 102}, values)
	assert.Equal(t, 2, m.Count())
}

func TestGather_PingMaskBroadcasts(t *testing.T) {
	g := makeGrid(t, Sv, 3, 4)
	m := NewPingMask(g)
	m.Ping[1] = true

	values, err := g.Gather(m)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 101, 102, 103}, values)
}

func TestSetMask(t *testing.T) {
	g := makeGrid(t, Sv, 2, 3)
	m := NewPingMask(g)
	m.Ping[0] = true

	require.NoError(t, g.SetMask(m, math.NaN()))
	for _, v := range g.Samples()[0] {
		assert.True(t, math.IsNaN(v))
	}
	assert.Equal(t, []float64{100, 101, 102}, g.Samples()[1])
}

func TestSetMaskValues(t *testing.T) {
	g := makeGrid(t, Sv, 2, 3)
	m := NewSampleMask(g)
	m.Sample[0][0] = true
	m.Sample[1][1] = true

	require.NoError(t, g.SetMaskValues(m, []float64{-70, -71}))
	assert.Equal(t, -70.0, g.Samples()[0][0])
	assert.Equal(t, -71.0, g.Samples()[1][1])

	assert.Error(t, g.SetMaskValues(m, []float64{-70}))
}

func TestMask_StaleAxisRejected(t *testing.T) {
	g := makeGrid(t, Sv, 2, 3)
	m := NewSampleMask(g)
	m.Sample[0][0] = true

	// Growing the grid invalidates the mask's recorded axis.
	require.NoError(t, g.PadTop(1))
	_, err := g.Gather(m)
	assert.ErrorIs(t, err, ErrAxisMismatch)
}

func TestMask_AxisKindRejected(t *testing.T) {
	g := makeGrid(t, Sv, 2, 3)
	m := NewSampleMask(g)
	m.AxisKind = DepthAxis

	err := g.SetMask(m, 0)
	assert.ErrorIs(t, err, ErrIncompatibleAxisKind)
}

func TestMask_ForeignGridRejected(t *testing.T) {
	g := makeGrid(t, Sv, 2, 3)
	other := makeSource(t, Sv, 2, 3)

	_, err := g.Gather(NewSampleMask(other))
	assert.ErrorIs(t, err, ErrAxisMismatch)
}

func TestSlice(t *testing.T) {
	g := makeGrid(t, Sv, 4, 4)
	sub, err := g.Slice(Span{Start: 1, Stop: 3}, Span{Start: 1, Stop: 3})
	require.NoError(t, err)

	assert.Equal(t, 2, sub.NPings())
	assert.Equal(t, 2, sub.NSamples())
	assert.Equal(t, 1, sub.SampleOffset)
	assert.Equal(t, []float64{101, 102}, sub.Samples()[0])
	assert.Equal(t, []float64{201, 202}, sub.Samples()[1])
	assert.Equal(t, g.PingTime()[1:3], sub.PingTime())

	_, axis, err := sub.Axis()
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1}, axis)

	// Nothing is shared with the source grid.
	sub.Samples()[0][0] = -999
	assert.Equal(t, 101.0, g.Samples()[1][1])
}

func TestSlice_Step(t *testing.T) {
	g := makeGrid(t, Sv, 4, 4)
	sub, err := g.Slice(Span{Step: 2}, Span{})
	require.NoError(t, err)

	assert.Equal(t, 2, sub.NPings())
	assert.Equal(t, []float64{0, 1, 2, 3}, sub.Samples()[0])
	assert.Equal(t, []float64{200, 201, 202, 203}, sub.Samples()[1])
}

func TestSetSlice(t *testing.T) {
	g := makeGrid(t, Sv, 4, 3)
	src := makeSource(t, Sv, 2, 3)

	require.NoError(t, g.SetSlice(Span{Start: 1, Stop: 3}, src))
	assert.Equal(t, []float64{1000, 1001, 1002}, g.Samples()[1])
	assert.Equal(t, []float64{1100, 1101, 1102}, g.Samples()[2])
	assert.Equal(t, []float64{300, 301, 302}, g.Samples()[3])
}

func TestCompare_Scalar(t *testing.T) {
	g := makeGrid(t, Sv, 2, 3)
	g.Samples()[0][0] = math.NaN()

	m, err := Greater(g, 100.0)
	require.NoError(t, err)
	// Row 1 holds 100, 101, 102; only the last two exceed 100. NaN compares
	// false.
	assert.Equal(t, 2, m.Count())
	assert.False(t, m.Sample[0][0])
	assert.True(t, m.Sample[1][1])
	assert.True(t, m.Sample[1][2])

	m, err = LessEqual(g, 2.0)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Count())
}

func TestCompare_PeerGrid(t *testing.T) {
	g := makeGrid(t, Sv, 2, 3)
	peer := makeGrid(t, Sv, 2, 3)
	peer.Samples()[1][2] = 1000

	m, err := Less(g, peer)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Count())
	assert.True(t, m.Sample[1][2])

	m, err = Equal(g, peer)
	require.NoError(t, err)
	assert.Equal(t, 5, m.Count())

	m, err = NotEqual(g, peer)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Count())
}

func TestCompare_PeerValidation(t *testing.T) {
	g := makeGrid(t, Sv, 2, 3)

	_, err := Greater(g, makeGrid(t, Sp, 2, 3))
	assert.ErrorIs(t, err, ErrDataTypeMismatch)

	_, err = Greater(g, makeGrid(t, Sv, 3, 3))
	assert.ErrorIs(t, err, ErrAxisMismatch)

	depth := makeGrid(t, Sv, 2, 3)
	require.NoError(t, depth.ShiftPings([]float64{0}, true))
	_, err = Greater(g, depth)
	assert.ErrorIs(t, err, ErrIncompatibleAxisKind)
}

func TestCompare_ChainsIntoSetMask(t *testing.T) {
	g := makeGrid(t, Sv, 2, 3)

	m, err := GreaterEqual(g, 101.0)
	require.NoError(t, err)
	require.NoError(t, g.SetMask(m, math.NaN()))

	assert.Equal(t, []float64{0, 1, 2}, g.Samples()[0])
	assert.Equal(t, 100.0, g.Samples()[1][0])
	assert.True(t, math.IsNaN(g.Samples()[1][1]))
	assert.True(t, math.IsNaN(g.Samples()[1][2]))
}
