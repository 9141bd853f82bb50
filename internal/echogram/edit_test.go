package echogram

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeSource builds a source grid whose sample values (1000 + ping*100 +
// sample) and ping times are distinguishable from makeGrid's.
func makeSource(t *testing.T, dataType DataType, nPings, nSamples int) *Grid {
	t.Helper()

	src := makeGrid(t, dataType, nPings, nSamples)
	for i, row := range src.Samples() {
		for j := range row {
			row[j] = float64(1000 + i*100 + j)
		}
	}
	base := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)
	for i := range src.c.PingTime {
		src.c.PingTime[i] = base.Add(time.Duration(i) * time.Second)
	}
	return src
}

func TestReplace_RunFromIndex(t *testing.T) {
	g := makeGrid(t, Sv, 4, 3)
	src := makeSource(t, Sv, 2, 3)

	require.NoError(t, g.Replace(src, AtIndex(1)))

	assert.Equal(t, 4, g.NPings())
	assert.Equal(t, []float64{1000, 1001, 1002}, g.Samples()[1])
	assert.Equal(t, []float64{1100, 1101, 1102}, g.Samples()[2])
	// The run past the source's two pings is left alone.
	assert.Equal(t, []float64{300, 301, 302}, g.Samples()[3])

	assert.Equal(t, src.PingTime()[0], g.PingTime()[1])
	assert.Equal(t, src.PingTime()[1], g.PingTime()[2])
	assert.Equal(t, testTimes(4)[3], g.PingTime()[3])
}

func TestReplace_AtRows(t *testing.T) {
	g := makeGrid(t, Sv, 4, 3)
	src := makeSource(t, Sv, 2, 3)

	require.NoError(t, g.Replace(src, AtRows([]int{0, 3})))

	assert.Equal(t, []float64{1000, 1001, 1002}, g.Samples()[0])
	assert.Equal(t, []float64{100, 101, 102}, g.Samples()[1])
	assert.Equal(t, []float64{200, 201, 202}, g.Samples()[2])
	assert.Equal(t, []float64{1100, 1101, 1102}, g.Samples()[3])
}

func TestReplace_AtTime(t *testing.T) {
	g := makeGrid(t, Sv, 4, 3)
	src := makeSource(t, Sv, 1, 3)

	require.NoError(t, g.Replace(src, AtTime(g.PingTime()[2])))
	assert.Equal(t, []float64{1000, 1001, 1002}, g.Samples()[2])
	assert.Equal(t, []float64{300, 301, 302}, g.Samples()[3])
}

func TestReplace_NilSourceBlanksKeepingTimes(t *testing.T) {
	g := makeGrid(t, Sv, 4, 3)
	times := append([]time.Time(nil), g.PingTime()...)

	require.NoError(t, g.Replace(nil, AtRows([]int{1, 2})))

	for _, r := range []int{1, 2} {
		for _, v := range g.Samples()[r] {
			assert.True(t, math.IsNaN(v))
		}
	}
	assert.Equal(t, []float64{0, 1, 2}, g.Samples()[0])
	assert.Equal(t, times, g.PingTime())
}

func TestReplace_Validation(t *testing.T) {
	g := makeGrid(t, Sv, 4, 3)

	err := g.Replace(makeSource(t, Sp, 1, 3), AtIndex(0))
	assert.ErrorIs(t, err, ErrDataTypeMismatch)

	wrongFreq := makeSource(t, Sv, 1, 3)
	wrongFreq.Frequency = 120000
	assert.Error(t, g.Replace(wrongFreq, AtIndex(0)))

	assert.Error(t, g.Replace(makeSource(t, Sv, 1, 3), AtIndex(7)))
	assert.Error(t, g.Replace(makeSource(t, Sv, 1, 3), AtRows([]int{-1})))
}

func TestReplace_InterpolatesSourceWithoutMutatingIt(t *testing.T) {
	g := makeGrid(t, Angles, 2, 4)
	src := makeSource(t, Angles, 2, 4)
	for _, row := range src.Samples() {
		for j := range row {
			row[j] = 5
		}
	}
	src.c.sampleAttrs[string(RangeAxis)] = []float64{0.25, 0.75, 1.25, 1.75}

	require.NoError(t, g.Replace(src, AtIndex(0)))

	row := g.Samples()[0]
	// 0 m is above the source's first sample; no extrapolation.
	assert.True(t, math.IsNaN(row[0]))
	assert.InDelta(t, 5, row[1], 1e-12)
	assert.InDelta(t, 5, row[2], 1e-12)
	assert.InDelta(t, 5, row[3], 1e-12)

	// The caller's source is untouched.
	assert.Equal(t, 5.0, src.Samples()[0][0])
	assert.Equal(t, []float64{0.25, 0.75, 1.25, 1.75}, src.c.sampleAttrs[string(RangeAxis)])
}

func TestInsert_AfterIndex(t *testing.T) {
	g := makeGrid(t, Sv, 4, 3)
	src := makeSource(t, Sv, 2, 3)

	require.NoError(t, g.Insert(src, AtIndex(1)))

	require.Equal(t, 6, g.NPings())
	assert.Equal(t, []float64{100, 101, 102}, g.Samples()[1])
	assert.Equal(t, []float64{1000, 1001, 1002}, g.Samples()[2])
	assert.Equal(t, []float64{1100, 1101, 1102}, g.Samples()[3])
	assert.Equal(t, []float64{200, 201, 202}, g.Samples()[4])

	assert.Equal(t, src.PingTime()[0], g.PingTime()[2])
	assert.Equal(t, src.PingTime()[1], g.PingTime()[3])
}

func TestInsert_AtIndexBefore(t *testing.T) {
	g := makeGrid(t, Sv, 4, 3)
	src := makeSource(t, Sv, 1, 3)

	require.NoError(t, g.Insert(src, AtIndex(1), InsertAfter(false)))

	require.Equal(t, 5, g.NPings())
	assert.Equal(t, []float64{1000, 1001, 1002}, g.Samples()[1])
	assert.Equal(t, []float64{100, 101, 102}, g.Samples()[2])
}

func TestInsert_AtRows(t *testing.T) {
	g := makeGrid(t, Sv, 4, 3)
	src := makeSource(t, Sv, 2, 3)

	require.NoError(t, g.Insert(src, AtRows([]int{1, 4})))

	require.Equal(t, 6, g.NPings())
	assert.Equal(t, []float64{0, 1, 2}, g.Samples()[0])
	assert.Equal(t, []float64{1000, 1001, 1002}, g.Samples()[1])
	assert.Equal(t, []float64{100, 101, 102}, g.Samples()[2])
	assert.Equal(t, []float64{200, 201, 202}, g.Samples()[3])
	assert.Equal(t, []float64{1100, 1101, 1102}, g.Samples()[4])
	assert.Equal(t, []float64{300, 301, 302}, g.Samples()[5])
}

func TestInsert_Validation(t *testing.T) {
	g := makeGrid(t, Sv, 4, 3)

	assert.Error(t, g.Insert(nil, AtIndex(0)))
	assert.ErrorIs(t, g.Insert(makeSource(t, Sp, 1, 3), AtIndex(0)), ErrDataTypeMismatch)
	assert.Error(t, g.Insert(makeSource(t, Sv, 2, 3), AtRows([]int{1})))
	assert.Error(t, g.Insert(makeSource(t, Sv, 2, 3), AtRows([]int{3, 1})))
}

func TestInsertEmpty(t *testing.T) {
	g := makeGrid(t, Sv, 4, 3)
	times := []time.Time{
		time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 1, 14, 0, 1, 0, time.UTC),
	}

	require.NoError(t, g.InsertEmpty(times, AtIndex(0), InsertAfter(false)))

	require.Equal(t, 6, g.NPings())
	assert.Equal(t, times[0], g.PingTime()[0])
	assert.Equal(t, times[1], g.PingTime()[1])
	for _, r := range []int{0, 1} {
		for _, v := range g.Samples()[r] {
			assert.True(t, math.IsNaN(v))
		}
	}
	assert.Equal(t, []float64{0, 1, 2}, g.Samples()[2])
}

func TestPadTop(t *testing.T) {
	g := makeGrid(t, Sv, 2, 4)
	require.NoError(t, g.PadTop(2))

	assert.Equal(t, 6, g.NSamples())

	_, axis, err := g.Axis()
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -0.5, 0, 0.5, 1, 1.5}, axis)

	row := g.Samples()[1]
	assert.True(t, math.IsNaN(row[0]))
	assert.True(t, math.IsNaN(row[1]))
	assert.Equal(t, []float64{100, 101, 102, 103}, row[2:])
}
