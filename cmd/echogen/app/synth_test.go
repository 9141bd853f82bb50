package app

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acoustic-survey/echogrid/internal/echogram"
)

func TestSynthesizeChannel(t *testing.T) {
	cfg := ChannelConfig{
		ChannelID:       "GPT 38 kHz",
		Frequency:       38000,
		Pings:           20,
		Samples:         60,
		SampleThickness: 0.5,
		PingInterval:    1,
		SeafloorDepth:   10,
		LayerDepth:      5,
		LayerThickness:  2,
		NoiseFloor:      -90,
	}
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	grid, err := SynthesizeChannel(cfg, start)
	require.NoError(t, err)

	assert.Equal(t, 20, grid.NPings())
	assert.Equal(t, 60, grid.NSamples())
	assert.Equal(t, echogram.Sv, grid.DataType())
	assert.Equal(t, []string{"GPT 38 kHz"}, grid.ChannelID)

	kind, axis, err := grid.Axis()
	require.NoError(t, err)
	assert.Equal(t, echogram.RangeAxis, kind)
	assert.Equal(t, 0.0, axis[0])

	times := grid.PingTime()
	assert.Equal(t, start, times[0])
	assert.Equal(t, start.Add(time.Second), times[1])

	for _, row := range grid.Samples() {
		// Above the layer there is only noise near the configured floor.
		assert.InDelta(t, cfg.NoiseFloor, row[0], 6)
		// Everything well past the seafloor is blanked.
		assert.True(t, math.IsNaN(row[59]))
	}
}

func TestSynthesizeChannel_HeaveProducesDepthAxis(t *testing.T) {
	cfg := ChannelConfig{
		ChannelID:       "ch",
		Frequency:       38000,
		Pings:           16,
		Samples:         40,
		SampleThickness: 0.5,
		PingInterval:    1,
		NoiseFloor:      -90,
		HeaveAmplitude:  1.5,
		HeavePeriod:     8,
	}

	grid, err := SynthesizeChannel(cfg, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	kind, _, err := grid.Axis()
	require.NoError(t, err)
	assert.Equal(t, echogram.DepthAxis, kind)

	// The shift extent makes room for the deepest ping.
	assert.Greater(t, grid.NSamples(), 40)
}

func TestSynthesizeChannel_Deterministic(t *testing.T) {
	cfg := ChannelConfig{
		ChannelID:       "ch",
		Frequency:       38000,
		Pings:           4,
		Samples:         10,
		SampleThickness: 0.5,
		PingInterval:    1,
		NoiseFloor:      -90,
		Seed:            7,
	}
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	a, err := SynthesizeChannel(cfg, start)
	require.NoError(t, err)
	b, err := SynthesizeChannel(cfg, start)
	require.NoError(t, err)

	assert.Equal(t, a.Samples(), b.Samples())
}
