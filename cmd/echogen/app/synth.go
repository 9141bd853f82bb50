package app

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/acoustic-survey/echogrid/internal/echogram"
)

const (
	layerStrength   = 25.0 // dB above the noise floor at the layer center
	bottomStrength  = -12.0
	bottomTailDecay = 6.0 // dB lost per meter into the seafloor
	blankBelow      = 10.0
)

// SynthesizeChannel builds one synthetic Sv channel: background noise, an
// optional scattering layer, an optional seafloor echo with a decaying tail,
// and sinusoidal vessel heave applied as a per-ping vertical shift. The
// returned grid is on a depth axis when heave is enabled.
func SynthesizeChannel(cfg ChannelConfig, start time.Time) (*echogram.Grid, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))

	times := make([]time.Time, cfg.Pings)
	for i := range times {
		times[i] = start.Add(time.Duration(float64(i) * cfg.PingInterval * float64(time.Second)))
	}

	axis := make([]float64, cfg.Samples)
	for i := range axis {
		axis[i] = float64(i) * cfg.SampleThickness
	}

	samples := make([][]float64, cfg.Pings)
	for ping := range samples {
		row := make([]float64, cfg.Samples)

		// The seafloor undulates slowly along the track.
		bottom := cfg.SeafloorDepth
		if bottom > 0 {
			bottom += 3 * math.Sin(2*math.Pi*float64(ping)/120)
		}

		for j, depth := range axis {
			sv := math.Pow(10, (cfg.NoiseFloor+rng.Float64()*3)/10)

			if cfg.LayerThickness > 0 {
				center := cfg.LayerDepth + 2*math.Sin(2*math.Pi*float64(ping)/60)
				sigma := cfg.LayerThickness / 2
				gain := layerStrength * math.Exp(-((depth-center)*(depth-center))/(2*sigma*sigma))
				sv += math.Pow(10, (cfg.NoiseFloor+gain+rng.Float64()*2)/10)
			}

			if bottom > 0 && depth >= bottom {
				sv += math.Pow(10, (bottomStrength-(depth-bottom)*bottomTailDecay)/10)
			}

			row[j] = 10 * math.Log10(sv)
		}
		samples[ping] = row
	}

	grid := echogram.New([]string{cfg.ChannelID}, cfg.Frequency, echogram.Sv)
	grid.SampleThickness = cfg.SampleThickness
	if err := grid.SetData(times, echogram.RangeAxis, axis, samples); err != nil {
		return nil, fmt.Errorf("assembling channel %s: %w", cfg.ChannelID, err)
	}

	// Samples well past the bottom echo carry no information; blank them the
	// same way a bottom-detection pass would.
	if cfg.SeafloorDepth > 0 {
		mask := echogram.NewSampleMask(grid)
		for ping := range mask.Sample {
			for j, depth := range axis {
				mask.Sample[ping][j] = depth > cfg.SeafloorDepth+blankBelow
			}
		}
		if err := grid.SetMask(mask, math.NaN()); err != nil {
			return nil, fmt.Errorf("blanking below-bottom samples: %w", err)
		}
	}

	if cfg.HeaveAmplitude > 0 {
		heave := make([]float64, cfg.Pings)
		for i := range heave {
			t := float64(i) * cfg.PingInterval
			heave[i] = cfg.HeaveAmplitude * math.Sin(2*math.Pi*t/cfg.HeavePeriod)
		}
		if err := grid.ShiftPings(heave, true); err != nil {
			return nil, fmt.Errorf("applying heave to channel %s: %w", cfg.ChannelID, err)
		}
	}

	return grid, nil
}
