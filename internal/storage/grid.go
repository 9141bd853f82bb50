package storage

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/acoustic-survey/echogrid/internal/echogram"
)

// BuildGrid drains the iterator and assembles the pings into a single
// echogram grid. Pings recorded with different vertical extents are resampled
// onto one common axis spanning the union of the per-ping axes, at the first
// ping's sample thickness. Mixed data types or axis kinds within one channel
// are contract violations.
func BuildGrid(ctx context.Context, iter *PingIterator) (*echogram.Grid, error) {
	var recs []*PingRecord
	for iter.Next(ctx) {
		recs = append(recs, iter.Current())
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("reading pings: %w", err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("channel contains no pings")
	}

	first := recs[0]

	minStart := math.Inf(1)
	maxEnd := math.Inf(-1)
	for _, r := range recs {
		if r.DataType != first.DataType {
			return nil, fmt.Errorf("channel mixes %s and %s pings: %w",
				first.DataType, r.DataType, echogram.ErrDataTypeMismatch)
		}
		if r.AxisKind != first.AxisKind {
			return nil, fmt.Errorf("channel mixes %s and %s pings: %w",
				first.AxisKind, r.AxisKind, echogram.ErrIncompatibleAxisKind)
		}
		minStart = math.Min(minStart, r.AxisStart)
		maxEnd = math.Max(maxEnd, r.AxisStart+float64(len(r.Samples)-1)*r.SampleThickness)
	}

	thickness := first.SampleThickness
	if thickness <= 0 {
		return nil, fmt.Errorf("ping %d has non-positive sample thickness %f", first.ID, thickness)
	}

	nSamples := int(math.Round((maxEnd-minStart)/thickness)) + 1
	axis := make([]float64, nSamples)
	for i := range axis {
		axis[i] = minStart + float64(i)*thickness
	}

	// Ratio quantities must be resampled in the linear domain, same as the
	// core engine's axis operations.
	isLog := first.DataType.IsLog()

	times := make([]time.Time, len(recs))
	rows := make([][]float64, len(recs))
	for i, r := range recs {
		times[i] = r.PingTime

		if r.AxisStart == minStart && r.SampleThickness == thickness && len(r.Samples) == nSamples {
			rows[i] = append([]float64(nil), r.Samples...)
			continue
		}

		recAxis := make([]float64, len(r.Samples))
		for j := range recAxis {
			recAxis[j] = r.AxisStart + float64(j)*r.SampleThickness
		}

		values := r.Samples
		if isLog {
			values = make([]float64, len(r.Samples))
			for j, v := range r.Samples {
				values[j] = math.Pow(10, v/10)
			}
		}
		row := echogram.Resample(axis, recAxis, values)
		if isLog {
			for j, v := range row {
				row[j] = 10 * math.Log10(v)
			}
		}
		rows[i] = row
	}

	g := echogram.New([]string{first.ChannelID}, first.Frequency, first.DataType)
	g.SampleThickness = thickness
	g.SampleOffset = first.SampleOffset
	if err := g.SetData(times, first.AxisKind, axis, rows); err != nil {
		return nil, fmt.Errorf("assembling grid: %w", err)
	}
	return g, nil
}
