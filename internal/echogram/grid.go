package echogram

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// axisTolerance is the per-element tolerance used when deciding whether two
// vertical axes are already identical and interpolation can be skipped.
const axisTolerance = 1e-8

// Grid is a processed echosounder channel: one or more named 2D sample
// arrays indexed [ping][sample], the ping time axis and a single vertical
// axis (range or depth). The array named after DataType is the live array.
type Grid struct {
	// ChannelID lists the source channel identifiers that contributed to
	// this grid; combining grids merges the lists.
	ChannelID []string
	// Frequency is the transducer frequency in Hz.
	Frequency float64

	// SampleThickness is the vertical extent of one sample in meters,
	// thickness = sample interval (s) * sound speed (m/s) / 2.
	SampleThickness float64
	// SampleOffset is the number of samples the first row of data is offset
	// from the transducer face. Bookkeeping only; never applied to the data.
	SampleOffset int

	dataType DataType
	c        *Container
}

// New returns an empty grid for the given channel(s), frequency and data
// type. Axes and sample data are attached with SetData.
func New(channelID []string, frequency float64, dataType DataType) *Grid {
	return &Grid{
		ChannelID: append([]string(nil), channelID...),
		Frequency: frequency,
		dataType:  dataType,
		c:         NewContainer(),
	}
}

// DataType returns the grid's current data type. Converting between log and
// linear units changes it.
func (g *Grid) DataType() DataType { return g.dataType }

// NPings returns the number of pings in the grid.
func (g *Grid) NPings() int { return g.c.NPings() }

// NSamples returns the number of samples per ping.
func (g *Grid) NSamples() int { return g.c.NSamples() }

// PingTime returns the ping time axis. The slice is owned by the grid.
func (g *Grid) PingTime() []time.Time { return g.c.PingTime }

// Container exposes the underlying storage layer, e.g. to attach per-ping
// navigation attributes.
func (g *Grid) Container() *Container { return g.c }

// Samples returns the live sample array, the one named after DataType.
func (g *Grid) Samples() [][]float64 { return g.c.Grid(string(g.dataType)) }

// Axis returns the vertical axis kind and values. ErrMissingAxis is returned
// when neither range nor depth has been attached.
func (g *Grid) Axis() (AxisKind, []float64, error) {
	if v := g.c.SampleAttr(string(RangeAxis)); v != nil {
		return RangeAxis, v, nil
	}
	if v := g.c.SampleAttr(string(DepthAxis)); v != nil {
		return DepthAxis, v, nil
	}
	return "", nil, ErrMissingAxis
}

// SetData attaches the ping time axis, the vertical axis and the live sample
// array in one step. SampleThickness is derived from the axis spacing when
// it has not been set already.
func (g *Grid) SetData(times []time.Time, kind AxisKind, axis []float64, samples [][]float64) error {
	if len(samples) != len(times) {
		return fmt.Errorf("sample array has %d pings, ping time has %d", len(samples), len(times))
	}
	g.c.SetPingTime(append([]time.Time(nil), times...))
	if err := g.c.AddGrid(string(g.dataType), samples); err != nil {
		return fmt.Errorf("attaching sample data: %w", err)
	}
	if err := g.c.AddSampleAttr(string(kind), append([]float64(nil), axis...)); err != nil {
		return fmt.Errorf("attaching vertical axis: %w", err)
	}
	if g.SampleThickness == 0 && len(axis) > 1 {
		g.SampleThickness = stat.Mean(diff(axis), nil)
	}
	return nil
}

// Resize changes the grid dimensions to nPings by nSamples. The vertical
// axis is regenerated with the existing origin and SampleThickness spacing;
// new cells are NaN.
func (g *Grid) Resize(nPings, nSamples int) error {
	kind, axis, err := g.Axis()
	if err != nil {
		return err
	}

	origin := 0.0
	if len(axis) > 0 {
		origin = axis[0]
	}
	newAxis := make([]float64, nSamples)
	for i := range newAxis {
		newAxis[i] = float64(i)*g.SampleThickness + origin
	}

	g.c.Resize(nPings, nSamples)
	g.c.sampleAttrs[string(kind)] = newAxis

	// The ping time axis may have been grown or truncated by the raw
	// resize; the ping count follows it.
	g.c.nPings = len(g.c.PingTime)
	return nil
}

// Interpolate vertically resamples every 2D array onto newAxis. The grid is
// resized first when the axis lengths differ; when newAxis is element-wise
// within tolerance of the current axis the call is a no-op. Log-domain data
// is converted to linear for the resampling and back afterwards. Positions
// outside the original axis span become NaN; there is no extrapolation.
func (g *Grid) Interpolate(newAxis []float64) error {
	kind, axis, err := g.Axis()
	if err != nil {
		return err
	}
	oldAxis := append([]float64(nil), axis...)

	if len(newAxis) != g.NSamples() {
		if err := g.Resize(g.NPings(), len(newAxis)); err != nil {
			return err
		}
	} else if floats.EqualApprox(oldAxis, newAxis, axisTolerance) {
		return nil
	}

	if len(newAxis) > 1 {
		g.SampleThickness = stat.Mean(diff(newAxis), nil)
	}

	wasLog := g.dataType.IsLog()
	if wasLog {
		g.ToLinear()
	}

	// When the grid shrank, only the surviving prefix of each row is
	// available as interpolation input.
	m := min(len(oldAxis), g.NSamples())
	scratch := make([]float64, m)
	for _, name := range g.c.GridNames() {
		data := g.c.Grid(name)
		for ping := range data {
			row := data[ping]
			copy(scratch, row[:m])
			interpRow(row, newAxis, oldAxis[:m], scratch)
		}
	}

	if wasLog {
		g.ToLog()
	}

	g.c.sampleAttrs[string(kind)] = append([]float64(nil), newAxis...)
	return nil
}

// Copy returns a fully independent deep copy of the grid.
func (g *Grid) Copy() *Grid {
	dup := New(g.ChannelID, g.Frequency, g.dataType)
	dup.SampleThickness = g.SampleThickness
	dup.SampleOffset = g.SampleOffset
	dup.c = g.c.Copy()
	return dup
}

// EmptyLike returns a new grid with the same vertical axis, thickness,
// offset and data type, nPings rows of NaN samples. Pass nPings <= 0 to
// match the source ping count. Ping times are copied when the counts match
// and left at the zero time otherwise.
func (g *Grid) EmptyLike(nPings int) *Grid {
	return g.like(nPings, math.NaN())
}

// ZerosLike is EmptyLike with the sample arrays filled with zeros instead of
// NaN. Commonly used to build synthetic channels.
func (g *Grid) ZerosLike(nPings int) *Grid {
	return g.like(nPings, 0)
}

func (g *Grid) like(nPings int, fill float64) *Grid {
	if nPings <= 0 {
		nPings = g.NPings()
	}

	dup := New(g.ChannelID, g.Frequency, g.dataType)
	dup.SampleThickness = g.SampleThickness
	dup.SampleOffset = g.SampleOffset

	times := make([]time.Time, nPings)
	if nPings == g.NPings() {
		copy(times, g.c.PingTime)
	}
	dup.c.SetPingTime(times)

	data := make([][]float64, nPings)
	for i := range data {
		row := make([]float64, g.NSamples())
		for j := range row {
			row[j] = fill
		}
		data[i] = row
	}
	_ = dup.c.AddGrid(string(g.dataType), data)

	if kind, axis, err := g.Axis(); err == nil {
		_ = dup.c.AddSampleAttr(string(kind), append([]float64(nil), axis...))
	}
	return dup
}

// Resample returns values sampled at xOld linearly interpolated onto the
// positions xNew. xOld must be ascending. Positions outside the span of xOld
// map to NaN; there is no extrapolation.
func Resample(xNew, xOld, values []float64) []float64 {
	out := make([]float64, len(xNew))
	interpRow(out, xNew, xOld, values)
	return out
}

// interpRow linearly interpolates row values sampled at xOld onto the
// positions xNew, writing into dst. xOld must be ascending. Positions
// outside [xOld[0], xOld[last]] map to NaN.
func interpRow(dst, xNew, xOld, row []float64) {
	n := len(xOld)
	for i, x := range xNew {
		if n == 0 || x < xOld[0] || x > xOld[n-1] {
			dst[i] = math.NaN()
			continue
		}
		// Find the first knot at or beyond x.
		lo, hi := 0, n-1
		for lo < hi {
			mid := (lo + hi) / 2
			if xOld[mid] < x {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if xOld[lo] == x {
			dst[i] = row[lo]
			continue
		}
		x0, x1 := xOld[lo-1], xOld[lo]
		y0, y1 := row[lo-1], row[lo]
		dst[i] = y0 + (y1-y0)*(x-x0)/(x1-x0)
	}
}

func diff(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	d := make([]float64, len(values)-1)
	for i := range d {
		d[i] = values[i+1] - values[i]
	}
	return d
}
