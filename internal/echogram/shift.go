package echogram

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ShiftPings shifts sample data vertically by an arbitrary, possibly
// per-ping amount (e.g. heave correction), resampling each ping onto a
// common target axis. vertShift is either a single element applied to every
// ping or one element per ping.
//
// When the shifts differ across pings the sample dimension grows by
// ceil(extent / SampleThickness) to make room, and log-domain data is
// resampled in the linear domain. A uniform shift moves the vertical axis
// without touching sample values.
//
// Set toDepth when converting from range to depth: the range axis is removed
// and replaced with a depth axis holding the shifted values. toDepth has no
// effect when the grid already carries a depth axis.
func (g *Grid) ShiftPings(vertShift []float64, toDepth bool) error {
	kind, axis, err := g.Axis()
	if err != nil {
		return err
	}
	if kind == DepthAxis {
		toDepth = false
	}

	shift := vertShift
	switch len(vertShift) {
	case 1:
		shift = make([]float64, g.NPings())
		for i := range shift {
			shift[i] = vertShift[0]
		}
	case g.NPings():
	default:
		return fmt.Errorf("vertical shift has %d elements, grid has %d pings", len(vertShift), g.NPings())
	}

	minShift := floats.Min(shift)
	extent := floats.Max(shift) - minShift
	oldAxis := append([]float64(nil), axis...)
	oldSamples := g.NSamples()

	if extent != 0 {
		if g.SampleThickness <= 0 {
			return fmt.Errorf("per-ping shift requires a positive sample thickness, have %f", g.SampleThickness)
		}
		grown := oldSamples + int(math.Ceil(extent/g.SampleThickness))
		if err := g.Resize(g.NPings(), grown); err != nil {
			return err
		}
	}

	newAxis := make([]float64, g.NSamples())
	origin := floats.Min(oldAxis) + minShift
	for i := range newAxis {
		newAxis[i] = float64(i)*g.SampleThickness + origin
	}

	if extent != 0 {
		wasLog := g.dataType.IsLog()
		if wasLog {
			g.ToLinear()
		}

		scratch := make([]float64, oldSamples)
		shifted := make([]float64, len(oldAxis))
		for _, name := range g.c.GridNames() {
			data := g.c.Grid(name)
			for ping := range data {
				row := data[ping]
				copy(scratch, row[:oldSamples])
				copy(shifted, oldAxis)
				floats.AddConst(shift[ping], shifted)
				interpRow(row, newAxis, shifted, scratch)
			}
		}

		if wasLog {
			g.ToLog()
		}
	}

	if toDepth {
		g.c.RemoveSampleAttr(string(RangeAxis))
		return g.c.AddSampleAttr(string(DepthAxis), newAxis)
	}
	g.c.sampleAttrs[string(kind)] = newAxis
	return nil
}
