package echogram

import (
	"fmt"
)

// Span selects a run of indices along one axis, start inclusive, stop
// exclusive. A zero Step means 1; a Stop of 0 or less means "to the end".
type Span struct {
	Start, Stop, Step int
}

func (s Span) indices(n int) []int {
	step := s.Step
	if step <= 0 {
		step = 1
	}
	stop := s.Stop
	if stop <= 0 || stop > n {
		stop = n
	}
	var idx []int
	for i := max(s.Start, 0); i < stop; i += step {
		idx = append(idx, i)
	}
	return idx
}

// Gather returns the live-array values selected by the mask as a flat
// sequence in row-major order. A ping mask is broadcast to full grid shape
// first, so every sample of a selected ping is included. The result is plain
// values, not a grid.
func (g *Grid) Gather(m *Mask) ([]float64, error) {
	sel, err := g.sampleSelection(m)
	if err != nil {
		return nil, err
	}
	data := g.Samples()
	var out []float64
	for i, row := range sel {
		for j, pick := range row {
			if pick {
				out = append(out, data[i][j])
			}
		}
	}
	return out, nil
}

// SetMask assigns value to every selected cell of every registered 2D array.
func (g *Grid) SetMask(m *Mask, value float64) error {
	sel, err := g.sampleSelection(m)
	if err != nil {
		return err
	}
	for _, name := range g.c.GridNames() {
		data := g.c.Grid(name)
		for i, row := range sel {
			for j, pick := range row {
				if pick {
					data[i][j] = value
				}
			}
		}
	}
	return nil
}

// SetMaskValues assigns values to the selected cells of every registered 2D
// array in row-major order. len(values) must equal the selection count.
func (g *Grid) SetMaskValues(m *Mask, values []float64) error {
	sel, err := g.sampleSelection(m)
	if err != nil {
		return err
	}
	if n := m.Count(); len(values) != n {
		return fmt.Errorf("mask selects %d cells, %d values given", n, len(values))
	}
	for _, name := range g.c.GridNames() {
		data := g.c.Grid(name)
		k := 0
		for i, row := range sel {
			for j, pick := range row {
				if pick {
					data[i][j] = values[k]
					k++
				}
			}
		}
	}
	return nil
}

// Slice returns a new, fully independent grid holding the selected pings and
// samples: every 2D array sliced on both axes, ping time on the ping axis,
// and every other 1D attribute on whichever axis its length matches. The
// derived grid's SampleOffset grows by sampleSel.Start so absolute origin
// bookkeeping survives.
func (g *Grid) Slice(pingSel, sampleSel Span) (*Grid, error) {
	pingIdx := pingSel.indices(g.NPings())
	sampleIdx := sampleSel.indices(g.NSamples())

	out := New(g.ChannelID, g.Frequency, g.dataType)
	out.SampleThickness = g.SampleThickness
	out.SampleOffset = g.SampleOffset + max(sampleSel.Start, 0)

	rows := g.c.Rows(pingIdx)
	out.c.SetPingTime(rows.PingTime)
	out.c.nSamples = len(sampleIdx)

	for _, name := range rows.GridNames() {
		data := rows.Grid(name)
		sliced := make([][]float64, len(data))
		for i, row := range data {
			picked := make([]float64, len(sampleIdx))
			for k, j := range sampleIdx {
				picked[k] = row[j]
			}
			sliced[i] = picked
		}
		out.c.grids[name] = sliced
	}
	for _, name := range rows.PingAttrNames() {
		out.c.pingAttrs[name] = rows.PingAttr(name)
	}
	for _, name := range rows.SampleAttrNames() {
		values := rows.SampleAttr(name)
		picked := make([]float64, len(sampleIdx))
		for k, j := range sampleIdx {
			picked[k] = values[j]
		}
		out.c.sampleAttrs[name] = picked
	}
	return out, nil
}

// SetSlice replaces the pings selected by pingSel with src's pings,
// equivalent to Replace with the row indices the span implies.
func (g *Grid) SetSlice(pingSel Span, src *Grid) error {
	return g.Replace(src, AtRows(pingSel.indices(g.NPings())))
}
