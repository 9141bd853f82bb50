package echogram

import (
	"fmt"
	"time"
)

// MaskKind tags what a mask selects over.
type MaskKind string

const (
	// PingMask selects whole pings; the boolean array is n_pings long.
	PingMask MaskKind = "ping"
	// SampleMask selects individual cells; the boolean array has the full
	// grid shape.
	SampleMask MaskKind = "sample"
)

// Mask is a boolean selector over a grid's pings or samples. A mask carries
// its own copies of the ping time and vertical axes it was built against so
// that compatibility with a grid can be validated at use time.
type Mask struct {
	Kind   MaskKind
	Ping   []bool   // set for PingMask
	Sample [][]bool // set for SampleMask

	PingTime []time.Time
	AxisKind AxisKind
	Axis     []float64 // nil for ping masks
}

// NewPingMask returns an all-false ping mask compatible with the grid.
func NewPingMask(like *Grid) *Mask {
	return &Mask{
		Kind:     PingMask,
		Ping:     make([]bool, like.NPings()),
		PingTime: append([]time.Time(nil), like.PingTime()...),
	}
}

// NewSampleMask returns an all-false sample mask compatible with the grid.
func NewSampleMask(like *Grid) *Mask {
	m := &Mask{
		Kind:     SampleMask,
		Sample:   make([][]bool, like.NPings()),
		PingTime: append([]time.Time(nil), like.PingTime()...),
	}
	for i := range m.Sample {
		m.Sample[i] = make([]bool, like.NSamples())
	}
	if kind, axis, err := like.Axis(); err == nil {
		m.AxisKind = kind
		m.Axis = append([]float64(nil), axis...)
	}
	return m
}

// Count returns the number of selected entries.
func (m *Mask) Count() int {
	n := 0
	switch m.Kind {
	case PingMask:
		for _, v := range m.Ping {
			if v {
				n++
			}
		}
	case SampleMask:
		for _, row := range m.Sample {
			for _, v := range row {
				if v {
					n++
				}
			}
		}
	}
	return n
}

// checkMask validates that the mask's recorded axes are identical to the
// grid's before it is used for selection.
func (g *Grid) checkMask(m *Mask) error {
	if len(m.PingTime) != g.NPings() {
		return fmt.Errorf("mask has %d pings, grid has %d: %w", len(m.PingTime), g.NPings(), ErrAxisMismatch)
	}
	for i, t := range m.PingTime {
		if !t.Equal(g.c.PingTime[i]) {
			return fmt.Errorf("mask ping times differ from grid ping times: %w", ErrAxisMismatch)
		}
	}

	if m.Axis == nil {
		return nil
	}
	kind, axis, err := g.Axis()
	if err != nil {
		return err
	}
	if m.AxisKind != kind {
		return fmt.Errorf("%s mask against %s grid: %w", m.AxisKind, kind, ErrIncompatibleAxisKind)
	}
	if len(m.Axis) != len(axis) {
		return fmt.Errorf("mask %s axis length %d, grid has %d: %w", kind, len(m.Axis), len(axis), ErrAxisMismatch)
	}
	for i, v := range m.Axis {
		if v != axis[i] {
			return fmt.Errorf("mask %s values differ from grid: %w", kind, ErrAxisMismatch)
		}
	}
	return nil
}

// sampleSelection broadcasts the mask to full grid shape: a ping mask
// selects every sample of each selected ping.
func (g *Grid) sampleSelection(m *Mask) ([][]bool, error) {
	if err := g.checkMask(m); err != nil {
		return nil, err
	}
	if m.Kind == SampleMask {
		return m.Sample, nil
	}
	sel := make([][]bool, g.NPings())
	for i := range sel {
		sel[i] = make([]bool, g.NSamples())
		if m.Ping[i] {
			for j := range sel[i] {
				sel[i][j] = true
			}
		}
	}
	return sel, nil
}
