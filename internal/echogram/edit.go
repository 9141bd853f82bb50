package echogram

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Target selects the pings an edit operation applies to. Exactly one of
// AtIndex, AtTime or AtRows should be supplied.
type Target func(*target)

type target struct {
	index       *int
	time        *time.Time
	rows        []int
	insertAfter bool
}

// AtIndex targets the ping at the given row index.
func AtIndex(i int) Target {
	return func(t *target) { t.index = &i }
}

// AtTime targets the first ping whose time is not before ts.
func AtTime(ts time.Time) Target {
	return func(t *target) { t.time = &ts }
}

// AtRows targets an explicit, ascending set of row indices. The rows do not
// have to be consecutive. For Insert the indices are positions in the
// resulting grid.
func AtRows(rows []int) Target {
	return func(t *target) { t.rows = rows }
}

// InsertAfter controls whether Insert places the new pings immediately after
// (true, the default) or at (false) the resolved row.
func InsertAfter(after bool) Target {
	return func(t *target) { t.insertAfter = after }
}

func resolveTarget(g *Grid, opts []Target) target {
	t := target{insertAfter: true}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func (t target) startRow(g *Grid) int {
	switch {
	case t.index != nil:
		return *t.index
	case t.time != nil:
		return g.c.RowAtTime(*t.time)
	}
	return 0
}

// Replace overwrites existing pings in place with src's pings; it never
// changes the ping count. The replaced rows are the explicit AtRows indices,
// or a run starting at the AtIndex/AtTime row. Source pings beyond the
// targeted capacity are discarded. src's vertical axis is interpolated onto
// the grid's axis first (a no-op when the axes already match); src itself is
// never mutated.
//
// A nil src blanks the targeted rows: sample values become NaN while the
// ping times are kept.
func (g *Grid) Replace(src *Grid, opts ...Target) error {
	t := resolveTarget(g, opts)

	var rows []int
	if t.rows != nil {
		rows = append([]int(nil), t.rows...)
	} else {
		start := t.startRow(g)
		if start < 0 || start >= g.NPings() {
			return fmt.Errorf("replace start %d out of range [0, %d)", start, g.NPings())
		}
		for i := start; i < g.NPings(); i++ {
			rows = append(rows, i)
		}
	}
	for _, r := range rows {
		if r < 0 || r >= g.NPings() {
			return fmt.Errorf("replace row %d out of range [0, %d)", r, g.NPings())
		}
	}

	if src == nil {
		src = g.EmptyLike(len(rows))
		for k, r := range rows {
			src.c.PingTime[k] = g.c.PingTime[r]
		}
	}

	if src.dataType != g.dataType {
		return fmt.Errorf("replacing %s data with %s data: %w", g.dataType, src.dataType, ErrDataTypeMismatch)
	}
	if src.Frequency != g.Frequency {
		return fmt.Errorf("replacing %.0f Hz data with %.0f Hz data", g.Frequency, src.Frequency)
	}

	src, err := g.alignSource(src)
	if err != nil {
		return err
	}

	// Replace never grows the grid; extra source pings are dropped.
	if len(rows) > src.NPings() {
		rows = rows[:src.NPings()]
	}

	for _, name := range g.c.GridNames() {
		dst := g.c.Grid(name)
		in := src.c.Grid(name)
		for k, r := range rows {
			if in != nil && k < len(in) {
				copy(dst[r], in[k])
			} else {
				copy(dst[r], nanRow(g.NSamples()))
			}
		}
	}
	for k, r := range rows {
		g.c.PingTime[r] = src.c.PingTime[k]
	}

	g.ChannelID = mergeChannelIDs(g.ChannelID, src.ChannelID)
	return nil
}

// Insert splices src's pings into the grid, shifting existing pings at and
// after the insertion point later and growing the ping count by src's. The
// insertion point is the AtIndex/AtTime row (after it unless
// InsertAfter(false)), or the explicit AtRows positions in the resulting
// grid, ascending. src's vertical axis is interpolated onto the grid's axis
// first; src itself is never mutated.
//
// Insert requires a source; to insert blank pings use InsertEmpty, which
// takes the ping times the synthesized rows cannot otherwise get.
func (g *Grid) Insert(src *Grid, opts ...Target) error {
	if src == nil {
		return fmt.Errorf("insert requires a source grid; use InsertEmpty for blank pings")
	}
	if src.dataType != g.dataType {
		return fmt.Errorf("inserting %s data into %s data: %w", src.dataType, g.dataType, ErrDataTypeMismatch)
	}
	if src.Frequency != g.Frequency {
		return fmt.Errorf("inserting %.0f Hz data into %.0f Hz data", src.Frequency, g.Frequency)
	}

	t := resolveTarget(g, opts)

	src, err := g.alignSource(src)
	if err != nil {
		return err
	}

	if t.rows != nil {
		if len(t.rows) != src.NPings() {
			return fmt.Errorf("insert index array has %d entries, source has %d pings", len(t.rows), src.NPings())
		}
		for k, r := range t.rows {
			if k > 0 && r <= t.rows[k-1] {
				return fmt.Errorf("insert index array must be ascending")
			}
			if err := g.c.InsertRows(clampRow(r, g.NPings()), src.c.Rows([]int{k})); err != nil {
				return err
			}
		}
	} else {
		at := t.startRow(g)
		if t.insertAfter {
			at++
		}
		if err := g.c.InsertRows(clampRow(at, g.NPings()), src.c); err != nil {
			return err
		}
	}

	g.ChannelID = mergeChannelIDs(g.ChannelID, src.ChannelID)
	return nil
}

// InsertEmpty inserts n all-NaN pings carrying the given ping times.
func (g *Grid) InsertEmpty(times []time.Time, opts ...Target) error {
	blank := g.EmptyLike(len(times))
	copy(blank.c.PingTime, times)
	return g.Insert(blank, opts...)
}

// PadTop grows the sample dimension by n, shifting all sample data n rows
// toward higher indices and filling the new leading samples with NaN. The
// vertical axis is extended backward by n steps of SampleThickness. This is
// a whole-sample operation; no interpolation is performed.
func (g *Grid) PadTop(n int) error {
	kind, _, err := g.Axis()
	if err != nil {
		return err
	}

	oldSamples := g.NSamples()
	if err := g.Resize(g.NPings(), oldSamples+n); err != nil {
		return err
	}

	axis := g.c.SampleAttr(string(kind))
	origin := axis[0]
	for i := range axis {
		axis[i] = float64(i-n)*g.SampleThickness + origin
	}

	for _, name := range g.c.GridNames() {
		for _, row := range g.c.Grid(name) {
			copy(row[n:], row[:oldSamples])
			for i := 0; i < n; i++ {
				row[i] = math.NaN()
			}
		}
	}
	return nil
}

// alignSource returns src resampled onto g's vertical axis. src is copied
// first when resampling is actually needed, so the caller's grid is left
// untouched either way.
func (g *Grid) alignSource(src *Grid) (*Grid, error) {
	_, axis, err := g.Axis()
	if err != nil {
		return nil, err
	}
	_, srcAxis, err := src.Axis()
	if err != nil {
		return nil, err
	}

	if len(srcAxis) == len(axis) && floats.EqualApprox(srcAxis, axis, axisTolerance) {
		return src, nil
	}

	aligned := src.Copy()
	if err := aligned.Interpolate(axis); err != nil {
		return nil, fmt.Errorf("interpolating source onto target axis: %w", err)
	}
	return aligned, nil
}

func mergeChannelIDs(a, b []string) []string {
	merged := append([]string(nil), a...)
	for _, id := range b {
		seen := false
		for _, have := range merged {
			if have == id {
				seen = true
				break
			}
		}
		if !seen {
			merged = append(merged, id)
		}
	}
	return merged
}

func clampRow(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
