package echogram

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Container is the generic storage layer under a Grid. It owns the named
// sample arrays and axis-aligned 1D attributes and provides the raw
// dimensional primitives (resize, row insert, index resolution, deep copy)
// that the grid operations build on. It knows nothing about data types,
// units or vertical-axis semantics.
type Container struct {
	// PingTime holds one timestamp per ping, conceptually monotonic
	// non-decreasing.
	PingTime []time.Time

	nPings   int
	nSamples int

	// grids holds the named [nPings][nSamples] sample arrays.
	grids map[string][][]float64
	// pingAttrs holds per-ping 1D attributes (length nPings), e.g. vessel
	// position or speed.
	pingAttrs map[string][]float64
	// sampleAttrs holds per-sample 1D attributes (length nSamples); the
	// vertical axis lives here.
	sampleAttrs map[string][]float64
}

// NewContainer returns an empty container with no registered attributes.
func NewContainer() *Container {
	return &Container{
		grids:       make(map[string][][]float64),
		pingAttrs:   make(map[string][]float64),
		sampleAttrs: make(map[string][]float64),
	}
}

// NPings returns the number of pings (rows).
func (c *Container) NPings() int { return c.nPings }

// NSamples returns the number of samples per ping (columns).
func (c *Container) NSamples() int { return c.nSamples }

// SetPingTime replaces the ping time axis and updates the ping count.
// Registered arrays are not resized; callers are responsible for keeping
// dimensions consistent.
func (c *Container) SetPingTime(times []time.Time) {
	c.PingTime = times
	c.nPings = len(times)
}

// AddGrid registers a named 2D sample array. The first registered grid fixes
// the container dimensions; later arrays must match them.
func (c *Container) AddGrid(name string, data [][]float64) error {
	if len(c.grids) == 0 && c.nSamples == 0 {
		c.nPings = len(data)
		if len(data) > 0 {
			c.nSamples = len(data[0])
		}
	}
	if len(data) != c.nPings {
		return fmt.Errorf("grid %q has %d pings, container has %d", name, len(data), c.nPings)
	}
	for i, row := range data {
		if len(row) != c.nSamples {
			return fmt.Errorf("grid %q ping %d has %d samples, container has %d", name, i, len(row), c.nSamples)
		}
	}
	c.grids[name] = data
	return nil
}

// Grid returns the named 2D array, or nil if not registered.
func (c *Container) Grid(name string) [][]float64 { return c.grids[name] }

// RemoveGrid drops a named 2D array from the registry.
func (c *Container) RemoveGrid(name string) { delete(c.grids, name) }

// GridNames returns the registered 2D array names in stable order.
func (c *Container) GridNames() []string {
	names := make([]string, 0, len(c.grids))
	for name := range c.grids {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddPingAttr registers a per-ping 1D attribute.
func (c *Container) AddPingAttr(name string, values []float64) error {
	if len(values) != c.nPings {
		return fmt.Errorf("ping attribute %q has %d values, container has %d pings", name, len(values), c.nPings)
	}
	c.pingAttrs[name] = values
	return nil
}

// AddSampleAttr registers a per-sample 1D attribute.
func (c *Container) AddSampleAttr(name string, values []float64) error {
	if len(values) != c.nSamples {
		return fmt.Errorf("sample attribute %q has %d values, container has %d samples", name, len(values), c.nSamples)
	}
	c.sampleAttrs[name] = values
	return nil
}

// PingAttr returns the named per-ping attribute, or nil.
func (c *Container) PingAttr(name string) []float64 { return c.pingAttrs[name] }

// SampleAttr returns the named per-sample attribute, or nil.
func (c *Container) SampleAttr(name string) []float64 { return c.sampleAttrs[name] }

// RemoveSampleAttr drops a per-sample attribute.
func (c *Container) RemoveSampleAttr(name string) { delete(c.sampleAttrs, name) }

// PingAttrNames returns the registered per-ping attribute names in stable order.
func (c *Container) PingAttrNames() []string {
	names := make([]string, 0, len(c.pingAttrs))
	for name := range c.pingAttrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SampleAttrNames returns the registered per-sample attribute names in stable order.
func (c *Container) SampleAttrNames() []string {
	names := make([]string, 0, len(c.sampleAttrs))
	for name := range c.sampleAttrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resize changes the container dimensions. Existing values are preserved
// where they overlap the new shape; new cells are filled with NaN, new ping
// times with the zero time. Per-sample attributes other than callers'
// vertical axis are NaN-extended as well; the vertical axis itself is
// regenerated by the Grid layer.
func (c *Container) Resize(nPings, nSamples int) {
	for name, data := range c.grids {
		resized := make([][]float64, nPings)
		for i := range resized {
			row := nanRow(nSamples)
			if i < len(data) {
				copy(row, data[i])
			}
			resized[i] = row
		}
		c.grids[name] = resized
	}

	times := make([]time.Time, nPings)
	copy(times, c.PingTime)
	c.PingTime = times

	for name, values := range c.pingAttrs {
		c.pingAttrs[name] = resize1D(values, nPings)
	}
	for name, values := range c.sampleAttrs {
		c.sampleAttrs[name] = resize1D(values, nSamples)
	}

	c.nPings = nPings
	c.nSamples = nSamples
}

// InsertRows splices src's rows into the container starting at row index at,
// shifting existing rows at and after the insertion point later. Arrays or
// per-ping attributes present in only one of the two containers gain NaN
// filler on the other side. Sample counts must already match.
func (c *Container) InsertRows(at int, src *Container) error {
	if src.nSamples != c.nSamples {
		return fmt.Errorf("inserting %d-sample rows into %d-sample container", src.nSamples, c.nSamples)
	}
	if at < 0 || at > c.nPings {
		return fmt.Errorf("insert index %d out of range [0, %d]", at, c.nPings)
	}

	n := src.nPings
	for name, data := range c.grids {
		incoming := src.grids[name]
		rows := make([][]float64, 0, c.nPings+n)
		rows = append(rows, data[:at]...)
		for i := 0; i < n; i++ {
			if incoming != nil {
				rows = append(rows, append([]float64(nil), incoming[i]...))
			} else {
				rows = append(rows, nanRow(c.nSamples))
			}
		}
		rows = append(rows, data[at:]...)
		c.grids[name] = rows
	}

	times := make([]time.Time, 0, c.nPings+n)
	times = append(times, c.PingTime[:at]...)
	times = append(times, src.PingTime...)
	times = append(times, c.PingTime[at:]...)
	c.PingTime = times

	for name, values := range c.pingAttrs {
		incoming := src.pingAttrs[name]
		merged := make([]float64, 0, c.nPings+n)
		merged = append(merged, values[:at]...)
		for i := 0; i < n; i++ {
			if incoming != nil {
				merged = append(merged, incoming[i])
			} else {
				merged = append(merged, math.NaN())
			}
		}
		merged = append(merged, values[at:]...)
		c.pingAttrs[name] = merged
	}

	c.nPings += n
	return nil
}

// Rows extracts the given rows into a new container. Per-sample attributes
// are copied whole; nothing is shared with the original.
func (c *Container) Rows(indices []int) *Container {
	sub := NewContainer()
	sub.nSamples = c.nSamples
	sub.nPings = len(indices)

	sub.PingTime = make([]time.Time, len(indices))
	for k, i := range indices {
		sub.PingTime[k] = c.PingTime[i]
	}
	for name, data := range c.grids {
		rows := make([][]float64, len(indices))
		for k, i := range indices {
			rows[k] = append([]float64(nil), data[i]...)
		}
		sub.grids[name] = rows
	}
	for name, values := range c.pingAttrs {
		picked := make([]float64, len(indices))
		for k, i := range indices {
			picked[k] = values[i]
		}
		sub.pingAttrs[name] = picked
	}
	for name, values := range c.sampleAttrs {
		sub.sampleAttrs[name] = append([]float64(nil), values...)
	}
	return sub
}

// RowAtTime resolves the first row whose ping time is not before t. If every
// ping is earlier than t the ping count is returned.
func (c *Container) RowAtTime(t time.Time) int {
	return sort.Search(len(c.PingTime), func(i int) bool {
		return !c.PingTime[i].Before(t)
	})
}

// RowsBetween returns the indices of pings whose time falls in [start, end].
func (c *Container) RowsBetween(start, end time.Time) []int {
	var rows []int
	for i, t := range c.PingTime {
		if !t.Before(start) && !t.After(end) {
			rows = append(rows, i)
		}
	}
	return rows
}

// Copy returns a deep copy of the container; no storage is shared with the
// original.
func (c *Container) Copy() *Container {
	dup := NewContainer()
	dup.nPings = c.nPings
	dup.nSamples = c.nSamples
	dup.PingTime = append([]time.Time(nil), c.PingTime...)
	for name, data := range c.grids {
		rows := make([][]float64, len(data))
		for i, row := range data {
			rows[i] = append([]float64(nil), row...)
		}
		dup.grids[name] = rows
	}
	for name, values := range c.pingAttrs {
		dup.pingAttrs[name] = append([]float64(nil), values...)
	}
	for name, values := range c.sampleAttrs {
		dup.sampleAttrs[name] = append([]float64(nil), values...)
	}
	return dup
}

func nanRow(n int) []float64 {
	row := make([]float64, n)
	for i := range row {
		row[i] = math.NaN()
	}
	return row
}

func resize1D(values []float64, n int) []float64 {
	resized := nanRow(n)
	copy(resized, values)
	return resized
}
