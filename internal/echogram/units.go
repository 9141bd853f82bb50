package echogram

import "math"

// ToLinear converts log-domain (dB) sample data to the linear domain:
// sv = 10^(Sv/10). The live array is renamed to the linear data type and the
// log array dropped. No-op for power, angle and already-linear types.
func (g *Grid) ToLinear() {
	if !g.dataType.IsLog() {
		return
	}
	g.convert(g.dataType.Linear(), func(v float64) float64 {
		return math.Pow(10, v/10)
	})
}

// ToLog converts linear-domain sample data back to dB: Sv = 10*log10(sv).
// Exact inverse of ToLinear up to floating point tolerance. No-op for types
// without a log counterpart or data already in the log domain.
func (g *Grid) ToLog() {
	if g.dataType != SvLinear && g.dataType != SpLinear {
		return
	}
	g.convert(g.dataType.Log(), func(v float64) float64 {
		return 10 * math.Log10(v)
	})
}

func (g *Grid) convert(to DataType, fn func(float64) float64) {
	from := g.dataType
	data := g.c.Grid(string(from))
	if data == nil {
		g.dataType = to
		return
	}

	converted := make([][]float64, len(data))
	for i, row := range data {
		out := make([]float64, len(row))
		for j, v := range row {
			out[j] = fn(v)
		}
		converted[i] = out
	}

	_ = g.c.AddGrid(string(to), converted)
	g.c.RemoveGrid(string(from))
	g.dataType = to
}
