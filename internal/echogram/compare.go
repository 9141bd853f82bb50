package echogram

import "fmt"

// Operand is the right-hand side of a grid comparison: a scalar applied to
// every cell or a peer grid compared element-by-element.
type Operand interface {
	float64 | *Grid
}

// Greater compares the grid's live array against other and returns the
// result as a sample mask. Neither operand is mutated. NaN cells compare
// false, as with float comparison everywhere else.
func Greater[T Operand](g *Grid, other T) (*Mask, error) {
	return compare(g, any(other), func(a, b float64) bool { return a > b })
}

// Less is the element-wise less-than comparison; see Greater.
func Less[T Operand](g *Grid, other T) (*Mask, error) {
	return compare(g, any(other), func(a, b float64) bool { return a < b })
}

// GreaterEqual is the element-wise >= comparison; see Greater.
func GreaterEqual[T Operand](g *Grid, other T) (*Mask, error) {
	return compare(g, any(other), func(a, b float64) bool { return a >= b })
}

// LessEqual is the element-wise <= comparison; see Greater.
func LessEqual[T Operand](g *Grid, other T) (*Mask, error) {
	return compare(g, any(other), func(a, b float64) bool { return a <= b })
}

// Equal is the element-wise == comparison; see Greater. NaN never equals
// NaN.
func Equal[T Operand](g *Grid, other T) (*Mask, error) {
	return compare(g, any(other), func(a, b float64) bool { return a == b })
}

// NotEqual is the element-wise != comparison; see Greater.
func NotEqual[T Operand](g *Grid, other T) (*Mask, error) {
	return compare(g, any(other), func(a, b float64) bool { return a != b })
}

func compare(g *Grid, other any, op func(a, b float64) bool) (*Mask, error) {
	result := NewSampleMask(g)
	data := g.Samples()

	switch rhs := other.(type) {
	case float64:
		for i, row := range data {
			for j, v := range row {
				result.Sample[i][j] = op(v, rhs)
			}
		}

	case *Grid:
		if err := g.checkPeer(rhs); err != nil {
			return nil, err
		}
		peer := rhs.Samples()
		for i, row := range data {
			for j, v := range row {
				result.Sample[i][j] = op(v, peer[i][j])
			}
		}
	}
	return result, nil
}

// checkPeer validates that another grid's data type, ping times and vertical
// axis are identical to this grid's, as required before element-wise
// combination.
func (g *Grid) checkPeer(o *Grid) error {
	if o.dataType != g.dataType {
		return fmt.Errorf("comparing %s data against %s data: %w", g.dataType, o.dataType, ErrDataTypeMismatch)
	}

	kind, axis, err := g.Axis()
	if err != nil {
		return err
	}
	oKind, oAxis, err := o.Axis()
	if err != nil {
		return err
	}
	if kind != oKind {
		return fmt.Errorf("%s grid against %s grid: %w", oKind, kind, ErrIncompatibleAxisKind)
	}

	if o.NPings() != g.NPings() || len(oAxis) != len(axis) {
		return fmt.Errorf("grid shapes differ: %w", ErrAxisMismatch)
	}
	for i, t := range o.c.PingTime {
		if !t.Equal(g.c.PingTime[i]) {
			return fmt.Errorf("peer ping times differ: %w", ErrAxisMismatch)
		}
	}
	for i, v := range oAxis {
		if v != axis[i] {
			return fmt.Errorf("peer %s values differ: %w", kind, ErrAxisMismatch)
		}
	}
	return nil
}
