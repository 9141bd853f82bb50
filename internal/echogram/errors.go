package echogram

import "errors"

// Contract errors returned by grid operations. All validation happens before
// any destructive mutation, so a failed operation leaves the grid in its
// prior state and callers may retry after correcting the input.
var (
	// ErrDataTypeMismatch is returned when data of one DataType is combined
	// with or compared against data of another.
	ErrDataTypeMismatch = errors.New("echogram: data type mismatch")

	// ErrAxisMismatch is returned when an operand's ping times or vertical
	// axis values differ from the grid's.
	ErrAxisMismatch = errors.New("echogram: axis values do not match")

	// ErrIncompatibleAxisKind is returned when a range-tagged operand meets a
	// depth-tagged grid or vice versa.
	ErrIncompatibleAxisKind = errors.New("echogram: incompatible vertical axis kind")

	// ErrMissingAxis is returned when a grid has neither a range nor a depth
	// axis but an operation requires one.
	ErrMissingAxis = errors.New("echogram: grid has neither range nor depth axis")
)
