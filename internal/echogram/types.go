package echogram

// DataType identifies what the live sample array of a Grid contains. The
// upper-case Sv/Sp variants are log-domain (dB) quantities, the lower-case
// sv/sp variants are their linear-domain equivalents. The remaining types
// have no log/linear pairing.
type DataType string

const (
	Sv               DataType = "Sv"
	SvLinear         DataType = "sv"
	Sp               DataType = "Sp"
	SpLinear         DataType = "sp"
	Angles           DataType = "angles"
	ElectricalAngles DataType = "electrical_angles"
	Power            DataType = "power"
)

// IsLog reports whether the data type is a log-domain (dB) quantity.
// Averaging or interpolating ratio quantities in log units is physically
// invalid, so operations that resample log-domain data convert to the linear
// domain first.
func (d DataType) IsLog() bool {
	return d == Sv || d == Sp
}

// Linear returns the linear-domain counterpart of a log data type. Types
// without a log/linear pairing are returned unchanged.
func (d DataType) Linear() DataType {
	switch d {
	case Sv:
		return SvLinear
	case Sp:
		return SpLinear
	}
	return d
}

// Log returns the log-domain counterpart of a linear data type. Types
// without a log/linear pairing are returned unchanged.
func (d DataType) Log() DataType {
	switch d {
	case SvLinear:
		return Sv
	case SpLinear:
		return Sp
	}
	return d
}

// AxisKind identifies the vertical axis of a Grid. A grid carries exactly
// one of the two at any time.
type AxisKind string

const (
	// RangeAxis measures distance from the transducer face in meters.
	RangeAxis AxisKind = "range"
	// DepthAxis measures distance below the surface in meters.
	DepthAxis AxisKind = "depth"
)
