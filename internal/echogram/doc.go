// Package echogram stores and manipulates 2D echosounder sample data along
// with the 1D arrays that define the horizontal and vertical axes of that
// data. The horizontal axis is ping time, the vertical axis is range from the
// transducer face or depth below the surface. Sample values are float64 and
// NaN marks an absent sample.
//
// A Grid holds one or more named [n_pings][n_samples] sample arrays. Exactly
// one of them is "live" at any time, named after the grid's DataType. Editing
// operations (Insert, Replace, ShiftPings, Interpolate) keep every registered
// array and both axes consistent, interpolating incoming data onto the grid's
// vertical axis where needed.
//
// Grids are not safe for concurrent use; callers must serialize access.
package echogram
