// Package parser reconstructs tables from an extraction block graph.
//
// The package is pure: it performs no I/O and keeps no state between calls.
package parser

import "errors"

// ErrMalformedGraph indicates the block graph violates a structural assumption,
// such as a LINE without a CHILD relationship.
var ErrMalformedGraph = errors.New("malformed block graph")

// ErrOutOfRangeSpan indicates a merged cell references a coordinate that is
// not part of its table's grid.
var ErrOutOfRangeSpan = errors.New("merged cell span out of range")
