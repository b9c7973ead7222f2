// Package spatial turns per-pixel metric vectors into square spatial
// maps. It validates only the perfect-square length constraint: the 2D
// meaning of a map depends entirely on the acquisition raster order,
// which this package records explicitly but cannot verify.
package spatial

import (
	"errors"
	"math"
)

// ErrNotSquare is returned when a vector cannot form an n x n grid.
var ErrNotSquare = errors.New("spatial: vector length is not a perfect square")

// Order identifies the raster fill order of a map.
type Order int

// RowMajor fills row by row: index i maps to (row i/n, col i%n). It is
// the only order produced by acquisition hardware seen so far.
const RowMajor Order = iota

// Map is an n x n spatial grid built from a per-pixel vector. It is a
// transient export-time view; the vector remains the primary artifact.
type Map struct {
	Side   int
	Values []float64
	Order  Order
}

// ToSquare reshapes a per-pixel vector into a square map in row-major
// order. It fails with [ErrNotSquare] unless the length is a perfect
// square. The vector is retained, not copied.
//
// The index-to-coordinate mapping is carried on the returned map (see
// [Map.Coord]) so callers never re-derive it from flattening
// conventions.
func ToSquare(vector []float64) (*Map, error) {
	n := len(vector)

	side := int(math.Sqrt(float64(n)))
	if side*side != n {
		return nil, ErrNotSquare
	}

	return &Map{Side: side, Values: vector, Order: RowMajor}, nil
}

// At returns the value at (row, col).
func (m *Map) At(row, col int) float64 {
	return m.Values[row*m.Side+col]
}

// Coord returns the (row, col) coordinate of pixel index i under the
// map's raster order.
func (m *Map) Coord(i int) (row, col int) {
	return i / m.Side, i % m.Side
}

// Index returns the pixel index of (row, col) under the map's raster
// order.
func (m *Map) Index(row, col int) int {
	return row*m.Side + col
}
