package dataset

import (
	"errors"
	"sort"
)

var (
	ErrEmpty         = errors.New("dataset: no samples")
	ErrNoPixels      = errors.New("dataset: no pixel columns")
	ErrColumnLength  = errors.New("dataset: pixel column length does not match wavelength axis")
	ErrNotAscending  = errors.New("dataset: wavelength axis must be strictly ascending")
	ErrInvalidWindow = errors.New("dataset: window minimum exceeds maximum")
)

// Range is an inclusive wavelength window [Min, Max].
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether x lies within the range, bounds included.
func (r Range) Contains(x float64) bool {
	return x >= r.Min && x <= r.Max
}

// Valid reports whether Min <= Max.
func (r Range) Valid() bool {
	return r.Min <= r.Max
}

// Dataset holds one acquisition: a wavelength axis shared by all pixels
// and one intensity column per pixel, all of equal length.
//
// Pixel order is the column order of the source table. That order is the
// implicit spatial coordinate system consumed by the spatial package, so
// it must not be permuted.
type Dataset struct {
	Wavelength []float64
	Pixels     [][]float64
}

// New validates and wraps a wavelength axis and per-pixel intensity
// columns into a Dataset. The slices are retained, not copied.
func New(wavelength []float64, pixels [][]float64) (*Dataset, error) {
	if len(wavelength) == 0 {
		return nil, ErrEmpty
	}

	if len(pixels) == 0 {
		return nil, ErrNoPixels
	}

	for i := 1; i < len(wavelength); i++ {
		if wavelength[i] <= wavelength[i-1] {
			return nil, ErrNotAscending
		}
	}

	for _, col := range pixels {
		if len(col) != len(wavelength) {
			return nil, ErrColumnLength
		}
	}

	return &Dataset{Wavelength: wavelength, Pixels: pixels}, nil
}

// Samples returns the number of wavelength samples.
func (d *Dataset) Samples() int {
	return len(d.Wavelength)
}

// PixelCount returns the number of spatial pixels.
func (d *Dataset) PixelCount() int {
	return len(d.Pixels)
}

// Window returns the half-open index range [lo, hi) of wavelength
// samples lying inside r (inclusive on both ends). An empty
// intersection yields lo == hi.
func (d *Dataset) Window(r Range) (lo, hi int) {
	lo = sort.SearchFloat64s(d.Wavelength, r.Min)
	hi = sort.Search(len(d.Wavelength), func(i int) bool {
		return d.Wavelength[i] > r.Max
	})

	if hi < lo {
		hi = lo
	}

	return lo, hi
}
