// Package dataset defines the in-memory model for spatially resolved
// spectral data: a shared ascending wavelength axis plus one intensity
// column per spatial pixel, and the inclusive wavelength range used to
// window computations on it.
//
// A dataset is loaded once per run and never mutated afterwards. All
// derived artifacts (metric vectors, fit tables, spatial maps) are
// recomputed from it.
//
// # Usage
//
// Load a delimited text table (column 0 = wavelength, columns 1..N =
// per-pixel intensity, no header):
//
//	d, err := dataset.Load("sample.txt")
//	if err != nil { ... }
//	lo, hi := d.Window(dataset.Range{Min: 450, Max: 650})
//	// d.Wavelength[lo:hi] are the samples inside the window.
package dataset
