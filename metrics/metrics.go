package metrics

import (
	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/specmap/dataset"
)

// IntegratedIntensity returns the sum of intensity samples inside r for
// each pixel, in dataset pixel order. An empty window intersection
// yields 0 for every pixel.
func IntegratedIntensity(d *dataset.Dataset, r dataset.Range) []float64 {
	lo, hi := d.Window(r)
	out := make([]float64, d.PixelCount())

	for p, col := range d.Pixels {
		out[p] = floats.Sum(col[lo:hi])
	}

	return out
}

// WeightedMeanWavelength returns the intensity-weighted centroid
// wavelength inside r for each pixel:
//
//	wm = sum(wl_i * I_i) / sum(I_i)
//
// A pixel whose intensity sum inside the window is zero yields NaN;
// the division is performed unguarded so the degenerate value
// propagates instead of raising.
func WeightedMeanWavelength(d *dataset.Dataset, r dataset.Range) []float64 {
	lo, hi := d.Window(r)
	out := make([]float64, d.PixelCount())

	wl := d.Wavelength[lo:hi]
	product := make([]float64, hi-lo)

	for p, col := range d.Pixels {
		window := col[lo:hi]

		var num, den float64

		if len(window) > 0 {
			vecmath.MulBlock(product, wl, window)
			num = floats.Sum(product)
			den = floats.Sum(window)
		}

		out[p] = num / den
	}

	return out
}

// FWHM returns the full width at half maximum inside r for each pixel.
//
// The half-maximum crossing is resolved at sample resolution: the width
// is the wavelength distance between the first and last samples whose
// intensity reaches half the window maximum. No sub-sample
// interpolation is applied, so the value is quantized to the sampling
// grid. A pixel with no sample at or above half maximum (degenerate or
// all-zero spectrum) yields 0.
func FWHM(d *dataset.Dataset, r dataset.Range) []float64 {
	lo, hi := d.Window(r)
	out := make([]float64, d.PixelCount())

	wl := d.Wavelength[lo:hi]

	for p, col := range d.Pixels {
		window := col[lo:hi]
		if len(window) == 0 {
			continue
		}

		half := floats.Max(window) / 2

		first, last := -1, -1

		for i, v := range window {
			if v >= half {
				if first < 0 {
					first = i
				}

				last = i
			}
		}

		if first >= 0 {
			out[p] = wl[last] - wl[first]
		}
	}

	return out
}
