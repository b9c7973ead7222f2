// Package testutil provides deterministic synthetic spectra and
// tolerance helpers shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// WavelengthAxis returns an ascending axis from min to max inclusive
// with the given step.
func WavelengthAxis(min, max, step float64) []float64 {
	n := int(math.Floor((max-min)/step)) + 1

	out := make([]float64, n)
	for i := range out {
		out[i] = min + float64(i)*step
	}

	return out
}

// GaussianSpectrum samples a single Gaussian peak over the axis.
func GaussianSpectrum(axis []float64, amplitude, center, sigma float64) []float64 {
	out := make([]float64, len(axis))
	for i, x := range axis {
		t := (x - center) / sigma
		out[i] = amplitude * math.Exp(-0.5*t*t)
	}

	return out
}

// DoubleGaussianSpectrum samples the sum of two Gaussian peaks over the
// axis.
func DoubleGaussianSpectrum(axis []float64, amp1, cen1, sigma1, amp2, cen2, sigma2 float64) []float64 {
	a := GaussianSpectrum(axis, amp1, cen1, sigma1)
	b := GaussianSpectrum(axis, amp2, cen2, sigma2)

	for i := range a {
		a[i] += b[i]
	}

	return a
}

// AddNoise adds seeded uniform noise in [-scale, scale] so test spectra
// are reproducible across runs.
func AddNoise(spectrum []float64, seed int64, scale float64) []float64 {
	rng := rand.New(rand.NewSource(seed))

	out := make([]float64, len(spectrum))
	for i, v := range spectrum {
		out[i] = v + (rng.Float64()*2-1)*scale
	}

	return out
}

// Constant returns a spectrum of constant value.
func Constant(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}

	return out
}
