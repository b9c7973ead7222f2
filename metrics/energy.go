package metrics

import (
	"errors"
	"sort"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// DefaultHC is the Planck constant times the speed of light in eV·nm.
const DefaultHC = 1240.0

var (
	ErrMismatchedLength = errors.New("metrics: wavelength and intensity must have equal length")
	ErrNonPositiveHC    = errors.New("metrics: hc must be positive")
)

// EnergyTransform converts a wavelength-domain spectrum to the energy
// domain with Jacobian correction:
//
//	E     = hc / wl
//	I(E)  = I(wl) * wl^2 / hc
//
// The Jacobian factor |dwl/dE| = wl^2/hc preserves the integrated
// signal across the nonlinear axis change. Because the map reverses
// order, the returned arrays are re-sorted ascending in energy. Use
// [DefaultHC] unless a different unit system is required.
func EnergyTransform(wavelength, intensity []float64, hc float64) (energy, intensityPerEnergy []float64, err error) {
	if len(wavelength) != len(intensity) {
		return nil, nil, ErrMismatchedLength
	}

	if hc <= 0 {
		return nil, nil, ErrNonPositiveHC
	}

	n := len(wavelength)
	energy = make([]float64, n)
	intensityPerEnergy = make([]float64, n)

	for i, wl := range wavelength {
		energy[i] = hc / wl
	}

	// Jacobian: wl^2 / hc, applied elementwise to the intensity.
	jacobian := make([]float64, n)
	vecmath.MulBlock(jacobian, wavelength, wavelength)
	vecmath.ScaleBlock(jacobian, jacobian, 1/hc)
	vecmath.MulBlock(intensityPerEnergy, intensity, jacobian)

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	sort.Slice(idx, func(a, b int) bool {
		return energy[idx[a]] < energy[idx[b]]
	})

	sortedE := make([]float64, n)
	sortedI := make([]float64, n)

	for i, j := range idx {
		sortedE[i] = energy[j]
		sortedI[i] = intensityPerEnergy[j]
	}

	return sortedE, sortedI, nil
}
