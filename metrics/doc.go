// Package metrics extracts scalar per-pixel metrics from a spectral
// dataset: integrated intensity, intensity-weighted mean emission
// wavelength, and an index-resolution FWHM, all restricted to an
// inclusive wavelength window. It also provides the Jacobian-corrected
// wavelength-to-energy domain transform.
//
// Degenerate pixels propagate silently: a zero intensity sum inside the
// window yields NaN for the weighted mean, and a spectrum that never
// reaches half its maximum yields an FWHM of 0. No per-pixel condition
// raises an error, so one bad pixel never blocks a batch.
package metrics
