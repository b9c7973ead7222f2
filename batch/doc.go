// Package batch fits every pixel of a spectral dataset with one shared
// model configuration and aggregates the results.
//
// Pixel fits are independent and stateless, so the orchestrator
// isolates failures: a fit that does not converge produces one logged
// warning and an all-NaN row, never an aborted run. Setup-level
// mistakes (unknown or undefined model, mismatched shapes) surface
// immediately instead of being diluted into NaN rows.
//
// The result is a table with one row per pixel in dataset column
// order, holding the fit parameters, chi-square, and the three
// windowed metrics (integrated intensity, weighted mean wavelength,
// FWHM). Per-column NaN-ignoring moments and a pairwise-complete
// correlation matrix are derived from it.
package batch
