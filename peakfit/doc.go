// Package peakfit performs per-spectrum nonlinear peak-shape fitting.
//
// A fit minimizes the squared residual between a tagged peak model
// (single or double Gaussian) and the intensity samples inside an
// optional wavelength window, using Levenberg-Marquardt with numerical
// Jacobians. Parameters are constrained non-negative, matching the
// physics of emission peaks.
//
// Failure taxonomy matters to callers: a [*FitError] means this one
// spectrum could not be fitted and the batch may continue with a NaN
// row, while [ErrUnknownModel] and [ErrUndefinedModel] indicate a setup
// mistake that should abort the run.
//
// # Usage
//
//	res, err := peakfit.Fit(wl, intensity, peakfit.Config{
//	    Model:  peakfit.Single,
//	    Window: peakfit.Window{Min: ptr(450.0), Max: ptr(650.0)},
//	})
//	if err != nil { ... }
//	center := res.Params["center"]
package peakfit
