package peakfit

import (
	"errors"
	"fmt"
	"math"

	"github.com/maorshutman/lm"
	"gonum.org/v1/gonum/floats"
)

// ErrMismatchedLength is returned when the wavelength and intensity
// arrays passed to Fit differ in length.
var ErrMismatchedLength = errors.New("peakfit: wavelength and intensity must have equal length")

// Default optimizer settings. Tau and the epsilons follow the usual
// LM damping/convergence heuristics; the iteration cap bounds the cost
// of a non-converging pixel.
const (
	defaultMaxIterations = 200
	lmTau                = 1e-6
	lmEps1               = 1e-8
	lmEps2               = 1e-8
	lmObjectiveTol       = 1e-16
)

// Window restricts a fit to samples with Min <= x <= Max. A nil bound
// leaves that side unfiltered.
type Window struct {
	Min *float64
	Max *float64
}

// contains reports whether x passes both bounds.
func (w Window) contains(x float64) bool {
	if w.Min != nil && x < *w.Min {
		return false
	}

	if w.Max != nil && x > *w.Max {
		return false
	}

	return true
}

// Config holds fit parameters shared across a batch.
type Config struct {
	// Model selects the peak-shape variant.
	Model Kind
	// Window masks both arrays before fitting.
	Window Window
	// InitialParams overrides default guesses for parameters named in
	// the model's canonical set. Unrecognized names are ignored.
	InitialParams map[string]float64
	// MaxIterations caps the LM iteration count (default 200).
	MaxIterations int
}

// Result holds the final parameter values and the chi-square (sum of
// squared residuals at the optimum).
type Result struct {
	Params    map[string]float64
	ChiSquare float64
}

// FailedResult returns the all-NaN sentinel for a failed fit of the
// given model kind.
func FailedResult(k Kind) Result {
	params := make(map[string]float64, len(paramNames[k]))
	for _, name := range paramNames[k] {
		params[name] = math.NaN()
	}

	return Result{Params: params, ChiSquare: math.NaN()}
}

// FitError reports that the minimizer failed on one spectrum: it did
// not converge, produced non-finite parameters, or had too few samples
// to constrain the model. Callers should treat it as recoverable at
// per-pixel granularity, unlike [ErrUnknownModel] or
// [ErrUndefinedModel].
type FitError struct {
	Reason string
	Err    error
}

func (e *FitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("peakfit: %s: %v", e.Reason, e.Err)
	}

	return "peakfit: " + e.Reason
}

func (e *FitError) Unwrap() error { return e.Err }

// defaultGuesses builds the initial parameter heuristics from
// the masked data: amplitude from the intensity maximum, center from
// its position, width from a fraction of the x span (1/10 for a single
// peak, 1/20 per component of a double peak).
func defaultGuesses(k Kind, x, y []float64) []float64 {
	argmax := floats.MaxIdx(y)
	maxY := y[argmax]
	span := x[len(x)-1] - x[0]

	switch k {
	case Double:
		return []float64{
			maxY / 2, x[argmax], span / 20,
			maxY / 2, x[argmax], span / 20,
		}
	default:
		return []float64{maxY, x[argmax], span / 10}
	}
}

// applyOverrides replaces guesses for parameters present in the model's
// canonical set. Unknown keys are ignored deterministically.
func applyOverrides(k Kind, guess []float64, overrides map[string]float64) {
	if len(overrides) == 0 {
		return
	}

	for i, name := range paramNames[k] {
		if v, ok := overrides[name]; ok {
			guess[i] = v
		}
	}
}

// Fit masks both arrays to the configured window and least-squares fits
// the model to the remaining samples.
//
// All parameters carry an implicit lower bound of zero: the model is
// evaluated on |p|, so the optimizer roams freely while amplitude,
// center, and width stay physical. Reported parameters are the absolute
// values at the optimum.
func Fit(wavelength, intensity []float64, cfg Config) (Result, error) {
	if len(wavelength) != len(intensity) {
		return Result{}, ErrMismatchedLength
	}

	switch cfg.Model {
	case Single, Double:
	case Asymmetric:
		return Result{}, ErrUndefinedModel
	default:
		return Result{}, fmt.Errorf("%w: %v", ErrUnknownModel, cfg.Model)
	}

	x := make([]float64, 0, len(wavelength))
	y := make([]float64, 0, len(intensity))

	for i, wl := range wavelength {
		if cfg.Window.contains(wl) {
			x = append(x, wl)
			y = append(y, intensity[i])
		}
	}

	names := paramNames[cfg.Model]
	if len(x) < len(names) {
		return Result{}, &FitError{Reason: fmt.Sprintf(
			"window holds %d samples, need at least %d for a %s fit",
			len(x), len(names), cfg.Model)}
	}

	guess := defaultGuesses(cfg.Model, x, y)
	applyOverrides(cfg.Model, guess, cfg.InitialParams)

	kind := cfg.Model

	residuals := func(dst, p []float64) {
		ap := absParams(p)
		for i := range x {
			dst[i] = kind.eval(x[i], ap) - y[i]
		}
	}

	iterations := cfg.MaxIterations
	if iterations <= 0 {
		iterations = defaultMaxIterations
	}

	jacobian := lm.NumJac{Func: residuals}
	problem := lm.LMProblem{
		Dim:        len(names),
		Size:       len(x),
		Func:       residuals,
		Jac:        jacobian.Jac,
		InitParams: guess,
		Tau:        lmTau,
		Eps1:       lmEps1,
		Eps2:       lmEps2,
	}

	solution, err := lm.LM(problem, &lm.Settings{
		Iterations:   iterations,
		ObjectiveTol: lmObjectiveTol,
	})
	if err != nil {
		return Result{}, &FitError{Reason: "minimizer did not converge", Err: err}
	}

	final := absParams(solution.X)

	chi := 0.0

	for i := range x {
		r := kind.eval(x[i], final) - y[i]
		chi += r * r
	}

	if !finite(final) || math.IsNaN(chi) || math.IsInf(chi, 0) {
		return Result{}, &FitError{Reason: "residuals are not finite at the optimum"}
	}

	params := make(map[string]float64, len(names))
	for i, name := range names {
		params[name] = final[i]
	}

	return Result{Params: params, ChiSquare: chi}, nil
}

// Eval evaluates the model kind at x using the named parameters of a
// fit result, e.g. to overlay a fitted curve on the measured spectrum.
func Eval(k Kind, res Result, x float64) float64 {
	names := paramNames[k]

	p := make([]float64, len(names))
	for i, name := range names {
		p[i] = res.Params[name]
	}

	return k.eval(x, p)
}

// absParams maps the unconstrained optimizer vector onto the physical
// non-negative parameter space.
func absParams(p []float64) []float64 {
	out := make([]float64, len(p))
	for i, v := range p {
		out[i] = math.Abs(v)
	}

	return out
}

func finite(p []float64) bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}
