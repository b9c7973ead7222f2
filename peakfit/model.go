package peakfit

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrUnknownModel is returned for a model kind outside the tagged set.
	ErrUnknownModel = errors.New("peakfit: unknown model kind")
	// ErrUndefinedModel is returned when the asymmetric profile is
	// selected. Its parameter set is fixed but its functional form has
	// never been specified, so fitting it is a configuration mistake
	// rather than a per-pixel failure.
	ErrUndefinedModel = errors.New("peakfit: asymmetric profile has no defined functional form")
)

// Kind is a tagged peak-shape variant.
type Kind int

const (
	// Single is one Gaussian: amplitude * exp(-0.5*((x-center)/sigma)^2).
	Single Kind = iota
	// Double is the sum of two independently parameterized Gaussians.
	Double
	// Asymmetric is a split-width profile (amp, cen, fwhm_low,
	// fwhm_high) referenced by acquisition configs. Selecting it fails
	// with [ErrUndefinedModel]; only its parameter names are defined.
	Asymmetric
)

var kindNames = map[Kind]string{
	Single:     "single",
	Double:     "double",
	Asymmetric: "asymmetric",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a configuration string to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if s == name {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownModel, s)
}

var paramNames = map[Kind][]string{
	Single:     {"amplitude", "center", "sigma"},
	Double:     {"amp1", "cen1", "sigma1", "amp2", "cen2", "sigma2"},
	Asymmetric: {"amp", "cen", "fwhm_low", "fwhm_high"},
}

// ParamNames returns the canonical ordered parameter set of the model.
// The order is the column order used in batch result tables.
func (k Kind) ParamNames() []string {
	names, ok := paramNames[k]
	if !ok {
		return nil
	}

	out := make([]string, len(names))
	copy(out, names)

	return out
}

// Gaussian evaluates a single Gaussian peak at x.
func Gaussian(x, amplitude, center, sigma float64) float64 {
	t := (x - center) / sigma
	return amplitude * math.Exp(-0.5*t*t)
}

// DoubleGaussian evaluates the sum of two Gaussian peaks at x.
func DoubleGaussian(x, amp1, cen1, sigma1, amp2, cen2, sigma2 float64) float64 {
	return Gaussian(x, amp1, cen1, sigma1) + Gaussian(x, amp2, cen2, sigma2)
}

// eval evaluates the model at x for the packed parameter vector p,
// ordered as in ParamNames. Only fittable kinds are reachable here.
func (k Kind) eval(x float64, p []float64) float64 {
	switch k {
	case Single:
		return Gaussian(x, p[0], p[1], p[2])
	case Double:
		return DoubleGaussian(x, p[0], p[1], p[2], p[3], p[4], p[5])
	default:
		return math.NaN()
	}
}
