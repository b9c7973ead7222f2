package batch

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Moments holds the NaN-ignoring mean and population standard deviation
// of one result column. Downstream map exports window their color scale
// to mean +/- 2*std.
type Moments struct {
	Mean float64
	Std  float64
}

// NaNMeanStd returns the mean and population standard deviation of the
// finite entries of values. All-NaN input yields (NaN, NaN).
func NaNMeanStd(values []float64) (mean, std float64) {
	finite := make([]float64, 0, len(values))

	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}

	if len(finite) == 0 {
		return math.NaN(), math.NaN()
	}

	return stat.Mean(finite, nil), stat.PopStdDev(finite, nil)
}

// Moments returns the NaN-ignoring moments of every column, keyed by
// column name.
func (t *Table) Moments() map[string]Moments {
	out := make(map[string]Moments, len(t.names))

	for _, name := range t.names {
		mean, std := NaNMeanStd(t.cols[name])
		out[name] = Moments{Mean: mean, Std: std}
	}

	return out
}

// Correlation returns the pairwise Pearson correlation matrix over all
// columns, in ColumnNames order. Each pair uses only rows where both
// entries are finite; a pair with fewer than two complete rows yields
// NaN.
func (t *Table) Correlation() *mat.SymDense {
	n := len(t.names)
	corr := mat.NewSymDense(n, nil)

	for i := 0; i < n; i++ {
		corr.SetSym(i, i, 1)

		for j := i + 1; j < n; j++ {
			corr.SetSym(i, j, pairCorrelation(t.cols[t.names[i]], t.cols[t.names[j]]))
		}
	}

	return corr
}

func pairCorrelation(a, b []float64) float64 {
	x := make([]float64, 0, len(a))
	y := make([]float64, 0, len(b))

	for i := range a {
		if isFinite(a[i]) && isFinite(b[i]) {
			x = append(x, a[i])
			y = append(y, b[i])
		}
	}

	if len(x) < 2 {
		return math.NaN()
	}

	return stat.Correlation(x, y, nil)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
