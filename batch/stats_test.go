package batch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNaNMeanStd(t *testing.T) {
	mean, std := NaNMeanStd([]float64{1, 2, 3, 4})
	assert.InDelta(t, 2.5, mean, 1e-12)
	assert.InDelta(t, math.Sqrt(1.25), std, 1e-12)

	// NaN and Inf entries are excluded, not propagated.
	mean, std = NaNMeanStd([]float64{1, math.NaN(), 2, math.Inf(1), 3, 4})
	assert.InDelta(t, 2.5, mean, 1e-12)
	assert.InDelta(t, math.Sqrt(1.25), std, 1e-12)

	mean, std = NaNMeanStd([]float64{math.NaN(), math.NaN()})
	assert.True(t, math.IsNaN(mean))
	assert.True(t, math.IsNaN(std))

	mean, std = NaNMeanStd([]float64{7})
	assert.Equal(t, 7.0, mean)
	assert.Equal(t, 0.0, std)
}

func TestTableMoments(t *testing.T) {
	table, err := NewTable([]string{"a", "b"}, map[string][]float64{
		"a": {2, 4, 6},
		"b": {5, math.NaN(), 5},
	})
	require.NoError(t, err)

	moments := table.Moments()

	assert.InDelta(t, 4.0, moments["a"].Mean, 1e-12)
	assert.InDelta(t, 5.0, moments["b"].Mean, 1e-12)
	assert.InDelta(t, 0.0, moments["b"].Std, 1e-12)
}

func TestTableCorrelation(t *testing.T) {
	table, err := NewTable([]string{"a", "b", "c"}, map[string][]float64{
		"a": {1, 2, 3, 4},
		"b": {2, 4, 6, 8}, // perfectly correlated with a
		"c": {4, 3, 2, 1}, // perfectly anti-correlated with a
	})
	require.NoError(t, err)

	corr := table.Correlation()

	n, _ := corr.Dims()
	require.Equal(t, 3, n)

	for i := 0; i < n; i++ {
		assert.Equal(t, 1.0, corr.At(i, i))
	}

	assert.InDelta(t, 1.0, corr.At(0, 1), 1e-12)
	assert.InDelta(t, -1.0, corr.At(0, 2), 1e-12)
	assert.Equal(t, corr.At(1, 0), corr.At(0, 1))
}

func TestTableCorrelationSkipsIncompleteRows(t *testing.T) {
	table, err := NewTable([]string{"a", "b"}, map[string][]float64{
		"a": {1, 2, math.NaN(), 3, 4},
		"b": {2, 4, 100, 6, math.NaN()},
	})
	require.NoError(t, err)

	corr := table.Correlation()

	// Rows 2 and 4 are incomplete; the remaining rows are perfectly
	// linear, so the outlier in a NaN row must not leak in.
	assert.InDelta(t, 1.0, corr.At(0, 1), 1e-12)
}

func TestTableCorrelationTooFewCompleteRows(t *testing.T) {
	table, err := NewTable([]string{"a", "b"}, map[string][]float64{
		"a": {1, math.NaN(), 3},
		"b": {2, 4, math.NaN()},
	})
	require.NoError(t, err)

	corr := table.Correlation()
	assert.True(t, math.IsNaN(corr.At(0, 1)))
	assert.Equal(t, 1.0, corr.At(0, 0))
}
