package export

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/specmap/batch"
	"github.com/cwbudde/specmap/peakfit"
	"github.com/cwbudde/specmap/spatial"
)

func requireFile(t *testing.T, path string) {
	t.Helper()

	info, err := os.Stat(path)
	require.NoError(t, err, "expected output file %s", path)
	require.Greater(t, info.Size(), int64(0), "empty output file %s", path)
}

func testTable(t *testing.T) *batch.Table {
	t.Helper()

	table, err := batch.NewTable(
		[]string{"amplitude", "center"},
		map[string][]float64{
			"amplitude": {1, 2, 3, math.NaN()},
			"center":    {550, 551, 552, 553},
		},
	)
	require.NoError(t, err)

	return table
}

func TestWriteTableCSV(t *testing.T) {
	dir := t.TempDir()
	table := testTable(t)

	path := filepath.Join(dir, "results.csv")
	require.NoError(t, WriteTableCSV(table, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 5) // header plus four rows
	assert.Equal(t, []string{"amplitude", "center"}, records[0])
	assert.Equal(t, []string{"2", "551"}, records[2])

	nan, err := strconv.ParseFloat(records[4][0], 64)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(nan), "NaN cells must round-trip")
}

func TestWriteHeatMap(t *testing.T) {
	dir := t.TempDir()

	values := []float64{1, 2, 3, 4, math.NaN(), 6, 7, 8, 9}
	m, err := spatial.ToSquare(values)
	require.NoError(t, err)

	require.NoError(t, WriteHeatMap(m, "sample01", "integrated_intensity", dir, DefaultStyle()))

	requireFile(t, filepath.Join(dir, "sample01_integrated_intensity_map.png"))
	requireFile(t, filepath.Join(dir, "sample01_integrated_intensity_map.pdf"))
}

func TestWriteCorrelationMatrix(t *testing.T) {
	dir := t.TempDir()
	table := testTable(t)

	names := table.ColumnNames()
	require.NoError(t, WriteCorrelationMatrix(names, table.Correlation(), "sample01", dir, DefaultStyle()))

	requireFile(t, filepath.Join(dir, "sample01_correlation_matrix.png"))
	requireFile(t, filepath.Join(dir, "sample01_correlation_matrix.pdf"))
}

func TestWriteSpectrum(t *testing.T) {
	dir := t.TempDir()

	wl := []float64{400, 450, 500, 550, 600}
	intensity := []float64{1, 5, 9, 5, 1}

	path := filepath.Join(dir, "spectrum.png")
	require.NoError(t, WriteSpectrum(wl, intensity, "sample01", path, DefaultStyle()))
	requireFile(t, path)
}

func TestWriteSpectrumFit(t *testing.T) {
	dir := t.TempDir()

	wl := make([]float64, 101)
	intensity := make([]float64, len(wl))

	for i := range wl {
		wl[i] = 500 + float64(i)
		intensity[i] = peakfit.Gaussian(wl[i], 40, 550, 12)
	}

	res := peakfit.Result{Params: map[string]float64{
		"amplitude": 40, "center": 550, "sigma": 12,
	}}

	path := filepath.Join(dir, "fit.png")
	require.NoError(t, WriteSpectrumFit(wl, intensity, res, peakfit.Single, "sample01", path, DefaultStyle()))
	requireFile(t, path)
}

func TestWritePairPlot(t *testing.T) {
	dir := t.TempDir()

	x := []float64{1, 2, 3, math.NaN(), 5}
	y := []float64{10, 20, 30, 40, math.Inf(1)}

	require.NoError(t, WritePairPlot(x, y, "x", "y", "sample01", dir, DefaultStyle()))
	requireFile(t, filepath.Join(dir, "sample01_pair_plot.png"))
	requireFile(t, filepath.Join(dir, "sample01_pair_plot.pdf"))
}

func TestColorWindow(t *testing.T) {
	// Mean 10, population std 2: window is mean +/- 2*std.
	vmin, vmax := colorWindow([]float64{8, 10, 12, 8, 10, 12})
	assert.InDelta(t, 10-2*1.632993, vmin, 1e-5)
	assert.InDelta(t, 10+2*1.632993, vmax, 1e-5)

	// Large std floors the lower bound at zero.
	vmin, _ = colorWindow([]float64{0, 0, 0, 100})
	assert.Equal(t, 0.0, vmin)

	// All-NaN input falls back to a unit window.
	vmin, vmax = colorWindow([]float64{math.NaN()})
	assert.Equal(t, 0.0, vmin)
	assert.Equal(t, 1.0, vmax)

	// Constant input keeps vmax above vmin.
	vmin, vmax = colorWindow([]float64{5, 5, 5})
	assert.Greater(t, vmax, vmin)
}

func TestMapGridFallback(t *testing.T) {
	m, err := spatial.ToSquare([]float64{1, math.NaN(), 3, 4})
	require.NoError(t, err)

	grid := mapGrid{m: m, cellSize: 1, fallback: -7}

	c, r := grid.Dims()
	assert.Equal(t, 2, c)
	assert.Equal(t, 2, r)

	// Map entry (0, 1) is NaN and must render as the fallback.
	assert.Equal(t, -7.0, grid.Z(1, 0))
	assert.Equal(t, 1.0, grid.Z(0, 0))
}

func TestMapFileBase(t *testing.T) {
	got := mapFileBase("out", "Sample 01", "Integrated Intensity")
	assert.Equal(t, filepath.Join("out", "Sample 01_integrated_intensity_map"), got)
}

func TestAxisWindow(t *testing.T) {
	min, max, ok := axisWindow([]float64{8, 10, 12, 8, 10, 12})
	require.True(t, ok)
	assert.InDelta(t, 10-4*1.632993, min, 1e-5)
	assert.InDelta(t, 10+4*1.632993, max, 1e-5)

	_, _, ok = axisWindow([]float64{5, 5, 5})
	assert.False(t, ok, "zero spread leaves the axis unconstrained")
}
