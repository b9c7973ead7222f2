package export

import (
	"fmt"
	"math"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"github.com/cwbudde/specmap/batch"
)

// WritePairPlot renders two result columns against each other as a
// density scatter, with axes windowed to mean +/- 4*std of each
// column, and writes <sample>_pair_plot.png and .pdf into dir. Rows
// where either value is non-finite are dropped.
func WritePairPlot(x, y []float64, xLabel, yLabel, sample, dir string, st Style) error {
	xys := make(plotter.XYs, 0, len(x))

	for i := range x {
		if i >= len(y) {
			break
		}

		if math.IsNaN(x[i]) || math.IsNaN(y[i]) || math.IsInf(x[i], 0) || math.IsInf(y[i], 0) {
			continue
		}

		xys = append(xys, plotter.XY{X: x[i], Y: y[i]})
	}

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("export: building pair plot: %w", err)
	}

	p := plot.New()
	p.Title.Text = sample
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(scatter)

	if xmin, xmax, ok := axisWindow(x); ok {
		p.X.Min, p.X.Max = xmin, xmax
	}

	if ymin, ymax, ok := axisWindow(y); ok {
		p.Y.Min, p.Y.Max = ymin, ymax
	}

	base := filepath.Join(dir, sample+"_pair_plot")

	for _, ext := range []string{".png", ".pdf"} {
		if err := p.Save(st.Width, st.Height, base+ext); err != nil {
			return fmt.Errorf("export: saving %s%s: %w", base, ext, err)
		}
	}

	return nil
}

// axisWindow bounds an axis to mean +/- 4*std, floored at zero.
func axisWindow(values []float64) (min, max float64, ok bool) {
	mean, std := batch.NaNMeanStd(values)
	if math.IsNaN(mean) || std == 0 {
		return 0, 0, false
	}

	return math.Max(0, mean-4*std), mean + 4*std, true
}
