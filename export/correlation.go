package export

import (
	"fmt"
	"math"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
)

// corrGrid adapts a correlation matrix to the plotter grid interface.
// NaN entries (pairs without enough complete rows) render as 0.
type corrGrid struct {
	m *mat.SymDense
}

func (g corrGrid) Dims() (c, r int) {
	rows, cols := g.m.Dims()
	return cols, rows
}

func (g corrGrid) X(c int) float64 { return float64(c) }

func (g corrGrid) Y(r int) float64 { return float64(r) }

func (g corrGrid) Z(c, r int) float64 {
	v := g.m.At(r, c)
	if math.IsNaN(v) {
		return 0
	}

	return v
}

// nameTicks places one labeled tick per matrix row/column.
type nameTicks struct {
	names []string
}

func (t nameTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick

	for i, name := range t.names {
		v := float64(i)
		if v < min || v > max {
			continue
		}

		ticks = append(ticks, plot.Tick{Value: v, Label: name})
	}

	return ticks
}

// WriteCorrelationMatrix renders the pairwise correlation matrix as a
// diverging heatmap with per-cell value annotations and writes
// <sample>_correlation_matrix.png and .pdf into dir. The color scale
// is fixed to [-1, 1].
func WriteCorrelationMatrix(names []string, corr *mat.SymDense, sample, dir string, st Style) error {
	colors := moreland.SmoothBlueRed()
	colors.SetMin(-1)
	colors.SetMax(1)

	heat := plotter.NewHeatMap(corrGrid{m: corr}, colors.Palette(st.Colors))
	heat.Min = -1
	heat.Max = 1

	p := plot.New()
	p.Title.Text = sample + " parameter correlation"
	p.X.Tick.Marker = nameTicks{names: names}
	p.Y.Tick.Marker = nameTicks{names: names}
	p.Add(heat)

	labels, err := cellLabels(corr)
	if err != nil {
		return err
	}

	p.Add(labels)

	base := filepath.Join(dir, sample+"_correlation_matrix")

	for _, ext := range []string{".png", ".pdf"} {
		if err := p.Save(st.Width, st.Height, base+ext); err != nil {
			return fmt.Errorf("export: saving %s%s: %w", base, ext, err)
		}
	}

	return nil
}

// cellLabels annotates each matrix cell with its correlation value.
func cellLabels(corr *mat.SymDense) (*plotter.Labels, error) {
	n, _ := corr.Dims()

	xys := make(plotter.XYs, 0, n*n)
	texts := make([]string, 0, n*n)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			xys = append(xys, plotter.XY{X: float64(j), Y: float64(i)})
			texts = append(texts, fmt.Sprintf("%.2f", corr.At(i, j)))
		}
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, fmt.Errorf("export: building matrix labels: %w", err)
	}

	return labels, nil
}
