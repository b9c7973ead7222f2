package export

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"

	"github.com/cwbudde/specmap/batch"
	"github.com/cwbudde/specmap/spatial"
)

// mapGrid adapts a spatial.Map to the plotter grid interface. Cell
// coordinates are reported in micrometers; non-finite entries render
// at the lower end of the color scale.
type mapGrid struct {
	m        *spatial.Map
	cellSize float64
	fallback float64
}

func (g mapGrid) Dims() (c, r int) { return g.m.Side, g.m.Side }

func (g mapGrid) X(c int) float64 { return (float64(c) + 0.5) * g.cellSize }

func (g mapGrid) Y(r int) float64 { return (float64(r) + 0.5) * g.cellSize }

func (g mapGrid) Z(c, r int) float64 {
	v := g.m.At(r, c)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return g.fallback
	}

	return v
}

// colorWindow returns the heatmap color bounds: mean +/- 2*std over the
// finite entries, floored at zero as intensities and widths are
// non-negative.
func colorWindow(values []float64) (vmin, vmax float64) {
	mean, std := batch.NaNMeanStd(values)
	if math.IsNaN(mean) {
		return 0, 1
	}

	vmin = math.Max(0, mean-2*std)
	vmax = mean + 2*std

	if vmax <= vmin {
		vmax = vmin + 1
	}

	return vmin, vmax
}

// mapFileBase builds the per-column output base name, matching the
// <sample>_<column>_map convention.
func mapFileBase(dir, sample, column string) string {
	column = strings.ReplaceAll(strings.ToLower(column), " ", "_")
	return filepath.Join(dir, fmt.Sprintf("%s_%s_map", sample, column))
}

// WriteHeatMap renders a square spatial map of one result column and
// writes <sample>_<column>_map.png and .pdf into dir.
func WriteHeatMap(m *spatial.Map, sample, column, dir string, st Style) error {
	vmin, vmax := colorWindow(m.Values)

	colors := moreland.ExtendedKindlmann()
	colors.SetMin(vmin)
	colors.SetMax(vmax)

	pal := colors.Palette(st.Colors)

	grid := mapGrid{m: m, cellSize: st.PhysicalSize / float64(m.Side), fallback: vmin}

	heat := plotter.NewHeatMap(grid, pal)
	heat.Min = vmin
	heat.Max = vmax

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s map of %s", column, sample)
	p.X.Label.Text = "Micrometers (um)"
	p.Y.Label.Text = "Micrometers (um)"
	p.Add(heat)

	addScaleLegend(p, colors.Palette(legendSteps(st)), vmin, vmax)

	base := mapFileBase(dir, sample, column)

	for _, ext := range []string{".png", ".pdf"} {
		if err := p.Save(st.Width, st.Height, base+ext); err != nil {
			return fmt.Errorf("export: saving %s%s: %w", base, ext, err)
		}
	}

	return nil
}

func legendSteps(st Style) int {
	if st.LegendLabels < 2 {
		return 2
	}

	return st.LegendLabels
}

// addScaleLegend attaches a coarse palette strip to the plot legend,
// labeling the extreme entries with the color-scale bounds. It stands
// in for a full colorbar, which the plotting backend does not provide.
func addScaleLegend(p *plot.Plot, pal palette.Palette, vmin, vmax float64) {
	thumbs := plotter.PaletteThumbnailers(pal)

	for i := len(thumbs) - 1; i >= 0; i-- {
		switch i {
		case 0:
			p.Legend.Add(fmt.Sprintf("%.3g", vmin), thumbs[i])
		case len(thumbs) - 1:
			p.Legend.Add(fmt.Sprintf("%.3g", vmax), thumbs[i])
		default:
			p.Legend.Add("", thumbs[i])
		}
	}

	p.Legend.Top = true
}
