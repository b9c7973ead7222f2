package export

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"github.com/cwbudde/specmap/peakfit"
)

// WriteSpectrum plots one spectrum as a line and saves it to path; the
// file extension selects the format.
func WriteSpectrum(wavelength, intensity []float64, sample, path string, st Style) error {
	line, err := plotter.NewLine(spectrumXYs(wavelength, intensity))
	if err != nil {
		return fmt.Errorf("export: building spectrum line: %w", err)
	}

	p := plot.New()
	p.Title.Text = "Spectrum: " + sample
	p.X.Label.Text = "Wavelength (nm)"
	p.Y.Label.Text = "Intensity (a.u.)"
	p.Add(line)

	if err := p.Save(st.Width, st.Height, path); err != nil {
		return fmt.Errorf("export: saving %s: %w", path, err)
	}

	return nil
}

// WriteSpectrumFit overlays measured samples and the fitted model
// curve inside the fit window and saves the figure to path.
func WriteSpectrumFit(wavelength, intensity []float64, res peakfit.Result, kind peakfit.Kind, sample, path string, st Style) error {
	data, err := plotter.NewScatter(spectrumXYs(wavelength, intensity))
	if err != nil {
		return fmt.Errorf("export: building data points: %w", err)
	}

	fitted := make([]float64, len(wavelength))
	for i, wl := range wavelength {
		fitted[i] = peakfit.Eval(kind, res, wl)
	}

	curve, err := plotter.NewLine(spectrumXYs(wavelength, fitted))
	if err != nil {
		return fmt.Errorf("export: building fit curve: %w", err)
	}

	p := plot.New()
	p.Title.Text = sample + ": spectrum fit"
	p.X.Label.Text = "Wavelength (nm)"
	p.Y.Label.Text = "Intensity (a.u.)"
	p.Add(data, curve)
	p.Legend.Add("data", data)
	p.Legend.Add("fit", curve)
	p.Legend.Top = true

	if err := p.Save(st.Width, st.Height, path); err != nil {
		return fmt.Errorf("export: saving %s: %w", path, err)
	}

	return nil
}

func spectrumXYs(x, y []float64) plotter.XYs {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}

	xys := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		xys[i] = plotter.XY{X: x[i], Y: y[i]}
	}

	return xys
}
