// Command specfit analyzes spatially resolved spectral maps: per-pixel
// metric extraction, nonlinear peak fitting, and spatial map export.
//
// Usage:
//
//	specfit batch data.txt --model single --window-min 450 --window-max 650
//	specfit metrics data.txt
//	specfit avg data.txt --model double
//
// Input is a delimited text table: column 0 is the ascending wavelength
// axis, columns 1..N carry one intensity spectrum per spatial pixel, no
// header row. Outputs land in a per-run directory named after the
// sample and a timestamp.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/specmap/batch"
	"github.com/cwbudde/specmap/dataset"
	"github.com/cwbudde/specmap/export"
	"github.com/cwbudde/specmap/metrics"
	"github.com/cwbudde/specmap/peakfit"
	"github.com/cwbudde/specmap/spatial"
)

const (
	defaultOutputDir = "specfit_outputs"
	defaultWindowMin = 450.0
	defaultWindowMax = 650.0
	defaultModel     = "single"
)

var (
	configPath   string
	outputDir    string
	windowMin    float64
	windowMax    float64
	physicalSize float64
	showPlots    bool

	modelName     string
	paramOverride []string
	workers       int
	maxIterations int

	energyDomain bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "specfit",
		Short:         "Spatially resolved spectral map analysis",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "path to TOML config file")
	pf.StringVar(&outputDir, "output", defaultOutputDir, "base output directory")
	pf.Float64Var(&windowMin, "window-min", defaultWindowMin, "wavelength window lower bound (nm)")
	pf.Float64Var(&windowMax, "window-max", defaultWindowMax, "wavelength window upper bound (nm)")
	pf.Float64Var(&physicalSize, "physical-size", 10.0, "spatial map edge length (um)")
	pf.BoolVar(&showPlots, "show", false, "request interactive display (figures are always written to files)")

	rootCmd.AddCommand(newBatchCmd())
	rootCmd.AddCommand(newMetricsCmd())
	rootCmd.AddCommand(newAvgCmd())

	return rootCmd
}

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <datafile>",
		Short: "Fit every pixel and export maps, statistics, and correlations",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatchCmd,
	}

	cmd.Flags().StringVar(&modelName, "model", defaultModel, "peak model: single, double, or asymmetric")
	cmd.Flags().StringArrayVar(&paramOverride, "param", nil, "initial parameter override, name=value (repeatable)")
	cmd.Flags().IntVar(&workers, "workers", 1, "parallel fit workers")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "cap on LM iterations per pixel (0 = default)")

	return cmd
}

func newMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics <datafile>",
		Short: "Export metric maps and correlations without fitting",
		Args:  cobra.ExactArgs(1),
		RunE:  runMetricsCmd,
	}
}

func newAvgCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "avg <datafile>",
		Short: "Fit the pixel-averaged spectrum and export the fit figure",
		Args:  cobra.ExactArgs(1),
		RunE:  runAvgCmd,
	}

	cmd.Flags().StringVar(&modelName, "model", defaultModel, "peak model: single, double, or asymmetric")
	cmd.Flags().StringArrayVar(&paramOverride, "param", nil, "initial parameter override, name=value (repeatable)")
	cmd.Flags().BoolVar(&energyDomain, "energy", false, "also export the average spectrum in the energy domain")

	return cmd
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()
}

// applySettings merges file-config values under unchanged flags and
// returns the merged initial parameter overrides.
func applySettings(cmd *cobra.Command, fileCfg FileConfig) (map[string]float64, error) {
	applyStringConfig(cmd, "model", &modelName, fileCfg.Fit.Model)
	applyFloatConfig(cmd, "window-min", &windowMin, fileCfg.Fit.WindowMin)
	applyFloatConfig(cmd, "window-max", &windowMax, fileCfg.Fit.WindowMax)
	applyIntConfig(cmd, "max-iterations", &maxIterations, fileCfg.Fit.MaxIterations)
	applyIntConfig(cmd, "workers", &workers, fileCfg.Fit.Workers)
	applyStringConfig(cmd, "output", &outputDir, fileCfg.Output.Directory)
	applyFloatConfig(cmd, "physical-size", &physicalSize, fileCfg.Output.PhysicalSizeUM)
	applyBoolConfig(cmd, "show", &showPlots, fileCfg.Output.InteractiveDisplay)

	params, err := parseParamOverrides(paramOverride)
	if err != nil {
		return nil, err
	}

	for name, v := range fileCfg.Fit.InitialParams {
		if _, ok := params[name]; !ok {
			params[name] = v
		}
	}

	return params, nil
}

func applyStringConfig(cmd *cobra.Command, flag string, dst *string, file *string) {
	if !cmd.Flags().Changed(flag) && file != nil {
		*dst = *file
	}
}

func applyFloatConfig(cmd *cobra.Command, flag string, dst *float64, file *float64) {
	if !cmd.Flags().Changed(flag) && file != nil {
		*dst = *file
	}
}

func applyIntConfig(cmd *cobra.Command, flag string, dst *int, file *int) {
	if !cmd.Flags().Changed(flag) && file != nil {
		*dst = *file
	}
}

func applyBoolConfig(cmd *cobra.Command, flag string, dst *bool, file *bool) {
	if !cmd.Flags().Changed(flag) && file != nil {
		*dst = *file
	}
}

func parseParamOverrides(pairs []string) (map[string]float64, error) {
	params := make(map[string]float64, len(pairs))

	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --param %q, want name=value", pair)
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --param %q: %w", pair, err)
		}

		params[strings.TrimSpace(name)] = v
	}

	return params, nil
}

// prepareExportDir creates <output>/<sample>_<mode>_<timestamp> and
// returns its path and the sample name derived from the input file.
func prepareExportDir(inputPath, mode string) (dir, sample string, err error) {
	base := filepath.Base(inputPath)
	sample = strings.TrimSuffix(base, filepath.Ext(base))

	stamp := time.Now().Format("20060102_150405")
	dir = filepath.Join(outputDir, fmt.Sprintf("%s_%s_%s", sample, mode, stamp))

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("creating output directory: %w", err)
	}

	return dir, sample, nil
}

func style() export.Style {
	st := export.DefaultStyle()
	st.PhysicalSize = physicalSize

	return st
}

func noteDisplayMode(logger zerolog.Logger) {
	if showPlots {
		logger.Warn().Msg("interactive display is not available; figures are written to files only")
	}
}

func runBatchCmd(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	fileCfg, err := loadFileConfig(configPath)
	if err != nil {
		return err
	}

	params, err := applySettings(cmd, fileCfg)
	if err != nil {
		return err
	}

	noteDisplayMode(logger)

	kind, err := peakfit.ParseKind(modelName)
	if err != nil {
		return err
	}

	d, err := dataset.Load(args[0])
	if err != nil {
		return err
	}

	dir, sample, err := prepareExportDir(args[0], "massfit")
	if err != nil {
		return err
	}

	logger.Info().
		Str("sample", sample).
		Str("model", kind.String()).
		Float64("window_min", windowMin).
		Float64("window_max", windowMax).
		Int("pixels", d.PixelCount()).
		Str("output", dir).
		Msg("starting batch fit")

	table, err := batch.Run(cmd.Context(), d, batch.Config{
		Model:         kind,
		Window:        dataset.Range{Min: windowMin, Max: windowMax},
		InitialParams: params,
		MaxIterations: maxIterations,
		Workers:       workers,
		Logger:        &logger,
	})
	if err != nil {
		return err
	}

	csvPath := filepath.Join(dir, sample+"_massfit_results.csv")
	if err := export.WriteTableCSV(table, csvPath); err != nil {
		return err
	}

	logger.Info().Str("path", csvPath).Msg("saved results table")

	return exportTable(logger, table, sample, dir)
}

func runMetricsCmd(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	fileCfg, err := loadFileConfig(configPath)
	if err != nil {
		return err
	}

	if _, err := applySettings(cmd, fileCfg); err != nil {
		return err
	}

	noteDisplayMode(logger)

	d, err := dataset.Load(args[0])
	if err != nil {
		return err
	}

	dir, sample, err := prepareExportDir(args[0], "metrics")
	if err != nil {
		return err
	}

	window := dataset.Range{Min: windowMin, Max: windowMax}

	table, err := batch.MetricsTable(d, window)
	if err != nil {
		return err
	}

	csvPath := filepath.Join(dir, sample+"_metrics.csv")
	if err := export.WriteTableCSV(table, csvPath); err != nil {
		return err
	}

	if err := export.WritePairPlot(
		table.Column(batch.ColIntegratedIntensity),
		table.Column(batch.ColWeightedMean),
		"Integrated Intensity (a.u.)", "Weighted Mean Wavelength (nm)",
		sample, dir, style(),
	); err != nil {
		return err
	}

	return exportTable(logger, table, sample, dir)
}

func runAvgCmd(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	fileCfg, err := loadFileConfig(configPath)
	if err != nil {
		return err
	}

	params, err := applySettings(cmd, fileCfg)
	if err != nil {
		return err
	}

	noteDisplayMode(logger)

	kind, err := peakfit.ParseKind(modelName)
	if err != nil {
		return err
	}

	d, err := dataset.Load(args[0])
	if err != nil {
		return err
	}

	dir, sample, err := prepareExportDir(args[0], "fit")
	if err != nil {
		return err
	}

	avg := averageSpectrum(d)

	rawPath := filepath.Join(dir, sample+"_average_spectrum.png")
	if err := export.WriteSpectrum(d.Wavelength, avg, sample+" (avg)", rawPath, style()); err != nil {
		return err
	}

	if energyDomain {
		energy, intensityE, err := metrics.EnergyTransform(d.Wavelength, avg, metrics.DefaultHC)
		if err != nil {
			return err
		}

		energyPath := filepath.Join(dir, sample+"_average_spectrum_energy.png")
		if err := export.WriteSpectrum(energy, intensityE, sample+" (avg, energy domain)", energyPath, style()); err != nil {
			return err
		}
	}

	res, err := peakfit.Fit(d.Wavelength, avg, peakfit.Config{
		Model:         kind,
		Window:        peakfit.Window{Min: &windowMin, Max: &windowMax},
		InitialParams: params,
		MaxIterations: maxIterations,
	})
	if err != nil {
		return err
	}

	fitPath := filepath.Join(dir, sample+"_average_spectrum_fit.png")
	if err := export.WriteSpectrumFit(d.Wavelength, avg, res, kind, sample, fitPath, style()); err != nil {
		return err
	}

	event := logger.Info().Float64("chi_square", res.ChiSquare)
	for _, name := range kind.ParamNames() {
		event = event.Float64(name, res.Params[name])
	}

	event.Msg("average spectrum fit")

	return nil
}

// exportTable writes per-column spatial maps, column moments, and the
// correlation matrix for any results table. A column whose length is
// not a perfect square keeps its table entry but gets no map.
func exportTable(logger zerolog.Logger, table *batch.Table, sample, dir string) error {
	st := style()

	for _, column := range table.ColumnNames() {
		m, err := spatial.ToSquare(table.Column(column))
		if err != nil {
			if errors.Is(err, spatial.ErrNotSquare) {
				logger.Warn().Str("column", column).Msg("pixel count is not a perfect square, skipping map")
				continue
			}

			return err
		}

		if err := export.WriteHeatMap(m, sample, column, dir, st); err != nil {
			return err
		}
	}

	moments := table.Moments()
	for _, column := range table.ColumnNames() {
		m := moments[column]
		logger.Info().
			Str("column", column).
			Float64("mean", m.Mean).
			Float64("std", m.Std).
			Msg("column moments")
	}

	return export.WriteCorrelationMatrix(table.ColumnNames(), table.Correlation(), sample, dir, st)
}

// averageSpectrum returns the per-sample mean intensity across all
// pixels.
func averageSpectrum(d *dataset.Dataset) []float64 {
	avg := make([]float64, d.Samples())

	for _, col := range d.Pixels {
		floats.Add(avg, col)
	}

	floats.Scale(1/float64(d.PixelCount()), avg)

	return avg
}
