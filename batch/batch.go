package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/cwbudde/specmap/dataset"
	"github.com/cwbudde/specmap/metrics"
	"github.com/cwbudde/specmap/peakfit"
)

// Config holds the settings applied uniformly to every pixel of a run.
type Config struct {
	// Model selects the peak-shape variant for all pixels.
	Model peakfit.Kind
	// Window bounds both the fit and the three metric columns.
	Window dataset.Range
	// InitialParams overrides default guesses; unrecognized names are
	// ignored (see peakfit.Config).
	InitialParams map[string]float64
	// MaxIterations caps the per-pixel LM iteration count.
	MaxIterations int
	// Workers sets the fit parallelism. Values below 2 run the batch
	// sequentially. Result order is preserved either way.
	Workers int
	// Logger receives one warning per failed pixel. Nil disables
	// logging.
	Logger *zerolog.Logger
}

func (cfg Config) fitConfig() peakfit.Config {
	lo, hi := cfg.Window.Min, cfg.Window.Max

	return peakfit.Config{
		Model:         cfg.Model,
		Window:        peakfit.Window{Min: &lo, Max: &hi},
		InitialParams: cfg.InitialParams,
		MaxIterations: cfg.MaxIterations,
	}
}

func (cfg Config) warn(pixel int, err error) {
	if cfg.Logger == nil {
		return
	}

	cfg.Logger.Warn().Int("pixel", pixel).Err(err).Msg("fit failed, recording NaN row")
}

// Run fits every pixel of the dataset and returns the aggregated
// results table.
//
// A [*peakfit.FitError] on pixel i is downgraded to an all-NaN row and
// a warning; any other error aborts the run, since shape and
// configuration mistakes apply to every pixel alike. The returned
// table always has exactly d.PixelCount() rows on success.
func Run(ctx context.Context, d *dataset.Dataset, cfg Config) (*Table, error) {
	switch cfg.Model {
	case peakfit.Single, peakfit.Double:
	case peakfit.Asymmetric:
		return nil, peakfit.ErrUndefinedModel
	default:
		return nil, fmt.Errorf("%w: %v", peakfit.ErrUnknownModel, cfg.Model)
	}

	if !cfg.Window.Valid() {
		return nil, dataset.ErrInvalidWindow
	}

	n := d.PixelCount()
	rows := make([]peakfit.Result, n)
	fitCfg := cfg.fitConfig()

	fitPixel := func(i int) error {
		res, err := peakfit.Fit(d.Wavelength, d.Pixels[i], fitCfg)
		if err != nil {
			var fitErr *peakfit.FitError
			if !errors.As(err, &fitErr) {
				return fmt.Errorf("batch: pixel %d: %w", i, err)
			}

			cfg.warn(i, err)
			rows[i] = peakfit.FailedResult(cfg.Model)

			return nil
		}

		rows[i] = res

		return nil
	}

	var err error
	if cfg.Workers > 1 {
		err = runParallel(ctx, n, cfg.Workers, fitPixel)
	} else {
		err = runSequential(ctx, n, fitPixel)
	}

	if err != nil {
		return nil, err
	}

	return assemble(d, cfg, rows), nil
}

func runSequential(ctx context.Context, n int, fitPixel func(int) error) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := fitPixel(i); err != nil {
			return err
		}
	}

	return nil
}

// runParallel distributes pixel indices over a bounded worker pool.
// Workers write into the preallocated rows slice by index, so the
// original pixel order survives arbitrary scheduling. The first
// setup-level error cancels the remaining work.
func runParallel(ctx context.Context, n, workers int, fitPixel func(int) error) error {
	if workers > n {
		workers = n
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	jobs := make(chan int)

	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range jobs {
				if ctx.Err() != nil {
					continue // drain remaining jobs without fitting
				}

				if err := fitPixel(i); err != nil {
					fail(err)
				}
			}
		}()
	}

feed:
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}

	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}

	return ctx.Err()
}

// MetricsTable computes only the three windowed metric columns, without
// any fitting. It serves the map-only pipeline over datasets where no
// peak model applies.
func MetricsTable(d *dataset.Dataset, window dataset.Range) (*Table, error) {
	if !window.Valid() {
		return nil, dataset.ErrInvalidWindow
	}

	names := []string{ColIntegratedIntensity, ColWeightedMean, ColFWHM}
	cols := map[string][]float64{
		ColIntegratedIntensity: metrics.IntegratedIntensity(d, window),
		ColWeightedMean:        metrics.WeightedMeanWavelength(d, window),
		ColFWHM:                metrics.FWHM(d, window),
	}

	return NewTable(names, cols)
}

// assemble builds the results table: fit parameters in canonical
// order, chi-square, then the three metric columns computed
// independently of the fits.
func assemble(d *dataset.Dataset, cfg Config, rows []peakfit.Result) *Table {
	names := cfg.Model.ParamNames()
	names = append(names, ColChiSquare, ColIntegratedIntensity, ColWeightedMean, ColFWHM)

	t := newTable(names, len(rows))

	for i, row := range rows {
		for name, v := range row.Params {
			t.set(name, i, v)
		}

		t.set(ColChiSquare, i, row.ChiSquare)
	}

	for i, v := range metrics.IntegratedIntensity(d, cfg.Window) {
		t.set(ColIntegratedIntensity, i, v)
	}

	for i, v := range metrics.WeightedMeanWavelength(d, cfg.Window) {
		t.set(ColWeightedMean, i, v)
	}

	for i, v := range metrics.FWHM(d, cfg.Window) {
		t.set(ColFWHM, i, v)
	}

	return t
}
