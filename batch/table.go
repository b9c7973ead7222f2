package batch

import (
	"errors"
	"fmt"
)

// Metric column names appended after the fit parameters and chi-square.
const (
	ColChiSquare           = "chi_square"
	ColIntegratedIntensity = "integrated_intensity"
	ColWeightedMean        = "weighted_mean"
	ColFWHM                = "fwhm"
)

// Table holds per-pixel results in dataset pixel order: one row per
// pixel, one column per fit parameter plus chi-square and the three
// metric columns. Row order is the implicit spatial coordinate system,
// so it is never permuted after construction.
type Table struct {
	names []string
	cols  map[string][]float64
	rows  int
}

// NewTable builds a table from ordered column names and equal-length
// column vectors. Every name must have a column and all columns must
// share one length.
func NewTable(names []string, cols map[string][]float64) (*Table, error) {
	if len(names) == 0 {
		return nil, errors.New("batch: table needs at least one column")
	}

	rows := -1

	for _, name := range names {
		col, ok := cols[name]
		if !ok {
			return nil, fmt.Errorf("batch: missing column %q", name)
		}

		if rows < 0 {
			rows = len(col)
		} else if len(col) != rows {
			return nil, fmt.Errorf("batch: column %q has %d rows, want %d", name, len(col), rows)
		}
	}

	ordered := make([]string, len(names))
	copy(ordered, names)

	return &Table{names: ordered, cols: cols, rows: rows}, nil
}

func newTable(names []string, rows int) *Table {
	cols := make(map[string][]float64, len(names))
	for _, name := range names {
		cols[name] = make([]float64, rows)
	}

	return &Table{names: names, cols: cols, rows: rows}
}

func (t *Table) set(name string, row int, v float64) {
	t.cols[name][row] = v
}

// Len returns the number of rows (pixels).
func (t *Table) Len() int {
	return t.rows
}

// ColumnNames returns the ordered column names.
func (t *Table) ColumnNames() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)

	return out
}

// Column returns the values of the named column in pixel order, or nil
// if the column does not exist. The slice is shared, not copied.
func (t *Table) Column(name string) []float64 {
	return t.cols[name]
}

// Row returns the values of row i in column order.
func (t *Table) Row(i int) []float64 {
	out := make([]float64, len(t.names))
	for j, name := range t.names {
		out[j] = t.cols[name][i]
	}

	return out
}
