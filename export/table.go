package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/cwbudde/specmap/batch"
)

// WriteTableCSV writes the results table to path as comma-separated
// text: a header row of column names, then one row per pixel in pixel
// order. NaN entries from failed fits are written literally.
func WriteTableCSV(t *batch.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(t.ColumnNames()); err != nil {
		return fmt.Errorf("export: writing header: %w", err)
	}

	record := make([]string, len(t.ColumnNames()))

	for i := 0; i < t.Len(); i++ {
		for j, v := range t.Row(i) {
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}

		if err := w.Write(record); err != nil {
			return fmt.Errorf("export: writing row %d: %w", i, err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return fmt.Errorf("export: flushing %s: %w", path, err)
	}

	return nil
}
