package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// splitLine tokenizes one data line. Comma-delimited and
// whitespace/tab-delimited tables are both accepted.
func splitLine(line string) []string {
	if strings.ContainsRune(line, ',') {
		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		return parts
	}

	return strings.Fields(line)
}

// Read parses a delimited numeric table from r. Column 0 is the
// wavelength axis, columns 1..N are per-pixel intensities. There is no
// header row; blank lines and lines starting with '#' are skipped.
func Read(r io.Reader) (*Dataset, error) {
	var (
		wavelength []float64
		pixels     [][]float64
		lineNo     int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := splitLine(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("dataset: line %d: need wavelength plus at least one intensity column", lineNo)
		}

		if pixels == nil {
			pixels = make([][]float64, len(fields)-1)
		} else if len(fields)-1 != len(pixels) {
			return nil, fmt.Errorf("dataset: line %d: %d columns, want %d: %w",
				lineNo, len(fields), len(pixels)+1, ErrColumnLength)
		}

		values := make([]float64, len(fields))

		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("dataset: line %d column %d: %w", lineNo, i+1, err)
			}

			values[i] = v
		}

		wavelength = append(wavelength, values[0])
		for i, v := range values[1:] {
			pixels[i] = append(pixels[i], v)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dataset: reading input: %w", err)
	}

	return New(wavelength, pixels)
}

// Load reads a delimited spectral table from a file. See [Read].
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: opening %s: %w", path, err)
	}
	defer f.Close()

	return Read(f)
}
