package dataset

import (
	"errors"
	"strings"
	"testing"
)

func TestReadWhitespaceDelimited(t *testing.T) {
	input := `# acquisition 42
400.0  1.0  5.0
401.0  2.0  6.0

402.0  3.0  7.0
`

	d, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	if d.Samples() != 3 || d.PixelCount() != 2 {
		t.Fatalf("got %d samples, %d pixels, want 3, 2", d.Samples(), d.PixelCount())
	}
	if d.Wavelength[2] != 402.0 {
		t.Fatalf("wavelength[2] = %v, want 402", d.Wavelength[2])
	}
	if d.Pixels[1][0] != 5.0 {
		t.Fatalf("pixel 1 sample 0 = %v, want 5", d.Pixels[1][0])
	}
}

func TestReadCommaDelimited(t *testing.T) {
	input := "400, 1, 5\n401, 2, 6\n402, 3, 7\n"

	d, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	if d.PixelCount() != 2 {
		t.Fatalf("pixel count = %d, want 2", d.PixelCount())
	}
	if d.Pixels[0][1] != 2.0 {
		t.Fatalf("pixel 0 sample 1 = %v, want 2", d.Pixels[0][1])
	}
}

func TestReadRaggedRows(t *testing.T) {
	input := "400 1 5\n401 2\n"

	if _, err := Read(strings.NewReader(input)); !errors.Is(err, ErrColumnLength) {
		t.Fatalf("got %v, want ErrColumnLength", err)
	}
}

func TestReadBadNumber(t *testing.T) {
	input := "400 1\n401 two\n"

	if _, err := Read(strings.NewReader(input)); err == nil {
		t.Fatal("expected parse error for non-numeric field")
	}
}

func TestReadMissingIntensityColumn(t *testing.T) {
	if _, err := Read(strings.NewReader("400\n401\n")); err == nil {
		t.Fatal("expected error for wavelength-only table")
	}
}

func TestReadEmptyInput(t *testing.T) {
	if _, err := Read(strings.NewReader("# only comments\n")); !errors.Is(err, ErrEmpty) {
		t.Fatal("expected ErrEmpty for comment-only input")
	}
}
