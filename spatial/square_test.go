package spatial

import (
	"errors"
	"testing"
)

func TestToSquare(t *testing.T) {
	vector := make([]float64, 25)
	for i := range vector {
		vector[i] = float64(i)
	}

	m, err := ToSquare(vector)
	if err != nil {
		t.Fatal(err)
	}

	if m.Side != 5 {
		t.Fatalf("side = %d, want 5", m.Side)
	}
	if m.Order != RowMajor {
		t.Fatalf("order = %v, want RowMajor", m.Order)
	}

	// Row-major: index 7 lands at (1, 2).
	if got := m.At(1, 2); got != 7 {
		t.Fatalf("At(1, 2) = %v, want 7", got)
	}
}

func TestToSquareRejectsNonSquare(t *testing.T) {
	for _, n := range []int{2, 3, 24, 26, 99} {
		if _, err := ToSquare(make([]float64, n)); !errors.Is(err, ErrNotSquare) {
			t.Fatalf("length %d: got %v, want ErrNotSquare", n, err)
		}
	}
}

func TestToSquareAcceptsSquares(t *testing.T) {
	for _, n := range []int{1, 4, 9, 25, 100, 1024 * 1024} {
		m, err := ToSquare(make([]float64, n))
		if err != nil {
			t.Fatalf("length %d: %v", n, err)
		}
		if m.Side*m.Side != n {
			t.Fatalf("length %d: side %d", n, m.Side)
		}
	}
}

func TestCoordIndexRoundTrip(t *testing.T) {
	m, err := ToSquare(make([]float64, 16))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 16; i++ {
		row, col := m.Coord(i)
		if got := m.Index(row, col); got != i {
			t.Fatalf("index %d -> (%d, %d) -> %d", i, row, col, got)
		}
	}

	if row, col := m.Coord(6); row != 1 || col != 2 {
		t.Fatalf("Coord(6) = (%d, %d), want (1, 2)", row, col)
	}
}

func TestMapSharesVector(t *testing.T) {
	vector := []float64{1, 2, 3, 4}

	m, err := ToSquare(vector)
	if err != nil {
		t.Fatal(err)
	}

	vector[3] = 40
	if m.At(1, 1) != 40 {
		t.Fatal("map must view the vector, not copy it")
	}
}
