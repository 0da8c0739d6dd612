package services

import (
	"errors"
	"testing"
)

func TestFlatIndexSearchOrdersByDistance(t *testing.T) {
	ix := NewFlatIndex(2)
	for _, v := range [][]float32{{10, 10}, {1, 1}, {3, 4}, {0, 0}} {
		if _, err := ix.Add(v); err != nil {
			t.Fatalf("Add(%v): %v", v, err)
		}
	}

	got, err := ix.Search([]float32{0, 0}, ix.Len())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	wantPositions := []int{3, 1, 2, 0}
	wantDistances := []float64{0, 2, 25, 200}
	if len(got) != len(wantPositions) {
		t.Fatalf("got %d neighbors, want %d", len(got), len(wantPositions))
	}
	for i, n := range got {
		if n.Position != wantPositions[i] || n.Distance != wantDistances[i] {
			t.Errorf("neighbor %d = %+v, want {Position:%d Distance:%v}", i, n, wantPositions[i], wantDistances[i])
		}
	}
}

func TestFlatIndexAddReturnsPosition(t *testing.T) {
	ix := NewFlatIndex(1)
	for want := 0; want < 3; want++ {
		pos, err := ix.Add([]float32{float32(want)})
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		if pos != want {
			t.Errorf("position = %d, want %d", pos, want)
		}
	}
}

func TestFlatIndexSearchTopK(t *testing.T) {
	ix := NewFlatIndex(1)
	for _, v := range []float32{5, 1, 3, 2, 4} {
		ix.Add([]float32{v})
	}

	got, err := ix.Search([]float32{0}, 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 || got[0].Position != 1 || got[1].Position != 3 {
		t.Errorf("top 2 = %+v, want positions [1 3]", got)
	}
}

func TestFlatIndexEmptySearch(t *testing.T) {
	ix := NewFlatIndex(3)

	got, err := ix.Search([]float32{1, 2, 3}, 5)
	if err != nil {
		t.Fatalf("Search on empty index: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d neighbors from empty index", len(got))
	}
}

func TestFlatIndexInvalidK(t *testing.T) {
	ix := NewFlatIndex(1)
	ix.Add([]float32{1})

	_, err := ix.Search([]float32{0}, 2)
	if !errors.Is(err, ErrInvalidK) {
		t.Errorf("err = %v, want ErrInvalidK", err)
	}

	if _, err := ix.Search([]float32{0}, ClampK(2, ix.Len())); err != nil {
		t.Errorf("clamped search failed: %v", err)
	}
}

func TestFlatIndexDimensionMismatch(t *testing.T) {
	ix := NewFlatIndex(2)

	if _, err := ix.Add([]float32{1, 2, 3}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Add err = %v, want ErrDimensionMismatch", err)
	}
	if ix.Len() != 0 {
		t.Errorf("rejected vector was stored")
	}

	ix.Add([]float32{1, 2})
	if _, err := ix.Search([]float32{1}, 1); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Search err = %v, want ErrDimensionMismatch", err)
	}
}

func TestSquaredL2MagnitudeMatters(t *testing.T) {
	// Same direction, different magnitude: cosine would call these equal.
	short := []float32{1, 0}
	long := []float32{10, 0}
	query := []float32{1, 0}

	if SquaredL2(query, short) != 0 {
		t.Errorf("distance to identical vector = %v", SquaredL2(query, short))
	}
	if SquaredL2(query, long) != 81 {
		t.Errorf("distance to scaled vector = %v, want 81", SquaredL2(query, long))
	}
}

func TestClampK(t *testing.T) {
	tests := []struct{ k, stored, want int }{
		{5, 3, 3},
		{5, 5, 5},
		{5, 9, 5},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := ClampK(tt.k, tt.stored); got != tt.want {
			t.Errorf("ClampK(%d, %d) = %d, want %d", tt.k, tt.stored, got, tt.want)
		}
	}
}
