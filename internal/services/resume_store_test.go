package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestMemoryResumeStoreAssignsPositions(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResumeStore(2)

	for i, name := range []string{"a.pdf", "b.pdf", "a.pdf"} {
		got, err := store.Add(ctx, name, "text "+name, []float32{float32(i), 0})
		if err != nil {
			t.Fatalf("Add(%s): %v", name, err)
		}
		if got.Position != i {
			t.Errorf("position = %d, want %d", got.Position, i)
		}
		if want := fmt.Sprintf("%s_%d", name, i); got.ID != want {
			t.Errorf("id = %q, want %q", got.ID, want)
		}
	}

	if store.Len() != 3 {
		t.Errorf("Len() = %d, want 3", store.Len())
	}
}

func TestMemoryResumeStoreSearch(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResumeStore(1)
	for i, v := range []float32{9, 1, 4} {
		store.Add(ctx, fmt.Sprintf("r%d.pdf", i), fmt.Sprintf("text %d", i), []float32{v})
	}

	matches, err := store.Search(ctx, []float32{0}, ClampK(5, store.Len()))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(matches))
	}

	wantIDs := []string{"r1.pdf_1", "r2.pdf_2", "r0.pdf_0"}
	for i, m := range matches {
		if m.Resume.ID != wantIDs[i] {
			t.Errorf("match %d = %s, want %s", i, m.Resume.ID, wantIDs[i])
		}
		if i > 0 && m.Distance < matches[i-1].Distance {
			t.Errorf("matches not sorted: %v before %v", matches[i-1].Distance, m.Distance)
		}
	}
}

func TestMemoryResumeStoreEmptySearch(t *testing.T) {
	store := NewMemoryResumeStore(3)

	matches, err := store.Search(context.Background(), []float32{1, 1, 1}, 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("got %d matches from empty store", len(matches))
	}
}

func TestMemoryResumeStoreGetAndList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResumeStore(1)
	store.Add(ctx, "one.pdf", "first", []float32{1})
	store.Add(ctx, "two.pdf", "second", []float32{2})

	got, err := store.Get(ctx, "two.pdf_1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Text != "second" {
		t.Errorf("text = %q, want second", got.Text)
	}

	if _, err := store.Get(ctx, "missing.pdf_9"); !errors.Is(err, ErrResumeNotFound) {
		t.Errorf("err = %v, want ErrResumeNotFound", err)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != "one.pdf_0" || list[1].ID != "two.pdf_1" {
		t.Errorf("List() = %+v", list)
	}
}

func TestMemoryResumeStoreRejectsWrongDimension(t *testing.T) {
	store := NewMemoryResumeStore(2)

	if _, err := store.Add(context.Background(), "x.pdf", "x", []float32{1}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("err = %v, want ErrDimensionMismatch", err)
	}
	if store.Len() != 0 {
		t.Errorf("Len() = %d after rejected add", store.Len())
	}
}

func TestMemoryResumeStoreConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryResumeStore(1)

	const n = 64
	var wg sync.WaitGroup
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := store.Add(ctx, fmt.Sprintf("r%d.pdf", i), fmt.Sprintf("text %d", i), []float32{float32(i)})
			if err != nil {
				t.Errorf("Add: %v", err)
				return
			}
			ids[i] = got.ID
		}(i)
	}
	wg.Wait()

	if store.Len() != n {
		t.Fatalf("Len() = %d, want %d", store.Len(), n)
	}

	seen := make(map[int]bool)
	for i, id := range ids {
		got, err := store.Get(ctx, id)
		if err != nil {
			t.Fatalf("Get(%s): %v", id, err)
		}
		if want := fmt.Sprintf("text %d", i); got.Text != want {
			t.Errorf("%s maps to %q, want %q", id, got.Text, want)
		}
		if got.Vector[0] != float32(i) {
			t.Errorf("%s carries vector %v, want [%d]", id, got.Vector, i)
		}
		if seen[got.Position] {
			t.Errorf("position %d assigned twice", got.Position)
		}
		seen[got.Position] = true
	}
}

func TestPositionFromResumeID(t *testing.T) {
	tests := []struct {
		id     string
		want   int
		wantOK bool
	}{
		{"cv.pdf_0", 0, true},
		{"my_cv.pdf_12", 12, true},
		{"cv.pdf", 0, false},
		{"cv.pdf_x", 0, false},
	}
	for _, tt := range tests {
		got, ok := positionFromResumeID(tt.id)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("positionFromResumeID(%q) = %d, %v; want %d, %v", tt.id, got, ok, tt.want, tt.wantOK)
		}
	}
}
