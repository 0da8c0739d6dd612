package services

import (
	"context"
	"errors"
	"testing"
)

type fixedEmbedder struct {
	vector []float32
	calls  int
}

func (f *fixedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	return f.vector, nil
}

func TestEmbedBlankTextIsZeroVector(t *testing.T) {
	provider := &letterEmbedder{}
	svc := newTestEmbeddingService(provider)

	for _, text := range []string{"", "   ", "\n\t"} {
		vec, err := svc.Embed(context.Background(), text)
		if err != nil {
			t.Fatalf("Embed(%q): %v", text, err)
		}
		if len(vec) != testDimension {
			t.Fatalf("len = %d, want %d", len(vec), testDimension)
		}
		for i, v := range vec {
			if v != 0 {
				t.Fatalf("component %d = %v, want 0", i, v)
			}
		}
	}
	if provider.calls.Load() != 0 {
		t.Errorf("provider called %d times for blank text", provider.calls.Load())
	}
}

func TestEmbedIsDeterministic(t *testing.T) {
	svc := newTestEmbeddingService(&letterEmbedder{})

	a, err := svc.Embed(context.Background(), "Go developer")
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.Embed(context.Background(), "Go developer")
	if err != nil {
		t.Fatal(err)
	}
	if SquaredL2(a, b) != 0 {
		t.Errorf("same text produced different vectors")
	}
}

func TestEmbedDimensionMismatch(t *testing.T) {
	svc := newTestEmbeddingService(&fixedEmbedder{vector: make([]float32, 12)})

	_, err := svc.Embed(context.Background(), "anything")
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("err = %v, want ErrDimensionMismatch", err)
	}
}

func TestEmbedCacheReturnsCopies(t *testing.T) {
	provider := &fixedEmbedder{vector: make([]float32, testDimension)}
	svc, err := NewEmbeddingService(provider, testDimension, 100)
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()

	first, err := svc.Embed(context.Background(), "cached text")
	if err != nil {
		t.Fatal(err)
	}
	first[0] = 42

	second, err := svc.Embed(context.Background(), "cached text")
	if err != nil {
		t.Fatal(err)
	}
	if second[0] != 0 {
		t.Errorf("cached vector was mutated by caller: %v", second[0])
	}
}

func TestWarmup(t *testing.T) {
	tests := []struct {
		name    string
		dim     int
		wantErr bool
	}{
		{name: "matching dimension", dim: testDimension},
		{name: "wrong dimension", dim: 768, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewEmbeddingService(&letterEmbedder{}, tt.dim, 0)
			if err != nil {
				t.Fatal(err)
			}
			err = svc.Warmup(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("Warmup() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
