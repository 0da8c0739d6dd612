package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/dgraph-io/ristretto"
	"github.com/minio/highwayhash"
)

// EmbeddingProvider maps text to a dense vector using an external model.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// TextGenerator answers a single prompt with free text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// LLMProvider is a backend that can both embed and generate.
type LLMProvider interface {
	EmbeddingProvider
	TextGenerator
}

type EmbeddingService interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
	Warmup(ctx context.Context) error
	Close()
}

var cacheKey = []byte("resume-ranker/embedding-cache-k0")

type embeddingService struct {
	provider  EmbeddingProvider
	dimension int
	cache     *ristretto.Cache
}

// NewEmbeddingService wraps provider with length validation, a blank-text
// rule and a vector cache holding up to cacheSize entries (0 disables it).
func NewEmbeddingService(provider EmbeddingProvider, dimension int, cacheSize int64) (EmbeddingService, error) {
	s := &embeddingService{
		provider:  provider,
		dimension: dimension,
	}

	if cacheSize > 0 {
		cache, err := ristretto.NewCache(&ristretto.Config{
			NumCounters: cacheSize * 10,
			MaxCost:     cacheSize,
			BufferItems: 64,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create embedding cache: %w", err)
		}
		s.cache = cache
	}

	return s, nil
}

// Embed implements EmbeddingService. Blank text maps to the zero vector.
func (s *embeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return make([]float32, s.dimension), nil
	}

	key, err := hashText(text)
	if err != nil {
		return nil, fmt.Errorf("failed to hash text: %w", err)
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			return cloneVector(cached.([]float32)), nil
		}
	}

	vector, err := s.provider.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("%w: provider returned %d, want %d", ErrDimensionMismatch, len(vector), s.dimension)
	}

	if s.cache != nil {
		s.cache.Set(key, cloneVector(vector), 1)
	}

	return vector, nil
}

// Dimension implements EmbeddingService.
func (s *embeddingService) Dimension() int {
	return s.dimension
}

// Warmup loads the model and checks the vector length before the server
// accepts traffic.
func (s *embeddingService) Warmup(ctx context.Context) error {
	vector, err := s.provider.Embed(ctx, "warmup")
	if err != nil {
		return fmt.Errorf("failed to warm up embedding model: %w", err)
	}
	if len(vector) != s.dimension {
		return fmt.Errorf("%w: model produces %d, configured %d", ErrDimensionMismatch, len(vector), s.dimension)
	}

	log.Printf("✅ Embedding model ready (%d dimensions)\n", s.dimension)
	return nil
}

// Close implements EmbeddingService.
func (s *embeddingService) Close() {
	if s.cache != nil {
		s.cache.Close()
	}
}

func hashText(text string) (uint64, error) {
	h, err := highwayhash.New64(cacheKey)
	if err != nil {
		return 0, err
	}
	if _, err := h.Write([]byte(text)); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

func cloneVector(v []float32) []float32 {
	out := make([]float32, len(v))
	copy(out, v)
	return out
}
