package services

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"unicode"
)

const testDimension = 384

// letterEmbedder maps text to letter frequencies, so identical text gives
// identical vectors and similar text lands close together.
type letterEmbedder struct {
	calls atomic.Int64
	fail  map[string]bool
}

func (e *letterEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.calls.Add(1)
	for marker := range e.fail {
		if strings.Contains(text, marker) {
			return nil, errors.New("embedding backend unavailable")
		}
	}

	vec := make([]float32, testDimension)
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' {
			vec[r-'a']++
		} else if unicode.IsDigit(r) {
			vec[26+int(r-'0')]++
		}
	}
	return vec, nil
}

type fakeGenerator struct {
	response string
	err      error
	prompt   string
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.response, g.err
}

func (g *fakeGenerator) Name() string {
	return "fake/test"
}

func newTestEmbeddingService(provider EmbeddingProvider) EmbeddingService {
	s, err := NewEmbeddingService(provider, testDimension, 0)
	if err != nil {
		panic(err)
	}
	return s
}
