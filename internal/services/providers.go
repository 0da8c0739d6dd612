package services

import (
	"fmt"

	"alfredoptarigan/resume-ranker/internal/config"
)

const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// NewEmbeddingProvider builds the provider named by EMBEDDING_PROVIDER.
func NewEmbeddingProvider(cfg *config.Config) (EmbeddingProvider, error) {
	switch cfg.Embedding.Provider {
	case ProviderOllama:
		return NewOllamaEmbedder(cfg.Embedding.OllamaURL, cfg.Embedding.Model), nil
	case ProviderGemini:
		return NewGeminiService(cfg.Gemini.APIKey, cfg.Feedback.Model, cfg.Embedding.Model, cfg.Embedding.Dimension)
	case ProviderOpenAI:
		return NewOpenAIService(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.Feedback.Model, cfg.Embedding.Model, cfg.Embedding.Dimension)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Embedding.Provider)
	}
}

// NewTextGenerator builds the feedback backend named by FEEDBACK_PROVIDER.
func NewTextGenerator(cfg *config.Config) (TextGenerator, error) {
	switch cfg.Feedback.Provider {
	case ProviderOllama:
		return NewOllamaGenerator(cfg.Feedback.URL, cfg.Feedback.Model, cfg.Feedback.Timeout), nil
	case ProviderGemini:
		return NewGeminiService(cfg.Gemini.APIKey, cfg.Feedback.Model, cfg.Embedding.Model, cfg.Embedding.Dimension)
	case ProviderOpenAI:
		return NewOpenAIService(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.Feedback.Model, cfg.Embedding.Model, cfg.Embedding.Dimension)
	default:
		return nil, fmt.Errorf("unknown feedback provider %q", cfg.Feedback.Provider)
	}
}

// NewResumeStore builds the persistent index named by INDEX_BACKEND. Batch
// mode never reads the store, so it always gets an empty in-memory one and
// an external collection is left untouched.
func NewResumeStore(cfg *config.Config) (ResumeStore, error) {
	if cfg.Server.Mode == config.ModeBatch {
		return NewMemoryResumeStore(cfg.Embedding.Dimension), nil
	}

	switch cfg.Ranking.IndexBackend {
	case config.IndexBackendMemory:
		return NewMemoryResumeStore(cfg.Embedding.Dimension), nil
	case config.IndexBackendQdrant:
		return NewQdrantResumeStore(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, cfg.Embedding.Dimension)
	default:
		return nil, fmt.Errorf("unknown index backend %q", cfg.Ranking.IndexBackend)
	}
}
