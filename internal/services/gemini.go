package services

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"
)

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
	dimension  int32
}

// NewGeminiService builds a client usable both as an EmbeddingProvider and
// as a TextGenerator.
func NewGeminiService(apiKey, modelName, embedModel string, dimension int) (LLMProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		modelName:  modelName,
		embedModel: embedModel,
		dimension:  int32(dimension),
	}, nil
}

// Embed implements EmbeddingProvider.
func (g *geminiService) Embed(ctx context.Context, text string) ([]float32, error) {
	// ~10000 tokens
	text = truncateChars(text, 40000)

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), &genai.EmbedContentConfig{
		OutputDimensionality: &g.dimension,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

// Generate implements TextGenerator. An empty answer is returned as "" so the
// caller can decide on a fallback.
func (g *geminiService) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), &genai.GenerateContentConfig{
		MaxOutputTokens: 4096,
	})
	if err != nil {
		return "", &GenerationServiceError{Op: "gemini generate", Err: err}
	}

	if resp == nil {
		log.Println("❌ Gemini API returned nil response")
		return "", nil
	}

	return resp.Text(), nil
}

// Name implements TextGenerator.
func (g *geminiService) Name() string {
	return "gemini/" + g.modelName
}
