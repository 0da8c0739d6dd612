package services

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// openAIService talks to OpenAI or any OpenAI-compatible server.
type openAIService struct {
	client     *openai.Client
	chatModel  string
	embedModel openai.EmbeddingModel
	dimension  int
}

func NewOpenAIService(apiKey, baseURL, chatModel, embedModel string, dimension int) (LLMProvider, error) {
	if apiKey == "" && baseURL == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY or OPENAI_BASE_URL is required for the openai provider")
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &openAIService{
		client:     openai.NewClientWithConfig(config),
		chatModel:  chatModel,
		embedModel: openai.EmbeddingModel(embedModel),
		dimension:  dimension,
	}, nil
}

// Embed implements EmbeddingProvider.
func (o *openAIService) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      o.embedModel,
		Dimensions: o.dimension,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	return resp.Data[0].Embedding, nil
}

// Generate implements TextGenerator.
func (o *openAIService) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", &GenerationServiceError{Op: "openai chat completion", Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}

	return resp.Choices[0].Message.Content, nil
}

// Name implements TextGenerator.
func (o *openAIService) Name() string {
	return "openai/" + o.chatModel
}
