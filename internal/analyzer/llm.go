package analyzer

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/ternarybob/hunter/internal/config"
)

// LLMClient provides access to the Gemini API for narrative generation and
// document embeddings.
type LLMClient struct {
	client         *genai.Client
	model          string
	embeddingModel string
	timeout        time.Duration
}

// NewLLMClient creates a new LLM client using the Gemini SDK.
// Returns nil if no API key is configured; callers treat a nil client as
// "unconfigured" and fall back.
func NewLLMClient(cfg config.LLMConfig) *LLMClient {
	if cfg.APIKey == "" {
		return nil
	}

	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = "text-embedding-004"
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil
	}

	return &LLMClient{
		client:         client,
		model:          cfg.Model,
		embeddingModel: cfg.EmbeddingModel,
		timeout:        timeout,
	}
}

// IsConfigured returns whether the client is usable.
func (c *LLMClient) IsConfigured() bool {
	return c != nil && c.client != nil
}

// Model returns the generation model name.
func (c *LLMClient) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}

// Generate produces text from a prompt.
func (c *LLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.IsConfigured() {
		return "", fmt.Errorf("LLM client not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 {
		return "", fmt.Errorf("empty response from API")
	}

	var text string
	if result.Candidates[0].Content != nil {
		for _, part := range result.Candidates[0].Content.Parts {
			if part != nil && part.Text != "" {
				text += part.Text
			}
		}
	}

	if text == "" {
		return "", fmt.Errorf("no text in response")
	}

	return text, nil
}

// Embed returns the embedding vector for a piece of text.
func (c *LLMClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if !c.IsConfigured() {
		return nil, fmt.Errorf("LLM client not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.client.Models.EmbedContent(ctx, c.embeddingModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("empty embedding from API")
	}

	return result.Embeddings[0].Values, nil
}
