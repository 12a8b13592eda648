// Package gemini embeds text with the Gemini API through google.golang.org/genai.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"voice-journal-be/pkg/embedding"

	"google.golang.org/genai"
)

const (
	defaultModel = "text-embedding-004"
	taskType     = "SEMANTIC_SIMILARITY"
)

type Provider struct {
	client *genai.Client
	model  string
}

var _ embedding.Embedder = &Provider{}

// NewProvider builds a client for the Gemini API. baseURL is only set in
// tests; an empty model selects text-embedding-004 (768 dimensions).
func NewProvider(ctx context.Context, apiKey, model, baseURL string) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("gemini embedding provider requires an api key")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Provider{client: client, model: model}, nil
}

func (p *Provider) Encode(ctx context.Context, text string) ([]float32, error) {
	resp, err := p.client.Models.EmbedContent(ctx, p.model, genai.Text(text), &genai.EmbedContentConfig{
		TaskType: taskType,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini embed failed: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, errors.New("empty embeddings from gemini")
	}
	return embedding.Normalize(resp.Embeddings[0].Values), nil
}
