// Package jina embeds text through Jina AI's OpenAI-compatible endpoint.
package jina

import (
	"context"
	"errors"
	"fmt"

	"voice-journal-be/pkg/embedding"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	defaultBaseURL = "https://api.jina.ai/v1/"
	// jina-embeddings-v2-base-en yields 768 dimensions and so fits the
	// default note_embeddings column.
	defaultModel = "jina-embeddings-v2-base-en"
)

type JinaProvider struct {
	client openai.Client
	model  string
}

var _ embedding.Embedder = &JinaProvider{}

// NewJinaProvider targets baseURL, or the public Jina API when it is empty.
func NewJinaProvider(apiKey, baseURL string) *JinaProvider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &JinaProvider{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
			option.WithMaxRetries(2),
		),
		model: defaultModel,
	}
}

func (p *JinaProvider) Encode(ctx context.Context, text string) ([]float32, error) {
	resp, err := p.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model:          openai.EmbeddingModel(p.model),
		Input:          openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: []string{text}},
		EncodingFormat: openai.EmbeddingNewParamsEncodingFormatFloat,
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("jina api error (status %d): %w", apiErr.StatusCode, err)
		}
		return nil, fmt.Errorf("jina request failed: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, errors.New("empty embeddings from jina api")
	}

	vec := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vec[i] = float32(v)
	}
	return embedding.Normalize(vec), nil
}
