package factory

import (
	"context"
	"fmt"

	"voice-journal-be/pkg/embedding"
	"voice-journal-be/pkg/embedding/gemini"
	"voice-journal-be/pkg/embedding/jina"
)

// Config selects an embedding backend. BaseURL and Model are passed through
// as-is; each provider falls back to its own default when they are empty.
type Config struct {
	Provider string
	BaseURL  string
	Model    string
	ApiKey   string
}

func NewEmbedder(ctx context.Context, cfg Config) (embedding.Embedder, error) {
	switch cfg.Provider {
	case "", "ollama":
		return embedding.NewOllamaProvider(cfg.BaseURL, cfg.Model), nil
	case "gemini":
		return gemini.NewProvider(ctx, cfg.ApiKey, cfg.Model, cfg.BaseURL)
	case "jina":
		if cfg.ApiKey == "" {
			return nil, fmt.Errorf("jina embedding provider requires an api key")
		}
		return jina.NewJinaProvider(cfg.ApiKey, cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}
