package factory

import (
	"context"
	"fmt"

	"voice-journal-be/pkg/llm"
	"voice-journal-be/pkg/llm/gemini"
	"voice-journal-be/pkg/llm/ollama"
	"voice-journal-be/pkg/llm/openaicompat"
)

type Config struct {
	Provider string
	Model    string
	BaseURL  string
	ApiKey   string
}

func NewLLMProvider(ctx context.Context, cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "", "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model), nil
	case "openai":
		return openaicompat.NewProvider(cfg.ApiKey, cfg.BaseURL, cfg.Model)
	case "gemini":
		return gemini.NewProvider(ctx, cfg.ApiKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
