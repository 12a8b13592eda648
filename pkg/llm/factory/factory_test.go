package factory

import (
	"context"
	"testing"

	"voice-journal-be/pkg/llm/ollama"
	"voice-journal-be/pkg/llm/openaicompat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	ctx := context.Background()

	p, err := NewLLMProvider(ctx, Config{Model: "llama3"})
	require.NoError(t, err)
	ollamaProvider, ok := p.(*ollama.OllamaProvider)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:11434", ollamaProvider.BaseURL)

	p, err = NewLLMProvider(ctx, Config{Provider: "openai", Model: "gpt-4o-mini", ApiKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &openaicompat.Provider{}, p)

	_, err = NewLLMProvider(ctx, Config{Provider: "gemini"})
	assert.Error(t, err)

	_, err = NewLLMProvider(ctx, Config{Provider: "claude"})
	assert.Error(t, err)
}
