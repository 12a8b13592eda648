package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"voice-journal-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatServer(t *testing.T, captured *chatRequest, reply chatResponse) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		_ = json.NewEncoder(w).Encode(reply)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestOllamaProviderGenerate(t *testing.T) {
	var captured chatRequest
	server := chatServer(t, &captured, chatResponse{
		Message: chatMessage{Role: "assistant", Content: "  Mitochondria make ATP.\n"},
		Done:    true,
	})

	provider := NewOllamaProvider(server.URL+"/", "llama3")
	got, err := provider.Generate(context.Background(), "What do mitochondria do?", llm.WithTemperature(0.2), llm.WithMaxTokens(64))
	require.NoError(t, err)

	assert.Equal(t, "Mitochondria make ATP.", got)
	assert.Equal(t, "llama3", captured.Model)
	assert.False(t, captured.Stream)
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, llm.RoleUser, captured.Messages[0].Role)
	assert.InDelta(t, 0.2, captured.Options.Temperature, 1e-9)
	assert.Equal(t, 64, captured.Options.NumPredict)
}

func TestOllamaProviderChatMapsModelRole(t *testing.T) {
	var captured chatRequest
	server := chatServer(t, &captured, chatResponse{Message: chatMessage{Content: "ok"}})

	_, err := NewOllamaProvider(server.URL, "llama3").Chat(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "hi"},
		{Role: "model", Content: "hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, llm.RoleAssistant, captured.Messages[1].Role)
}

func TestOllamaProviderFailures(t *testing.T) {
	t.Run("status error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not found", http.StatusNotFound)
		}))
		defer server.Close()

		_, err := NewOllamaProvider(server.URL, "llama3").Generate(context.Background(), "x")
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
		assert.Equal(t, "model not found", statusErr.Body)
	})

	t.Run("empty reply", func(t *testing.T) {
		var captured chatRequest
		server := chatServer(t, &captured, chatResponse{Message: chatMessage{Content: "   "}, Done: true})

		_, err := NewOllamaProvider(server.URL, "llama3").Generate(context.Background(), "x")
		assert.ErrorIs(t, err, ErrEmptyReply)
	})

	t.Run("error field", func(t *testing.T) {
		var captured chatRequest
		server := chatServer(t, &captured, chatResponse{Error: "out of memory"})

		_, err := NewOllamaProvider(server.URL, "llama3").Generate(context.Background(), "x")
		assert.ErrorContains(t, err, "out of memory")
	})
}
