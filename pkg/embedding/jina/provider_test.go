package jina

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJinaProviderEncode(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","model":"jina-embeddings-v2-base-en",
			"data":[{"object":"embedding","index":0,"embedding":[3,4]}],
			"usage":{"prompt_tokens":3,"total_tokens":3}}`))
	}))
	defer server.Close()

	vec, err := NewJinaProvider("secret", server.URL+"/").Encode(context.Background(), "mitosis")
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float32{0.6, 0.8}, vec, 1e-6)
	assert.Equal(t, defaultModel, body["model"])
	assert.Equal(t, []any{"mitosis"}, body["input"])
}

func TestJinaProviderErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "api error", status: http.StatusUnauthorized, body: `{"error":{"message":"bad key"}}`},
		{name: "no data", status: http.StatusOK, body: `{"object":"list","data":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewJinaProvider("k", server.URL+"/").Encode(context.Background(), "x")
			assert.Error(t, err)
		})
	}
}
