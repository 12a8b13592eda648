package embedding

import (
	"context"
	"math"
)

// Embedder turns text into a fixed-dimension vector. Queries and indexed
// summaries must go through the same Embedder.
type Embedder interface {
	Encode(ctx context.Context, text string) ([]float32, error)
}

// Normalize scales a vector to unit length so cosine distance in
// pgvector and chroma behaves the same as the in-memory index.
func Normalize(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	if magnitude == 0 {
		return vec
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}
