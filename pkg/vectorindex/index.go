package vectorindex

import (
	"context"
	"errors"
)

// ErrDimensionMismatch means the query vector and the indexed vectors were
// produced by different embedding models. It is never recovered from.
var ErrDimensionMismatch = errors.New("vectorindex: embedding dimension mismatch")

// DefaultDistanceThreshold is the retrieval cut for cosine distance
// (1 - cosine similarity, range 0..2). Every backend is configured for
// cosine; 0.75 keeps notes with cosine similarity above 0.25, the same cut
// as squared L2 of 1.5 on unit vectors.
const DefaultDistanceThreshold = 0.75

// Hit is one nearest-neighbour candidate. Smaller Distance is closer for
// every backend.
type Hit struct {
	Id       string
	Distance float64
}

// Index is the similarity index the retriever queries and ingestion feeds.
type Index interface {
	// Query returns at most topK hits ordered by ascending distance.
	Query(ctx context.Context, vector []float32, topK int) ([]Hit, error)

	// Upsert stores or replaces the vector for id.
	Upsert(ctx context.Context, id string, vector []float32, document string) error
}

// Counter reports how many vectors an index holds. Every backend implements
// it; startup compares the figure with the note count to decide on a
// rebuild.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}
