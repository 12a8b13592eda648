package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"voice-journal-be/pkg/vectorindex"
)

// Index is an in-process brute-force cosine index, used for development and
// tests. Distances are reported as 1 - cosine similarity.
type Index struct {
	mu        sync.RWMutex
	dimension int
	ids       []string
	vectors   [][]float32
	position  map[string]int
}

var (
	_ vectorindex.Index   = &Index{}
	_ vectorindex.Counter = &Index{}
)

// NewIndex creates an index pinned to dimension. A zero dimension is learned
// from the first upsert.
func NewIndex(dimension int) *Index {
	return &Index{
		dimension: dimension,
		position:  make(map[string]int),
	}
}

func (i *Index) Upsert(ctx context.Context, id string, vector []float32, document string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.dimension == 0 {
		i.dimension = len(vector)
	}
	if len(vector) != i.dimension {
		return fmt.Errorf("%w: got %d, index holds %d", vectorindex.ErrDimensionMismatch, len(vector), i.dimension)
	}

	stored := make([]float32, len(vector))
	copy(stored, vector)

	if pos, ok := i.position[id]; ok {
		i.vectors[pos] = stored
		return nil
	}
	i.position[id] = len(i.ids)
	i.ids = append(i.ids, id)
	i.vectors = append(i.vectors, stored)
	return nil
}

func (i *Index) Query(ctx context.Context, vector []float32, topK int) ([]vectorindex.Hit, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if topK <= 0 {
		topK = 5
	}
	if len(i.ids) == 0 {
		return []vectorindex.Hit{}, nil
	}
	if len(vector) != i.dimension {
		return nil, fmt.Errorf("%w: query has %d, index holds %d", vectorindex.ErrDimensionMismatch, len(vector), i.dimension)
	}

	hits := make([]vectorindex.Hit, len(i.ids))
	for n, stored := range i.vectors {
		hits[n] = vectorindex.Hit{Id: i.ids[n], Distance: 1 - cosine(stored, vector)}
	}
	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Distance < hits[b].Distance
	})
	if topK < len(hits) {
		hits = hits[:topK]
	}
	return hits, nil
}

// Len returns the number of indexed vectors.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.ids)
}

func (i *Index) Count(ctx context.Context) (int64, error) {
	return int64(i.Len()), nil
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for n := range a {
		dot += float64(a[n]) * float64(b[n])
		na += float64(a[n]) * float64(a[n])
		nb += float64(b[n]) * float64(b[n])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
