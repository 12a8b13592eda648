package memory

import (
	"context"
	"errors"
	"math"
	"testing"

	"voice-journal-be/pkg/vectorindex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexQueryOrdersByDistance(t *testing.T) {
	ctx := context.Background()
	idx := NewIndex(3)

	require.NoError(t, idx.Upsert(ctx, "far", []float32{0, 0, 1}, "far"))
	require.NoError(t, idx.Upsert(ctx, "near", []float32{1, 0, 0}, "near"))
	require.NoError(t, idx.Upsert(ctx, "mid", []float32{1, 1, 0}, "mid"))

	hits, err := idx.Query(ctx, []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, "near", hits[0].Id)
	assert.Equal(t, "mid", hits[1].Id)
	assert.Equal(t, "far", hits[2].Id)
	assert.InDelta(t, 0.0, hits[0].Distance, 1e-9)
	assert.InDelta(t, 1-1/math.Sqrt(2), hits[1].Distance, 1e-6)
	assert.InDelta(t, 1.0, hits[2].Distance, 1e-9)
}

func TestIndexTopK(t *testing.T) {
	ctx := context.Background()
	idx := NewIndex(2)
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, idx.Upsert(ctx, id, []float32{1, 0}, id))
	}

	hits, err := idx.Query(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestIndexUpsertReplaces(t *testing.T) {
	ctx := context.Background()
	idx := NewIndex(2)
	require.NoError(t, idx.Upsert(ctx, "a", []float32{1, 0}, "v1"))
	require.NoError(t, idx.Upsert(ctx, "a", []float32{0, 1}, "v2"))

	assert.Equal(t, 1, idx.Len())
	count, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	hits, err := idx.Query(ctx, []float32{0, 1}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, hits[0].Distance, 1e-9)
}

func TestIndexDimensionMismatch(t *testing.T) {
	ctx := context.Background()
	idx := NewIndex(3)
	require.NoError(t, idx.Upsert(ctx, "a", []float32{1, 0, 0}, "a"))

	_, err := idx.Query(ctx, []float32{1, 0}, 1)
	assert.True(t, errors.Is(err, vectorindex.ErrDimensionMismatch))

	err = idx.Upsert(ctx, "b", []float32{1}, "b")
	assert.True(t, errors.Is(err, vectorindex.ErrDimensionMismatch))
}

func TestIndexEmpty(t *testing.T) {
	hits, err := NewIndex(0).Query(context.Background(), []float32{1}, 3)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestDefaultThresholdDropsUnrelatedNotes(t *testing.T) {
	ctx := context.Background()
	idx := NewIndex(2)
	require.NoError(t, idx.Upsert(ctx, "related", []float32{0.9, 0.4359}, "related"))
	require.NoError(t, idx.Upsert(ctx, "orthogonal", []float32{0, 1}, "orthogonal"))
	require.NoError(t, idx.Upsert(ctx, "opposed", []float32{-0.4, 0.9165}, "opposed"))

	hits, err := idx.Query(ctx, []float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	var kept []string
	for _, h := range hits {
		if h.Distance < vectorindex.DefaultDistanceThreshold {
			kept = append(kept, h.Id)
		}
	}
	assert.Equal(t, []string{"related"}, kept)
	assert.InDelta(t, 1.0, hits[1].Distance, 1e-6)
	assert.InDelta(t, 1.4, hits[2].Distance, 1e-3)
}
