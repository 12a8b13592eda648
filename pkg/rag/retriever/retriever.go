package retriever

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"voice-journal-be/internal/entity"
	"voice-journal-be/internal/pkg/logger"
	"voice-journal-be/pkg/embedding"
	"voice-journal-be/pkg/vectorindex"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// NoteStore resolves note ids. Unknown ids are omitted, not reported.
type NoteStore interface {
	FindByIds(ctx context.Context, ids []string) ([]*entity.Note, error)
}

// ScoredNote is one retrieval result.
type ScoredNote struct {
	Note     *entity.Note
	Distance float64
}

// Config bounds each retrieval stage with its own timeout.
type Config struct {
	EmbedTimeout time.Duration
	IndexTimeout time.Duration
	StoreTimeout time.Duration
}

// Retriever finds notes relevant to a query string.
type Retriever struct {
	embedder embedding.Embedder
	index    vectorindex.Index
	store    NoteStore
	logger   logger.ILogger
	config   Config
}

func NewRetriever(embedder embedding.Embedder, index vectorindex.Index, store NoteStore, log logger.ILogger, config Config) *Retriever {
	return &Retriever{
		embedder: embedder,
		index:    index,
		store:    store,
		logger:   log,
		config:   config,
	}
}

// Retrieve returns notes whose distance to query is strictly below
// threshold, in the order the index returned them.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int, threshold float64) ([]*entity.Note, error) {
	scored, err := r.RetrieveScored(ctx, query, topK, threshold)
	if err != nil {
		return nil, err
	}
	notes := make([]*entity.Note, len(scored))
	for i, s := range scored {
		notes[i] = s.Note
	}
	return notes, nil
}

func (r *Retriever) RetrieveScored(ctx context.Context, query string, topK int, threshold float64) ([]ScoredNote, error) {
	if strings.TrimSpace(query) == "" {
		return []ScoredNote{}, nil
	}

	ctx, span := otel.Tracer("rag").Start(ctx, "retriever.Retrieve")
	defer span.End()
	span.SetAttributes(attribute.Int("rag.top_k", topK), attribute.Float64("rag.threshold", threshold))

	vector, err := r.encode(ctx, query)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := r.query(ctx, vector, topK)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query index: %w", err)
	}

	kept := make([]vectorindex.Hit, 0, len(hits))
	for i, hit := range hits {
		if hit.Distance < threshold {
			kept = append(kept, hit)
			r.logger.Debug("Retriever", "Candidate kept", map[string]interface{}{
				"rank": i + 1, "note_id": hit.Id, "distance": hit.Distance,
			})
			continue
		}
		r.logger.Debug("Retriever", "Candidate filtered", map[string]interface{}{
			"rank": i + 1, "note_id": hit.Id, "distance": hit.Distance,
		})
	}
	span.SetAttributes(attribute.Int("rag.hits", len(hits)), attribute.Int("rag.kept", len(kept)))

	if len(kept) == 0 {
		return []ScoredNote{}, nil
	}

	ids := make([]string, len(kept))
	for i, hit := range kept {
		ids[i] = hit.Id
	}

	notes, err := r.resolve(ctx, ids)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("resolve notes: %w", err)
	}

	byId := make(map[string]*entity.Note, len(notes))
	for _, n := range notes {
		if n != nil {
			byId[n.Id] = n
		}
	}

	result := make([]ScoredNote, 0, len(kept))
	for _, hit := range kept {
		note, ok := byId[hit.Id]
		if !ok {
			r.logger.Warn("Retriever", "Index references unknown note", map[string]interface{}{"note_id": hit.Id})
			continue
		}
		result = append(result, ScoredNote{Note: note, Distance: hit.Distance})
	}
	return result, nil
}

func (r *Retriever) encode(ctx context.Context, query string) ([]float32, error) {
	ctx, cancel := withTimeout(ctx, r.config.EmbedTimeout)
	defer cancel()
	return r.embedder.Encode(ctx, query)
}

func (r *Retriever) query(ctx context.Context, vector []float32, topK int) ([]vectorindex.Hit, error) {
	ctx, cancel := withTimeout(ctx, r.config.IndexTimeout)
	defer cancel()
	hits, err := r.index.Query(ctx, vector, topK)
	if err != nil && errors.Is(err, vectorindex.ErrDimensionMismatch) {
		r.logger.Error("Retriever", "Embedding dimension mismatch", map[string]interface{}{
			"error": err.Error(), "query_dimension": len(vector),
		})
	}
	return hits, err
}

func (r *Retriever) resolve(ctx context.Context, ids []string) ([]*entity.Note, error) {
	ctx, cancel := withTimeout(ctx, r.config.StoreTimeout)
	defer cancel()
	return r.store.FindByIds(ctx, ids)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
