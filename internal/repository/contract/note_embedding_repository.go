package contract

import (
	"context"

	"voice-journal-be/internal/entity"
	"voice-journal-be/internal/repository/specification"
	"voice-journal-be/pkg/vectorindex"
)

// NoteEmbeddingRepository stores one summary vector per note in pgvector and
// doubles as a vectorindex.Index and vectorindex.Counter.
type NoteEmbeddingRepository interface {
	vectorindex.Index
	vectorindex.Counter

	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.NoteEmbedding, error)
}
