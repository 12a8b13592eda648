package implementation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"voice-journal-be/internal/entity"
	"voice-journal-be/internal/mapper"
	"voice-journal-be/internal/model"
	"voice-journal-be/internal/repository/contract"
	"voice-journal-be/internal/repository/specification"
	"voice-journal-be/pkg/vectorindex"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NoteEmbeddingRepositoryImpl struct {
	db        *gorm.DB
	mapper    *mapper.NoteEmbeddingMapper
	dimension int
}

// NewNoteEmbeddingRepository returns the pgvector-backed index. dimension is
// the width of the vector column; zero skips the client-side check.
func NewNoteEmbeddingRepository(db *gorm.DB, dimension int) contract.NoteEmbeddingRepository {
	return &NoteEmbeddingRepositoryImpl{
		db:        db,
		mapper:    mapper.NewNoteEmbeddingMapper(),
		dimension: dimension,
	}
}

func (r *NoteEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NoteEmbeddingRepositoryImpl) checkDimension(vector []float32) error {
	if r.dimension > 0 && len(vector) != r.dimension {
		return fmt.Errorf("%w: got %d, column holds %d", vectorindex.ErrDimensionMismatch, len(vector), r.dimension)
	}
	return nil
}

func (r *NoteEmbeddingRepositoryImpl) Upsert(ctx context.Context, id string, vector []float32, document string) error {
	if err := r.checkDimension(vector); err != nil {
		return err
	}

	m := r.mapper.ToModel(&entity.NoteEmbedding{
		NoteId:         id,
		Document:       document,
		EmbeddingValue: vector,
	})
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "note_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"document", "embedding_value", "updated_at"}),
		}).
		Create(m).Error
	return translatePgvectorError(err)
}

// Query orders by cosine distance (<=>), smallest first.
func (r *NoteEmbeddingRepositoryImpl) Query(ctx context.Context, vector []float32, topK int) ([]vectorindex.Hit, error) {
	if topK <= 0 {
		topK = 5
	}
	if err := r.checkDimension(vector); err != nil {
		return nil, err
	}

	type result struct {
		NoteId   string
		Distance float64
	}
	var results []result

	queryVector := pgvector.NewVector(vector)
	err := r.db.WithContext(ctx).
		Model(&model.NoteEmbedding{}).
		Select("note_id, embedding_value <=> ? AS distance", queryVector).
		Order(gorm.Expr("embedding_value <=> ?", queryVector)).
		Limit(topK).
		Scan(&results).Error
	if err != nil {
		return nil, translatePgvectorError(err)
	}

	hits := make([]vectorindex.Hit, len(results))
	for i, res := range results {
		hits[i] = vectorindex.Hit{Id: res.NoteId, Distance: res.Distance}
	}
	return hits, nil
}

func (r *NoteEmbeddingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.NoteEmbedding, error) {
	var m model.NoteEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

// Count returns the number of embedded notes.
func (r *NoteEmbeddingRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.NoteEmbedding{}).Count(&count).Error
	return count, err
}

// translatePgvectorError maps pgvector's "different vector dimensions" and
// "expected N dimensions" failures onto ErrDimensionMismatch.
func translatePgvectorError(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "dimensions") {
		return fmt.Errorf("%w: %v", vectorindex.ErrDimensionMismatch, err)
	}
	return err
}
