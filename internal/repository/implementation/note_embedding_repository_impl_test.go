package implementation

import (
	"context"
	"errors"
	"testing"

	"voice-journal-be/pkg/vectorindex"

	"github.com/stretchr/testify/assert"
)

func TestTranslatePgvectorError(t *testing.T) {
	assert.NoError(t, translatePgvectorError(nil))

	err := translatePgvectorError(errors.New("ERROR: different vector dimensions 384 and 768 (SQLSTATE 22000)"))
	assert.True(t, errors.Is(err, vectorindex.ErrDimensionMismatch))

	err = translatePgvectorError(errors.New("ERROR: expected 768 dimensions, not 384 (SQLSTATE 22000)"))
	assert.True(t, errors.Is(err, vectorindex.ErrDimensionMismatch))

	err = translatePgvectorError(errors.New("connection reset"))
	assert.False(t, errors.Is(err, vectorindex.ErrDimensionMismatch))
}

func TestQueryRejectsWrongDimensionBeforeTouchingDB(t *testing.T) {
	repo := NewNoteEmbeddingRepository(nil, 768)

	_, err := repo.Query(context.Background(), make([]float32, 384), 5)
	assert.True(t, errors.Is(err, vectorindex.ErrDimensionMismatch))

	err = repo.Upsert(context.Background(), "n1", make([]float32, 3), "doc")
	assert.True(t, errors.Is(err, vectorindex.ErrDimensionMismatch))
}
