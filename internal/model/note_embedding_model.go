package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// NoteEmbedding holds one vector per note: the embedded summary.
// The column width must match EMBEDDING_DIMENSION.
type NoteEmbedding struct {
	NoteId         string          `gorm:"type:varchar(64);primaryKey"`
	Document       string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
}

func (NoteEmbedding) TableName() string {
	return "note_embeddings"
}
