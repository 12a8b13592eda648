package entity

import (
	"time"
)

// Note is one journal entry. It is immutable once ingested.
type Note struct {
	Id            string
	Title         string
	Summary       string
	Tags          []string
	Transcription string
	Datetime      time.Time
	CreatedAt     time.Time
}

type NoteEmbedding struct {
	NoteId         string
	Document       string
	EmbeddingValue []float32
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
