package dto

import (
	"time"
)

type CreateNoteRequest struct {
	Transcription string `json:"transcription" validate:"required"`
}

type CreateNoteResponse struct {
	Id    string   `json:"id"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

type ShowNoteResponse struct {
	Id            string    `json:"id"`
	Title         string    `json:"title"`
	Summary       string    `json:"summary"`
	Tags          []string  `json:"tags"`
	Transcription string    `json:"transcription"`
	Datetime      time.Time `json:"datetime"`
	CreatedAt     time.Time `json:"created_at"`
}

type ListNoteRequest struct {
	Tag    string `query:"tag"`
	Query  string `query:"q"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
}

type SemanticSearchResponse struct {
	Id       string    `json:"id"`
	Title    string    `json:"title"`
	Summary  string    `json:"summary"`
	Tags     []string  `json:"tags"`
	Datetime time.Time `json:"datetime"`
	Distance float64   `json:"distance"`
}

type PublishEmbedNoteMessage struct {
	NoteId string `json:"note_id"`
}
