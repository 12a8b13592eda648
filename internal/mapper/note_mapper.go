package mapper

import (
	"voice-journal-be/internal/entity"
	"voice-journal-be/internal/model"

	"gorm.io/datatypes"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	tags := make([]string, len(n.Tags))
	copy(tags, n.Tags)

	return &entity.Note{
		Id:            n.Id,
		Title:         n.Title,
		Summary:       n.Summary,
		Tags:          tags,
		Transcription: n.Transcription,
		Datetime:      n.Datetime,
		CreatedAt:     n.CreatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	tags := datatypes.JSONSlice[string]{}
	tags = append(tags, n.Tags...)

	return &model.Note{
		Id:            n.Id,
		Title:         n.Title,
		Summary:       n.Summary,
		Tags:          tags,
		Transcription: n.Transcription,
		Datetime:      n.Datetime,
		CreatedAt:     n.CreatedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
