package mapper

import (
	"testing"
	"time"

	"voice-journal-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestNoteMapperRoundTripKeepsTags(t *testing.T) {
	m := NewNoteMapper()
	note := &entity.Note{
		Id:       "n1",
		Title:    "Cells",
		Tags:     []string{"Biology", "Science"},
		Datetime: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	model := m.ToModel(note)
	assert.Equal(t, []string{"Biology", "Science"}, []string(model.Tags))

	back := m.ToEntity(model)
	assert.Equal(t, note.Tags, back.Tags)
	assert.Equal(t, note.Datetime, back.Datetime)

	model.Tags[0] = "Chemistry"
	assert.Equal(t, "Biology", back.Tags[0])
}

func TestNoteMapperNilTags(t *testing.T) {
	model := NewNoteMapper().ToModel(&entity.Note{Id: "n2"})
	assert.NotNil(t, model.Tags)
	assert.Len(t, model.Tags, 0)

	assert.Nil(t, NewNoteMapper().ToEntity(nil))
}
