package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJournalEvents(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	created := NewNoteCreated("n1", "Cells", []string{"Biology"}, at)
	assert.Equal(t, NoteCreated, created.EventType())
	assert.Equal(t, "n1", created.Payload()["note_id"])
	assert.Equal(t, at, created.Timestamp())

	answered := NewQuestionAnswered("c1", "examMode", 3, false, at)
	assert.Equal(t, QuestionAnswered, answered.EventType())
	assert.Equal(t, 3, answered.Payload()["sources"])
	assert.NotContains(t, answered.Payload(), "answer")
}
