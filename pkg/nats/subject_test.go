package nats

import (
	"testing"
	"time"

	"voice-journal-be/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "journal.note.created", Subject(events.NoteCreated))
	assert.Equal(t, "journal.question.answered", Subject(events.QuestionAnswered))
}

func TestOccurredAt(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	got := occurredAt(map[string]interface{}{"occurred_at": at.Format(time.RFC3339)})
	assert.True(t, at.Equal(got))

	assert.WithinDuration(t, time.Now(), occurredAt(map[string]interface{}{}), time.Minute)
}
