package events

import "time"

const (
	NoteCreated      = "note.created"
	QuestionAnswered = "question.answered"
)

func NewNoteCreated(noteId, title string, tags []string, at time.Time) Event {
	return BaseEvent{
		Type: NoteCreated,
		Data: map[string]interface{}{
			"note_id":     noteId,
			"title":       title,
			"tags":        tags,
			"occurred_at": at.Format(time.RFC3339),
		},
		OccurredAt: at,
	}
}

// NewQuestionAnswered carries metadata only; the question and answer text
// stay out of the event bus.
func NewQuestionAnswered(conversationId, mode string, sources int, failed bool, at time.Time) Event {
	return BaseEvent{
		Type: QuestionAnswered,
		Data: map[string]interface{}{
			"conversation_id": conversationId,
			"mode":            mode,
			"sources":         sources,
			"failed":          failed,
			"occurred_at":     at.Format(time.RFC3339),
		},
		OccurredAt: at,
	}
}
