package main

import (
	"bytes"
	"testing"
	"time"

	"voice-journal-be/internal/dto"
	"voice-journal-be/pkg/events"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.NoColor = true
}

func TestRenderAnswer(t *testing.T) {
	tests := []struct {
		name     string
		res      *dto.AskQuestionResponse
		contains []string
	}{
		{
			name: "with sources",
			res: &dto.AskQuestionResponse{
				Answer:  "Four phases.",
				Mode:    "examMode",
				Sources: []dto.NoteReference{{Id: "n1", Title: "Mitosis"}},
			},
			contains: []string{"Answer (examMode)", "Four phases.", "Mitosis (n1)"},
		},
		{
			name:     "without sources",
			res:      &dto.AskQuestionResponse{Answer: "Not in your notes."},
			contains: []string{"Answer\n", "No matching notes."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			renderAnswer(&buf, tt.res)
			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestRenderTagsOrdersByCount(t *testing.T) {
	var buf bytes.Buffer
	renderTags(&buf, []dto.TagCountResponse{
		{Tag: "Maths", Count: 1},
		{Tag: "Science", Count: 0},
		{Tag: "Biology", Count: 3},
	})

	out := buf.String()
	assert.Less(t, bytes.Index([]byte(out), []byte("Biology")), bytes.Index([]byte(out), []byte("Maths")))
	assert.Contains(t, out, "unused: Science")
}

func TestRenderMapAndEvent(t *testing.T) {
	var buf bytes.Buffer
	renderMap(&buf, &dto.KnowledgeMapResponse{
		Nodes: []dto.KnowledgeNodeResponse{{Id: "Biology"}, {Id: "Science"}},
		Edges: []dto.KnowledgeEdgeResponse{{From: "Science", To: "Biology", Weight: 2}},
	})
	assert.Contains(t, buf.String(), "2 tags, 1 links")
	assert.Contains(t, buf.String(), "Science -- Biology x2")

	buf.Reset()
	renderEvent(&buf, events.NewNoteCreated("n1", "Cells", []string{"Biology"}, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-01-01T00:00:00Z note.created note_id=n1 tags=[Biology] title=Cells\n", buf.String())
}
