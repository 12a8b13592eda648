package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"voice-journal-be/internal/dto"
	"voice-journal-be/internal/entity"
	"voice-journal-be/internal/pkg/logger"
	"voice-journal-be/internal/repository/specification"
	"voice-journal-be/pkg/events"
	"voice-journal-be/pkg/llm"
	"voice-journal-be/pkg/rag/retriever"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNoteRepository struct {
	notes     map[string]*entity.Note
	createErr error
}

func newFakeNoteRepository(notes ...*entity.Note) *fakeNoteRepository {
	r := &fakeNoteRepository{notes: map[string]*entity.Note{}}
	for _, n := range notes {
		r.notes[n.Id] = n
	}
	return r
}

func (r *fakeNoteRepository) Create(ctx context.Context, note *entity.Note) error {
	if r.createErr != nil {
		return r.createErr
	}
	stored := *note
	r.notes[note.Id] = &stored
	return nil
}

func (r *fakeNoteRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			return r.notes[byId.ID], nil
		}
	}
	return nil, nil
}

func (r *fakeNoteRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	out := make([]*entity.Note, 0, len(r.notes))
	for _, n := range r.notes {
		out = append(out, n)
	}
	return out, nil
}

func (r *fakeNoteRepository) FindByIds(ctx context.Context, ids []string) ([]*entity.Note, error) {
	out := make([]*entity.Note, 0, len(ids))
	for _, id := range ids {
		if n, ok := r.notes[id]; ok {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNoteRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.notes)), nil
}

// scriptedLLM answers by recognising which ingestion template it was given.
type scriptedLLM struct {
	summary, title, tags string
	err                  error
	prompts              []string
}

func (s *scriptedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.Generate(ctx, history[len(history)-1].Content, options...)
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	switch {
	case strings.Contains(prompt, "**Structured Summary:**"):
		return s.summary, nil
	case strings.Contains(prompt, "**Title:**"):
		return s.title, nil
	case strings.Contains(prompt, "**Tags:**"):
		return s.tags, nil
	}
	return "", errors.New("unexpected prompt")
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	return f.text, f.err
}

type recordingPublisher struct {
	payloads [][]byte
	err      error
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return p.err
}

type recordingEvents struct {
	events []events.Event
	err    error
}

func (p *recordingEvents) Publish(ctx context.Context, event events.Event) error {
	p.events = append(p.events, event)
	return p.err
}

type stubScoredRetriever struct {
	scored []retriever.ScoredNote
	err    error
}

func (s *stubScoredRetriever) RetrieveScored(ctx context.Context, query string, topK int, threshold float64) ([]retriever.ScoredNote, error) {
	return s.scored, s.err
}

func newTestNoteService(repo *fakeNoteRepository, model *scriptedLLM, pub *recordingPublisher, evts EventPublisher) *noteService {
	svc := NewNoteService(repo, model, &fakeTranscriber{text: "spoken words"}, pub, evts, &stubScoredRetriever{},
		logger.NewNopLogger(), NoteServiceConfig{SearchTopK: 10, DistanceThreshold: 0.75}).(*noteService)
	svc.now = func() time.Time { return time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestCreateFromTranscription(t *testing.T) {
	repo := newFakeNoteRepository()
	model := &scriptedLLM{
		summary: "  - cells divide\n",
		title:   `"Cell Division Basics"`,
		tags:    "Biology, Science, Quantum, Biology",
	}
	pub := &recordingPublisher{}
	evts := &recordingEvents{}
	svc := newTestNoteService(repo, model, pub, evts)

	res, err := svc.CreateFromTranscription(context.Background(), &dto.CreateNoteRequest{Transcription: " cells divide by mitosis "})
	require.NoError(t, err)

	assert.Equal(t, "Cell Division Basics", res.Title)
	assert.Equal(t, []string{"Science", "Biology"}, res.Tags)

	stored := repo.notes[res.Id]
	require.NotNil(t, stored)
	assert.Equal(t, "- cells divide", stored.Summary)
	assert.Equal(t, "cells divide by mitosis", stored.Transcription)
	assert.Equal(t, time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC), stored.Datetime)

	require.Len(t, model.prompts, 3)
	assert.Contains(t, model.prompts[0], "cells divide by mitosis")
	assert.Contains(t, model.prompts[2], "Maths, Science")
	assert.NotContains(t, model.prompts[2], "{tags}")

	require.Len(t, pub.payloads, 1)
	var msg dto.PublishEmbedNoteMessage
	require.NoError(t, json.Unmarshal(pub.payloads[0], &msg))
	assert.Equal(t, res.Id, msg.NoteId)

	require.Len(t, evts.events, 1)
	assert.Equal(t, events.NoteCreated, evts.events[0].EventType())
}

func TestCreateFromTranscriptionFailures(t *testing.T) {
	tests := []struct {
		name          string
		transcription string
		model         *scriptedLLM
		repoErr       error
		pubErr        error
		wantErr       error
	}{
		{name: "blank transcription", transcription: "  ", model: &scriptedLLM{}, wantErr: ErrEmptyTranscription},
		{name: "llm failure", transcription: "text", model: &scriptedLLM{err: errors.New("llm down")}},
		{name: "store failure", transcription: "text", model: &scriptedLLM{}, repoErr: errors.New("db down")},
		{name: "publish failure", transcription: "text", model: &scriptedLLM{}, pubErr: errors.New("closed")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeNoteRepository()
			repo.createErr = tt.repoErr
			svc := newTestNoteService(repo, tt.model, &recordingPublisher{err: tt.pubErr}, nil)

			_, err := svc.CreateFromTranscription(context.Background(), &dto.CreateNoteRequest{Transcription: tt.transcription})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCreateSurvivesEventBusFailure(t *testing.T) {
	repo := newFakeNoteRepository()
	svc := newTestNoteService(repo, &scriptedLLM{title: "t", tags: "Other"}, &recordingPublisher{},
		&recordingEvents{err: errors.New("nats unavailable")})

	res, err := svc.CreateFromTranscription(context.Background(), &dto.CreateNoteRequest{Transcription: "text"})
	require.NoError(t, err)
	assert.Contains(t, repo.notes, res.Id)
}

func TestCreateFromAudioTranscribesFirst(t *testing.T) {
	repo := newFakeNoteRepository()
	model := &scriptedLLM{title: "Title", tags: "Music"}
	svc := newTestNoteService(repo, model, &recordingPublisher{}, nil)

	res, err := svc.CreateFromAudio(context.Background(), strings.NewReader("RIFF"), "note.wav")
	require.NoError(t, err)
	assert.Equal(t, "spoken words", repo.notes[res.Id].Transcription)
	assert.Equal(t, []string{"Music"}, res.Tags)
}

func TestShowNotFound(t *testing.T) {
	svc := newTestNoteService(newFakeNoteRepository(), &scriptedLLM{}, &recordingPublisher{}, nil)

	_, err := svc.Show(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestShowReturnsEmptyTagSlice(t *testing.T) {
	repo := newFakeNoteRepository(&entity.Note{Id: "n1", Title: "Untagged"})
	svc := newTestNoteService(repo, &scriptedLLM{}, &recordingPublisher{}, nil)

	res, err := svc.Show(context.Background(), "n1")
	require.NoError(t, err)
	assert.Equal(t, "Untagged", res.Title)
	assert.NotNil(t, res.Tags)
}

func TestSemanticSearchCarriesDistance(t *testing.T) {
	svc := newTestNoteService(newFakeNoteRepository(), &scriptedLLM{}, &recordingPublisher{}, nil)
	svc.retriever = &stubScoredRetriever{scored: []retriever.ScoredNote{
		{Note: &entity.Note{Id: "a", Title: "A"}, Distance: 0.2},
		{Note: &entity.Note{Id: "b", Title: "B"}, Distance: 0.9},
	}}

	res, err := svc.SemanticSearch(context.Background(), "query")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "a", res[0].Id)
	assert.InDelta(t, 0.9, res[1].Distance, 1e-9)
}

func TestReindexQueuesEveryNote(t *testing.T) {
	repo := newFakeNoteRepository(&entity.Note{Id: "a"}, &entity.Note{Id: "b"})
	pub := &recordingPublisher{}
	svc := newTestNoteService(repo, &scriptedLLM{}, pub, nil)

	n, err := svc.Reindex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	queued := map[string]bool{}
	for _, raw := range pub.payloads {
		var msg dto.PublishEmbedNoteMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		queued[msg.NoteId] = true
	}
	assert.Equal(t, map[string]bool{"a": true, "b": true}, queued)
}

type fixedCounter struct {
	count int64
	err   error
}

func (c fixedCounter) Count(ctx context.Context) (int64, error) {
	return c.count, c.err
}

func TestSyncIndex(t *testing.T) {
	tests := []struct {
		name    string
		counter fixedCounter
		queued  int
		wantErr bool
	}{
		{name: "empty index is rebuilt", counter: fixedCounter{count: 0}, queued: 2},
		{name: "partial index is rebuilt", counter: fixedCounter{count: 1}, queued: 2},
		{name: "complete index is left alone", counter: fixedCounter{count: 2}, queued: 0},
		{name: "count failure", counter: fixedCounter{err: errors.New("chroma down")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeNoteRepository(&entity.Note{Id: "a"}, &entity.Note{Id: "b"})
			pub := &recordingPublisher{}
			svc := newTestNoteService(repo, &scriptedLLM{}, pub, nil)

			n, err := svc.SyncIndex(context.Background(), tt.counter)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, pub.payloads)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.queued, n)
			assert.Len(t, pub.payloads, tt.queued)
		})
	}
}
