package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"voice-journal-be/internal/constant"
	"voice-journal-be/internal/dto"
	"voice-journal-be/internal/entity"
	"voice-journal-be/internal/pkg/logger"
	"voice-journal-be/internal/repository/contract"
	"voice-journal-be/internal/repository/scope"
	"voice-journal-be/internal/repository/specification"
	"voice-journal-be/pkg/events"
	"voice-journal-be/pkg/llm"
	"voice-journal-be/pkg/rag/prompt"
	"voice-journal-be/pkg/rag/retriever"
	"voice-journal-be/pkg/search"
	"voice-journal-be/pkg/speech"
	"voice-journal-be/pkg/tags"
	"voice-journal-be/pkg/vectorindex"

	"github.com/google/uuid"
)

// EventPublisher is satisfied by *nats.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type ScoredRetriever interface {
	RetrieveScored(ctx context.Context, query string, topK int, threshold float64) ([]retriever.ScoredNote, error)
}

type INoteService interface {
	CreateFromTranscription(ctx context.Context, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error)
	CreateFromAudio(ctx context.Context, audio io.Reader, filename string) (*dto.CreateNoteResponse, error)
	Show(ctx context.Context, id string) (*dto.ShowNoteResponse, error)
	List(ctx context.Context, req *dto.ListNoteRequest) ([]*dto.ShowNoteResponse, error)
	SemanticSearch(ctx context.Context, query string) ([]*dto.SemanticSearchResponse, error)
	ListAll(ctx context.Context) ([]*entity.Note, error)
	// Reindex queues every stored note for embedding again.
	Reindex(ctx context.Context) (int, error)
	// SyncIndex reindexes when index holds fewer vectors than there are notes.
	SyncIndex(ctx context.Context, index vectorindex.Counter) (int, error)
}

type NoteServiceConfig struct {
	SearchTopK        int
	DistanceThreshold float64
	LLMTimeout        time.Duration
}

type noteService struct {
	noteRepository   contract.NoteRepository
	llmProvider      llm.LLMProvider
	transcriber      speech.Transcriber
	publisherService IPublisherService
	eventPublisher   EventPublisher
	retriever        ScoredRetriever
	logger           logger.ILogger
	config           NoteServiceConfig
	now              func() time.Time
}

// NewNoteService wires note ingestion. eventPublisher may be nil when NATS
// is not configured.
func NewNoteService(
	noteRepository contract.NoteRepository,
	llmProvider llm.LLMProvider,
	transcriber speech.Transcriber,
	publisherService IPublisherService,
	eventPublisher EventPublisher,
	retriever ScoredRetriever,
	log logger.ILogger,
	config NoteServiceConfig,
) INoteService {
	return &noteService{
		noteRepository:   noteRepository,
		llmProvider:      llmProvider,
		transcriber:      transcriber,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		retriever:        retriever,
		logger:           log,
		config:           config,
		now:              time.Now,
	}
}

func (c *noteService) CreateFromAudio(ctx context.Context, audio io.Reader, filename string) (*dto.CreateNoteResponse, error) {
	transcription, err := c.transcriber.Transcribe(ctx, audio, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to transcribe audio: %w", err)
	}
	return c.CreateFromTranscription(ctx, &dto.CreateNoteRequest{Transcription: transcription})
}

func (c *noteService) CreateFromTranscription(ctx context.Context, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error) {
	transcription := strings.TrimSpace(req.Transcription)
	if transcription == "" {
		return nil, ErrEmptyTranscription
	}

	summary, err := c.generate(ctx, constant.NoteTakerPrompt, transcription, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize transcription: %w", err)
	}

	title, err := c.generate(ctx, constant.TitlePrompt, transcription, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate title: %w", err)
	}
	title = strings.TrimSpace(strings.ReplaceAll(title, `"`, ""))

	tagAnswer, err := c.generate(ctx, constant.TagPrompt, transcription, map[string]string{
		constant.PlaceholderTags: strings.Join(tags.All(), ", "),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to select tags: %w", err)
	}

	now := c.now()
	note := entity.Note{
		Id:            uuid.NewString(),
		Title:         title,
		Summary:       strings.TrimSpace(summary),
		Tags:          tags.Extract(tagAnswer),
		Transcription: transcription,
		Datetime:      now,
		CreatedAt:     now,
	}

	if err := c.noteRepository.Create(ctx, &note); err != nil {
		return nil, err
	}

	if err := c.publishEmbed(ctx, note.Id); err != nil {
		return nil, err
	}

	if c.eventPublisher != nil {
		// Notification consumers are auxiliary; the note is already saved.
		if err := c.eventPublisher.Publish(ctx, events.NewNoteCreated(note.Id, note.Title, note.Tags, now)); err != nil {
			c.logger.Warn("NOTE", "Failed to publish note.created event", map[string]interface{}{
				"note_id": note.Id,
				"error":   err.Error(),
			})
		}
	}

	c.logger.Info("NOTE", "Note created", map[string]interface{}{
		"note_id": note.Id,
		"tags":    note.Tags,
	})

	return &dto.CreateNoteResponse{
		Id:    note.Id,
		Title: note.Title,
		Tags:  note.Tags,
	}, nil
}

func (c *noteService) publishEmbed(ctx context.Context, noteId string) error {
	msgJson, err := json.Marshal(dto.PublishEmbedNoteMessage{NoteId: noteId})
	if err != nil {
		return err
	}
	return c.publisherService.Publish(ctx, msgJson)
}

func (c *noteService) Reindex(ctx context.Context) (int, error) {
	notes, err := c.noteRepository.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	for i, note := range notes {
		if err := c.publishEmbed(ctx, note.Id); err != nil {
			return i, fmt.Errorf("failed to queue note %s: %w", note.Id, err)
		}
	}
	c.logger.Info("NOTE", "Notes queued for reindexing", map[string]interface{}{"count": len(notes)})
	return len(notes), nil
}

func (c *noteService) SyncIndex(ctx context.Context, index vectorindex.Counter) (int, error) {
	stored, err := c.noteRepository.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	indexed, err := index.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count indexed notes: %w", err)
	}

	details := map[string]interface{}{"stored": stored, "indexed": indexed}
	if indexed >= stored {
		c.logger.Info("NOTE", "Index is up to date", details)
		return 0, nil
	}

	c.logger.Warn("NOTE", "Index is behind the note store", details)
	return c.Reindex(ctx)
}

func (c *noteService) generate(ctx context.Context, template, text string, extra map[string]string) (string, error) {
	values := map[string]string{constant.PlaceholderText: text}
	for k, v := range extra {
		values[k] = v
	}

	if c.config.LLMTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.LLMTimeout)
		defer cancel()
	}
	return c.llmProvider.Generate(ctx, prompt.Fill(template, values))
}

func (c *noteService) Show(ctx context.Context, id string) (*dto.ShowNoteResponse, error) {
	note, err := c.noteRepository.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return toShowNoteResponse(note), nil
}

func (c *noteService) List(ctx context.Context, req *dto.ListNoteRequest) ([]*dto.ShowNoteResponse, error) {
	filters := search.ParseQuery(req.Query)
	if req.Tag != "" {
		filters.Tag = req.Tag
	}

	specs := []specification.Specification{specification.Scope(scope.OrderByDatetimeDesc)}
	if filters.Tag != "" {
		specs = append(specs, specification.ByTag{Tag: filters.Tag})
	}
	if filters.From != nil || filters.To != nil {
		specs = append(specs, specification.NoteCreatedBetween{From: filters.From, To: filters.To})
	}
	if q := strings.TrimSpace(filters.SearchQuery); q != "" {
		specs = append(specs, specification.NoteSearchQuery{Query: q})
	}
	if req.Limit > 0 {
		specs = append(specs, specification.Pagination{Limit: req.Limit, Offset: req.Offset})
	}

	notes, err := c.noteRepository.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ShowNoteResponse, 0, len(notes))
	for _, note := range notes {
		res = append(res, toShowNoteResponse(note))
	}
	return res, nil
}

func (c *noteService) SemanticSearch(ctx context.Context, query string) ([]*dto.SemanticSearchResponse, error) {
	scored, err := c.retriever.RetrieveScored(ctx, query, c.config.SearchTopK, c.config.DistanceThreshold)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SemanticSearchResponse, 0, len(scored))
	for _, s := range scored {
		res = append(res, &dto.SemanticSearchResponse{
			Id:       s.Note.Id,
			Title:    s.Note.Title,
			Summary:  s.Note.Summary,
			Tags:     s.Note.Tags,
			Datetime: s.Note.Datetime,
			Distance: s.Distance,
		})
	}
	return res, nil
}

// ListAll loads the whole corpus for tag statistics.
func (c *noteService) ListAll(ctx context.Context) ([]*entity.Note, error) {
	return c.noteRepository.FindAll(ctx, specification.Scope(scope.OrderByDatetimeDesc))
}

func toShowNoteResponse(note *entity.Note) *dto.ShowNoteResponse {
	noteTags := note.Tags
	if noteTags == nil {
		noteTags = []string{}
	}
	return &dto.ShowNoteResponse{
		Id:            note.Id,
		Title:         note.Title,
		Summary:       note.Summary,
		Tags:          noteTags,
		Transcription: note.Transcription,
		Datetime:      note.Datetime,
		CreatedAt:     note.CreatedAt,
	}
}
