package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"voice-journal-be/internal/dto"
	"voice-journal-be/internal/pkg/logger"
	"voice-journal-be/internal/repository/contract"
	"voice-journal-be/internal/repository/specification"
	"voice-journal-be/pkg/embedding"
	"voice-journal-be/pkg/vectorindex"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	noteRepository contract.NoteRepository
	embedder       embedding.Embedder
	index          vectorindex.Index
	logger         logger.ILogger
}

// NewConsumerService indexes the summary of every note announced on topicName.
func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	noteRepository contract.NoteRepository,
	embedder embedding.Embedder,
	index vectorindex.Index,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		noteRepository: noteRepository,
		embedder:       embedder,
		index:          index,
		logger:         log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedNoteMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		// Malformed payloads never become valid; drop them.
		msg.Ack()
		return
	}

	if err := cs.indexNote(ctx, payload.NoteId); err != nil {
		if errors.Is(err, errSkipNote) {
			cs.logger.Warn("CONSUMER", "Note skipped", map[string]interface{}{"note_id": payload.NoteId})
			msg.Ack()
			return
		}
		cs.logger.Error("CONSUMER", "Failed to index note", map[string]interface{}{
			"note_id": payload.NoteId,
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Info("CONSUMER", "Note indexed", map[string]interface{}{"note_id": payload.NoteId})
	msg.Ack()
}

var errSkipNote = errors.New("note cannot be indexed")

func (cs *consumerService) indexNote(ctx context.Context, noteId string) error {
	note, err := cs.noteRepository.FindOne(ctx, specification.ByID{ID: noteId})
	if err != nil {
		return fmt.Errorf("failed to load note: %w", err)
	}
	if note == nil || note.Summary == "" {
		return errSkipNote
	}

	vector, err := cs.embedder.Encode(ctx, note.Summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	if err := cs.index.Upsert(ctx, note.Id, vector, note.Summary); err != nil {
		if errors.Is(err, vectorindex.ErrDimensionMismatch) {
			// Retrying cannot fix a misconfigured embedder.
			cs.logger.Error("CONSUMER", "Embedding dimension mismatch", map[string]interface{}{
				"note_id":   note.Id,
				"dimension": len(vector),
			})
			return errSkipNote
		}
		return fmt.Errorf("failed to upsert vector: %w", err)
	}
	return nil
}
