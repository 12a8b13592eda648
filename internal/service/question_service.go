package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"voice-journal-be/internal/dto"
	"voice-journal-be/internal/entity"
	"voice-journal-be/internal/pkg/logger"
	"voice-journal-be/internal/repository/contract"
	"voice-journal-be/pkg/events"
	"voice-journal-be/pkg/rag/answer"
	"voice-journal-be/pkg/speech"
)

// Answerer is satisfied by *answer.Orchestrator.
type Answerer interface {
	Answer(ctx context.Context, query, priorAnswer string) (*answer.Result, error)
}

type IQuestionService interface {
	Ask(ctx context.Context, req *dto.AskQuestionRequest) (*dto.AskQuestionResponse, error)
	AskAudio(ctx context.Context, audio io.Reader, filename string) (*dto.AudioQuestionResponse, error)
	// LiveChat answers a spoken question with WAV audio. It returns
	// ErrEmptyQuery without generating or synthesizing anything when the
	// recording holds no speech.
	LiveChat(ctx context.Context, audio io.Reader, filename, conversationId string) ([]byte, error)
}

type questionService struct {
	answerer       Answerer
	conversations  contract.ConversationRepository
	transcriber    speech.Transcriber
	synthesizer    speech.Synthesizer
	eventPublisher EventPublisher
	logger         logger.ILogger
	now            func() time.Time
}

func NewQuestionService(
	answerer Answerer,
	conversations contract.ConversationRepository,
	transcriber speech.Transcriber,
	synthesizer speech.Synthesizer,
	eventPublisher EventPublisher,
	log logger.ILogger,
) IQuestionService {
	return &questionService{
		answerer:       answerer,
		conversations:  conversations,
		transcriber:    transcriber,
		synthesizer:    synthesizer,
		eventPublisher: eventPublisher,
		logger:         log,
		now:            time.Now,
	}
}

func (s *questionService) Ask(ctx context.Context, req *dto.AskQuestionRequest) (*dto.AskQuestionResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, ErrEmptyQuery
	}

	priorAnswer := req.PriorAnswer
	if priorAnswer == "" && req.ConversationId != "" {
		conversation, err := s.conversations.Get(ctx, req.ConversationId)
		if err != nil {
			// A lost history only costs the follow-up context.
			s.logger.Warn("QUESTION", "Failed to load conversation", map[string]interface{}{
				"conversation_id": req.ConversationId,
				"error":           err.Error(),
			})
		} else if conversation != nil {
			priorAnswer = conversation.LastAnswer
		}
	}

	result, err := s.answerer.Answer(ctx, question, priorAnswer)
	if err != nil {
		return nil, err
	}

	if req.ConversationId != "" && !result.Failed {
		err := s.conversations.Save(ctx, &entity.Conversation{
			Id:           req.ConversationId,
			LastQuestion: question,
			LastAnswer:   result.Text,
			UpdatedAt:    s.now(),
		})
		if err != nil {
			s.logger.Warn("QUESTION", "Failed to save conversation", map[string]interface{}{
				"conversation_id": req.ConversationId,
				"error":           err.Error(),
			})
		}
	}

	s.publishAnswered(ctx, req.ConversationId, result)

	sources := make([]dto.NoteReference, 0, len(result.Sources))
	for _, note := range result.Sources {
		sources = append(sources, dto.NoteReference{Id: note.Id, Title: note.Title})
	}

	return &dto.AskQuestionResponse{
		ConversationId: req.ConversationId,
		Question:       question,
		Answer:         result.Text,
		Mode:           result.Mode.String(),
		Failed:         result.Failed,
		Sources:        sources,
	}, nil
}

func (s *questionService) AskAudio(ctx context.Context, audio io.Reader, filename string) (*dto.AudioQuestionResponse, error) {
	question, err := s.transcriber.Transcribe(ctx, audio, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to transcribe question: %w", err)
	}

	res, err := s.Ask(ctx, &dto.AskQuestionRequest{Question: question})
	if err != nil {
		return nil, err
	}
	return &dto.AudioQuestionResponse{Question: res.Question, Answer: res.Answer}, nil
}

func (s *questionService) LiveChat(ctx context.Context, audio io.Reader, filename, conversationId string) ([]byte, error) {
	question, err := s.transcriber.Transcribe(ctx, audio, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to transcribe question: %w", err)
	}

	res, err := s.Ask(ctx, &dto.AskQuestionRequest{Question: question, ConversationId: conversationId})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(res.Answer) == "" {
		return nil, ErrEmptyQuery
	}

	wav, err := s.synthesizer.Synthesize(ctx, res.Answer)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize answer: %w", err)
	}
	return wav, nil
}

func (s *questionService) publishAnswered(ctx context.Context, conversationId string, result *answer.Result) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.NewQuestionAnswered(conversationId, result.Mode.String(), len(result.Sources), result.Failed, s.now())
	if err := s.eventPublisher.Publish(ctx, evt); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("QUESTION", "Failed to publish question.answered event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
