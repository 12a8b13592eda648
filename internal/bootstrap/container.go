package bootstrap

import (
	"context"
	"fmt"
	"log"

	"voice-journal-be/internal/config"
	"voice-journal-be/internal/controller"
	"voice-journal-be/internal/pkg/logger"
	"voice-journal-be/internal/repository/contract"
	"voice-journal-be/internal/repository/implementation"
	"voice-journal-be/internal/repository/memory"
	"voice-journal-be/internal/service"
	"voice-journal-be/internal/websocket"
	"voice-journal-be/pkg/database"
	embeddingFactory "voice-journal-be/pkg/embedding/factory"
	llmFactory "voice-journal-be/pkg/llm/factory"
	pktNats "voice-journal-be/pkg/nats"
	"voice-journal-be/pkg/rag/answer"
	"voice-journal-be/pkg/rag/retriever"
	"voice-journal-be/pkg/speech"
	"voice-journal-be/pkg/vectorindex"
	"voice-journal-be/pkg/vectorindex/chroma"
	vectorMemory "voice-journal-be/pkg/vectorindex/memory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	NoteController      controller.INoteController
	QuestionController  controller.IQuestionController
	KnowledgeController controller.IKnowledgeController
	HealthController    controller.IHealthController

	// Services, also driven directly by the CLI
	NoteService      service.INoteService
	QuestionService  service.IQuestionService
	KnowledgeService service.IKnowledgeService

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Index is the similarity backend chosen by VECTOR_INDEX_BACKEND.
	Index vectorindex.Index

	LiveChatHandler *websocket.LiveChatHandler
	WebSocketHub    *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) (*Container, error) {
	c := &Container{}

	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	ragLogger := logger.NewIsolatedLogger(cfg.App.RagLogFilePath)
	c.Logger = sysLogger
	c.closers = append(c.closers, func() {
		sysLogger.Sync()
		ragLogger.Sync()
	})

	noteRepository := implementation.NewNoteRepository(db)

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { pubSub.Close() })

	// 3. AI providers
	embedder, err := embeddingFactory.NewEmbedder(ctx, embeddingConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("embedding provider: %w", err)
	}
	log.Printf("[INFO] Using Embedding Provider: %s", cfg.Ai.EmbeddingProvider)

	llmProvider, err := llmFactory.NewLLMProvider(ctx, llmFactory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  llmBaseURL(cfg),
		ApiKey:   llmKey(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("llm provider: %w", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	speechClient := speech.NewClient(speech.Config{
		ApiKey:             cfg.Keys.OpenAI,
		BaseURL:            cfg.Speech.BaseURL,
		TranscriptionModel: cfg.Speech.TranscriptionModel,
		SpeechModel:        cfg.Speech.SpeechModel,
		Voice:              cfg.Speech.Voice,
	})

	// 4. Infrastructure
	index, err := c.newIndex(ctx, db, cfg)
	if err != nil {
		return nil, err
	}
	c.Index = index

	conversations, err := c.newConversationRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// NATS is optional; a nil interface disables domain events.
	var eventPublisher service.EventPublisher
	if cfg.Messaging.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.Messaging.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// 5. Services
	noteRetriever := retriever.NewRetriever(embedder, index, noteRepository, ragLogger, retriever.Config{
		EmbedTimeout: cfg.Rag.EmbedTimeout,
		IndexTimeout: cfg.Rag.IndexTimeout,
		StoreTimeout: cfg.Rag.IndexTimeout,
	})
	orchestrator := answer.NewOrchestrator(noteRetriever, llmProvider, ragLogger, answer.Config{
		TopK:              cfg.Rag.TopK,
		DistanceThreshold: cfg.Rag.DistanceThreshold,
		GenerateTimeout:   cfg.Rag.GenerateTimeout,
	})

	publisherService := service.NewPublisherService(cfg.Messaging.EmbedTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.Messaging.EmbedTopic,
		noteRepository,
		embedder,
		index,
		sysLogger,
	)

	c.NoteService = service.NewNoteService(
		noteRepository,
		llmProvider,
		speechClient,
		publisherService,
		eventPublisher,
		noteRetriever,
		sysLogger,
		service.NoteServiceConfig{
			SearchTopK:        cfg.Rag.TopK,
			DistanceThreshold: cfg.Rag.DistanceThreshold,
			LLMTimeout:        cfg.Rag.GenerateTimeout,
		},
	)
	c.QuestionService = service.NewQuestionService(
		orchestrator,
		conversations,
		speechClient,
		speechClient,
		eventPublisher,
		sysLogger,
	)
	c.KnowledgeService = service.NewKnowledgeService(c.NoteService)

	// 6. Live chat
	c.WebSocketHub = websocket.NewHub(sysLogger)
	go c.WebSocketHub.Run()
	c.closers = append(c.closers, c.WebSocketHub.Shutdown)
	c.LiveChatHandler = websocket.NewLiveChatHandler(
		c.WebSocketHub,
		c.QuestionService,
		sysLogger,
		int64(cfg.App.MaxUploadBytes),
		cfg.Rag.GenerateTimeout+cfg.Speech.Timeout,
	)

	// 7. Controllers
	c.NoteController = controller.NewNoteController(c.NoteService)
	c.QuestionController = controller.NewQuestionController(c.QuestionService)
	c.KnowledgeController = controller.NewKnowledgeController(c.KnowledgeService)
	c.HealthController = controller.NewHealthController(map[string]controller.HealthCheck{
		"database": func(ctx context.Context) error { return database.Ping(ctx, db) },
	})

	return c, nil
}

func (c *Container) newIndex(ctx context.Context, db *gorm.DB, cfg *config.Config) (vectorindex.Index, error) {
	switch cfg.Rag.IndexBackend {
	case "chroma":
		index, err := chroma.NewIndex(ctx, cfg.Chroma.URL, cfg.Chroma.Collection)
		if err != nil {
			return nil, fmt.Errorf("chroma index: %w", err)
		}
		c.closers = append(c.closers, func() { index.Close() })
		log.Printf("[INFO] Using Vector Index: CHROMA (%s)", cfg.Chroma.Collection)
		return index, nil
	case "memory":
		log.Printf("[INFO] Using Vector Index: MEMORY (rebuilt on start)")
		return vectorMemory.NewIndex(cfg.Rag.EmbeddingDimension), nil
	default:
		log.Printf("[INFO] Using Vector Index: PGVECTOR")
		return implementation.NewNoteEmbeddingRepository(db, cfg.Rag.EmbeddingDimension), nil
	}
}

func (c *Container) newConversationRepository(ctx context.Context, cfg *config.Config) (contract.ConversationRepository, error) {
	if cfg.Session.Backend != "redis" {
		return memory.NewConversationRepository(cfg.Session.TTL), nil
	}

	opt, err := redis.ParseURL(cfg.Session.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.Session.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis: %w", err)
	}
	c.closers = append(c.closers, func() { rdb.Close() })
	return implementation.NewRedisConversationRepository(rdb, cfg.Session.TTL), nil
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// embeddingConfig hands the Ollama settings only to Ollama; hosted
// providers use their own endpoints and models.
func embeddingConfig(cfg *config.Config) embeddingFactory.Config {
	switch cfg.Ai.EmbeddingProvider {
	case "gemini":
		return embeddingFactory.Config{Provider: "gemini", ApiKey: cfg.Keys.GoogleGemini}
	case "jina":
		return embeddingFactory.Config{Provider: "jina", ApiKey: cfg.Keys.Jina}
	}
	return embeddingFactory.Config{
		Provider: cfg.Ai.EmbeddingProvider,
		BaseURL:  cfg.Ai.OllamaBaseURL,
		Model:    cfg.Ai.OllamaModel,
	}
}

func llmKey(cfg *config.Config) string {
	switch cfg.Ai.LLMProvider {
	case "gemini":
		return cfg.Keys.GoogleGemini
	case "openai":
		return cfg.Keys.OpenAI
	}
	return ""
}

func llmBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMProvider == "" || cfg.Ai.LLMProvider == "ollama" {
		return cfg.Ai.OllamaBaseURL
	}
	return cfg.Ai.LLMBaseURL
}
