package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"voice-journal-be/pkg/vectorindex"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Keys      APIKeys
	Ai        AIConfig
	Rag       RAGConfig
	Chroma    ChromaConfig
	Speech    SpeechConfig
	Session   SessionConfig
	Messaging MessagingConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	RagLogFilePath     string
	CorsAllowedOrigins string
	MaxUploadBytes     int
}

type DatabaseConfig struct {
	Connection string
}

// AuthConfig enables bearer-token auth on /api when JWTSecret is set.
type AuthConfig struct {
	JWTSecret string
}

type APIKeys struct {
	GoogleGemini string
	Jina         string
	OpenAI       string
}

type AIConfig struct {
	EmbeddingProvider string // "ollama", "gemini" or "jina"
	OllamaBaseURL     string
	OllamaModel       string // embedding model
	LLMProvider       string // "ollama", "openai" or "gemini"
	LLMModel          string
	LLMBaseURL        string // OpenAI-compatible endpoint; ollama uses OllamaBaseURL
}

type RAGConfig struct {
	TopK               int
	DistanceThreshold  float64
	IndexBackend       string // "pgvector", "chroma" or "memory"
	EmbeddingDimension int
	EmbedTimeout       time.Duration
	IndexTimeout       time.Duration
	GenerateTimeout    time.Duration
}

type ChromaConfig struct {
	URL        string
	Collection string
}

type SpeechConfig struct {
	BaseURL            string
	TranscriptionModel string
	SpeechModel        string
	Voice              string
	Timeout            time.Duration
}

type SessionConfig struct {
	Backend  string // "memory" or "redis"
	RedisURL string
	TTL      time.Duration
}

type MessagingConfig struct {
	NatsURL    string
	EmbedTopic string
}

// TelemetryConfig drives the OTLP trace exporter; tracing is off by default.
type TelemetryConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			RagLogFilePath:     getEnv("RAG_LOG_FILE_PATH", "logs/rag.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			MaxUploadBytes:     getEnvAsInt("MAX_UPLOAD_BYTES", 25*1024*1024),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Jina:         getEnv("JINA_API_KEY", ""),
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			LLMBaseURL:        getEnv("LLM_BASE_URL", ""),
		},
		Rag: RAGConfig{
			TopK:               getEnvAsInt("RAG_TOP_K", 10),
			DistanceThreshold:  getEnvAsFloat("RAG_DISTANCE_THRESHOLD", vectorindex.DefaultDistanceThreshold),
			IndexBackend:       getEnv("VECTOR_INDEX_BACKEND", "pgvector"),
			EmbeddingDimension: getEnvAsInt("EMBEDDING_DIMENSION", 768),
			EmbedTimeout:       getEnvAsDuration("RAG_EMBED_TIMEOUT", 30*time.Second),
			IndexTimeout:       getEnvAsDuration("RAG_INDEX_TIMEOUT", 10*time.Second),
			GenerateTimeout:    getEnvAsDuration("RAG_GENERATE_TIMEOUT", 120*time.Second),
		},
		Chroma: ChromaConfig{
			URL:        getEnv("CHROMA_URL", "http://localhost:8000"),
			Collection: getEnv("CHROMA_COLLECTION", "note_summaries"),
		},
		Speech: SpeechConfig{
			BaseURL:            getEnv("SPEECH_BASE_URL", ""),
			TranscriptionModel: getEnv("TRANSCRIPTION_MODEL", "whisper-1"),
			SpeechModel:        getEnv("SPEECH_MODEL", "tts-1"),
			Voice:              getEnv("SPEECH_VOICE", "alloy"),
			Timeout:            getEnvAsDuration("SPEECH_TIMEOUT", 60*time.Second),
		},
		Session: SessionConfig{
			Backend:  getEnv("SESSION_BACKEND", "memory"),
			RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),
			TTL:      getEnvAsDuration("SESSION_TTL", time.Hour),
		},
		Messaging: MessagingConfig{
			NatsURL:    getEnv("NATS_URL", ""),
			EmbedTopic: getEnv("EMBED_NOTE_SUMMARY_TOPIC_NAME", "EMBED_NOTE_SUMMARY"),
		},
		Telemetry: TelemetryConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "voice-journal-backend"),
		},
	}
}

// Validate rejects settings that would only fail later at request time.
func (c *Config) Validate() error {
	switch c.Rag.IndexBackend {
	case "pgvector", "chroma", "memory":
	default:
		return fmt.Errorf("unknown VECTOR_INDEX_BACKEND %q", c.Rag.IndexBackend)
	}
	switch c.Session.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.Session.Backend)
	}
	if c.Rag.TopK <= 0 {
		return fmt.Errorf("RAG_TOP_K must be positive, got %d", c.Rag.TopK)
	}
	if c.Rag.IndexBackend == "pgvector" && c.Database.Connection == "" {
		return fmt.Errorf("DB_CONNECTION_STRING is required for the pgvector index")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("90s") or plain seconds ("90").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
