package answer

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"voice-journal-be/internal/entity"
	"voice-journal-be/internal/pkg/logger"
	"voice-journal-be/pkg/llm"
	"voice-journal-be/pkg/rag/mode"
	"voice-journal-be/pkg/rag/prompt"
	"voice-journal-be/pkg/vectorindex"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// NoteDatetimeLayout formats note timestamps in the answer context.
const NoteDatetimeLayout = "2006-01-02 15:04:05"

type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int, threshold float64) ([]*entity.Note, error)
}

// Generator is the subset of llm.LLMProvider the orchestrator needs.
type Generator interface {
	Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error)
}

type Config struct {
	TopK              int
	DistanceThreshold float64
	GenerateTimeout   time.Duration
}

func DefaultConfig() Config {
	return Config{
		TopK:              10,
		DistanceThreshold: vectorindex.DefaultDistanceThreshold,
		GenerateTimeout:   120 * time.Second,
	}
}

type Result struct {
	Text    string         `json:"answer"`
	Mode    mode.Mode      `json:"mode"`
	Sources []*entity.Note `json:"-"`
	// Failed is set when Text is the generation-failure placeholder.
	Failed bool `json:"failed"`
}

type Orchestrator struct {
	retriever Retriever
	generator Generator
	logger    logger.ILogger
	config    Config
}

func NewOrchestrator(retriever Retriever, generator Generator, log logger.ILogger, config Config) *Orchestrator {
	if config.TopK <= 0 {
		config.TopK = DefaultConfig().TopK
	}
	return &Orchestrator{
		retriever: retriever,
		generator: generator,
		logger:    log,
		config:    config,
	}
}

// Answer runs retrieve, compose, generate and post-process for one query.
// The only error it returns is a wrapped vectorindex.ErrDimensionMismatch;
// every other failure is folded into the Result.
func (o *Orchestrator) Answer(ctx context.Context, query, priorAnswer string) (*Result, error) {
	if strings.TrimSpace(query) == "" {
		return &Result{Sources: []*entity.Note{}}, nil
	}

	ctx, span := otel.Tracer("rag").Start(ctx, "answer.Answer")
	defer span.End()

	notes, err := o.retriever.Retrieve(ctx, query, o.config.TopK, o.config.DistanceThreshold)
	if err != nil {
		if errors.Is(err, vectorindex.ErrDimensionMismatch) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "embedding dimension mismatch")
			return nil, err
		}
		o.logger.Warn("RAG", "Retrieval failed, answering without context", map[string]interface{}{
			"error": err.Error(),
		})
		notes = []*entity.Note{}
	}

	m := mode.Infer(query)
	span.SetAttributes(attribute.String("rag.mode", m.String()), attribute.Int("rag.sources", len(notes)))

	contextText := BuildContext(notes)
	composed := prompt.Compose(contextText, query, priorAnswer, m)

	o.logger.Debug("RAG", "Prompt composed", map[string]interface{}{
		"mode":          m.String(),
		"sources":       len(notes),
		"prompt_length": len(composed),
	})

	raw, err := o.generate(ctx, composed)
	result := &Result{Mode: m, Sources: notes}
	if err != nil {
		span.RecordError(err)
		o.logger.Error("RAG", "Generation failed", map[string]interface{}{"error": err.Error()})
		result.Text = fmt.Sprintf("An error occurred while generating the answer: %v", err)
		result.Failed = true
		return result, nil
	}

	result.Text = NormalizeLineBreaks(raw)
	return result, nil
}

func (o *Orchestrator) generate(ctx context.Context, composed string) (string, error) {
	if o.config.GenerateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.config.GenerateTimeout)
		defer cancel()
	}
	return o.generator.Generate(ctx, composed)
}

// BuildContext frames each note with its id and datetime, in the given order.
func BuildContext(notes []*entity.Note) string {
	var sb strings.Builder
	for _, n := range notes {
		fmt.Fprintf(&sb, "Note ID: %s\nNote Date: %s\n%s\n\n", n.Id, n.Datetime.Format(NoteDatetimeLayout), n.Transcription)
	}
	return sb.String()
}

// A line break followed by any number of blank or whitespace-only lines.
var lineBreaks = regexp.MustCompile(`\r?\n(?:[ \t]*\r?\n)*`)

// NormalizeLineBreaks turns every run of line breaks, including the
// whitespace-only lines inside it, into exactly one blank line. Indentation
// after the run and non-whitespace content are left untouched.
func NormalizeLineBreaks(s string) string {
	return lineBreaks.ReplaceAllString(strings.TrimSpace(s), "\n\n")
}
