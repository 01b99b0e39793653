package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"golang.org/x/time/rate"

	"github.com/koopa0/kusari/internal/knowledge"
)

// Generator runs the two model calls of the pipeline: GraphQL query
// synthesis and natural-language response synthesis. Both calls share
// the same grounding context built from the retrieved chunks.
//
// A token-bucket limiter throttles outbound model calls so bursts of
// concurrent requests do not trip provider rate limits. Failed calls are
// never retried here; retries are the caller's responsibility.
type Generator struct {
	g           *genkit.Genkit
	modelName   string
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// GeneratorConfig configures a Generator.
type GeneratorConfig struct {
	Genkit *genkit.Genkit

	// ModelName selects the model ("provider/name"). Empty uses the
	// Genkit default model.
	ModelName string

	// RateLimiter throttles model calls. Nil installs the default
	// limiter (10 requests/sec sustained, burst of 30).
	RateLimiter *rate.Limiter

	Logger *slog.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(cfg GeneratorConfig) (*Generator, error) {
	if cfg.Genkit == nil {
		return nil, errors.New("genkit instance is required")
	}

	rl := cfg.RateLimiter
	if rl == nil {
		rl = rate.NewLimiter(10, 30)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Generator{
		g:           cfg.Genkit,
		modelName:   cfg.ModelName,
		rateLimiter: rl,
		logger:      logger,
	}, nil
}

// SynthesizeQuery generates a GraphQL query for the question, grounded
// on the retrieved chunks. The endpoint identifier is included in the
// prompt so the model knows which API it is targeting. Markdown code
// fences around the model output are stripped; an empty result after
// stripping is a generation failure.
func (gen *Generator) SynthesizeQuery(ctx context.Context, question, endpoint string, chunks []knowledge.Retrieved) (string, error) {
	system := fmt.Sprintf(querySystemPrompt, BuildContext(chunks))

	if err := gen.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: rate limit wait: %w", ErrGeneration, err)
	}

	opts := []ai.GenerateOption{
		ai.WithSystem(system),
		ai.WithPrompt(queryUserPrompt, question, endpoint),
	}
	if gen.modelName != "" {
		opts = append(opts, ai.WithModelName(gen.modelName))
	}

	response, err := genkit.Generate(ctx, gen.g, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: synthesizing query: %w", ErrGeneration, err)
	}

	query := stripCodeFences(response.Text())
	if query == "" {
		return "", fmt.Errorf("%w: model returned an empty query", ErrGeneration)
	}

	gen.logger.Debug("synthesized graphql query",
		"question_len", len(question),
		"query_len", len(query),
	)
	return query, nil
}

// SynthesizeResponse turns the execution payload into a natural-language
// answer, grounded on the same chunks that produced the query. The
// payload is embedded as indented JSON; payloads carrying an errors
// field are explained by the model rather than rejected here.
func (gen *Generator) SynthesizeResponse(ctx context.Context, question string, result json.RawMessage, chunks []knowledge.Retrieved) (string, error) {
	system := fmt.Sprintf(responseSystemPrompt, BuildContext(chunks))

	if err := gen.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: rate limit wait: %w", ErrGeneration, err)
	}

	opts := []ai.GenerateOption{
		ai.WithSystem(system),
		ai.WithPrompt(responseUserPrompt, question, indentJSON(result)),
	}
	if gen.modelName != "" {
		opts = append(opts, ai.WithModelName(gen.modelName))
	}

	response, err := genkit.Generate(ctx, gen.g, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: synthesizing response: %w", ErrGeneration, err)
	}

	answer := strings.TrimSpace(response.Text())
	if answer == "" {
		return "", fmt.Errorf("%w: model returned an empty answer", ErrGeneration)
	}

	gen.logger.Debug("synthesized answer",
		"question_len", len(question),
		"answer_len", len(answer),
	)
	return answer, nil
}

// stripCodeFences removes markdown code fences from model output.
// Models often wrap queries in ```graphql blocks despite instructions.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		// Remove opening fence (with optional language tag).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		// Remove closing fence.
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}
	return s
}

// indentJSON pretty-prints raw JSON for prompt embedding. Invalid input
// is passed through unchanged.
func indentJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
