// Package pipeline orchestrates the question-answering flow: retrieve
// schema chunks, synthesize a GraphQL query, execute it, and explain the
// result in natural language. Each run walks the stages exactly once;
// any stage failure aborts the run with that stage's sentinel error.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/koopa0/kusari/internal/knowledge"
)

// Retriever finds schema chunks relevant to a question, ordered by
// ascending distance.
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]knowledge.Retrieved, error)
}

// Executor runs a GraphQL query against the indexer and returns the raw
// response body. Application-level errors reported by the endpoint are
// part of the body, not an error return.
type Executor interface {
	Execute(ctx context.Context, query string) (json.RawMessage, error)
}

// DefaultMaxChunks is the retrieval count used when a caller does not
// specify one.
const DefaultMaxChunks = 5

// MaxChunksLimit caps the retrieval count accepted from external
// callers. Larger requests are clamped, never rejected.
const MaxChunksLimit = 20

// Request is one question for the pipeline.
type Request struct {
	Question  string
	MaxChunks int
}

// Result is the complete outcome of a successful run.
type Result struct {
	Answer         string
	GeneratedQuery string
	RawResult      json.RawMessage
	Chunks         []knowledge.Retrieved
}

// Pipeline wires retrieval, synthesis, and execution together.
type Pipeline struct {
	retriever Retriever
	generator *Generator
	executor  Executor
	endpoint  string
	logger    *slog.Logger
}

// Config configures a Pipeline.
type Config struct {
	Retriever Retriever
	Generator *Generator
	Executor  Executor

	// Endpoint identifies the GraphQL API in the query synthesis
	// prompt. The Executor holds the actual connection.
	Endpoint string

	Logger *slog.Logger
}

func (c Config) validate() error {
	if c.Retriever == nil {
		return errors.New("retriever is required")
	}
	if c.Generator == nil {
		return errors.New("generator is required")
	}
	if c.Executor == nil {
		return errors.New("executor is required")
	}
	if c.Endpoint == "" {
		return errors.New("graphql endpoint is required")
	}
	return nil
}

// New creates a Pipeline.
func New(cfg Config) (*Pipeline, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		retriever: cfg.Retriever,
		generator: cfg.Generator,
		executor:  cfg.Executor,
		endpoint:  cfg.Endpoint,
		logger:    logger,
	}, nil
}

// Run executes the full pipeline for one question. Stages run in order
// and exactly once:
//
//  1. Retrieve up to MaxChunks schema chunks. Zero chunks aborts with
//     ErrNoRelevantKnowledge: a query is never synthesized without
//     grounding.
//  2. Synthesize the GraphQL query.
//  3. Execute it. Only transport-level failures abort; an errors field
//     reported by the endpoint travels on as data.
//  4. Synthesize the natural-language answer, which explains error
//     payloads instead of hiding them.
//
// There is no retry loop anywhere in the pipeline.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, errors.New("question is required")
	}
	if req.MaxChunks <= 0 {
		return nil, fmt.Errorf("max chunks must be positive, got %d", req.MaxChunks)
	}

	start := time.Now()

	chunks, err := p.retriever.Search(ctx, req.Question, req.MaxChunks)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: question %q matched no schema chunks", ErrNoRelevantKnowledge, req.Question)
	}

	query, err := p.generator.SynthesizeQuery(ctx, req.Question, p.endpoint, chunks)
	if err != nil {
		return nil, err
	}

	raw, err := p.executor.Execute(ctx, query)
	if err != nil {
		return nil, err
	}

	answer, err := p.generator.SynthesizeResponse(ctx, req.Question, raw, chunks)
	if err != nil {
		return nil, err
	}

	p.logger.Info("pipeline run completed",
		"chunks", len(chunks),
		"elapsed", time.Since(start),
	)

	return &Result{
		Answer:         answer,
		GeneratedQuery: query,
		RawResult:      raw,
		Chunks:         chunks,
	}, nil
}

// Retrieve runs only the retrieval stage. Used by the chunk-search
// surfaces that skip synthesis.
func (p *Pipeline) Retrieve(ctx context.Context, question string, maxChunks int) ([]knowledge.Retrieved, error) {
	chunks, err := p.retriever.Search(ctx, question, maxChunks)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}
	return chunks, nil
}

// GenerateQuery runs retrieval and query synthesis without executing the
// result. Zero retrieved chunks aborts with ErrNoRelevantKnowledge, same
// as a full run.
func (p *Pipeline) GenerateQuery(ctx context.Context, question string, maxChunks int) (string, []knowledge.Retrieved, error) {
	chunks, err := p.retriever.Search(ctx, question, maxChunks)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}
	if len(chunks) == 0 {
		return "", nil, fmt.Errorf("%w: question %q matched no schema chunks", ErrNoRelevantKnowledge, question)
	}

	query, err := p.generator.SynthesizeQuery(ctx, question, p.endpoint, chunks)
	if err != nil {
		return "", nil, err
	}
	return query, chunks, nil
}
