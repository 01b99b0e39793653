package pipeline

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/firebase/genkit/go/core"
	"github.com/firebase/genkit/go/genkit"
)

// Input defines the request payload for the ask flow.
type Input struct {
	Question  string `json:"question"`
	MaxChunks int    `json:"maxChunks,omitempty"` // Optional; defaults to DefaultMaxChunks
}

// Output defines the response payload from the ask flow.
type Output struct {
	Answer         string          `json:"answer"`
	GraphQLQuery   string          `json:"graphqlQuery"`
	RawData        json.RawMessage `json:"rawData,omitempty"`
	RelevantChunks []ChunkSummary  `json:"relevantChunks,omitempty"`
}

// FlowName is the registered name of the ask flow in Genkit.
const FlowName = "askKusama"

// Flow is the type alias for the ask pipeline's Genkit flow.
type Flow = core.Flow[Input, Output, struct{}]

// Package-level singleton for Flow to prevent panic on re-registration.
var (
	flowOnce sync.Once
	flow     *Flow
)

// NewFlow returns the ask flow singleton, initializing it on first call.
// Subsequent calls return the existing Flow (parameters are ignored).
// This is safe because genkit.DefineFlow panics on re-registration.
func NewFlow(g *genkit.Genkit, p *Pipeline) *Flow {
	flowOnce.Do(func() {
		flow = p.DefineFlow(g)
	})
	return flow
}

// ResetFlowForTesting resets the Flow singleton so tests can initialize
// it with different configurations. Not safe for concurrent use.
func ResetFlowForTesting() {
	flowOnce = sync.Once{}
	flow = nil
}

// DefineFlow registers the ask pipeline as a Genkit flow, giving DevUI
// tracing and a typed invocation surface over Run.
//
// IMPORTANT: Use NewFlow() instead of calling DefineFlow() directly.
// DefineFlow registers a global Flow; calling it twice causes panic.
func (p *Pipeline) DefineFlow(g *genkit.Genkit) *Flow {
	return genkit.DefineFlow(g, FlowName,
		func(ctx context.Context, input Input) (Output, error) {
			maxChunks := input.MaxChunks
			if maxChunks <= 0 {
				maxChunks = DefaultMaxChunks
			}
			if maxChunks > MaxChunksLimit {
				maxChunks = MaxChunksLimit
			}

			result, err := p.Run(ctx, Request{
				Question:  input.Question,
				MaxChunks: maxChunks,
			})
			if err != nil {
				return Output{}, err
			}

			return Output{
				Answer:         result.Answer,
				GraphQLQuery:   result.GeneratedQuery,
				RawData:        result.RawResult,
				RelevantChunks: Summaries(result.Chunks),
			}, nil
		},
	)
}
