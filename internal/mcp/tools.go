package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/koopa0/kusari/internal/pipeline"
)

// SearchSchemaInput defines the input schema for the search_schema tool.
type SearchSchemaInput struct {
	Query     string `json:"query" jsonschema:"Natural-language description of the Kusama schema information to find"`
	MaxChunks int    `json:"max_chunks,omitempty" jsonschema:"Number of chunks to return (default 5, max 20)"`
}

// SearchSchemaOutput is the JSON payload returned by search_schema.
type SearchSchemaOutput struct {
	Query       string                  `json:"query"`
	ResultCount int                     `json:"result_count"`
	Chunks      []pipeline.ChunkSummary `json:"chunks"`
}

// AskInput defines the input schema for the ask tool.
type AskInput struct {
	Question  string `json:"question" jsonschema:"Natural-language question about Kusama blockchain data"`
	MaxChunks int    `json:"max_chunks,omitempty" jsonschema:"Number of schema chunks to ground the query on (default 5, max 20)"`
}

// AskOutput is the JSON payload returned by ask.
type AskOutput struct {
	Answer       string `json:"answer"`
	GraphQLQuery string `json:"graphql_query"`
}

// registerSearchSchema registers the search_schema tool.
func (s *Server) registerSearchSchema() error {
	inputSchema, err := jsonschema.For[SearchSchemaInput](nil)
	if err != nil {
		return fmt.Errorf("schema for search_schema: %w", err)
	}

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name: "search_schema",
		Description: "Search the Kusama GraphQL schema knowledge base using semantic similarity. " +
			"Returns the schema chunks most relevant to the query, with type names and examples.",
		InputSchema: inputSchema,
	}, s.SearchSchema)

	return nil
}

// registerAsk registers the ask tool.
func (s *Server) registerAsk() error {
	inputSchema, err := jsonschema.For[AskInput](nil)
	if err != nil {
		return fmt.Errorf("schema for ask: %w", err)
	}

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name: "ask",
		Description: "Answer a natural-language question about Kusama blockchain data. " +
			"Generates a GraphQL query from schema knowledge, executes it against the indexer, " +
			"and returns a plain-language answer plus the generated query.",
		InputSchema: inputSchema,
	}, s.Ask)

	return nil
}

// SearchSchema handles the search_schema MCP tool call.
func (s *Server) SearchSchema(ctx context.Context, _ *mcp.CallToolRequest, input SearchSchemaInput) (*mcp.CallToolResult, any, error) {
	chunks, err := s.pipeline.Retrieve(ctx, input.Query, clampMaxChunks(input.MaxChunks))
	if err != nil {
		return nil, nil, fmt.Errorf("search_schema failed: %w", err)
	}

	return dataToMCP(SearchSchemaOutput{
		Query:       input.Query,
		ResultCount: len(chunks),
		Chunks:      pipeline.Summaries(chunks),
	}), nil, nil
}

// Ask handles the ask MCP tool call. A question no schema chunk matches is
// an expected outcome and comes back as a tool error result, not a protocol
// failure.
func (s *Server) Ask(ctx context.Context, _ *mcp.CallToolRequest, input AskInput) (*mcp.CallToolResult, any, error) {
	result, err := s.pipeline.Run(ctx, pipeline.Request{
		Question:  input.Question,
		MaxChunks: clampMaxChunks(input.MaxChunks),
	})
	if err != nil {
		if errors.Is(err, pipeline.ErrNoRelevantKnowledge) {
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{
					Text: "No relevant schema knowledge found for this question. Try rephrasing it in terms of Kusama transfers, accounts, or blocks.",
				}},
				IsError: true,
			}, nil, nil
		}
		return nil, nil, fmt.Errorf("ask failed: %w", err)
	}

	return dataToMCP(AskOutput{
		Answer:       result.Answer,
		GraphQLQuery: result.GeneratedQuery,
	}), nil, nil
}

// clampMaxChunks normalizes a client-supplied chunk count the same way the
// genkit flow does: zero or negative means the default, oversized requests
// are capped.
func clampMaxChunks(n int) int {
	if n <= 0 {
		return pipeline.DefaultMaxChunks
	}
	if n > pipeline.MaxChunksLimit {
		return pipeline.MaxChunksLimit
	}
	return n
}
