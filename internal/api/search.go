package api

import (
	"log/slog"
	"net/http"

	"github.com/koopa0/kusari/internal/knowledge"
	"github.com/koopa0/kusari/internal/pipeline"
)

// SearchResponse is the body for POST /search-chunks.
type SearchResponse struct {
	Query  string                `json:"query"`
	Chunks []knowledge.Retrieved `json:"chunks"`
}

// GenerateQueryResponse is the body for POST /generate-query.
type GenerateQueryResponse struct {
	Query          string                `json:"query"`
	GraphQLQuery   string                `json:"graphql_query"`
	RelevantChunks []knowledge.Retrieved `json:"relevant_chunks"`
}

// searchHandler serves the pipeline introspection endpoints: raw vector
// search and query synthesis without execution.
type searchHandler struct {
	pipeline *pipeline.Pipeline
	logger   *slog.Logger
}

// searchChunks handles POST /search-chunks. It runs the retrieval stage only
// and returns the matching chunks with their distances. No matches is not an
// error here; the caller gets an empty list.
func (h *searchHandler) searchChunks(w http.ResponseWriter, r *http.Request) {
	question, maxChunks, ok := decodeQueryRequest(w, r)
	if !ok {
		return
	}

	chunks, err := h.pipeline.Retrieve(r.Context(), question, maxChunks)
	if err != nil {
		writePipelineError(w, r, h.logger, err)
		return
	}
	if chunks == nil {
		chunks = []knowledge.Retrieved{}
	}

	writeJSON(w, http.StatusOK, SearchResponse{Query: question, Chunks: chunks})
}

// generateQuery handles POST /generate-query. It retrieves schema chunks and
// synthesizes a GraphQL query but never executes it, so the caller can
// inspect or run the query themselves.
func (h *searchHandler) generateQuery(w http.ResponseWriter, r *http.Request) {
	question, maxChunks, ok := decodeQueryRequest(w, r)
	if !ok {
		return
	}

	query, chunks, err := h.pipeline.GenerateQuery(r.Context(), question, maxChunks)
	if err != nil {
		writePipelineError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, GenerateQueryResponse{
		Query:          question,
		GraphQLQuery:   query,
		RelevantChunks: chunks,
	})
}
