package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/koopa0/kusari/internal/pipeline"
)

// QueryRequest is the shared body for POST /answer, /search-chunks, and
// /generate-query. MaxChunks is a pointer so an omitted value falls back to
// the default while an explicit non-positive value is rejected.
type QueryRequest struct {
	Query     string `json:"query"`
	MaxChunks *int   `json:"max_chunks"`
}

// AnswerResponse is the body for a successful POST /answer.
type AnswerResponse struct {
	Answer         string                  `json:"answer"`
	GraphQLQuery   string                  `json:"graphql_query"`
	RawData        json.RawMessage         `json:"raw_data,omitempty"`
	RelevantChunks []pipeline.ChunkSummary `json:"relevant_chunks,omitempty"`
}

type answerHandler struct {
	pipeline *pipeline.Pipeline
	logger   *slog.Logger
}

// answer runs the full question answering pipeline: retrieve schema chunks,
// generate a GraphQL query, execute it, and explain the result.
func (h *answerHandler) answer(w http.ResponseWriter, r *http.Request) {
	question, maxChunks, ok := decodeQueryRequest(w, r)
	if !ok {
		return
	}

	result, err := h.pipeline.Run(r.Context(), pipeline.Request{
		Question:  question,
		MaxChunks: maxChunks,
	})
	if err != nil {
		writePipelineError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, AnswerResponse{
		Answer:         result.Answer,
		GraphQLQuery:   result.GeneratedQuery,
		RawData:        result.RawResult,
		RelevantChunks: pipeline.Summaries(result.Chunks),
	})
}

// decodeQueryRequest parses the shared request body and resolves max_chunks
// against the default and upper limit. On invalid input it writes a 400
// response and returns ok=false.
func decodeQueryRequest(w http.ResponseWriter, r *http.Request) (question string, maxChunks int, ok bool) {
	var req QueryRequest
	r.Body = http.MaxBytesReader(w, r.Body, 1024*1024) // Limit request size to 1MB
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON request body")
		return "", 0, false
	}

	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "query is required")
		return "", 0, false
	}

	maxChunks = pipeline.DefaultMaxChunks
	if req.MaxChunks != nil {
		if *req.MaxChunks <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_request", "max_chunks must be positive")
			return "", 0, false
		}
		maxChunks = *req.MaxChunks
		if maxChunks > pipeline.MaxChunksLimit {
			maxChunks = pipeline.MaxChunksLimit
		}
	}

	return req.Query, maxChunks, true
}

// writePipelineError maps pipeline errors to HTTP statuses. No matching
// chunks is the caller's problem (404); everything else is a server-side
// failure (500) with a code naming the stage that failed.
func writePipelineError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	requestID := requestIDFromContext(r.Context())

	switch {
	case errors.Is(err, pipeline.ErrNoRelevantKnowledge):
		writeError(w, http.StatusNotFound, "no_relevant_knowledge", "no relevant schema chunks found for the question")
	case errors.Is(err, pipeline.ErrRetrieval):
		logger.Error("pipeline request failed", "stage", "retrieval", "error", err, "request_id", requestID)
		writeError(w, http.StatusInternalServerError, "retrieval_failed", "knowledge retrieval failed")
	case errors.Is(err, pipeline.ErrGeneration):
		logger.Error("pipeline request failed", "stage", "generation", "error", err, "request_id", requestID)
		writeError(w, http.StatusInternalServerError, "generation_failed", "model generation failed")
	case errors.Is(err, pipeline.ErrExecution):
		logger.Error("pipeline request failed", "stage", "execution", "error", err, "request_id", requestID)
		writeError(w, http.StatusInternalServerError, "execution_failed", "GraphQL query execution failed")
	default:
		logger.Error("pipeline request failed", "error", err, "request_id", requestID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
