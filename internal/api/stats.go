package api

import (
	"context"
	"log/slog"
	"net/http"
)

// Counter reports how many knowledge chunks are stored. Satisfied by
// *knowledge.Store.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// StatsResponse is the body for GET /stats.
type StatsResponse struct {
	TotalChunks       int    `json:"total_chunks"`
	EmbeddingProvider string `json:"embedding_provider"`
	EmbeddingModel    string `json:"embedding_model"`
	GraphQLEndpoint   string `json:"graphql_endpoint"`
}

// statsHandler holds dependencies for the stats API endpoint.
type statsHandler struct {
	counter  Counter
	provider string
	model    string
	endpoint string
	logger   *slog.Logger
}

// getStats handles GET /stats. The chunk count comes from the database so it
// reflects what retrieval actually sees, not the compiled-in catalog.
func (h *statsHandler) getStats(w http.ResponseWriter, r *http.Request) {
	total, err := h.counter.Count(r.Context())
	if err != nil {
		h.logger.Error("counting chunks", "error", err, "request_id", requestIDFromContext(r.Context()))
		writeError(w, http.StatusInternalServerError, "stats_failed", "failed to read chunk count")
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{
		TotalChunks:       total,
		EmbeddingProvider: h.provider,
		EmbeddingModel:    h.model,
		GraphQLEndpoint:   h.endpoint,
	})
}

// banner identifies the service on GET /.
func banner(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Kusari API",
		"status":  "running",
	})
}
