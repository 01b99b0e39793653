package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/koopa0/kusari/internal/pipeline"
)

// Server timeouts. WriteTimeout is generous because an answer waits on two
// model generations plus the GraphQL round trip.
const (
	ShutdownTimeout   = 30 * time.Second
	ReadHeaderTimeout = 10 * time.Second
	ReadTimeout       = 30 * time.Second
	WriteTimeout      = 2 * time.Minute
	IdleTimeout       = 2 * time.Minute
)

// ServerConfig contains configuration for creating the API server.
type ServerConfig struct {
	Logger            *slog.Logger
	Pipeline          *pipeline.Pipeline // Required
	Counter           Counter            // Required: chunk count for /stats
	Pool              *pgxpool.Pool      // Optional: nil makes /ready report 503
	GraphQLEndpoint   string             // Reported in /stats
	EmbeddingProvider string             // Reported in /stats
	EmbeddingModel    string             // Reported in /stats
	TrustProxy        bool               // Trust X-Real-IP/X-Forwarded-For headers (behind reverse proxy)
	RateBurst         int                // Rate limiter burst size per IP (0 = default 60)
}

// Server is the JSON API HTTP server.
type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger
}

// NewServer creates a new API server with all routes configured.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Pipeline == nil {
		return nil, errors.New("pipeline is required")
	}
	if cfg.Counter == nil {
		return nil, errors.New("chunk counter is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ah := &answerHandler{pipeline: cfg.Pipeline, logger: logger}
	sh := &searchHandler{pipeline: cfg.Pipeline, logger: logger}
	st := &statsHandler{
		counter:  cfg.Counter,
		provider: cfg.EmbeddingProvider,
		model:    cfg.EmbeddingModel,
		endpoint: cfg.GraphQLEndpoint,
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", banner)
	mux.HandleFunc("POST /answer", ah.answer)
	mux.HandleFunc("POST /search-chunks", sh.searchChunks)
	mux.HandleFunc("POST /generate-query", sh.generateQuery)
	mux.HandleFunc("GET /stats", st.getStats)

	// Rate limiter: per-IP token bucket (1 token/sec refill)
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 60
	}
	rl := newRateLimiter(1.0, burst)

	// Build middleware stack (outermost first):
	//   Recovery → RequestID → Logging → RateLimit → Routes
	// RequestID must be before Logging so request_id is available in log attributes.
	var handler http.Handler = mux
	handler = rateLimitMiddleware(rl, cfg.TrustProxy, logger)(handler)
	handler = loggingMiddleware(logger)(handler)
	handler = requestIDMiddleware()(handler)
	handler = recoveryMiddleware(logger)(handler)

	// Use a top-level mux to separate health probes from middleware stack
	topMux := http.NewServeMux()
	topMux.HandleFunc("GET /health", health)
	topMux.Handle("GET /ready", readiness(cfg.Pool))
	topMux.Handle("/", handler)

	return &Server{mux: topMux, logger: logger}, nil
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run starts the HTTP server on addr and blocks until ctx is canceled or the
// listener fails. On cancellation it drains in-flight requests for up to
// ShutdownTimeout before returning.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down api server: %w", err)
		}
		s.logger.Info("api server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server: %w", err)
	}
}
