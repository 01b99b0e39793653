package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/koopa0/kusari/internal/api"
	"github.com/koopa0/kusari/internal/app"
	"github.com/koopa0/kusari/internal/config"
)

// parseRateBurst reads KUSARI_RATE_BURST from the environment.
// Returns 0 (use default) if unset or invalid.
func parseRateBurst() int {
	v := os.Getenv("KUSARI_RATE_BURST")
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// runServe initializes and starts the HTTP API server.
func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	configureLogging(cfg)

	addr, err := parseServeAddr()
	if err != nil {
		return fmt.Errorf("parsing address: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := slog.Default()
	logger.Info("starting HTTP API server", "version", Version)

	a, err := app.Setup(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			logger.Warn("shutdown error", "error", closeErr)
		}
	}()

	apiServer, err := api.NewServer(api.ServerConfig{
		Logger:            logger,
		Pipeline:          a.Pipeline,
		Counter:           a.Knowledge,
		Pool:              a.DBPool,
		GraphQLEndpoint:   cfg.GraphQLEndpoint,
		EmbeddingProvider: cfg.Provider,
		EmbeddingModel:    cfg.EmbedderModel,
		TrustProxy:        cfg.TrustProxy,
		RateBurst:         parseRateBurst(),
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	logger.Info("HTTP server ready",
		"addr", addr,
		"api", "/answer, /search-chunks, /generate-query, /stats",
		"health", "/health, /ready",
	)

	return apiServer.Run(ctx, addr)
}
