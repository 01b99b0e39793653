package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/koopa0/kusari/internal/app"
	"github.com/koopa0/kusari/internal/config"
)

// runSeed drops and re-embeds the schema knowledge base. Use it after
// changing the embedder model or editing the chunk catalog.
func runSeed() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	configureLogging(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	slog.Info("reseeding schema knowledge base",
		"provider", cfg.Provider,
		"embedder", cfg.EmbedderModel,
	)

	a, err := app.Setup(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			slog.Warn("shutdown error", "error", closeErr)
		}
	}()

	if err := a.Knowledge.Reseed(ctx); err != nil {
		return fmt.Errorf("reseeding knowledge base: %w", err)
	}

	count, err := a.Knowledge.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting chunks: %w", err)
	}

	fmt.Printf("Knowledge base reseeded: %d chunks embedded\n", count)
	return nil
}
