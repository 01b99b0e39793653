// Package app provides application initialization and dependency injection.
//
// App is the core container that orchestrates all application components.
// Setup initializes Genkit, the database pool, the schema knowledge store,
// the GraphQL client, and wires them into the ask pipeline.
package app

import (
	"context"
	"log/slog"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/koopa0/kusari/internal/config"
	"github.com/koopa0/kusari/internal/graphql"
	"github.com/koopa0/kusari/internal/knowledge"
	"github.com/koopa0/kusari/internal/pipeline"
)

// App is the core application container.
type App struct {
	// Configuration
	Config *config.Config

	// Core services
	Genkit    *genkit.Genkit
	Embedder  ai.Embedder
	DBPool    *pgxpool.Pool
	Knowledge *knowledge.Store
	GraphQL   *graphql.Client
	Pipeline  *pipeline.Pipeline
	Flow      *pipeline.Flow

	// Lifecycle management
	otelCleanup func()
	cancel      context.CancelFunc
}

// Close gracefully shuts down all resources.
func (a *App) Close() error {
	slog.Info("shutting down application")

	// 1. Cancel context
	if a.cancel != nil {
		a.cancel()
	}

	// 2. Close database pool
	if a.DBPool != nil {
		a.DBPool.Close()
		slog.Info("database pool closed")
	}

	// 3. Flush pending traces last so shutdown spans are exported
	if a.otelCleanup != nil {
		a.otelCleanup()
	}

	return nil
}
