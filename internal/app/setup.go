package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core/api"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/ollama"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/koopa0/kusari/db"
	"github.com/koopa0/kusari/internal/config"
	"github.com/koopa0/kusari/internal/graphql"
	"github.com/koopa0/kusari/internal/knowledge"
	"github.com/koopa0/kusari/internal/observability"
	"github.com/koopa0/kusari/internal/pipeline"
)

// Setup creates and initializes the application.
// Returns an App with embedded cleanup. Call Close() to release.
func Setup(ctx context.Context, cfg *config.Config) (_ *App, retErr error) {
	a := &App{Config: cfg}

	// On error, clean up everything already initialized
	defer func() {
		if retErr != nil {
			if err := a.Close(); err != nil {
				slog.Warn("cleanup during setup failure", "error", err)
			}
		}
	}()

	a.otelCleanup = provideOtelShutdown(ctx, cfg)

	pool, err := provideDBPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.DBPool = pool

	g, err := provideGenkit(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.Genkit = g

	embedder := provideEmbedder(g, cfg)
	if embedder == nil {
		return nil, fmt.Errorf("embedder %q not found for provider %q", cfg.EmbedderModel, cfg.Provider)
	}
	a.Embedder = embedder

	store, err := provideKnowledge(ctx, pool, embedder)
	if err != nil {
		return nil, err
	}
	a.Knowledge = store

	client, err := provideGraphQLClient(cfg)
	if err != nil {
		return nil, err
	}
	a.GraphQL = client

	p, err := providePipeline(g, cfg, store, client)
	if err != nil {
		return nil, err
	}
	a.Pipeline = p
	a.Flow = pipeline.NewFlow(g, p)

	// Set up lifecycle management
	_, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	return a, nil
}

// provideOtelShutdown sets up Datadog tracing before Genkit initialization.
// Must be called before provideGenkit to ensure TracerProvider is ready.
//
// Traces are exported to a local Datadog Agent via OTLP HTTP (localhost:4318).
// The Agent handles authentication, buffering, and forwarding to Datadog backend.
func provideOtelShutdown(ctx context.Context, cfg *config.Config) func() {
	dd := cfg.Datadog

	shutdown, err := observability.SetupDatadog(ctx, observability.Config{
		AgentHost:   dd.AgentHost,
		Environment: dd.Environment,
		ServiceName: dd.ServiceName,
	})
	if err != nil {
		slog.Warn("setting up datadog tracing, disabled", "error", err)
		return func() {}
	}

	//nolint:contextcheck // Independent context: shutdown runs during teardown when parent is canceled
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Warn("shutting down tracer provider", "error", err)
		}
	}
}

// provideGenkit initializes Genkit with the configured AI provider plugin.
// Supports gemini (default), ollama, and openai providers.
// Call ordering in Setup ensures tracing is set up first.
func provideGenkit(ctx context.Context, cfg *config.Config) (*genkit.Genkit, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = config.ProviderGemini
	}

	var g *genkit.Genkit

	switch provider {
	case config.ProviderOllama:
		ollamaPlugin := &ollama.Ollama{ServerAddress: cfg.OllamaHost}
		g = genkit.Init(ctx, genkit.WithPlugins(ollamaPlugin))
		if g == nil {
			return nil, errors.New("initializing genkit with ollama provider")
		}
		// Ollama requires explicit model registration (no auto-discovery)
		ollamaPlugin.DefineModel(g, ollama.ModelDefinition{
			Name: cfg.ModelName,
			Type: "chat",
		}, nil)
		// Register embedder for retrieval
		ollamaPlugin.DefineEmbedder(g, cfg.OllamaHost, cfg.EmbedderModel, nil)
		slog.Info("initialized Genkit with ollama provider",
			"model", cfg.ModelName, "host", cfg.OllamaHost)

	case config.ProviderOpenAI:
		g = genkit.Init(ctx, genkit.WithPlugins(&openai.OpenAI{}))
		if g == nil {
			return nil, errors.New("initializing genkit with openai provider")
		}
		slog.Info("initialized Genkit with openai provider", "model", cfg.ModelName)

	default: // "gemini"
		g = genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
		if g == nil {
			return nil, errors.New("initializing genkit with gemini provider")
		}
		slog.Info("initialized Genkit with gemini provider", "model", cfg.ModelName)
	}

	return g, nil
}

// provideEmbedder looks up the embedder registered by the AI provider plugin.
// Each provider registers embedders differently:
//   - gemini: GoogleAIEmbedder(g, modelName)
//   - ollama: registered in provideGenkit, keyed by server address
//   - openai: auto-registered in Init(), looked up by model name
func provideEmbedder(g *genkit.Genkit, cfg *config.Config) ai.Embedder {
	provider := cfg.Provider
	if provider == "" {
		provider = config.ProviderGemini
	}

	switch provider {
	case config.ProviderOllama:
		// Ollama embedder is keyed by server address (registered in provideGenkit)
		return ollama.Embedder(g, cfg.OllamaHost)
	case config.ProviderOpenAI:
		// OpenAI auto-registers embedders in Init()
		return genkit.LookupEmbedder(g, api.NewName("openai", cfg.EmbedderModel))
	default: // "gemini"
		return googlegenai.GoogleAIEmbedder(g, cfg.EmbedderModel)
	}
}

// provideDBPool creates a PostgreSQL connection pool and runs migrations.
// Pool is configured with sensible defaults for connection management.
func provideDBPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	if err := db.Migrate(cfg.PostgresURL()); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parsing connection config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}

// provideKnowledge creates the schema knowledge store and seeds it from the
// built-in catalog when the table is empty. Seeding runs synchronously: the
// pipeline cannot answer anything without schema chunks, so a partially
// started server is worse than a slow first boot.
func provideKnowledge(ctx context.Context, pool *pgxpool.Pool, embedder ai.Embedder) (*knowledge.Store, error) {
	store, err := knowledge.NewStore(pool, embedder, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("creating knowledge store: %w", err)
	}

	if err := store.SeedOnce(ctx); err != nil {
		return nil, fmt.Errorf("seeding schema knowledge: %w", err)
	}

	return store, nil
}

// provideGraphQLClient creates the client for the Kusama indexer endpoint.
func provideGraphQLClient(cfg *config.Config) (*graphql.Client, error) {
	timeout := time.Duration(cfg.GraphQLTimeout) * time.Second
	client, err := graphql.NewClient(cfg.GraphQLEndpoint, timeout, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("creating graphql client: %w", err)
	}

	return client, nil
}

// providePipeline wires retrieval, synthesis, and execution into the ask
// pipeline.
func providePipeline(g *genkit.Genkit, cfg *config.Config, store *knowledge.Store, client *graphql.Client) (*pipeline.Pipeline, error) {
	gen, err := pipeline.NewGenerator(pipeline.GeneratorConfig{
		Genkit:    g,
		ModelName: cfg.FullModelName(),
		Logger:    slog.Default(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating generator: %w", err)
	}

	p, err := pipeline.New(pipeline.Config{
		Retriever: store,
		Generator: gen,
		Executor:  client,
		Endpoint:  cfg.GraphQLEndpoint,
		Logger:    slog.Default(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating pipeline: %w", err)
	}

	return p, nil
}
