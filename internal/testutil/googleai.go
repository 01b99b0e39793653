package testutil

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"

	"github.com/koopa0/kusari/internal/config"
)

// GoogleAISetup contains all resources needed for Google AI-based tests.
type GoogleAISetup struct {
	Embedder ai.Embedder
	Genkit   *genkit.Genkit
	Logger   *slog.Logger
}

// SetupGoogleAI creates a Google AI embedder with logger for testing.
//
// Requirements:
//   - GEMINI_API_KEY environment variable must be set
//   - Skips the test if the API key is not available
func SetupGoogleAI(t *testing.T) *GoogleAISetup {
	t.Helper()

	setup, err := SetupGoogleAIForMain()
	if err != nil {
		t.Skip(err.Error())
	}
	return setup
}

// SetupGoogleAIForMain is the TestMain variant of SetupGoogleAI: it returns
// an error instead of skipping, so TestMain can exit gracefully when no API
// key is configured.
func SetupGoogleAIForMain() (*GoogleAISetup, error) {
	if os.Getenv("GEMINI_API_KEY") == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set - skipping tests requiring embedder")
	}

	ctx := context.Background()

	g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))

	embedder := googlegenai.GoogleAIEmbedder(g, config.DefaultGeminiEmbedderModel)
	if embedder == nil {
		return nil, fmt.Errorf("GoogleAIEmbedder returned nil for model %q", config.DefaultGeminiEmbedderModel)
	}

	return &GoogleAISetup{
		Embedder: embedder,
		Genkit:   g,
		Logger:   slog.New(slog.DiscardHandler),
	}, nil
}
