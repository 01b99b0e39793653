package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/koopa0/kusari/internal/app"
	"github.com/koopa0/kusari/internal/config"
	"github.com/koopa0/kusari/internal/pipeline"
)

// runAsk answers a single question from the command line and exits.
// Flags must come before the question:
//
//	kusari ask -show-query "how many transfers happened today?"
func runAsk() error {
	askFlags := flag.NewFlagSet("ask", flag.ContinueOnError)
	askFlags.SetOutput(os.Stderr)

	chunks := askFlags.Int("chunks", 0, "Number of schema chunks to retrieve (default: from config)")
	showQuery := askFlags.Bool("show-query", false, "Print the generated GraphQL query before the answer")

	args := []string{}
	if len(os.Args) > 2 {
		args = os.Args[2:]
	}
	if err := askFlags.Parse(args); err != nil {
		return fmt.Errorf("parsing ask flags: %w", err)
	}

	question := strings.TrimSpace(strings.Join(askFlags.Args(), " "))
	if question == "" {
		return errors.New(`question is required: kusari ask "how many transfers happened today?"`)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	configureLogging(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := app.Setup(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			slog.Warn("shutdown error", "error", closeErr)
		}
	}()

	maxChunks := cfg.MaxChunks
	if *chunks > 0 {
		maxChunks = *chunks
	}
	if maxChunks > pipeline.MaxChunksLimit {
		maxChunks = pipeline.MaxChunksLimit
	}

	result, err := a.Pipeline.Run(ctx, pipeline.Request{Question: question, MaxChunks: maxChunks})
	if err != nil {
		if errors.Is(err, pipeline.ErrNoRelevantKnowledge) {
			return errors.New("no relevant schema knowledge found; try rephrasing the question in terms of Kusama transfers, accounts, or blocks")
		}
		return fmt.Errorf("answering question: %w", err)
	}

	if *showQuery {
		fmt.Println(result.GeneratedQuery)
		fmt.Println()
	}
	fmt.Println(result.Answer)

	return nil
}
