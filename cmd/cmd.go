// Package cmd provides CLI commands for Kusari.
//
// Commands:
//   - serve: HTTP JSON API server for natural-language Kusama queries
//   - ask: One-shot question answering from the command line
//   - mcp: Model Context Protocol server for IDE integration
//   - seed: Rebuild the schema knowledge base embeddings
//
// Signal handling and graceful shutdown are implemented
// for all commands via context cancellation.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/koopa0/kusari/internal/config"
	"github.com/koopa0/kusari/internal/log"
)

// Execute is the main entry point for the Kusari CLI application.
func Execute() error {
	// Load .env file if it exists (for API keys)
	_ = godotenv.Load()

	// Bootstrap logger; replaced once the configuration is loaded
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(log.New(log.Config{Level: level}))

	if len(os.Args) < 2 {
		runHelp()
		return nil
	}

	switch os.Args[1] {
	case "serve":
		return runServe()
	case "ask":
		return runAsk()
	case "mcp":
		return runMCP()
	case "seed":
		return runSeed()
	case "version", "--version", "-v":
		runVersion()
		return nil
	case "help", "--help", "-h":
		runHelp()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

// configureLogging replaces the bootstrap logger with one built from the
// loaded configuration. DEBUG always wins over log_level.
func configureLogging(cfg *config.Config) {
	level := log.ParseLevel(cfg.LogLevel)
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(log.New(log.Config{Level: level, JSON: cfg.LogJSON}))
}

// runHelp displays the help message.
func runHelp() {
	fmt.Println("Kusari - Natural language answers from Kusama chain data")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  kusari serve [addr]    Start HTTP API server (default: 127.0.0.1:8000)")
	fmt.Println("  kusari ask <question>  Answer one question and exit")
	fmt.Println("  kusari mcp             Start MCP server (for Claude Desktop/Cursor)")
	fmt.Println("  kusari seed            Rebuild the schema knowledge base")
	fmt.Println("  kusari --version       Show version information")
	fmt.Println("  kusari --help          Show this help")
	fmt.Println()
	fmt.Println("Ask Options:")
	fmt.Println("  -chunks N              Retrieve N schema chunks (default: from config)")
	fmt.Println("  -show-query            Print the generated GraphQL query before the answer")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  GEMINI_API_KEY         Required for the gemini provider (default)")
	fmt.Println("  OPENAI_API_KEY         Required for the openai provider")
	fmt.Println("  DATABASE_URL           PostgreSQL connection URL override")
	fmt.Println("  KUSARI_PROVIDER        AI provider: gemini, ollama, openai")
	fmt.Println("  DEBUG                  Optional: Enable debug logging")
	fmt.Println()
	fmt.Println("Learn more: https://github.com/koopa0/kusari")
}
