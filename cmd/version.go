package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/koopa0/kusari/internal/config"
)

// Version is the application version, injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/koopa0/kusari/cmd.Version=v1.0.0"
var Version = "dev"

// runVersion displays version and configuration information.
// It must work even when the configuration is incomplete, so config
// errors are reported instead of returned.
func runVersion() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Kusari %s\n", Version)
		fmt.Println()
		fmt.Printf("Configuration: unavailable (%v)\n", err)
		if errors.Is(err, config.ErrMissingAPIKey) {
			fmt.Println()
			fmt.Println("Hint: Please set GEMINI_API_KEY environment variable")
			fmt.Println("  export GEMINI_API_KEY=your-api-key")
		}
		return
	}

	printVersion(cfg)
}

// printVersion prints the version banner and the loaded configuration.
func printVersion(cfg *config.Config) {
	fmt.Printf("Kusari %s\n", Version)
	fmt.Println()

	fmt.Println("Configuration:")
	fmt.Printf("  Provider: %s\n", cfg.Provider)
	fmt.Printf("  Model: %s\n", cfg.FullModelName())
	fmt.Printf("  Temperature: %.2f\n", cfg.Temperature)
	fmt.Printf("  Max tokens: %d\n", cfg.MaxTokens)
	fmt.Printf("  Embedder: %s\n", cfg.EmbedderModel)
	fmt.Printf("  Max chunks: %d\n", cfg.MaxChunks)
	fmt.Printf("  GraphQL endpoint: %s\n", cfg.GraphQLEndpoint)

	// Check API Key from environment (don't display full content)
	if key := os.Getenv("GEMINI_API_KEY"); len(key) >= 8 {
		fmt.Printf("  GEMINI_API_KEY: %s...%s (configured)\n",
			key[:4], key[len(key)-4:])
	}
}
