package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"slices"
)

// MaxChunksLimit is the hard ceiling on retrieval size. Larger values blow
// up the prompt without improving grounding.
const MaxChunksLimit = 20

// Validate validates configuration values.
// Returns sentinel errors that can be checked with errors.Is().
func (c *Config) Validate() error {
	// 0. Check for nil config (defensive programming)
	if c == nil {
		return ErrConfigNil
	}

	// 1. Provider validation. Empty means the gemini default; do not mutate
	// the config here, just validate against the normalized value.
	provider := c.Provider
	if provider == "" {
		provider = ProviderGemini
	}
	validProviders := []string{ProviderGemini, ProviderOllama, ProviderOpenAI}
	if !slices.Contains(validProviders, provider) {
		return fmt.Errorf("%w: %q is not valid, must be one of: %v",
			ErrInvalidProvider, c.Provider, validProviders)
	}

	// 2. API key validation. Keys are read directly by the Genkit plugins;
	// we only check presence here so failure happens at startup, not on the
	// first request.
	switch provider {
	case ProviderGemini:
		if os.Getenv("GEMINI_API_KEY") == "" {
			return fmt.Errorf("%w: GEMINI_API_KEY environment variable is required\n"+
				"Get your API key at: https://ai.google.dev/gemini-api/docs/api-key",
				ErrMissingAPIKey)
		}
	case ProviderOpenAI:
		if os.Getenv("OPENAI_API_KEY") == "" {
			return fmt.Errorf("%w: OPENAI_API_KEY environment variable is required",
				ErrMissingAPIKey)
		}
	case ProviderOllama:
		if c.OllamaHost == "" {
			return fmt.Errorf("%w: ollama_host cannot be empty", ErrInvalidOllamaHost)
		}
	}

	// 3. Model configuration validation
	if c.ModelName == "" {
		return fmt.Errorf("%w: model_name cannot be empty", ErrInvalidModelName)
	}

	// Temperature range: 0.0 (deterministic) to 2.0 (maximum creativity)
	// Reference: Gemini API documentation
	if c.Temperature < 0.0 || c.Temperature > 2.0 {
		return fmt.Errorf("%w: must be between 0.0 and 2.0, got %.2f", ErrInvalidTemperature, c.Temperature)
	}

	// MaxTokens range: 1 to 2097152 (Gemini 2.5 max context window)
	// Reference: https://ai.google.dev/gemini-api/docs/models
	if c.MaxTokens < 1 || c.MaxTokens > 2097152 {
		return fmt.Errorf("%w: must be between 1 and 2,097,152, got %d", ErrInvalidMaxTokens, c.MaxTokens)
	}

	// 4. Embedding configuration validation
	if c.EmbedderModel == "" {
		return fmt.Errorf("%w: embedder_model cannot be empty", ErrInvalidEmbedderModel)
	}

	// 5. Search configuration validation
	if c.MaxChunks < 1 || c.MaxChunks > MaxChunksLimit {
		return fmt.Errorf("%w: must be between 1 and %d, got %d", ErrInvalidMaxChunks, MaxChunksLimit, c.MaxChunks)
	}

	// 6. GraphQL configuration validation
	if c.GraphQLEndpoint == "" {
		return fmt.Errorf("%w: graphql_endpoint cannot be empty", ErrInvalidGraphQLEndpoint)
	}
	endpoint, err := url.Parse(c.GraphQLEndpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGraphQLEndpoint, err)
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https, got %q", ErrInvalidGraphQLEndpoint, endpoint.Scheme)
	}
	if endpoint.Host == "" {
		return fmt.Errorf("%w: missing host in %q", ErrInvalidGraphQLEndpoint, c.GraphQLEndpoint)
	}

	if c.GraphQLTimeout < 1 || c.GraphQLTimeout > 300 {
		return fmt.Errorf("%w: must be between 1 and 300 seconds, got %d", ErrInvalidGraphQLTimeout, c.GraphQLTimeout)
	}

	// 7. PostgreSQL configuration validation
	if c.PostgresHost == "" {
		return fmt.Errorf("%w: host cannot be empty", ErrInvalidPostgresHost)
	}

	if c.PostgresPort < 1 || c.PostgresPort > 65535 {
		return fmt.Errorf("%w: must be between 1 and 65535, got %d", ErrInvalidPostgresPort, c.PostgresPort)
	}

	if c.PostgresDBName == "" {
		return fmt.Errorf("%w: database name cannot be empty", ErrInvalidPostgresDBName)
	}

	if c.PostgresPassword == "" {
		return fmt.Errorf("%w: postgres_password must be set in config.yaml",
			ErrInvalidPostgresPassword)
	}

	// Warn if using default dev password (but don't block - user might be in dev)
	if c.PostgresPassword == "kusari_dev_password" {
		slog.Warn("Using default development password for PostgreSQL",
			"warning", "Change postgres_password in config.yaml for production deployments")
	}

	// Validate password strength (minimum 8 characters)
	if len(c.PostgresPassword) < 8 {
		return fmt.Errorf("%w: postgres_password must be at least 8 characters (got %d)",
			ErrInvalidPostgresPassword, len(c.PostgresPassword))
	}

	// 8. PostgreSQL SSL mode validation
	// DO NOT mutate config in Validate() - just validate
	// Note: Even with setDefaults(), user can override with empty value in YAML
	// Modern SSL modes only - exclude deprecated allow/prefer (MITM vulnerable)
	// Reference: https://www.postgresql.org/docs/current/libpq-ssl.html
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	if c.PostgresSSLMode == "" {
		return fmt.Errorf("%w: postgres_ssl_mode is empty (should have default from setDefaults)",
			ErrInvalidPostgresSSLMode)
	}

	// Check if SSL mode is one of the valid PostgreSQL modes
	if !slices.Contains(validSSLModes, c.PostgresSSLMode) {
		return fmt.Errorf("%w: %q is not valid, must be one of: %v\n"+
			"Note: 'allow' and 'prefer' modes are deprecated (vulnerable to MITM attacks)",
			ErrInvalidPostgresSSLMode, c.PostgresSSLMode, validSSLModes)
	}

	return nil
}
