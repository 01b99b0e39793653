// Package graphql executes synthesized queries against the Kusama
// indexer endpoint.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/koopa0/kusari/internal/pipeline"
)

// DefaultTimeout bounds a single query execution round trip.
const DefaultTimeout = 30 * time.Second

// maxErrorBodyBytes caps response bodies quoted in error messages.
const maxErrorBodyBytes = 512

// Client is a minimal GraphQL-over-HTTP client bound to one endpoint.
//
// Only transport-level problems (network failure, non-2xx status,
// unreadable or malformed body) are errors, and they wrap
// pipeline.ErrExecution. A well-formed response carrying a GraphQL
// errors field is returned as data so the response synthesis stage can
// explain it.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client for the given endpoint.
// A timeout <= 0 uses DefaultTimeout.
func NewClient(endpoint string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	if endpoint == "" {
		return nil, errors.New("graphql endpoint is required")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

type graphqlRequest struct {
	Query string `json:"query"`
}

// Execute POSTs the query and returns the raw response body.
func (c *Client) Execute(ctx context.Context, query string) (json.RawMessage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query text is required", pipeline.ErrExecution)
	}

	payload, err := json.Marshal(graphqlRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling request: %w", pipeline.ErrExecution, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %w", pipeline.ErrExecution, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pipeline.ErrExecution, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %w", pipeline.ErrExecution, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: endpoint returned status %d: %s",
			pipeline.ErrExecution, resp.StatusCode, truncate(string(body), maxErrorBodyBytes))
	}

	// A GraphQL response is a JSON object; anything else is malformed.
	var probe struct {
		Errors json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("%w: malformed response body: %w", pipeline.ErrExecution, err)
	}
	if len(probe.Errors) > 0 && string(probe.Errors) != "null" {
		c.logger.Warn("graphql endpoint reported errors",
			"errors", truncate(string(probe.Errors), maxErrorBodyBytes),
		)
	}

	c.logger.Debug("graphql query executed",
		"status", resp.StatusCode,
		"body_bytes", len(body),
		"elapsed", time.Since(start),
	)
	return json.RawMessage(body), nil
}

// truncate shortens s to at most n bytes for error messages and logs.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
