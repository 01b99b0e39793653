package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/koopa0/kusari/internal/pipeline"
)

// Server wraps the MCP SDK server and the ask pipeline.
type Server struct {
	mcpServer *mcp.Server
	pipeline  *pipeline.Pipeline
	logger    *slog.Logger
	name      string
	version   string
}

// Config holds MCP server configuration.
type Config struct {
	Name     string
	Version  string
	Pipeline *pipeline.Pipeline
	Logger   *slog.Logger
}

// NewServer creates a new MCP server exposing the schema search and ask
// tools.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("server name is required")
	}
	if cfg.Version == "" {
		return nil, fmt.Errorf("server version is required")
	}
	if cfg.Pipeline == nil {
		return nil, fmt.Errorf("pipeline is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	s := &Server{
		mcpServer: mcpServer,
		pipeline:  cfg.Pipeline,
		logger:    logger,
		name:      cfg.Name,
		version:   cfg.Version,
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("registering tools: %w", err)
	}

	return s, nil
}

// Run starts the MCP server on the given transport.
// This is a blocking call that handles all MCP protocol communication.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.mcpServer.Run(ctx, transport)
}

// registerTools registers all pipeline tools to the MCP server.
func (s *Server) registerTools() error {
	if err := s.registerSearchSchema(); err != nil {
		return fmt.Errorf("registering search_schema: %w", err)
	}
	if err := s.registerAsk(); err != nil {
		return fmt.Errorf("registering ask: %w", err)
	}
	return nil
}
