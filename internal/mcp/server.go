package mcp

import (
	"context"

	"rafflesim/internal/config"
	"rafflesim/internal/runlog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// Server wires the simulation engine into an MCP stdio server.
type Server struct {
	cfg   *config.AppConfig
	store *runlog.Store
}

// NewServer creates a new MCP server.
func NewServer(cfg *config.AppConfig) *Server {
	return &Server{
		cfg:   cfg,
		store: runlog.NewStore(cfg.CacheDir),
	}
}

// Start registers the tool set and serves the Stdio loop until the context
// is canceled or the client disconnects.
func (s *Server) Start(ctx context.Context) error {
	impl := &mcp.Implementation{
		Name:    "rafflesim",
		Version: "0.1.0",
	}
	server := mcp.NewServer(impl, nil)

	s.registerSimulationTools(server)
	s.registerAnalysisTools(server)

	log.Info().Msg("MCP Server starting Stdio loop")
	return server.Run(ctx, &mcp.StdioTransport{})
}
