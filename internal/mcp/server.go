// ABOUTME: MCP server setup for the fitness stats snapshot.
// ABOUTME: Wraps the MCP server around the stats service.
package mcp

import (
	"context"
	"errors"

	"github.com/harperreed/fitness/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// StatsService reads and updates the stats snapshot.
type StatsService interface {
	Current(ctx context.Context) (*models.StatsSnapshot, error)
	SimulateUpdate(ctx context.Context) (*models.StatsSnapshot, error)
}

// Server wraps the MCP server with stats access.
type Server struct {
	mcpServer *mcp.Server
	stats     StatsService
}

// NewServer creates a new MCP server over the given stats service.
func NewServer(stats StatsService) (*Server, error) {
	if stats == nil {
		return nil, errors.New("mcp server: stats service is required")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fitness",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		stats:     stats,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
