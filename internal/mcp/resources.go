// ABOUTME: MCP resource implementations for fitness stats.
// ABOUTME: Provides fitness://stats/current and fitness://dashboards resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/fitness/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	currentStatsURI = "fitness://stats/current"
	dashboardsURI   = "fitness://dashboards"
)

func (s *Server) registerResources() {
	// fitness://stats/current - the snapshot every dashboard reads
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         currentStatsURI,
		Name:        "Current Fitness Stats",
		Description: "The most recent fitness snapshot",
		MIMEType:    "application/json",
	}, s.handleCurrentStatsResource)

	// fitness://dashboards - all four dashboard projections
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         dashboardsURI,
		Name:        "Fitness Dashboards",
		Description: "Every dashboard view of the current snapshot",
		MIMEType:    "application/json",
	}, s.handleDashboardsResource)
}

// Resource handlers

func (s *Server) handleCurrentStatsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	snap, err := s.stats.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return jsonResource(currentStatsURI, snap)
}

func (s *Server) handleDashboardsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	snap, err := s.stats.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	dashboards := make([]dashboardOutput, 0, len(models.Dashboards))
	for _, d := range models.Dashboards {
		dashboards = append(dashboards, projectDashboard(d, snap))
	}
	return jsonResource(dashboardsURI, dashboards)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
