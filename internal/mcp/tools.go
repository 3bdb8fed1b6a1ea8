// ABOUTME: MCP tool implementations for fitness stats.
// ABOUTME: Reads the current snapshot, projects dashboards, and triggers simulated updates.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/fitness/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// get_current_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_current_stats",
		Description: "Get the current fitness snapshot (steps, calories, active minutes, sleep, heart rate, weight)",
	}, s.handleGetCurrentStats)

	// get_dashboard
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_dashboard",
		Description: "Get one of the four dashboard views of the current snapshot",
	}, s.handleGetDashboard)

	// simulate_update
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "simulate_update",
		Description: "Randomize steps, calories, active minutes and heart rate to simulate new activity",
	}, s.handleSimulateUpdate)
}

// Tool input/output types

type emptyInput struct{}

type statsOutput struct {
	Stats   *models.StatsSnapshot `json:"stats"`
	Message string                `json:"message"`
}

type getDashboardInput struct {
	Number int `json:"number" jsonschema:"Dashboard number from 1 to 4"`
}

type dashboardOutput struct {
	Number int           `json:"number"`
	Title  string        `json:"title"`
	Layout string        `json:"layout"`
	Tiles  []models.Tile `json:"tiles"`
}

// Tool handlers

func (s *Server) handleGetCurrentStats(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, statsOutput, error) {
	snap, err := s.stats.Current(ctx)
	if err != nil {
		return nil, statsOutput{}, fmt.Errorf("failed to get stats: %w", err)
	}

	return nil, statsOutput{
		Stats:   snap,
		Message: summarize(snap),
	}, nil
}

func (s *Server) handleGetDashboard(ctx context.Context, req *mcp.CallToolRequest, input getDashboardInput) (*mcp.CallToolResult, dashboardOutput, error) {
	d, ok := models.GetDashboard(input.Number)
	if !ok {
		return nil, dashboardOutput{}, fmt.Errorf("unknown dashboard: %d (valid: 1-%d)", input.Number, len(models.Dashboards))
	}

	snap, err := s.stats.Current(ctx)
	if err != nil {
		return nil, dashboardOutput{}, fmt.Errorf("failed to get stats: %w", err)
	}

	return nil, projectDashboard(d, snap), nil
}

func (s *Server) handleSimulateUpdate(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, statsOutput, error) {
	snap, err := s.stats.SimulateUpdate(ctx)
	if err != nil {
		return nil, statsOutput{}, fmt.Errorf("failed to simulate update: %w", err)
	}

	return nil, statsOutput{
		Stats:   snap,
		Message: "Data Updated! " + summarize(snap),
	}, nil
}

func projectDashboard(d models.Dashboard, snap *models.StatsSnapshot) dashboardOutput {
	return dashboardOutput{
		Number: d.Number,
		Title:  d.Title,
		Layout: d.Layout,
		Tiles:  d.Project(*snap),
	}
}

func summarize(snap *models.StatsSnapshot) string {
	return fmt.Sprintf("%d steps, %d kcal, %d active min, sleep %s, %d bpm, %d lbs",
		snap.Steps, snap.Calories, snap.ActiveMinutes, snap.Sleep, snap.HeartRate, snap.Weight)
}
