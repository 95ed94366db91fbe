// ABOUTME: MCP resource implementations for the gym tracker.
// ABOUTME: Provides gym://dashboard, gym://recent, and gym://records resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/gym/internal/db"
	"github.com/harperreed/gym/internal/stats"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	dashboardURI = "gym://dashboard"
	recentURI    = "gym://recent"
	recordsURI   = "gym://records"

	recentWorkoutLimit = 10
)

func (s *Server) registerResources() {
	// gym://dashboard - home screen numbers plus 30-day totals
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         dashboardURI,
		Name:        "Gym Dashboard",
		Description: "Last session, weekly sessions, cycle progress, streak and 30-day totals",
		MIMEType:    "application/json",
	}, s.handleDashboardResource)

	// gym://recent - last 10 finished workouts
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentURI,
		Name:        "Recent Workouts",
		Description: "Last 10 finished workouts with program and day names",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// gym://records - best record per exercise
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recordsURI,
		Name:        "Personal Records",
		Description: "Best estimated one-rep max per exercise",
		MIMEType:    "application/json",
	}, s.handleRecordsResource)
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

// Resource handlers

func (s *Server) handleDashboardResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	dash, err := stats.GetDashboardStats(ctx, s.db)
	if err != nil {
		return nil, err
	}

	days := stats.DefaultDistributionDays
	volume, err := stats.GetTotalStrengthVolume(ctx, s.db, days)
	if err != nil {
		return nil, err
	}
	strength, err := stats.GetStrengthWorkoutCount(ctx, s.db, days)
	if err != nil {
		return nil, err
	}
	cardio, err := stats.GetCardioWorkoutCount(ctx, s.db, days)
	if err != nil {
		return nil, err
	}
	cardioSeconds, err := stats.GetTotalCardioDuration(ctx, s.db, days)
	if err != nil {
		return nil, err
	}

	return jsonResource(dashboardURI, map[string]any{
		"generated_at": time.Now().Format(time.RFC3339),
		"dashboard":    dash,
		"last_30_days": map[string]any{
			"strength_volume":   volume,
			"strength_workouts": strength,
			"cardio_workouts":   cardio,
			"cardio_minutes":    cardioSeconds / 60,
		},
	})
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts, err := db.GetRecentWorkouts(ctx, s.db, recentWorkoutLimit)
	if err != nil {
		return nil, err
	}
	inProgress, err := db.GetInProgressWorkout(ctx, s.db)
	if err != nil {
		return nil, err
	}

	return jsonResource(recentURI, map[string]any{
		"in_progress": inProgress,
		"workouts":    workouts,
		"count":       len(workouts),
	})
}

func (s *Server) handleRecordsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	records, err := stats.GetAllPRs(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return jsonResource(recordsURI, map[string]any{
		"records": records,
		"count":   len(records),
	})
}
