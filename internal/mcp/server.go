// Package mcp exposes workout history and statistics to LLM clients via
// the Model Context Protocol.
package mcp

import (
	"log/slog"

	"github.com/claude/liftlog/internal/history"
	"github.com/claude/liftlog/internal/templates"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(hist *history.Service, repo *templates.Repository, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftLog workout tracker. Query workout templates, completed workout history, aggregate statistics, per-exercise progression and weekly summaries."),
	)

	h := &handlers{hist: hist, repo: repo, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetWorkoutStats, Handler: h.getWorkoutStats},
		server.ServerTool{Tool: toolGetWorkoutHistory, Handler: h.getWorkoutHistory},
		server.ServerTool{Tool: toolGetExerciseProgress, Handler: h.getExerciseProgress},
		server.ServerTool{Tool: toolGetWeeklyView, Handler: h.getWeeklyView},
		server.ServerTool{Tool: toolListTemplates, Handler: h.listTemplates},
	)

	s.AddResources(
		server.ServerResource{Resource: resStatsSummary, Handler: h.statsSummary},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	hist *history.Service
	repo *templates.Repository
	log  *slog.Logger
}

var resStatsSummary = mcp.NewResource(
	"liftlog://stats_summary",
	"Workout Statistics Summary",
	mcp.WithResourceDescription("Aggregate workout statistics: totals, streaks, most frequent workout, rolling week and month counts"),
	mcp.WithMIMEType("application/json"),
)
