package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/history"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetWorkoutStats = mcp.NewTool("get_workout_stats",
	mcp.WithDescription("Aggregate statistics over the full workout history: total workouts, total and average minutes, most frequent workout, current and longest streak, rolling this-week and this-month counts."),
)

var toolGetWorkoutHistory = mcp.NewTool("get_workout_history",
	mcp.WithDescription("List completed workout records, newest last. Each record includes per-exercise target and completed sets, reps and weights."),
	mcp.WithNumber("limit", mcp.Description("Return only the most recent N records. Defaults to all.")),
)

var toolGetExerciseProgress = mcp.NewTool("get_exercise_progress",
	mcp.WithDescription("Per-exercise progression across all history: chronological weight observations, max and last weight, occurrence count and percentage improvement. Sorted by occurrence count."),
	mcp.WithString("exercise", mcp.Description("Filter by exercise name (partial match, e.g. 'bench press')")),
)

var toolGetWeeklyView = mcp.NewTool("get_weekly_view",
	mcp.WithDescription("Sunday-start seven-day grid for a given week offset: per-day workouts, window totals and the current streak."),
	mcp.WithNumber("offset", mcp.Description("Week offset from the current week (0 = this week, -1 = last week). Defaults to 0.")),
)

var toolListTemplates = mcp.NewTool("list_templates",
	mcp.WithDescription("List all workout templates with their exercises and targets."),
)

// --- Tool handlers ---

func (h *handlers) getWorkoutStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats := history.ComputeStats(h.hist.Load(ctx), time.Now())

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records := h.hist.Load(ctx)

	limit := req.GetInt("limit", 0)
	if limit > 0 && limit < len(records) {
		records = records[len(records)-limit:]
	}

	result, err := mcp.NewToolResultJSON(records)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	progress := history.ComputeExerciseProgress(h.hist.Load(ctx))

	if filter := req.GetString("exercise", ""); filter != "" {
		needle := strings.ToLower(filter)
		filtered := progress[:0]
		for _, p := range progress {
			if strings.Contains(strings.ToLower(p.Name), needle) {
				filtered = append(filtered, p)
			}
		}
		progress = filtered
	}

	result, err := mcp.NewToolResultJSON(progress)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWeeklyView(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	offset := req.GetInt("offset", 0)
	week := history.ComputeWeeklyView(h.hist.Load(ctx), offset, time.Now())

	result, err := mcp.NewToolResultJSON(week)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listTemplates(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(h.repo.List(ctx))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
