package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/claude/liftlog/internal/history"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) statsSummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	records := h.hist.Load(ctx)
	now := time.Now()

	summary := map[string]any{
		"date":      now.Format("2006-01-02"),
		"stats":     history.ComputeStats(records, now),
		"this_week": history.ComputeWeeklyView(records, 0, now),
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
