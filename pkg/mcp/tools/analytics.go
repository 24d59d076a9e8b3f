package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ekaya-inc/hfrl-gateway/pkg/models"
)

// RegisterAnalyticsTools adds feedback_analytics.
func RegisterAnalyticsTools(s *server.MCPServer, deps *Deps) {
	tool := mcp.NewTool(
		"feedback_analytics",
		mcp.WithDescription("Summarizes collected feedback: totals, average quality, improvement rate, daily quality and rating distribution"),
		mcp.WithString(
			"start_date",
			mcp.Description("Inclusive lower bound, RFC 3339 or YYYY-MM-DD"),
		),
		mcp.WithString(
			"end_date",
			mcp.Description("Inclusive upper bound, RFC 3339 or YYYY-MM-DD"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := getOptionalString(req, "start_date")
		end := getOptionalString(req, "end_date")

		filter, err := models.NewAnalyticsFilter(&start, &end, "", "")
		if err != nil {
			return serviceErrorResult(err), nil
		}

		summary, err := deps.AnalyticsService.GetAnalytics(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("feedback analytics: %w", err)
		}
		return jsonResult(summary)
	})
}
