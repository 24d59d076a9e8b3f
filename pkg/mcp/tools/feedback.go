package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ekaya-inc/hfrl-gateway/pkg/models"
)

// RegisterFeedbackTools adds submit_feedback, get_feedback and session_average.
func RegisterFeedbackTools(s *server.MCPServer, deps *Deps) {
	registerSubmitFeedbackTool(s, deps)
	registerGetFeedbackTool(s, deps)
	registerSessionAverageTool(s, deps)
}

func registerSubmitFeedbackTool(s *server.MCPServer, deps *Deps) {
	tool := mcp.NewTool(
		"submit_feedback",
		mcp.WithDescription("Records a 1-5 rating for a generated response"),
		mcp.WithNumber(
			"rating",
			mcp.Required(),
			mcp.Description("Rating from 1 (worst) to 5 (best)"),
		),
		mcp.WithString(
			"session_id",
			mcp.Description("Session to group the rating under; generated when omitted"),
		),
		mcp.WithString(
			"comments",
			mcp.Description("Optional free-text comments"),
		),
		mcp.WithString(
			"response_id",
			mcp.Description("Optional identifier of the rated response"),
		),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rating, ok := getOptionalInt(req, "rating")
		if !ok {
			return NewErrorResult("invalid_parameters", "parameter 'rating' must be a whole number"), nil
		}

		draft := &models.FeedbackCreate{
			SessionID: trimString(getOptionalString(req, "session_id")),
			Rating:    rating,
		}
		if c := getOptionalString(req, "comments"); c != "" {
			draft.Comments = &c
		}
		if id := trimString(getOptionalString(req, "response_id")); id != "" {
			draft.ResponseID = &id
		}

		record, err := deps.FeedbackService.Create(ctx, draft)
		if err != nil {
			if result := serviceErrorResult(err); result != nil {
				return result, nil
			}
			return nil, fmt.Errorf("submit feedback: %w", err)
		}
		return jsonResult(record)
	})
}

func registerGetFeedbackTool(s *server.MCPServer, deps *Deps) {
	tool := mcp.NewTool(
		"get_feedback",
		mcp.WithDescription("Returns one feedback record by ID"),
		mcp.WithString(
			"id",
			mcp.Required(),
			mcp.Description("Feedback record ID"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return nil, err
		}
		id = trimString(id)
		if id == "" {
			return NewErrorResult("invalid_parameters", "parameter 'id' cannot be empty"), nil
		}

		record, err := deps.FeedbackService.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get feedback: %w", err)
		}
		if record == nil {
			return NewErrorResult("not_found", fmt.Sprintf("feedback %q not found", id)), nil
		}
		return jsonResult(record)
	})
}

func registerSessionAverageTool(s *server.MCPServer, deps *Deps) {
	tool := mcp.NewTool(
		"session_average",
		mcp.WithDescription("Returns the mean rating of a session (0 when it has no feedback)"),
		mcp.WithString(
			"session_id",
			mcp.Required(),
			mcp.Description("Session ID"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessionID, err := req.RequireString("session_id")
		if err != nil {
			return nil, err
		}
		sessionID = trimString(sessionID)
		if sessionID == "" {
			return NewErrorResult("invalid_parameters", "parameter 'session_id' cannot be empty"), nil
		}

		avg, err := deps.FeedbackService.AverageRating(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("session average: %w", err)
		}
		return jsonResult(models.SessionAverage{SessionID: sessionID, AverageRating: avg})
	})
}
