package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type healthResult struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Providers int    `json:"providers"`
}

// RegisterHealthTool adds a health check tool to the MCP server.
// The tool returns the server status, version and number of providers.
func RegisterHealthTool(s *server.MCPServer, version string, deps *Deps) {
	tool := mcp.NewTool(
		"health",
		mcp.WithDescription("Returns server health status and version"),
		mcp.WithReadOnlyHintAnnotation(true),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		providers := 0
		if deps != nil && deps.Dispatcher != nil {
			providers = len(deps.Dispatcher.Providers())
		}
		result, err := jsonResult(healthResult{Status: "ok", Version: version, Providers: providers})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal health result: %w", err)
		}
		return result, nil
	})
}
