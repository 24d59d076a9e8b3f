// Package mcp exposes the gateway's operations over the Model Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ekaya-inc/hfrl-gateway/pkg/mcp/tools"
)

// Server wraps the mcp-go MCPServer with the gateway's tool set.
type Server struct {
	mcp    *server.MCPServer
	logger *zap.Logger
}

// NewServer creates an MCP server and registers every gateway tool.
func NewServer(name, version string, deps *tools.Deps, logger *zap.Logger) *Server {
	mcpServer := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
	)

	tools.RegisterHealthTool(mcpServer, version, deps)
	tools.RegisterProviderTools(mcpServer, deps)
	tools.RegisterFeedbackTools(mcpServer, deps)
	tools.RegisterAnalyticsTools(mcpServer, deps)

	logger.Debug("MCP server initialized", zap.String("name", name), zap.String("version", version))

	return &Server{
		mcp:    mcpServer,
		logger: logger,
	}
}

// MCP returns the underlying MCPServer.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// NewStreamableHTTPServer creates an HTTP transport server wrapping this MCP server.
// The HTTP mux handles routing to /mcp, so no endpoint path is configured here.
func (s *Server) NewStreamableHTTPServer() *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(
		s.mcp,
		server.WithStateLess(true),
	)
}
