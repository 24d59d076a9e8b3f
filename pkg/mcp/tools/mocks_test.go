package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ekaya-inc/hfrl-gateway/pkg/llm"
	"github.com/ekaya-inc/hfrl-gateway/pkg/repositories"
	"github.com/ekaya-inc/hfrl-gateway/pkg/services"
)

// newTestDeps wires real in-memory services around a mock dispatcher.
func newTestDeps(dispatcher *llm.MockDispatcher) *Deps {
	repo := repositories.NewMemoryFeedbackRepository()
	logger := zap.NewNop()
	return &Deps{
		Dispatcher:       dispatcher,
		FeedbackService:  services.NewFeedbackService(repo, nil, logger),
		AnalyticsService: services.NewAnalyticsService(repo, logger),
		Logger:           logger,
	}
}

func newTestServer(deps *Deps) *server.MCPServer {
	s := server.NewMCPServer("test", "1.0.0", server.WithToolCapabilities(true))
	RegisterHealthTool(s, "1.2.3", deps)
	RegisterProviderTools(s, deps)
	RegisterFeedbackTools(s, deps)
	RegisterAnalyticsTools(s, deps)
	return s
}

// toolCallResponse is the decoded JSON-RPC reply to tools/call.
type toolCallResponse struct {
	Result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	} `json:"result"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// callTool invokes a tool through the JSON-RPC entry point.
func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) toolCallResponse {
	t.Helper()
	argBytes, err := json.Marshal(args)
	require.NoError(t, err)

	request := fmt.Sprintf(`{"jsonrpc":"2.0","method":"tools/call","params":{"name":%q,"arguments":%s},"id":1}`, name, argBytes)
	result := s.HandleMessage(context.Background(), []byte(request))

	resultBytes, err := json.Marshal(result)
	require.NoError(t, err)

	var response toolCallResponse
	require.NoError(t, json.Unmarshal(resultBytes, &response))
	return response
}

// decodeText unmarshals the first text content of a tool result into v.
func decodeText(t *testing.T, resp toolCallResponse, v any) {
	t.Helper()
	require.Nil(t, resp.Error, "unexpected protocol error")
	require.NotEmpty(t, resp.Result.Content)
	require.NoError(t, json.Unmarshal([]byte(resp.Result.Content[0].Text), v))
}
