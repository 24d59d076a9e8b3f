package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ekaya-inc/hfrl-gateway/pkg/models"
)

type listProvidersResult struct {
	Providers []models.ProviderInfo `json:"providers"`
}

// RegisterProviderTools adds list_providers and generate.
func RegisterProviderTools(s *server.MCPServer, deps *Deps) {
	registerListProvidersTool(s, deps)
	registerGenerateTool(s, deps)
}

func registerListProvidersTool(s *server.MCPServer, deps *Deps) {
	tool := mcp.NewTool(
		"list_providers",
		mcp.WithDescription("Lists the supported LLM providers and their models"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(listProvidersResult{Providers: deps.Dispatcher.Providers()})
	})
}

func registerGenerateTool(s *server.MCPServer, deps *Deps) {
	providerIDs := make([]string, len(models.AllProviders))
	for i, p := range models.AllProviders {
		providerIDs[i] = string(p)
	}

	tool := mcp.NewTool(
		"generate",
		mcp.WithDescription("Generates text with the chosen provider and model"),
		mcp.WithString(
			"prompt",
			mcp.Required(),
			mcp.Description("User prompt"),
		),
		mcp.WithString(
			"provider",
			mcp.Required(),
			mcp.Enum(providerIDs...),
			mcp.Description("Provider to dispatch to"),
		),
		mcp.WithString(
			"model",
			mcp.Required(),
			mcp.Description("Provider model name, e.g. gpt-4 or claude-3-haiku-20240307"),
		),
		mcp.WithNumber(
			"temperature",
			mcp.Description("Sampling temperature between 0.0 and 2.0 (default 0.7)"),
		),
		mcp.WithNumber(
			"max_tokens",
			mcp.Description("Maximum tokens to generate (default 1000)"),
		),
		mcp.WithString(
			"system_prompt",
			mcp.Description("Optional system prompt"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		prompt, err := req.RequireString("prompt")
		if err != nil {
			return nil, err
		}
		provider, err := req.RequireString("provider")
		if err != nil {
			return nil, err
		}
		model, err := req.RequireString("model")
		if err != nil {
			return nil, err
		}

		genReq := models.NewGenerationRequest()
		genReq.Prompt = prompt
		genReq.Provider = models.Provider(trimString(provider))
		genReq.Model = trimString(model)
		if temperature, ok := getOptionalFloat(req, "temperature"); ok {
			genReq.Temperature = temperature
		}
		if hasArgument(req, "max_tokens") {
			maxTokens, ok := getOptionalInt(req, "max_tokens")
			if !ok {
				return NewErrorResult("invalid_parameters", "parameter 'max_tokens' must be a whole number"), nil
			}
			genReq.MaxTokens = maxTokens
		}
		genReq.SystemPrompt = getOptionalString(req, "system_prompt")

		if err := genReq.Validate(); err != nil {
			return serviceErrorResult(err), nil
		}

		resp, err := deps.Dispatcher.Generate(ctx, genReq, "")
		if err != nil {
			if result := serviceErrorResult(err); result != nil {
				return result, nil
			}
			deps.Logger.Error("generate tool failed", zap.Error(err))
			return nil, fmt.Errorf("generate: %w", err)
		}

		return jsonResult(resp)
	})
}
