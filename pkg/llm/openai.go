package llm

import (
	"context"
	"math"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ekaya-inc/hfrl-gateway/pkg/models"
)

// openAICompatClient speaks the OpenAI chat completions protocol. OpenAI,
// Deepseek and Kimi share it and differ only in base URL.
type openAICompatClient struct {
	provider   models.Provider
	baseURL    string
	httpClient *http.Client
}

// NewOpenAICompatClient creates an adapter for an OpenAI-compatible provider.
func NewOpenAICompatClient(provider models.Provider, baseURL string, httpClient *http.Client) ProviderClient {
	return &openAICompatClient{
		provider:   provider,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *openAICompatClient) Generate(ctx context.Context, req *models.GenerationRequest, apiKey string) (*models.GenerationResponse, error) {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = c.baseURL
	if c.httpClient != nil {
		config.HTTPClient = c.httpClient
	}
	client := openai.NewClientWithConfig(config)

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	// go-openai omits a zero temperature from the request body, which leaves
	// the provider on its own default.
	temperature := float32(req.Temperature)
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, ClassifyError(c.provider, err)
	}
	if len(resp.Choices) == 0 {
		return nil, &Error{Provider: c.provider, Type: ErrorTypeUnknown, Message: "response contained no choices"}
	}

	choice := resp.Choices[0]
	out := models.NewGenerationResponse(choice.Message.Content, req.Model, c.provider)
	if choice.FinishReason != "" {
		reason := string(choice.FinishReason)
		out.FinishReason = &reason
	}
	if resp.Usage.TotalTokens > 0 {
		total := resp.Usage.TotalTokens
		out.TokensUsed = &total
	}
	return out, nil
}
