package llm

import (
	"context"
	"net/http"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/ekaya-inc/hfrl-gateway/pkg/models"
)

// anthropicClient speaks the Anthropic messages API.
type anthropicClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAnthropicClient creates the Anthropic adapter.
func NewAnthropicClient(baseURL string, httpClient *http.Client) ProviderClient {
	return &anthropicClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *anthropicClient) Generate(ctx context.Context, req *models.GenerationRequest, apiKey string) (*models.GenerationResponse, error) {
	opts := []anthropic.ClientOption{anthropic.WithBaseURL(c.baseURL)}
	if c.httpClient != nil {
		opts = append(opts, anthropic.WithHTTPClient(c.httpClient))
	}
	client := anthropic.NewClient(apiKey, opts...)

	temperature := float32(req.Temperature)
	resp, err := client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(req.Model),
		System:      req.SystemPrompt,
		MaxTokens:   req.MaxTokens,
		Temperature: &temperature,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(req.Prompt),
		},
	})
	if err != nil {
		return nil, ClassifyError(models.ProviderAnthropic, err)
	}

	content, ok := firstText(resp)
	if !ok {
		return nil, &Error{Provider: models.ProviderAnthropic, Type: ErrorTypeUnknown, Message: "response contained no text content"}
	}

	out := models.NewGenerationResponse(content, req.Model, models.ProviderAnthropic)
	if resp.StopReason != "" {
		reason := string(resp.StopReason)
		out.FinishReason = &reason
	}
	total := resp.Usage.InputTokens + resp.Usage.OutputTokens
	out.TokensUsed = &total
	return out, nil
}

func firstText(resp anthropic.MessagesResponse) (string, bool) {
	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != nil {
			return *block.Text, true
		}
	}
	return "", false
}
