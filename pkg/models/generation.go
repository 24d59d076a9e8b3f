package models

import (
	"fmt"
	"time"

	"github.com/ekaya-inc/hfrl-gateway/pkg/apperrors"
)

// Bounds enforced by the validate tags on GenerationRequest.
const (
	MaxPromptLength       = 50000
	MaxSystemPromptLength = 10000
	MaxModelNameLength    = 100
	MaxGenerationTokens   = 32000
)

const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
)

// GenerationRequest is the provider-agnostic request for a single completion.
type GenerationRequest struct {
	Prompt       string   `json:"prompt" validate:"min=1,max=50000"`
	Provider     Provider `json:"provider" validate:"provider"`
	Model        string   `json:"model" validate:"min=1,max=100"`
	Temperature  float64  `json:"temperature" validate:"gte=0,lte=2"`
	MaxTokens    int      `json:"max_tokens" validate:"min=1,max=32000"`
	SystemPrompt string   `json:"system_prompt,omitempty" validate:"max=10000"`
}

// NewGenerationRequest returns a request pre-filled with the defaults that
// apply when a client omits temperature or max_tokens.
func NewGenerationRequest() *GenerationRequest {
	return &GenerationRequest{
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
}

// Validate checks field bounds. Errors wrap apperrors.ErrInvalidRequest.
func (r *GenerationRequest) Validate() error {
	return validateStruct(r)
}

// GenerationResponse is the normalized reply from any provider.
type GenerationResponse struct {
	Content      string    `json:"content"`
	Model        string    `json:"model"`
	Provider     Provider  `json:"provider"`
	TokensUsed   *int      `json:"tokens_used"`
	FinishReason *string   `json:"finish_reason"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewGenerationResponse creates a response stamped with the current time.
func NewGenerationResponse(content, model string, provider Provider) *GenerationResponse {
	return &GenerationResponse{
		Content:   content,
		Model:     model,
		Provider:  provider,
		Timestamp: time.Now(),
	}
}

// ConnectionTestRequest is the body of a provider connectivity probe.
type ConnectionTestRequest struct {
	Provider Provider `json:"provider"`
	APIKey   string   `json:"api_key"`
}

// ConnectionTestResponse reports the outcome of a probe. A failed probe is
// still a successful HTTP response.
type ConnectionTestResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	Provider Provider `json:"provider"`
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", apperrors.ErrInvalidRequest, fmt.Sprintf(format, args...))
}
