package llm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"
	"github.com/sashabaranov/go-openai"

	"github.com/ekaya-inc/hfrl-gateway/pkg/apperrors"
	"github.com/ekaya-inc/hfrl-gateway/pkg/models"
)

// ErrorType classifies a provider failure.
type ErrorType string

const (
	ErrorTypeEndpoint  ErrorType = "endpoint"
	ErrorTypeAuth      ErrorType = "auth"
	ErrorTypeModel     ErrorType = "model"
	ErrorTypeRateLimit ErrorType = "rate_limit"
	ErrorTypeUnknown   ErrorType = "unknown"
)

// Error is a classified failure reported by, or on the way to, a provider.
// errors.Is(err, apperrors.ErrProviderAPI) holds for every *Error.
type Error struct {
	Provider   models.Provider
	Type       ErrorType
	Message    string // provider-supplied message
	StatusCode int    // HTTP status if known
	Cause      error
}

// Error renders "<Provider> API error: <message>".
func (e *Error) Error() string {
	return fmt.Sprintf("%s API error: %s", e.Provider.Label(), e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports provider errors as apperrors.ErrProviderAPI.
func (e *Error) Is(target error) bool {
	return target == apperrors.ErrProviderAPI
}

// ClassifyError wraps a downstream failure into an *Error for provider.
func ClassifyError(provider models.Provider, err error) *Error {
	if err == nil {
		return nil
	}

	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr
	}

	out := &Error{Provider: provider, Message: err.Error(), Cause: err}

	var oaiAPIErr *openai.APIError
	var oaiReqErr *openai.RequestError
	var antAPIErr *anthropic.APIError
	var antReqErr *anthropic.RequestError
	switch {
	case errors.As(err, &oaiAPIErr):
		out.Message = oaiAPIErr.Message
		out.StatusCode = oaiAPIErr.HTTPStatusCode
	case errors.As(err, &oaiReqErr):
		out.StatusCode = oaiReqErr.HTTPStatusCode
	case errors.As(err, &antAPIErr):
		out.Message = antAPIErr.Message
	case errors.As(err, &antReqErr):
		out.StatusCode = antReqErr.StatusCode
	}

	out.Type = classify(out.StatusCode, err.Error())
	return out
}

func classify(status int, errStr string) ErrorType {
	lower := strings.ToLower(errStr)

	switch {
	case status == 401 || status == 403 ||
		strings.Contains(lower, "unauthorized") || strings.Contains(lower, "invalid api key") ||
		strings.Contains(lower, "authentication"):
		return ErrorTypeAuth
	case strings.Contains(lower, "model") && (strings.Contains(lower, "not found") ||
		strings.Contains(lower, "does not exist")):
		return ErrorTypeModel
	case status == 429 || strings.Contains(lower, "rate limit"):
		return ErrorTypeRateLimit
	case status == 404 || status >= 500 ||
		strings.Contains(lower, "connection refused") || strings.Contains(lower, "no such host") ||
		strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline exceeded"):
		return ErrorTypeEndpoint
	}
	return ErrorTypeUnknown
}

// GetErrorType extracts the ErrorType from an error.
func GetErrorType(err error) ErrorType {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Type
	}
	return ErrorTypeUnknown
}
