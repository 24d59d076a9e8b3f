package llm

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"

	"github.com/ekaya-inc/hfrl-gateway/pkg/apperrors"
	"github.com/ekaya-inc/hfrl-gateway/pkg/models"
)

func TestError_Error_UsesProviderLabel(t *testing.T) {
	err := &Error{Provider: models.ProviderDeepseek, Message: "insufficient balance"}

	if got, want := err.Error(), "Deepseek API error: insufficient balance"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestError_IsProviderAPI(t *testing.T) {
	var err error = &Error{Provider: models.ProviderKimi, Message: "boom"}
	wrapped := fmt.Errorf("generate: %w", err)

	if !errors.Is(wrapped, apperrors.ErrProviderAPI) {
		t.Error("expected wrapped *Error to match ErrProviderAPI")
	}
	if errors.Is(wrapped, apperrors.ErrNotConfigured) {
		t.Error("*Error must not match ErrNotConfigured")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := ClassifyError(models.ProviderOpenAI, cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestClassifyError_Nil(t *testing.T) {
	if ClassifyError(models.ProviderOpenAI, nil) != nil {
		t.Error("expected nil for nil error")
	}
}

func TestClassifyError_PassesThroughExisting(t *testing.T) {
	orig := &Error{Provider: models.ProviderAnthropic, Type: ErrorTypeAuth, Message: "bad key"}

	got := ClassifyError(models.ProviderOpenAI, fmt.Errorf("wrap: %w", orig))
	if got != orig {
		t.Errorf("expected the original *Error, got %+v", got)
	}
}

func TestClassifyError_OpenAIAPIError(t *testing.T) {
	apiErr := &openai.APIError{HTTPStatusCode: 401, Message: "Incorrect API key provided"}

	got := ClassifyError(models.ProviderOpenAI, apiErr)
	if got.Type != ErrorTypeAuth {
		t.Errorf("Type = %q, want %q", got.Type, ErrorTypeAuth)
	}
	if got.StatusCode != 401 {
		t.Errorf("StatusCode = %d, want 401", got.StatusCode)
	}
	if got.Error() != "OpenAI API error: Incorrect API key provided" {
		t.Errorf("unexpected message: %s", got.Error())
	}
}

func TestClassifyError_Types(t *testing.T) {
	tests := []struct {
		msg  string
		want ErrorType
	}{
		{"401 Unauthorized", ErrorTypeAuth},
		{"invalid api key", ErrorTypeAuth},
		{"The model `gpt-9` does not exist", ErrorTypeModel},
		{"rate limit reached for requests", ErrorTypeRateLimit},
		{"dial tcp 127.0.0.1:1: connect: connection refused", ErrorTypeEndpoint},
		{"context deadline exceeded", ErrorTypeEndpoint},
		{"Client.Timeout exceeded while awaiting headers", ErrorTypeEndpoint},
		{"something odd", ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got := ClassifyError(models.ProviderOpenAI, errors.New(tt.msg))
			if got.Type != tt.want {
				t.Errorf("ClassifyError(%q).Type = %q, want %q", tt.msg, got.Type, tt.want)
			}
			if !strings.HasPrefix(got.Error(), "OpenAI API error: ") {
				t.Errorf("unexpected prefix: %s", got.Error())
			}
		})
	}
}

func TestGetErrorType(t *testing.T) {
	if got := GetErrorType(errors.New("plain")); got != ErrorTypeUnknown {
		t.Errorf("GetErrorType(plain) = %q", got)
	}
	err := fmt.Errorf("x: %w", &Error{Type: ErrorTypeRateLimit})
	if got := GetErrorType(err); got != ErrorTypeRateLimit {
		t.Errorf("GetErrorType(wrapped) = %q", got)
	}
}
