// Package llm dispatches generation requests to upstream LLM providers.
package llm

import (
	"context"

	"github.com/ekaya-inc/hfrl-gateway/pkg/models"
)

// ProviderClient is one provider protocol adapter. It translates a canonical
// request into the provider's wire format and the reply back.
type ProviderClient interface {
	Generate(ctx context.Context, req *models.GenerationRequest, apiKey string) (*models.GenerationResponse, error)
}

// KeyProvider returns API keys stored at runtime (for example via the
// settings endpoint). This interface breaks the import cycle between llm and
// services. The services.SettingsService implements it.
type KeyProvider interface {
	APIKey(provider models.Provider) string
}

// Dispatcher routes generation requests to the right provider adapter.
// Use this interface for dependency injection and testing.
type Dispatcher interface {
	// Generate resolves the API key and calls the provider. overrideKey, when
	// non-empty, takes precedence over stored and configured keys.
	Generate(ctx context.Context, req *models.GenerationRequest, overrideKey string) (*models.GenerationResponse, error)

	// TestConnection issues a minimal generation with apiKey. It never
	// returns an error; any failure is reported as false.
	TestConnection(ctx context.Context, provider models.Provider, apiKey string) (bool, string)

	// Providers returns the static provider catalog.
	Providers() []models.ProviderInfo
}
