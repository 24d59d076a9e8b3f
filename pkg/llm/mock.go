package llm

import (
	"context"
	"sync"

	"github.com/ekaya-inc/hfrl-gateway/pkg/models"
)

// MockProviderClient is a configurable ProviderClient for tests.
type MockProviderClient struct {
	// GenerateFunc is called when Generate is invoked.
	// If nil, echoes the prompt back as content.
	GenerateFunc func(ctx context.Context, req *models.GenerationRequest, apiKey string) (*models.GenerationResponse, error)

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records one Generate invocation.
type MockCall struct {
	Request *models.GenerationRequest
	APIKey  string
}

// Generate implements ProviderClient.
func (m *MockProviderClient) Generate(ctx context.Context, req *models.GenerationRequest, apiKey string) (*models.GenerationResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Request: req, APIKey: apiKey})
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req, apiKey)
	}
	return models.NewGenerationResponse(req.Prompt, req.Model, req.Provider), nil
}

// Calls returns the recorded invocations.
func (m *MockProviderClient) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}

// MockDispatcher is a configurable Dispatcher for handler and tool tests.
type MockDispatcher struct {
	GenerateFunc       func(ctx context.Context, req *models.GenerationRequest, overrideKey string) (*models.GenerationResponse, error)
	TestConnectionFunc func(ctx context.Context, provider models.Provider, apiKey string) (bool, string)
	// ProviderList is returned by Providers. Defaults to the embedded catalog.
	ProviderList []models.ProviderInfo

	mu                  sync.Mutex
	generateCalls       int
	testConnectionCalls int
}

// Generate implements Dispatcher.
func (m *MockDispatcher) Generate(ctx context.Context, req *models.GenerationRequest, overrideKey string) (*models.GenerationResponse, error) {
	m.mu.Lock()
	m.generateCalls++
	m.mu.Unlock()
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req, overrideKey)
	}
	return models.NewGenerationResponse("mock response", req.Model, req.Provider), nil
}

// TestConnection implements Dispatcher.
func (m *MockDispatcher) TestConnection(ctx context.Context, provider models.Provider, apiKey string) (bool, string) {
	m.mu.Lock()
	m.testConnectionCalls++
	m.mu.Unlock()
	if m.TestConnectionFunc != nil {
		return m.TestConnectionFunc(ctx, provider, apiKey)
	}
	return true, ConnectionSuccessMessage
}

// GenerateCalls returns how many times Generate was invoked.
func (m *MockDispatcher) GenerateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generateCalls
}

// TestConnectionCalls returns how many times TestConnection was invoked.
func (m *MockDispatcher) TestConnectionCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.testConnectionCalls
}

// Providers implements Dispatcher.
func (m *MockDispatcher) Providers() []models.ProviderInfo {
	if m.ProviderList != nil {
		return m.ProviderList
	}
	return MustLoadCatalog().Providers()
}

var (
	_ ProviderClient = (*MockProviderClient)(nil)
	_ Dispatcher     = (*MockDispatcher)(nil)
)
