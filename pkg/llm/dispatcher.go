package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ekaya-inc/hfrl-gateway/pkg/apperrors"
	"github.com/ekaya-inc/hfrl-gateway/pkg/logging"
	"github.com/ekaya-inc/hfrl-gateway/pkg/metrics"
	"github.com/ekaya-inc/hfrl-gateway/pkg/models"
)

// ProviderDefaults are the server-level settings for one provider.
type ProviderDefaults struct {
	APIKey  string // last fallback in key resolution
	BaseURL string // overrides the catalog URL when set
}

// DispatcherConfig configures NewDispatcher.
type DispatcherConfig struct {
	// Timeout bounds every provider call.
	Timeout time.Duration
	// Defaults holds per-provider server defaults. Missing entries are empty.
	Defaults map[models.Provider]ProviderDefaults
}

type dispatcher struct {
	catalog  *Catalog
	clients  map[models.Provider]ProviderClient
	defaults map[models.Provider]ProviderDefaults
	keys     KeyProvider
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewDispatcher creates a dispatcher with one adapter per catalog provider.
// keys and m may be nil.
func NewDispatcher(cfg DispatcherConfig, catalog *Catalog, keys KeyProvider, m *metrics.Metrics, logger *zap.Logger) Dispatcher {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	baseURL := func(p models.Provider) string {
		if u := cfg.Defaults[p].BaseURL; u != "" {
			return u
		}
		return catalog.BaseURL(p)
	}

	clients := map[models.Provider]ProviderClient{
		models.ProviderOpenAI:    NewOpenAICompatClient(models.ProviderOpenAI, baseURL(models.ProviderOpenAI), httpClient),
		models.ProviderAnthropic: NewAnthropicClient(baseURL(models.ProviderAnthropic), httpClient),
		models.ProviderDeepseek:  NewOpenAICompatClient(models.ProviderDeepseek, baseURL(models.ProviderDeepseek), httpClient),
		models.ProviderKimi:      NewOpenAICompatClient(models.ProviderKimi, baseURL(models.ProviderKimi), httpClient),
	}

	return newDispatcherWithClients(clients, cfg.Defaults, catalog, keys, m, logger)
}

func newDispatcherWithClients(
	clients map[models.Provider]ProviderClient,
	defaults map[models.Provider]ProviderDefaults,
	catalog *Catalog,
	keys KeyProvider,
	m *metrics.Metrics,
	logger *zap.Logger,
) *dispatcher {
	return &dispatcher{
		catalog:  catalog,
		clients:  clients,
		defaults: defaults,
		keys:     keys,
		metrics:  m,
		logger:   logger.Named("llm"),
	}
}

// resolveKey applies override, then stored, then configured default.
func (d *dispatcher) resolveKey(provider models.Provider, overrideKey string) string {
	if overrideKey != "" {
		return overrideKey
	}
	if d.keys != nil {
		if k := d.keys.APIKey(provider); k != "" {
			return k
		}
	}
	return d.defaults[provider].APIKey
}

func (d *dispatcher) Generate(ctx context.Context, req *models.GenerationRequest, overrideKey string) (*models.GenerationResponse, error) {
	client, ok := d.clients[req.Provider]
	if !ok {
		d.metrics.ObserveGeneration(string(req.Provider), metrics.OutcomeInvalid, 0)
		return nil, fmt.Errorf("%w: unsupported provider: %s", apperrors.ErrInvalidRequest, req.Provider)
	}

	apiKey := d.resolveKey(req.Provider, overrideKey)
	if apiKey == "" {
		d.metrics.ObserveGeneration(string(req.Provider), metrics.OutcomeNotConfigured, 0)
		return nil, fmt.Errorf("%w: API key for %s is not configured", apperrors.ErrNotConfigured, req.Provider)
	}

	d.logger.Debug("Dispatching generation",
		zap.String("provider", string(req.Provider)),
		zap.String("model", req.Model),
		zap.String("prompt", logging.SanitizePrompt(req.Prompt)))

	start := time.Now()
	resp, err := client.Generate(ctx, req, apiKey)
	elapsed := time.Since(start)

	if err != nil {
		d.metrics.ObserveGeneration(string(req.Provider), metrics.OutcomeProviderError, elapsed)
		d.logger.Warn("Provider call failed",
			zap.String("provider", string(req.Provider)),
			zap.String("model", req.Model),
			zap.String("error_type", string(GetErrorType(err))),
			zap.Duration("elapsed", elapsed),
			zap.String("error", logging.SanitizeError(err)))

		var llmErr *Error
		if !errors.As(err, &llmErr) {
			err = ClassifyError(req.Provider, err)
		}
		return nil, err
	}

	d.metrics.ObserveGeneration(string(req.Provider), metrics.OutcomeSuccess, elapsed)
	d.logger.Debug("Provider call succeeded",
		zap.String("provider", string(req.Provider)),
		zap.Duration("elapsed", elapsed))

	return resp, nil
}

func (d *dispatcher) Providers() []models.ProviderInfo {
	return d.catalog.Providers()
}

var _ Dispatcher = (*dispatcher)(nil)
