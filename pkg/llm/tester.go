package llm

import (
	"context"

	"go.uber.org/zap"

	"github.com/ekaya-inc/hfrl-gateway/pkg/logging"
	"github.com/ekaya-inc/hfrl-gateway/pkg/models"
)

const (
	ConnectionSuccessMessage = "Connection successful"
	ConnectionFailedMessage  = "Connection failed"

	probePrompt    = "Hello"
	probeMaxTokens = 10
)

// TestConnection sends a tiny prompt to the provider's default model using
// exactly apiKey. Stored and configured keys are not consulted.
func (d *dispatcher) TestConnection(ctx context.Context, provider models.Provider, apiKey string) (bool, string) {
	ok := d.probe(ctx, provider, apiKey)
	d.metrics.ObserveConnectionTest(string(provider), ok)
	if ok {
		return true, ConnectionSuccessMessage
	}
	return false, ConnectionFailedMessage
}

func (d *dispatcher) probe(ctx context.Context, provider models.Provider, apiKey string) bool {
	client, ok := d.clients[provider]
	if !ok {
		d.logger.Debug("Connection test for unknown provider", zap.String("provider", string(provider)))
		return false
	}
	if apiKey == "" {
		d.logger.Debug("Connection test without API key", zap.String("provider", string(provider)))
		return false
	}

	req := &models.GenerationRequest{
		Prompt:      probePrompt,
		Provider:    provider,
		Model:       d.catalog.DefaultModel(provider),
		Temperature: models.DefaultTemperature,
		MaxTokens:   probeMaxTokens,
	}

	if _, err := client.Generate(ctx, req, apiKey); err != nil {
		d.logger.Info("Connection test failed",
			zap.String("provider", string(provider)),
			zap.String("error", logging.SanitizeError(err)))
		return false
	}
	return true
}
