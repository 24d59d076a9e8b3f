package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ekaya-inc/hfrl-gateway/pkg/models"
	"github.com/ekaya-inc/hfrl-gateway/pkg/services"
)

func TestSettingsHandler_GetDefaults(t *testing.T) {
	mux := newTestMux(NewSettingsHandler(services.NewSettingsService(nil, zap.NewNop()), zap.NewNop()))

	rec := doRequest(t, mux, http.MethodGet, testPrefix+"/settings", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	settings := decodeBody[models.Settings](t, rec)
	assert.Equal(t, models.DefaultTheme, settings.Theme)
	assert.Equal(t, models.DefaultPrimaryColor, settings.PrimaryColor)
	assert.Equal(t, models.DefaultSecondaryColor, settings.SecondaryColor)
	assert.Equal(t, map[models.Provider]bool{
		models.ProviderOpenAI:    false,
		models.ProviderAnthropic: false,
		models.ProviderDeepseek:  false,
		models.ProviderKimi:      false,
	}, settings.ProvidersConfigured)
}

func TestSettingsHandler_UpdateStoresKeyWithoutEchoingIt(t *testing.T) {
	svc := services.NewSettingsService(nil, zap.NewNop())
	mux := newTestMux(NewSettingsHandler(svc, zap.NewNop()))

	rec := doRequest(t, mux, http.MethodPut, testPrefix+"/settings", map[string]any{
		"openai_api_key": "sk-secret-value",
		"theme":          "dark",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "sk-secret-value")

	settings := decodeBody[models.Settings](t, rec)
	assert.Equal(t, "dark", settings.Theme)
	assert.Equal(t, models.DefaultPrimaryColor, settings.PrimaryColor)
	assert.True(t, settings.ProvidersConfigured[models.ProviderOpenAI])
	assert.False(t, settings.ProvidersConfigured[models.ProviderKimi])

	assert.Equal(t, "sk-secret-value", svc.APIKey(models.ProviderOpenAI))

	rec = doRequest(t, mux, http.MethodGet, testPrefix+"/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dark", decodeBody[models.Settings](t, rec).Theme)
}

func TestSettingsHandler_UpdateInvalidBody(t *testing.T) {
	mux := newTestMux(NewSettingsHandler(services.NewSettingsService(nil, zap.NewNop()), zap.NewNop()))

	rec := doRequest(t, mux, http.MethodPut, testPrefix+"/settings", `not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
