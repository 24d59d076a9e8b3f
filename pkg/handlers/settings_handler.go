package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ekaya-inc/hfrl-gateway/pkg/models"
	"github.com/ekaya-inc/hfrl-gateway/pkg/services"
)

// SettingsHandler serves UI settings and accepts provider keys.
type SettingsHandler struct {
	settingsService services.SettingsService
	logger          *zap.Logger
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(settingsService services.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// RegisterRoutes registers the settings handler's routes under prefix.
func (h *SettingsHandler) RegisterRoutes(mux *http.ServeMux, prefix string) {
	base := prefix + "/settings"

	mux.HandleFunc("GET "+base, h.Get)
	mux.HandleFunc("PUT "+base, h.Update)
}

// Get handles GET /settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if err := WriteJSON(w, http.StatusOK, h.settingsService.Get(r.Context())); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /settings
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.SettingsUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeBadRequest(w, h.logger, "Invalid request body")
		return
	}

	settings := h.settingsService.Update(r.Context(), &patch)

	if err := WriteJSON(w, http.StatusOK, settings); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
