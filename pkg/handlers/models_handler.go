package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ekaya-inc/hfrl-gateway/pkg/llm"
	"github.com/ekaya-inc/hfrl-gateway/pkg/models"
)

// APIKeyHeader optionally overrides the stored key for one generation call.
const APIKeyHeader = "X-API-Key"

// ProvidersResponse for GET /models/providers
type ProvidersResponse struct {
	Providers []models.ProviderInfo `json:"providers"`
}

// ModelsHandler handles generation, connection tests and the provider catalog.
type ModelsHandler struct {
	dispatcher llm.Dispatcher
	logger     *zap.Logger
}

// NewModelsHandler creates a new models handler.
func NewModelsHandler(dispatcher llm.Dispatcher, logger *zap.Logger) *ModelsHandler {
	return &ModelsHandler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterRoutes registers the models handler's routes under prefix.
func (h *ModelsHandler) RegisterRoutes(mux *http.ServeMux, prefix string) {
	base := prefix + "/models"

	mux.HandleFunc("POST "+base+"/generate", h.Generate)
	mux.HandleFunc("POST "+base+"/test-connection", h.TestConnection)
	mux.HandleFunc("GET "+base+"/providers", h.Providers)
}

// Generate handles POST /models/generate
func (h *ModelsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	req := models.NewGenerationRequest()
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeBadRequest(w, h.logger, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, "Invalid generation request", err)
		return
	}

	resp, err := h.dispatcher.Generate(r.Context(), req, r.Header.Get(APIKeyHeader))
	if err != nil {
		writeServiceError(w, h.logger, "Generation failed", err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, resp); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// TestConnection handles POST /models/test-connection. A failed probe is
// reported in the body with status 200.
func (h *ModelsHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	var req models.ConnectionTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, h.logger, "Invalid request body")
		return
	}
	if !req.Provider.IsValid() {
		writeBadRequest(w, h.logger, "unsupported provider: "+string(req.Provider))
		return
	}

	ok, message := h.dispatcher.TestConnection(r.Context(), req.Provider, req.APIKey)

	response := models.ConnectionTestResponse{
		Success:  ok,
		Message:  message,
		Provider: req.Provider,
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Providers handles GET /models/providers
func (h *ModelsHandler) Providers(w http.ResponseWriter, r *http.Request) {
	if err := WriteJSON(w, http.StatusOK, ProvidersResponse{Providers: h.dispatcher.Providers()}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
