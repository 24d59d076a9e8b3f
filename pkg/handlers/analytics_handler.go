package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/ekaya-inc/hfrl-gateway/pkg/models"
	"github.com/ekaya-inc/hfrl-gateway/pkg/services"
)

// AnalyticsRequest for POST /analytics. Dates accept RFC 3339 or a naive
// local timestamp such as 2024-05-01T00:00:00.
type AnalyticsRequest struct {
	StartDate *string         `json:"start_date,omitempty"`
	EndDate   *string         `json:"end_date,omitempty"`
	Provider  models.Provider `json:"provider,omitempty"`
	Model     string          `json:"model,omitempty"`
}

// AnalyticsHandler serves feedback analytics.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
	logger           *zap.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(analyticsService services.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// RegisterRoutes registers the analytics handler's routes under prefix.
func (h *AnalyticsHandler) RegisterRoutes(mux *http.ServeMux, prefix string) {
	base := prefix + "/analytics"

	mux.HandleFunc("POST "+base, h.Query)
	mux.HandleFunc("GET "+base, h.Get)
}

// Query handles POST /analytics with the filter in the body.
// An empty body means no filter.
func (h *AnalyticsHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req AnalyticsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, h.logger, "Invalid request body")
		return
	}

	filter, err := req.toFilter()
	if err != nil {
		writeServiceError(w, h.logger, "Invalid analytics filter", err)
		return
	}

	h.respond(w, r, filter)
}

// Get handles GET /analytics?start_date=&end_date=&provider=&model=
func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end := q.Get("start_date"), q.Get("end_date")
	req := AnalyticsRequest{
		StartDate: &start,
		EndDate:   &end,
		Provider:  models.Provider(q.Get("provider")),
		Model:     q.Get("model"),
	}

	filter, err := req.toFilter()
	if err != nil {
		writeServiceError(w, h.logger, "Invalid analytics filter", err)
		return
	}

	h.respond(w, r, filter)
}

func (h *AnalyticsHandler) respond(w http.ResponseWriter, r *http.Request, filter *models.AnalyticsFilter) {
	summary, err := h.analyticsService.GetAnalytics(r.Context(), filter)
	if err != nil {
		writeServiceError(w, h.logger, "Failed to compute analytics", err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, summary); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (req *AnalyticsRequest) toFilter() (*models.AnalyticsFilter, error) {
	return models.NewAnalyticsFilter(req.StartDate, req.EndDate, req.Provider, req.Model)
}
