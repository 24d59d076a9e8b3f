package handlers

import (
	"encoding/json"
	"math"
	"net/http"

	"go.uber.org/zap"

	"github.com/ekaya-inc/hfrl-gateway/pkg/models"
	"github.com/ekaya-inc/hfrl-gateway/pkg/services"
)

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// FeedbackHandler handles feedback CRUD HTTP requests.
type FeedbackHandler struct {
	feedbackService services.FeedbackService
	logger          *zap.Logger
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(feedbackService services.FeedbackService, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		logger:          logger,
	}
}

// RegisterRoutes registers the feedback handler's routes under prefix.
func (h *FeedbackHandler) RegisterRoutes(mux *http.ServeMux, prefix string) {
	base := prefix + "/feedback"

	mux.HandleFunc("POST "+base, h.Create)
	mux.HandleFunc("GET "+base, h.List)
	mux.HandleFunc("GET "+base+"/{id}", h.Get)
	mux.HandleFunc("DELETE "+base+"/{id}", h.Delete)
	mux.HandleFunc("GET "+base+"/session/{sid}/average", h.SessionAverage)
}

// Create handles POST /feedback
func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft models.FeedbackCreate
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeBadRequest(w, h.logger, "Invalid request body")
		return
	}

	record, err := h.feedbackService.Create(r.Context(), &draft)
	if err != nil {
		writeServiceError(w, h.logger, "Failed to create feedback", err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, record); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /feedback/{id}
func (h *FeedbackHandler) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.feedbackService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, "Failed to get feedback", err)
		return
	}
	if record == nil {
		writeNotFound(w, h.logger, "Feedback not found")
		return
	}

	if err := WriteJSON(w, http.StatusOK, record); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// List handles GET /feedback?session_id=&limit=&offset=
// With session_id the whole session is returned and paging is ignored.
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, ok := ParseIntQuery(w, r, "limit", models.DefaultFeedbackPageSize, 1, models.MaxFeedbackPageSize, h.logger)
	if !ok {
		return
	}
	offset, ok := ParseIntQuery(w, r, "offset", 0, 0, math.MaxInt32, h.logger)
	if !ok {
		return
	}

	var (
		records []*models.FeedbackRecord
		err     error
	)
	if sessionID := r.URL.Query().Get("session_id"); sessionID != "" {
		records, err = h.feedbackService.ListBySession(r.Context(), sessionID)
	} else {
		records, err = h.feedbackService.List(r.Context(), limit, offset)
	}
	if err != nil {
		writeServiceError(w, h.logger, "Failed to list feedback", err)
		return
	}

	if records == nil {
		records = []*models.FeedbackRecord{}
	}
	if err := WriteJSON(w, http.StatusOK, records); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /feedback/{id}
func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.feedbackService.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, "Failed to delete feedback", err)
		return
	}
	if !deleted {
		writeNotFound(w, h.logger, "Feedback not found")
		return
	}

	if err := WriteJSON(w, http.StatusOK, MessageResponse{Message: "Feedback deleted successfully"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// SessionAverage handles GET /feedback/session/{sid}/average
func (h *FeedbackHandler) SessionAverage(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sid")

	avg, err := h.feedbackService.AverageRating(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, h.logger, "Failed to compute session average", err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, models.SessionAverage{SessionID: sessionID, AverageRating: avg}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
