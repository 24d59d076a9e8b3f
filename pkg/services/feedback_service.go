package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"go.uber.org/zap"

	"github.com/ekaya-inc/hfrl-gateway/pkg/apperrors"
	"github.com/ekaya-inc/hfrl-gateway/pkg/metrics"
	"github.com/ekaya-inc/hfrl-gateway/pkg/models"
	"github.com/ekaya-inc/hfrl-gateway/pkg/repositories"
)

// MaxAggregateRecords caps how many records average and analytics
// computations read.
const MaxAggregateRecords = 10000

// FeedbackService defines the interface for feedback operations.
type FeedbackService interface {
	// Create validates the draft, fills defaults and stores a new record.
	Create(ctx context.Context, draft *models.FeedbackCreate) (*models.FeedbackRecord, error)

	// Get returns a record by ID. Returns nil, nil if it does not exist.
	Get(ctx context.Context, id string) (*models.FeedbackRecord, error)

	// ListBySession returns every record of a session, newest first.
	ListBySession(ctx context.Context, sessionID string) ([]*models.FeedbackRecord, error)

	// List returns a page of records, newest first.
	List(ctx context.Context, limit, offset int) ([]*models.FeedbackRecord, error)

	// Delete removes a record. Returns false if it did not exist.
	Delete(ctx context.Context, id string) (bool, error)

	// AverageRating returns the mean rating of a session, or of all records
	// (up to MaxAggregateRecords) when sessionID is empty. Returns 0 for an
	// empty set.
	AverageRating(ctx context.Context, sessionID string) (float64, error)
}

type feedbackService struct {
	repo    repositories.FeedbackRepository
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewFeedbackService creates a new feedback service with dependencies.
// metrics may be nil.
func NewFeedbackService(
	repo repositories.FeedbackRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) FeedbackService {
	return &feedbackService{
		repo:    repo,
		metrics: m,
		logger:  logger.Named("feedback"),
		now:     time.Now,
	}
}

func (s *feedbackService) Create(ctx context.Context, draft *models.FeedbackCreate) (*models.FeedbackRecord, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	sessionID := draft.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	inline := draft.InlineFeedback
	if inline == nil {
		inline = []map[string]any{}
	}

	// Zero counts as unset, matching clients that send 0 for "default".
	learningRate := models.DefaultLearningRate
	if draft.LearningRate != nil && *draft.LearningRate != 0 {
		learningRate = *draft.LearningRate
	}

	now := s.now()
	record := &models.FeedbackRecord{
		ID:             uuid.NewString(),
		SessionID:      sessionID,
		Rating:         draft.Rating,
		Comments:       draft.Comments,
		ResponseID:     draft.ResponseID,
		InlineFeedback: inline,
		LearningRate:   learningRate,
		Timestamp:      now,
		CreatedAt:      now,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("store feedback: %w", err)
	}

	s.metrics.ObserveFeedback(strconv.Itoa(record.Rating))
	s.logger.Debug("Feedback created",
		zap.String("feedback_id", record.ID),
		zap.String("session_id", record.SessionID),
		zap.Int("rating", record.Rating))

	return record, nil
}

func (s *feedbackService) Get(ctx context.Context, id string) (*models.FeedbackRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *feedbackService) ListBySession(ctx context.Context, sessionID string) ([]*models.FeedbackRecord, error) {
	return s.repo.ListBySession(ctx, sessionID)
}

func (s *feedbackService) List(ctx context.Context, limit, offset int) ([]*models.FeedbackRecord, error) {
	if limit < 1 || limit > models.MaxFeedbackPageSize {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", apperrors.ErrInvalidRequest, models.MaxFeedbackPageSize)
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must be non-negative", apperrors.ErrInvalidRequest)
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *feedbackService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Debug("Feedback deleted", zap.String("feedback_id", id))
	}
	return deleted, nil
}

func (s *feedbackService) AverageRating(ctx context.Context, sessionID string) (float64, error) {
	var (
		records []*models.FeedbackRecord
		err     error
	)
	if sessionID != "" {
		records, err = s.repo.ListBySession(ctx, sessionID)
	} else {
		records, err = s.repo.List(ctx, MaxAggregateRecords, 0)
	}
	if err != nil {
		return 0, err
	}

	return meanRating(records), nil
}

// meanRating returns the arithmetic mean of the ratings, 0 when empty.
func meanRating(records []*models.FeedbackRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	ratings := make(stats.Float64Data, len(records))
	for i, r := range records {
		ratings[i] = float64(r.Rating)
	}
	mean, err := stats.Mean(ratings)
	if err != nil {
		return 0
	}
	return mean
}

var _ FeedbackService = (*feedbackService)(nil)
