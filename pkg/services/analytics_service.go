package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"

	"github.com/ekaya-inc/hfrl-gateway/pkg/models"
	"github.com/ekaya-inc/hfrl-gateway/pkg/repositories"
)

const dateLayout = "2006-01-02"

// AnalyticsService computes summary statistics over collected feedback.
type AnalyticsService interface {
	// GetAnalytics summarizes feedback in the filter's date range.
	// Provider and model filters are accepted but not applied.
	GetAnalytics(ctx context.Context, filter *models.AnalyticsFilter) (*models.AnalyticsSummary, error)
}

type analyticsService struct {
	repo   repositories.FeedbackRepository
	logger *zap.Logger
}

// NewAnalyticsService creates an analytics service reading from repo.
func NewAnalyticsService(repo repositories.FeedbackRepository, logger *zap.Logger) AnalyticsService {
	return &analyticsService{
		repo:   repo,
		logger: logger.Named("analytics"),
	}
}

func (s *analyticsService) GetAnalytics(ctx context.Context, filter *models.AnalyticsFilter) (*models.AnalyticsSummary, error) {
	if filter == nil {
		filter = &models.AnalyticsFilter{}
	}

	all, err := s.repo.List(ctx, MaxAggregateRecords, 0)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}

	if filter.Provider != "" || filter.Model != "" {
		s.logger.Debug("Provider/model analytics filters are not applied",
			zap.String("provider", string(filter.Provider)),
			zap.String("model", filter.Model))
	}

	filtered := filterByDate(all, filter)

	sessions := make(map[string]struct{})
	for _, r := range filtered {
		if r.SessionID != "" {
			sessions[r.SessionID] = struct{}{}
		}
	}

	return &models.AnalyticsSummary{
		TotalSessions:        len(sessions),
		AverageQuality:       round2(meanRating(filtered)),
		TotalFeedback:        len(filtered),
		ImprovementRate:      improvementRate(filtered),
		ResponseTimes:        nil,
		QualityOverTime:      qualityOverTime(filtered),
		FeedbackDistribution: feedbackDistribution(filtered),
	}, nil
}

// filterByDate keeps records with start <= timestamp <= end; nil bounds are open.
func filterByDate(records []*models.FeedbackRecord, filter *models.AnalyticsFilter) []*models.FeedbackRecord {
	filtered := make([]*models.FeedbackRecord, 0, len(records))
	for _, r := range records {
		if filter.StartDate != nil && r.Timestamp.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && r.Timestamp.After(*filter.EndDate) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// improvementRate is the percentage change from the chronologically first
// rating to the last one. Nil with fewer than two records.
func improvementRate(records []*models.FeedbackRecord) *float64 {
	if len(records) < 2 {
		return nil
	}

	// Records arrive newest first; reversing before the stable sort keeps
	// equal timestamps in insertion order.
	chronological := make([]*models.FeedbackRecord, len(records))
	for i, r := range records {
		chronological[len(records)-1-i] = r
	}
	sort.SliceStable(chronological, func(i, j int) bool {
		return chronological[i].Timestamp.Before(chronological[j].Timestamp)
	})

	first := float64(chronological[0].Rating)
	last := float64(chronological[len(chronological)-1].Rating)
	if first == 0 {
		return nil
	}

	rate := round2((last - first) / first * 100)
	return &rate
}

// qualityOverTime groups ratings by calendar day, ascending.
func qualityOverTime(records []*models.FeedbackRecord) []models.QualityPoint {
	if len(records) == 0 {
		return []models.QualityPoint{}
	}

	byDate := make(map[string][]*models.FeedbackRecord)
	for _, r := range records {
		key := r.Timestamp.Format(dateLayout)
		byDate[key] = append(byDate[key], r)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	points := make([]models.QualityPoint, 0, len(dates))
	for _, d := range dates {
		points = append(points, models.QualityPoint{
			Date:           d,
			AverageQuality: meanRating(byDate[d]),
			Count:          len(byDate[d]),
		})
	}
	return points
}

// feedbackDistribution counts ratings 1..5; anything else is ignored.
func feedbackDistribution(records []*models.FeedbackRecord) map[string]int {
	dist := make(map[string]int, models.MaxRating)
	for rating := models.MinRating; rating <= models.MaxRating; rating++ {
		dist[strconv.Itoa(rating)] = 0
	}
	for _, r := range records {
		key := strconv.Itoa(r.Rating)
		if _, ok := dist[key]; ok {
			dist[key]++
		}
	}
	return dist
}

func round2(v float64) float64 {
	rounded, err := stats.Round(v, 2)
	if err != nil {
		return v
	}
	return rounded
}

var _ AnalyticsService = (*analyticsService)(nil)
