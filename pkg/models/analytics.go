package models

import "time"

// AnalyticsFilter narrows the feedback set the summary is computed over.
// Provider and Model are accepted but do not affect the result.
type AnalyticsFilter struct {
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Provider  Provider   `json:"provider,omitempty"`
	Model     string     `json:"model,omitempty"`
}

// QualityPoint is the average rating for one calendar day.
type QualityPoint struct {
	Date           string  `json:"date"`
	AverageQuality float64 `json:"average_quality"`
	Count          int     `json:"count"`
}

// AnalyticsSummary holds the aggregate feedback statistics.
type AnalyticsSummary struct {
	TotalSessions        int            `json:"total_sessions"`
	AverageQuality       float64        `json:"average_quality"`
	TotalFeedback        int            `json:"total_feedback"`
	ImprovementRate      *float64       `json:"improvement_rate"`
	ResponseTimes        []float64      `json:"response_times"`
	QualityOverTime      []QualityPoint `json:"quality_over_time"`
	FeedbackDistribution map[string]int `json:"feedback_distribution"`
}
