package models

import (
	"fmt"
	"strings"
	"time"
)

// timestampLayouts are accepted for date filters. Layouts without a zone
// are read in local time, matching how record timestamps are taken.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a timestamp in any of the accepted layouts.
// Errors wrap apperrors.ErrInvalidRequest.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, invalid("invalid datetime %q", value)
}

// ParseOptionalTimestamp parses an optional timestamp. Nil or blank yields nil.
func ParseOptionalTimestamp(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := ParseTimestamp(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// NewAnalyticsFilter builds a filter from raw inputs. Empty strings are
// treated as absent.
func NewAnalyticsFilter(startDate, endDate *string, provider Provider, model string) (*AnalyticsFilter, error) {
	if provider != "" && !provider.IsValid() {
		return nil, invalid("unsupported provider: %s", provider)
	}
	start, err := ParseOptionalTimestamp(startDate)
	if err != nil {
		return nil, fmt.Errorf("start_date: %w", err)
	}
	end, err := ParseOptionalTimestamp(endDate)
	if err != nil {
		return nil, fmt.Errorf("end_date: %w", err)
	}
	return &AnalyticsFilter{
		StartDate: start,
		EndDate:   end,
		Provider:  provider,
		Model:     model,
	}, nil
}
