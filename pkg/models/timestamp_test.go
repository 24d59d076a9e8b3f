package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ekaya-inc/hfrl-gateway/pkg/apperrors"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-05-01T10:30:00Z", time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-05-01T10:30:00+02:00", time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)},
		{"2024-05-01T10:30:00.250", time.Date(2024, 5, 1, 10, 30, 0, 250_000_000, time.Local)},
		{"2024-05-01T10:30:00", time.Date(2024, 5, 1, 10, 30, 0, 0, time.Local)},
		{"2024-05-01T10:30", time.Date(2024, 5, 1, 10, 30, 0, 0, time.Local)},
		{"2024-05-01 10:30:00", time.Date(2024, 5, 1, 10, 30, 0, 0, time.Local)},
		{"2024-05-01", time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)},
		{"  2024-05-01  ", time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	for _, input := range []string{"", "yesterday", "01/05/2024", "2024-13-01"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseTimestamp(input)
			if !errors.Is(err, apperrors.ErrInvalidRequest) {
				t.Errorf("ParseTimestamp(%q) error = %v, want ErrInvalidRequest", input, err)
			}
		})
	}
}

func TestNewAnalyticsFilter(t *testing.T) {
	start := "2024-05-01"
	blank := ""

	filter, err := NewAnalyticsFilter(&start, &blank, ProviderOpenAI, "gpt-4o")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter.StartDate == nil || !filter.StartDate.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)) {
		t.Errorf("StartDate = %v", filter.StartDate)
	}
	if filter.EndDate != nil {
		t.Errorf("expected blank end date to be absent, got %v", filter.EndDate)
	}
	if filter.Provider != ProviderOpenAI || filter.Model != "gpt-4o" {
		t.Errorf("provider/model not carried: %+v", filter)
	}
}

func TestNewAnalyticsFilter_Errors(t *testing.T) {
	bad := "not-a-date"

	if _, err := NewAnalyticsFilter(nil, nil, Provider("mistral"), ""); !errors.Is(err, apperrors.ErrInvalidRequest) {
		t.Errorf("unknown provider: got %v", err)
	}

	_, err := NewAnalyticsFilter(&bad, nil, "", "")
	if !errors.Is(err, apperrors.ErrInvalidRequest) {
		t.Fatalf("bad start date: got %v", err)
	}
	if got := err.Error(); !strings.HasPrefix(got, "start_date:") {
		t.Errorf("error should name the field, got %q", got)
	}

	_, err = NewAnalyticsFilter(nil, &bad, "", "")
	if !errors.Is(err, apperrors.ErrInvalidRequest) {
		t.Fatalf("bad end date: got %v", err)
	}
}

func TestGenerationRequest_Validate(t *testing.T) {
	valid := func() *GenerationRequest {
		r := NewGenerationRequest()
		r.Prompt = "hello"
		r.Provider = ProviderAnthropic
		r.Model = "claude-3-5-sonnet-20241022"
		return r
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(r *GenerationRequest)
	}{
		{"empty prompt", func(r *GenerationRequest) { r.Prompt = "" }},
		{"unknown provider", func(r *GenerationRequest) { r.Provider = "mistral" }},
		{"empty model", func(r *GenerationRequest) { r.Model = "" }},
		{"negative temperature", func(r *GenerationRequest) { r.Temperature = -0.1 }},
		{"temperature above 2", func(r *GenerationRequest) { r.Temperature = 2.01 }},
		{"max tokens above limit", func(r *GenerationRequest) { r.MaxTokens = MaxGenerationTokens + 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.mutate(r)
			if err := r.Validate(); !errors.Is(err, apperrors.ErrInvalidRequest) {
				t.Errorf("Validate() = %v, want ErrInvalidRequest", err)
			}
		})
	}
}

func TestFeedbackCreate_Validate(t *testing.T) {
	tooLong := make([]byte, MaxSessionIDLength+1)
	for i := range tooLong {
		tooLong[i] = 'a'
	}
	lr := 1.5

	tests := []struct {
		name    string
		draft   FeedbackCreate
		wantErr bool
	}{
		{"minimal", FeedbackCreate{Rating: 1}, false},
		{"max rating", FeedbackCreate{Rating: 5, SessionID: "s1"}, false},
		{"zero rating", FeedbackCreate{Rating: 0}, true},
		{"rating six", FeedbackCreate{Rating: 6}, true},
		{"long session", FeedbackCreate{Rating: 3, SessionID: string(tooLong)}, true},
		{"learning rate", FeedbackCreate{Rating: 3, LearningRate: &lr}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if tt.wantErr != (err != nil) {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
