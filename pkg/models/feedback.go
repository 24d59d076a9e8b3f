package models

import "time"

// Rating and length bounds match the validate tags on FeedbackCreate.
const (
	MinRating = 1
	MaxRating = 5

	MaxSessionIDLength     = 100
	MaxResponseIDLength    = 100
	MaxCommentsLength      = 5000
	MaxInlineFeedbackItems = 100
)

const (
	DefaultLearningRate = 0.001

	DefaultFeedbackPageSize = 100
	MaxFeedbackPageSize     = 1000
)

// FeedbackCreate is the client-supplied draft of a feedback record.
// Empty SessionID means "assign one".
type FeedbackCreate struct {
	SessionID      string           `json:"session_id,omitempty" validate:"max=100"`
	Rating         int              `json:"rating" validate:"min=1,max=5"`
	Comments       *string          `json:"comments,omitempty" validate:"omitempty,max=5000"`
	ResponseID     *string          `json:"response_id,omitempty" validate:"omitempty,max=100"`
	InlineFeedback []map[string]any `json:"inline_feedback,omitempty" validate:"max=100"`
	LearningRate   *float64         `json:"learning_rate,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// Validate checks field bounds. Errors wrap apperrors.ErrInvalidRequest.
func (f *FeedbackCreate) Validate() error {
	return validateStruct(f)
}

// FeedbackRecord is a stored rating of a generated output.
// Records are immutable once created.
type FeedbackRecord struct {
	ID             string           `json:"id"`
	SessionID      string           `json:"session_id"`
	Rating         int              `json:"rating"`
	Comments       *string          `json:"comments"`
	ResponseID     *string          `json:"response_id"`
	InlineFeedback []map[string]any `json:"inline_feedback"`
	LearningRate   float64          `json:"learning_rate"`
	Timestamp      time.Time        `json:"timestamp"`
	CreatedAt      time.Time        `json:"created_at"`
}

// SessionAverage is the mean rating of one session.
type SessionAverage struct {
	SessionID     string  `json:"session_id"`
	AverageRating float64 `json:"average_rating"`
}
