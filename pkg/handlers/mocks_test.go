package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ekaya-inc/hfrl-gateway/pkg/models"
	"github.com/ekaya-inc/hfrl-gateway/pkg/services"
)

const testPrefix = "/api/v1"

// mockFeedbackService implements services.FeedbackService for handler tests.
// Unset funcs fall through to the embedded interface and panic.
type mockFeedbackService struct {
	services.FeedbackService

	createFunc        func(ctx context.Context, draft *models.FeedbackCreate) (*models.FeedbackRecord, error)
	getFunc           func(ctx context.Context, id string) (*models.FeedbackRecord, error)
	listFunc          func(ctx context.Context, limit, offset int) ([]*models.FeedbackRecord, error)
	listBySessionFunc func(ctx context.Context, sessionID string) ([]*models.FeedbackRecord, error)
	deleteFunc        func(ctx context.Context, id string) (bool, error)
	averageFunc       func(ctx context.Context, sessionID string) (float64, error)
}

func (m *mockFeedbackService) Create(ctx context.Context, draft *models.FeedbackCreate) (*models.FeedbackRecord, error) {
	return m.createFunc(ctx, draft)
}

func (m *mockFeedbackService) Get(ctx context.Context, id string) (*models.FeedbackRecord, error) {
	return m.getFunc(ctx, id)
}

func (m *mockFeedbackService) List(ctx context.Context, limit, offset int) ([]*models.FeedbackRecord, error) {
	return m.listFunc(ctx, limit, offset)
}

func (m *mockFeedbackService) ListBySession(ctx context.Context, sessionID string) ([]*models.FeedbackRecord, error) {
	return m.listBySessionFunc(ctx, sessionID)
}

func (m *mockFeedbackService) Delete(ctx context.Context, id string) (bool, error) {
	return m.deleteFunc(ctx, id)
}

func (m *mockFeedbackService) AverageRating(ctx context.Context, sessionID string) (float64, error) {
	return m.averageFunc(ctx, sessionID)
}

// mockAnalyticsService records the filter it was called with.
type mockAnalyticsService struct {
	summary *models.AnalyticsSummary
	err     error
	filter  *models.AnalyticsFilter
	calls   int
}

func (m *mockAnalyticsService) GetAnalytics(ctx context.Context, filter *models.AnalyticsFilter) (*models.AnalyticsSummary, error) {
	m.calls++
	m.filter = filter
	if m.err != nil {
		return nil, m.err
	}
	if m.summary != nil {
		return m.summary, nil
	}
	return &models.AnalyticsSummary{FeedbackDistribution: map[string]int{}}, nil
}

// routeRegistrar is satisfied by every resource handler.
type routeRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, prefix string)
}

func newTestMux(handlers ...routeRegistrar) *http.ServeMux {
	mux := http.NewServeMux()
	for _, h := range handlers {
		h.RegisterRoutes(mux, testPrefix)
	}
	return mux
}

// doRequest serves one request through mux. A non-nil body is JSON-encoded
// unless it is already a string.
func doRequest(t *testing.T, mux http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), "body: %s", rec.Body.String())
	return v
}

func strPtr(s string) *string { return &s }
