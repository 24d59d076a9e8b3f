package middleware

import (
	"net/http"
	"strconv"

	"github.com/ekaya-inc/hfrl-gateway/pkg/metrics"
)

// unmatchedRoute labels requests no mux pattern matched, keeping the label
// set bounded.
const unmatchedRoute = "unmatched"

// RequestMetrics returns middleware that counts requests by method, route
// pattern and status. It must wrap the ServeMux directly so the matched
// pattern is visible on the request afterwards. Nil metrics disables it.
func RequestMetrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := newStatusRecorder(w)

			next.ServeHTTP(wrapped, r)

			route := r.Pattern
			if route == "" {
				route = unmatchedRoute
			}
			m.ObserveHTTPRequest(r.Method, route, strconv.Itoa(wrapped.statusCode))
		})
	}
}
