package middleware

import (
	"net/http"
	"time"

	"github.com/davidbz/chargeflow/internal/observability"
)

const unmatchedRoute = "unmatched"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Metrics counts requests by route pattern and logs their completion. It must
// sit directly in front of the ServeMux so the matched pattern is visible.
func Metrics(metrics *observability.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := r.Pattern
			if route == "" {
				route = unmatchedRoute
			}
			metrics.RecordHTTPRequest(r.Method, route, rec.status)

			observability.FromContext(r.Context()).Info("request completed",
				observability.String("route", route),
				observability.Int("status", rec.status),
				observability.Duration("elapsed", time.Since(start)),
			)
		})
	}
}
