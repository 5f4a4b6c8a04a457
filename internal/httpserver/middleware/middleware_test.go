package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/chargeflow/internal/config"
	"github.com/davidbz/chargeflow/internal/httpserver/middleware"
	"github.com/davidbz/chargeflow/internal/observability"
)

func TestChain_Order(t *testing.T) {
	var order []string
	tag := func(name string) middleware.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := middleware.Chain(tag("first"), tag("second"))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestTrace(t *testing.T) {
	var seenRequestID string
	handler := middleware.Trace()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seenRequestID = observability.GetRequestID(r.Context())
	}))

	t.Run("should generate ids", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Len(t, w.Header().Get(middleware.HeaderTraceID), 32)
		require.NotEmpty(t, seenRequestID)
		require.Equal(t, seenRequestID, w.Header().Get(middleware.HeaderRequestID))
	})

	t.Run("should keep caller request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.HeaderRequestID, "caller-1")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		require.Equal(t, "caller-1", seenRequestID)
		require.Equal(t, "caller-1", w.Header().Get(middleware.HeaderRequestID))
	})
}

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	m, err := observability.NewMetrics()
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/charges/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	handler := middleware.Metrics(m)(mux)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/charges/abc", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	labels := map[string]string{}
	for _, family := range families {
		if family.GetName() != observability.MetricHTTPRequestsTotal {
			continue
		}
		for _, metric := range family.GetMetric() {
			var route, status string
			for _, pair := range metric.GetLabel() {
				switch pair.GetName() {
				case "path":
					route = pair.GetValue()
				case "status":
					status = pair.GetValue()
				}
			}
			labels[route] = status
		}
	}

	require.Equal(t, "404", labels["GET /v1/charges/{id}"])
	require.Equal(t, "404", labels["unmatched"])

	count, err := testutil.GatherAndCount(m.Registry(), observability.MetricHTTPRequestsTotal)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestCORS(t *testing.T) {
	handler := middleware.CORS(&config.CORSConfig{
		AllowedOrigins: []string{"https://billing.example.com"},
		AllowedMethods: []string{http.MethodPost},
	})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Origin", "https://billing.example.com")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, "https://billing.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	passthrough := middleware.CORS(nil)(http.NotFoundHandler())
	w = httptest.NewRecorder()
	passthrough.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecover(t *testing.T) {
	m, err := observability.NewMetrics()
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/charges/compute", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	handler := middleware.BuildMiddlewareChain(nil, m)(mux)

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/charges/compute", nil))
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	require.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	count, err := testutil.GatherAndCount(m.Registry(), observability.MetricHTTPRequestsTotal)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	t.Run("should re-raise aborted handlers", func(t *testing.T) {
		aborting := middleware.Recover()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(http.ErrAbortHandler)
		}))

		require.PanicsWithValue(t, http.ErrAbortHandler, func() {
			aborting.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})
}
