package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metric names.
const (
	MetricValidationsTotal           = "chargeflow_validations_total"
	MetricComputationsTotal          = "chargeflow_computations_total"
	MetricComputationDurationSeconds = "chargeflow_computation_duration_seconds"
	MetricHTTPRequestsTotal          = "chargeflow_http_requests_total"
)

// Outcome label values.
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics holds the prometheus instruments of the service. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	validations  *prometheus.CounterVec
	computations *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	httpRequests *prometheus.CounterVec
}

// NewMetrics registers the instruments on a dedicated registry.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricValidationsTotal,
			Help: "Charge configuration validations by model and outcome.",
		}, []string{"model", "outcome"}),
		computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricComputationsTotal,
			Help: "Charge computations by model and outcome.",
		}, []string{"model", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricComputationDurationSeconds,
			Help:    "Charge computation latency.",
			Buckets: []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}, []string{"model"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricHTTPRequestsTotal,
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "path", "status"}),
	}

	for _, c := range []prometheus.Collector{
		m.validations,
		m.computations,
		m.duration,
		m.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// RecordValidation counts a validation.
func (m *Metrics) RecordValidation(model string, valid bool) {
	if m == nil {
		return
	}
	outcome := OutcomeValid
	if !valid {
		outcome = OutcomeInvalid
	}
	m.validations.WithLabelValues(model, outcome).Inc()
}

// RecordComputation counts a computation and observes its latency.
func (m *Metrics) RecordComputation(model string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.computations.WithLabelValues(model, outcome).Inc()
	m.duration.WithLabelValues(model).Observe(elapsed.Seconds())
}

// RecordHTTPRequest counts a served request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
