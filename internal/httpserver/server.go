package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/davidbz/chargeflow/internal/config"
	"github.com/davidbz/chargeflow/internal/httpserver/middleware"
	"github.com/davidbz/chargeflow/internal/observability"
)

// Server represents the HTTP server.
type Server struct {
	config        *config.ServerConfig
	metricsConfig *config.MetricsConfig
	metrics       *observability.Metrics
	handler       *Handler
	middlewares   middleware.Middleware
	srv           *http.Server
}

// NewServer creates a new HTTP server.
func NewServer(
	cfg *config.ServerConfig,
	metricsCfg *config.MetricsConfig,
	metrics *observability.Metrics,
	handler *Handler,
	middlewares middleware.Middleware,
) *Server {
	s := &Server{
		config:        cfg,
		metricsConfig: metricsCfg,
		metrics:       metrics,
		handler:       handler,
		middlewares:   middlewares,
	}

	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Routes(),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}

	return s
}

// Routes returns the mux wrapped in the middleware chain.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handler.HandleHealth)

	mux.HandleFunc("POST /v1/charges/validate", s.handler.HandleValidate)
	mux.HandleFunc("POST /v1/charges/compute", s.handler.HandleCompute)
	mux.HandleFunc("POST /v1/charges", s.handler.HandleCreateCharge)
	mux.HandleFunc("GET /v1/charges", s.handler.HandleListCharges)
	mux.HandleFunc("GET /v1/charges/{id}", s.handler.HandleGetCharge)
	mux.HandleFunc("PUT /v1/charges/{id}", s.handler.HandleUpdateCharge)
	mux.HandleFunc("DELETE /v1/charges/{id}", s.handler.HandleDeleteCharge)
	mux.HandleFunc("POST /v1/charges/{id}/compute", s.handler.HandleComputeCharge)
	mux.HandleFunc("POST /v1/invoices/preview", s.handler.HandlePreviewInvoice)

	if s.metricsConfig != nil && s.metricsConfig.Enabled {
		mux.Handle("GET "+s.metricsConfig.Path, s.metrics.Handler())
	}

	if s.middlewares == nil {
		return mux
	}
	return s.middlewares(mux)
}

// Start starts the HTTP server. It blocks until the server stops.
func (s *Server) Start() error {
	observability.FromContext(context.Background()).Info("starting HTTP server",
		observability.Int("port", s.config.Port))

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	observability.FromContext(ctx).Info("shutting down HTTP server")

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
