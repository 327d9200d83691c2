package adminapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/racelabs/sentinel-connector/internal/metrics"
)

// Server is the connector's admin HTTP surface: /healthz and /metrics
// only, per spec.md §6's ambient admin surface. Grounded on the teacher's
// internal/api.Server, trimmed of every call-data/auth/CORS concern that
// doesn't apply here (explicit non-goals: no downstream consumer
// authorization, no multi-tenant isolation).
type Server struct {
	http *http.Server
	log  zerolog.Logger
}

// ServerOptions configures Server.
type ServerOptions struct {
	Addr      string
	Source    HealthSource
	Stats     metrics.ConnectorStats
	StartTime time.Time
	Log       zerolog.Logger
}

// NewServer builds the admin mux and registers its own Collector with the
// default Prometheus registry.
func NewServer(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Recoverer)
	r.Use(Logger(opts.Log))

	health := NewHealthHandler(opts.Source, opts.StartTime)
	r.Get("/healthz", health.ServeHTTP)

	collector := metrics.NewCollector(opts.Stats)
	prometheus.MustRegister(collector)
	r.Group(func(r chi.Router) {
		r.Use(metrics.InstrumentHandler)
		r.Get("/metrics", promhttp.Handler().ServeHTTP)
	})

	return &Server{
		http: &http.Server{
			Addr:         opts.Addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		log: opts.Log,
	}
}

// Start blocks serving the admin mux until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.http.Addr).Msg("admin http server starting")
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the admin mux.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("admin http server shutting down")
	return s.http.Shutdown(ctx)
}
