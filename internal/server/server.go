package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/bigcalc/internal/bigunsigned"
	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
)

// ShutdownTimeout bounds the graceful shutdown once the serving context ends.
const ShutdownTimeout = 10 * time.Second

// Config configures a Server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// DefaultAlgo is used when a request names no algorithm.
	DefaultAlgo string
	// Timeout bounds each computation.
	Timeout time.Duration
	// Options tunes multiplication.
	Options bigunsigned.Options
	// Security configures headers, CORS, operand limits and rate limiting.
	Security SecurityConfig
}

// Server serves the calculators over HTTP.
type Server struct {
	cfg         Config
	calculators map[string]calc.Calculator
	metrics     *Metrics
	memory      *metrics.MemoryCollector
	logger      logging.Logger
	tracer      trace.Tracer
	started     time.Time
}

// New creates a Server for the calculators of factory. Each calculator is
// wrapped with the configured timeout and the server's metrics. A nil logger
// discards all events.
func New(factory calc.CalculatorFactory, cfg Config, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewLogger(io.Discard, "server")
	}
	s := &Server{
		cfg:         cfg,
		calculators: make(map[string]calc.Calculator),
		metrics:     NewMetrics(),
		memory:      metrics.NewMemoryCollector(),
		logger:      logger,
		tracer:      otel.Tracer("github.com/agbru/bigcalc/internal/server"),
		started:     time.Now(),
	}
	if s.cfg.DefaultAlgo == "" || s.cfg.DefaultAlgo == "all" {
		if names := factory.List(); len(names) > 0 {
			s.cfg.DefaultAlgo = names[0]
		}
	}
	for _, name := range factory.List() {
		c := factory.MustGet(name)
		s.calculators[name] = calc.Instrument(c,
			calc.WithTimeout(cfg.Timeout),
			calc.WithMetrics(s.metrics.Calc()),
		)
	}
	return s
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/{op}", s.handleCompute)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/metrics", s.handleMetrics)

	sec := s.cfg.Security
	return SecurityMiddleware(sec, s.metricsMiddleware(RateLimitMiddleware(sec, s.requestIDMiddleware(mux.ServeHTTP))))
}

// Start listens on cfg.Addr and serves until ctx ends.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx ends, then shuts down gracefully, waiting up
// to ShutdownTimeout for in-flight requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      s.cfg.Timeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("server listening", logging.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
