package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/bigcalc/internal/calc"
)

// Metrics holds the HTTP metrics of one server together with the calculator
// metrics, all in a private registry served by WritePrometheus.
type Metrics struct {
	registry        *prometheus.Registry
	activeRequests  prometheus.Gauge
	requestsTotal   prometheus.Counter
	requestDuration *prometheus.HistogramVec
	calc            *calc.Metrics
	handler         http.Handler
}

// NewMetrics creates a registry with Go runtime, process, HTTP and
// calculator collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		activeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bigcalc_active_requests",
			Help: "Number of HTTP requests being served.",
		}),
		requestsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "bigcalc_requests_total",
			Help: "Total number of HTTP requests received.",
		}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bigcalc_request_duration_seconds",
			Help:    "HTTP request latency by route and status code.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"route", "code"}),
		calc:    calc.NewMetrics(reg),
		handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	}
}

// IncrementActiveRequests counts a request entering the server.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
	m.requestsTotal.Inc()
}

// DecrementActiveRequests counts a request leaving the server.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// ObserveRequest records the latency of a finished request.
func (m *Metrics) ObserveRequest(route string, code int, d time.Duration) {
	m.requestDuration.WithLabelValues(route, strconv.Itoa(code)).Observe(d.Seconds())
}

// Calc returns the calculator metrics sharing this registry.
func (m *Metrics) Calc() *calc.Metrics { return m.calc }

// WritePrometheus serves the registry in the Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware tracks in-flight requests and their latency.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		start := time.Now()
		next(rec, r)
		s.metrics.ObserveRequest(routeOf(r), rec.code, time.Since(start))
	}
}

// routeOf maps a path to a bounded set of label values.
func routeOf(r *http.Request) string {
	switch p := r.URL.Path; p {
	case "/v1/add", "/v1/sub", "/v1/mul", "/health", "/metrics":
		return p
	default:
		return "other"
	}
}
