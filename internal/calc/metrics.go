package calc

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/agbru/bigcalc/internal/bigunsigned"
)

// Metrics holds the Prometheus collectors updated by Instrumented.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	dispatch   *prometheus.CounterVec
	digits     *prometheus.HistogramVec
}

// NewMetrics creates the calculator collectors and registers them with reg.
// A nil reg leaves them unregistered, which suits tests and one-shot runs.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bigcalc_operations_total",
			Help: "Arithmetic operations by calculator, operation and outcome.",
		}, []string{"calculator", "op", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bigcalc_operation_duration_seconds",
			Help:    "Wall time of arithmetic operations.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 14),
		}, []string{"calculator", "op"}),
		dispatch: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bigcalc_mul_dispatch_total",
			Help: "Multiplication dispatch decisions by strategy, recursive steps included.",
		}, []string{"strategy"}),
		digits: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bigcalc_operand_digits",
			Help:    "Length in digits of the longer operand.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12),
		}, []string{"op"}),
	}
}

func (m *Metrics) observeDispatch(s bigunsigned.Strategy, _, _ int) {
	m.dispatch.WithLabelValues(s.String()).Inc()
}

func (m *Metrics) observe(calculator string, op Operation, digits int, seconds float64, status string) {
	m.operations.WithLabelValues(calculator, op.String(), status).Inc()
	m.duration.WithLabelValues(calculator, op.String()).Observe(seconds)
	m.digits.WithLabelValues(op.String()).Observe(float64(digits))
}
