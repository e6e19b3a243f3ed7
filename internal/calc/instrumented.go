package calc

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/bigcalc/internal/bigunsigned"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/parallel"
)

const tracerName = "github.com/agbru/bigcalc/internal/calc"

// Instrumented decorates a Calculator with a deadline, an OpenTelemetry span,
// Prometheus metrics and debug logging.
//
// The arithmetic itself cannot be interrupted. When the context ends first,
// Compute returns immediately and the abandoned computation finishes in the
// background; its result is discarded.
type Instrumented struct {
	inner   Calculator
	timeout time.Duration
	metrics *Metrics
	tracer  trace.Tracer
	logger  zerolog.Logger
}

// InstrumentOption configures an Instrumented calculator.
type InstrumentOption func(*Instrumented)

// WithTimeout bounds every Compute call. d <= 0 leaves only the caller's
// context in charge.
func WithTimeout(d time.Duration) InstrumentOption {
	return func(c *Instrumented) { c.timeout = d }
}

// WithMetrics records every call into m.
func WithMetrics(m *Metrics) InstrumentOption {
	return func(c *Instrumented) { c.metrics = m }
}

// WithTracer replaces the tracer taken from the global provider.
func WithTracer(t trace.Tracer) InstrumentOption {
	return func(c *Instrumented) { c.tracer = t }
}

// Instrument wraps c.
func Instrument(c Calculator, opts ...InstrumentOption) *Instrumented {
	ic := &Instrumented{
		inner:  c,
		tracer: otel.Tracer(tracerName),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(ic)
	}
	return ic
}

// SetLogger configures the logger for per-operation debug events.
func (c *Instrumented) SetLogger(l zerolog.Logger) {
	c.logger = l
}

// Name returns the name of the wrapped calculator.
func (c *Instrumented) Name() string { return c.inner.Name() }

// Unwrap returns the wrapped calculator.
func (c *Instrumented) Unwrap() Calculator { return c.inner }

type outcome struct {
	z   *bigunsigned.Uint
	err error
}

// Compute runs the wrapped calculator. A deadline hit is reported as an
// apperrors.TimeoutError; every other failure is wrapped in an
// apperrors.CalculationError naming the calculator.
func (c *Instrumented) Compute(ctx context.Context, op Operation, x, y *bigunsigned.Uint, opts bigunsigned.Options) (*bigunsigned.Uint, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	digits := max(x.Len(), y.Len())
	ctx, span := c.tracer.Start(ctx, "calc."+op.String(), trace.WithAttributes(
		attribute.String("calc.calculator", c.inner.Name()),
		attribute.Int("calc.x_digits", x.Len()),
		attribute.Int("calc.y_digits", y.Len()),
	))
	defer span.End()

	if c.metrics != nil && op == OpMul {
		opts.Trace = chainTrace(opts.Trace, c.metrics.observeDispatch)
	}

	start := time.Now()
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: &parallel.PanicError{Value: r, Stack: debug.Stack()}}
			}
		}()
		z, err := c.inner.Compute(ctx, op, x, y, opts)
		done <- outcome{z: z, err: err}
	}()

	var res outcome
	select {
	case res = <-done:
	case <-ctx.Done():
		res.err = ctx.Err()
	}
	elapsed := time.Since(start)

	if res.err != nil {
		res.err = c.wrapError(ctx, op, start, res.err)
	}

	status := "ok"
	if res.err != nil {
		status = "error"
		span.RecordError(res.err)
		span.SetStatus(codes.Error, res.err.Error())
	} else {
		span.SetAttributes(attribute.Int("calc.result_digits", res.z.Len()))
	}
	if c.metrics != nil {
		c.metrics.observe(c.inner.Name(), op, digits, elapsed.Seconds(), status)
	}
	c.logger.Debug().
		Str("calculator", c.inner.Name()).
		Str("op", op.String()).
		Int("digits", digits).
		Dur("elapsed", elapsed).
		Err(res.err).
		Msg("operation finished")

	return res.z, res.err
}

func (c *Instrumented) wrapError(ctx context.Context, op Operation, start time.Time, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		limit := time.Since(start)
		if deadline, ok := ctx.Deadline(); ok {
			limit = deadline.Sub(start).Round(time.Millisecond)
		}
		return apperrors.TimeoutError{Operation: c.inner.Name() + " " + op.String(), Limit: limit}
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return apperrors.CalculationError{Calculator: c.inner.Name(), Cause: err}
}

func chainTrace(first, second func(bigunsigned.Strategy, int, int)) func(bigunsigned.Strategy, int, int) {
	if first == nil {
		return second
	}
	return func(s bigunsigned.Strategy, m, n int) {
		first(s, m, n)
		second(s, m, n)
	}
}
