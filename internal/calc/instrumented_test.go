package calc

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/agbru/bigcalc/internal/bigunsigned"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/parallel"
)

// stubCalculator runs fn in place of real arithmetic.
type stubCalculator struct {
	fn func(ctx context.Context) (*bigunsigned.Uint, error)
}

func (s stubCalculator) Name() string { return "stub" }

func (s stubCalculator) Compute(ctx context.Context, _ Operation, _, _ *bigunsigned.Uint, _ bigunsigned.Options) (*bigunsigned.Uint, error) {
	return s.fn(ctx)
}

func TestInstrumented_PassesResultThrough(t *testing.T) {
	t.Parallel()
	c := Instrument(NewKaratsubaCalculator(), WithTimeout(time.Minute))
	z, err := c.Compute(context.Background(), OpMul, bigunsigned.FromUint64(12), bigunsigned.FromUint64(34), bigunsigned.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if z.String() != "408" {
		t.Errorf("12*34 = %s, want 408", z)
	}
	if c.Name() != "karatsuba" || c.Unwrap().Name() != "karatsuba" {
		t.Errorf("Name() = %q", c.Name())
	}
}

func TestInstrumented_Timeout(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	defer close(release)
	slow := stubCalculator{fn: func(context.Context) (*bigunsigned.Uint, error) {
		<-release
		return bigunsigned.New(), nil
	}}

	c := Instrument(slow, WithTimeout(20*time.Millisecond))
	start := time.Now()
	_, err := c.Compute(context.Background(), OpMul, bigunsigned.New(), bigunsigned.New(), bigunsigned.Options{})

	var timeoutErr apperrors.TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("err = %v, want TimeoutError", err)
	}
	if timeoutErr.Operation != "stub mul" {
		t.Errorf("Operation = %q, want %q", timeoutErr.Operation, "stub mul")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Compute returned after %s, should not wait for the computation", elapsed)
	}
	if apperrors.ExitCodeFor(err) != apperrors.ExitErrorTimeout {
		t.Errorf("exit code = %d, want %d", apperrors.ExitCodeFor(err), apperrors.ExitErrorTimeout)
	}
}

func TestInstrumented_ParentCancel(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := Instrument(NewKaratsubaCalculator())
	_, err := c.Compute(ctx, OpAdd, bigunsigned.FromUint64(1), bigunsigned.FromUint64(1), bigunsigned.Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestInstrumented_WrapsFailures(t *testing.T) {
	t.Parallel()
	c := Instrument(NewSchoolbookCalculator())
	_, err := c.Compute(context.Background(), OpSub, bigunsigned.FromUint64(1), bigunsigned.FromUint64(2), bigunsigned.Options{})

	var calcErr apperrors.CalculationError
	if !errors.As(err, &calcErr) || calcErr.Calculator != "schoolbook" {
		t.Fatalf("err = %v, want CalculationError from schoolbook", err)
	}
	if !errors.Is(err, bigunsigned.ErrNegativeResult) {
		t.Error("ErrNegativeResult should stay matchable")
	}
}

func TestInstrumented_RecoversPanics(t *testing.T) {
	t.Parallel()
	boom := stubCalculator{fn: func(context.Context) (*bigunsigned.Uint, error) { panic("boom") }}
	_, err := Instrument(boom).Compute(context.Background(), OpMul, bigunsigned.New(), bigunsigned.New(), bigunsigned.Options{})
	var panicErr *parallel.PanicError
	if !errors.As(err, &panicErr) || panicErr.Value != "boom" {
		t.Fatalf("err = %v, want PanicError(boom)", err)
	}
}

func TestInstrumented_Metrics(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	c := Instrument(NewKaratsubaCalculator(), WithMetrics(m))

	x := bigunsigned.MustParse(strings.Repeat("7", 40))
	y := bigunsigned.MustParse(strings.Repeat("3", 40))
	if _, err := c.Compute(context.Background(), OpMul, x, y, bigunsigned.Options{}); err != nil {
		t.Fatal(err)
	}
	_, _ = c.Compute(context.Background(), OpSub, y, x, bigunsigned.Options{})

	if got := testutil.ToFloat64(m.operations.WithLabelValues("karatsuba", "mul", "ok")); got != 1 {
		t.Errorf("mul ok count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("karatsuba", "sub", "error")); got != 1 {
		t.Errorf("sub error count = %v, want 1", got)
	}
	// 40x40 digits: one sequential Karatsuba step on top, native leaves below.
	if got := testutil.ToFloat64(m.dispatch.WithLabelValues("karatsuba-sequential")); got < 1 {
		t.Errorf("karatsuba-sequential dispatches = %v, want >= 1", got)
	}
	if got := testutil.ToFloat64(m.dispatch.WithLabelValues("native")); got < 1 {
		t.Errorf("native dispatches = %v, want >= 1", got)
	}

	n, err := testutil.GatherAndCount(reg, "bigcalc_operations_total")
	if err != nil || n != 2 {
		t.Errorf("gathered %d operation series, err=%v; want 2", n, err)
	}
}

func TestInstrumented_KeepsCallerTrace(t *testing.T) {
	t.Parallel()
	var calls int
	opts := bigunsigned.Options{Trace: func(bigunsigned.Strategy, int, int) { calls++ }}
	c := Instrument(NewSequentialCalculator(), WithMetrics(NewMetrics(nil)))
	if _, err := c.Compute(context.Background(), OpMul, bigunsigned.FromUint64(6), bigunsigned.FromUint64(7), opts); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("caller trace called %d times, want 1", calls)
	}
}

func TestInstrumented_DebugLog(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	c := Instrument(NewKaratsubaCalculator())
	c.SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	if _, err := c.Compute(context.Background(), OpAdd, bigunsigned.FromUint64(1), bigunsigned.FromUint64(2), bigunsigned.Options{}); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"calculator":"karatsuba"`, `"op":"add"`, "operation finished"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log %q missing %q", buf.String(), want)
		}
	}
}
