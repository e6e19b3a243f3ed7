package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/bigunsigned"
	"github.com/agbru/bigcalc/internal/calc"
)

type computeFunc = func(context.Context, calc.Operation, *bigunsigned.Uint, *bigunsigned.Uint) (*bigunsigned.Uint, error)

func mock(name string, fn computeFunc) calc.Calculator {
	return &MockCalculator{NameValue: name, ComputeFunc: fn}
}

func blocking(ctx context.Context, _ calc.Operation, _, _ *bigunsigned.Uint) (*bigunsigned.Uint, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func sleeping(d time.Duration) computeFunc {
	return func(ctx context.Context, _ calc.Operation, _, _ *bigunsigned.Uint) (*bigunsigned.Uint, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(d):
			return bigunsigned.FromUint64(6), nil
		}
	}
}

// lazyReporter reads updates slowly so that senders back up.
type lazyReporter struct{}

func (lazyReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range updates {
		time.Sleep(5 * time.Millisecond)
	}
}

func mustFinish(t *testing.T, ctx context.Context, calcs []calc.Calculator, within time.Duration) []CalculationResult {
	t.Helper()
	req := Request{Op: calc.OpMul, X: bigunsigned.FromUint64(2), Y: bigunsigned.FromUint64(3)}
	done := make(chan []CalculationResult, 1)
	go func() { done <- ExecuteCalculations(ctx, calcs, req, lazyReporter{}, io.Discard) }()

	select {
	case res := <-done:
		return res
	case <-time.After(within):
		t.Fatalf("ExecuteCalculations still running after %s", within)
		return nil
	}
}

func TestExecuteCalculations_Terminates(t *testing.T) {
	many := make([]calc.Calculator, 32)
	for i := range many {
		many[i] = mock(fmt.Sprintf("c%d", i), constant(6))
	}

	tests := map[string][]calc.Calculator{
		"instant": {mock("a", constant(6)), mock("b", constant(6))},
		"slow":    {mock("fast", constant(6)), mock("slow", sleeping(20*time.Millisecond))},
		"errors":  {mock("ok", constant(6)), mock("bad", failing(errors.New("boom")))},
		"many":    many,
		"none":    nil,
	}
	for name, calcs := range tests {
		t.Run(name, func(t *testing.T) {
			res := mustFinish(t, context.Background(), calcs, 10*time.Second)
			if len(res) != len(calcs) {
				t.Errorf("got %d results for %d calculators", len(res), len(calcs))
			}
		})
	}
}

func TestExecuteCalculations_CancelUnblocks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	res := mustFinish(t, ctx, []calc.Calculator{
		mock("sleepy", sleeping(time.Minute)),
		mock("stuck", blocking),
	}, 5*time.Second)
	for _, r := range res {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("%s: err = %v, want context.Canceled", r.Name, r.Err)
		}
	}
}
