package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/bigunsigned"
	"github.com/agbru/bigcalc/internal/calc"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/orchestration"
)

func TestCLIResultPresenter_ComparisonTable(t *testing.T) {
	t.Parallel()
	results := []orchestration.CalculationResult{
		{Name: "karatsuba", Duration: 1500 * time.Microsecond},
		{Name: "schoolbook", Duration: 0},
		{Name: "sequential", Duration: 2 * time.Second, Err: errors.New("boom")},
	}

	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(results, &buf)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), buf.String())
	}
	if lines[1] != "Algorithm    Duration   Status" {
		t.Errorf("header = %q", lines[1])
	}
	if lines[2] != "karatsuba    1ms        ✅ Success" {
		t.Errorf("row = %q", lines[2])
	}
	if lines[3] != "schoolbook   < 1µs      ✅ Success" {
		t.Errorf("row = %q", lines[3])
	}
	if lines[4] != "sequential   2s         ❌ Failure (boom)" {
		t.Errorf("row = %q", lines[4])
	}
}

func TestCLIResultPresenter_PresentResult(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	res := orchestration.CalculationResult{Name: "karatsuba", Op: calc.OpMul, Result: bigunsigned.FromUint64(9801)}
	CLIResultPresenter{}.PresentResult(res, orchestration.PresentationOptions{Op: calc.OpMul, ShowValue: true}, &buf)
	if !strings.Contains(buf.String(), "Product = 9,801") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestCLIResultPresenter_HandleError(t *testing.T) {
	t.Parallel()
	p := CLIResultPresenter{}

	var buf bytes.Buffer
	_, err := bigunsigned.New().Sub(bigunsigned.FromUint64(1), bigunsigned.FromUint64(2))
	if code := p.HandleError(err, time.Millisecond, &buf); code != apperrors.ExitErrorNegative {
		t.Errorf("negative result exit code = %d, want %d", code, apperrors.ExitErrorNegative)
	}

	buf.Reset()
	if code := p.HandleError(context.Canceled, time.Second, &buf); code != apperrors.ExitErrorCanceled {
		t.Errorf("canceled exit code = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
	if !strings.Contains(buf.String(), "canceled") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestCLIColorProvider_NoColor(t *testing.T) {
	t.Parallel()
	c := CLIColorProvider{}
	if c.Red()+c.Yellow()+c.Reset() != "" {
		t.Error("no-color theme should yield empty escapes")
	}
}

func TestDisplayMemoryStats(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayMemoryStats(2048, 3<<20, 4, 1_500_000, &buf)
	for _, want := range []string{"2.0 KiB", "3.0 MiB", "GC cycles:       4", "1.50ms"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
}
