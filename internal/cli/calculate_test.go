package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/config"
)

func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	cfg := config.AppConfig{
		X:         "12345",
		Y:         "678",
		Op:        "mul",
		Timeout:   time.Minute,
		Threshold: 4096,
		MaxTasks:  8,
		GCMode:    "auto",
	}

	PrintExecutionConfig(cfg, &buf)

	output := buf.String()
	for _, want := range []string{"5 and 3 digits", "operation mul", "timeout 1m0s", "parallel=4096 digits", "max tasks=8", "gc=auto"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestPrintExecutionConfig_Sequential(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintExecutionConfig(config.AppConfig{X: "1", Y: "2", Sequential: true}, &buf)
	if !strings.Contains(buf.String(), "parallel=disabled") {
		t.Errorf("sequential run should report parallel=disabled:\n%s", buf.String())
	}
}

func TestPrintExecutionMode(t *testing.T) {
	t.Parallel()
	factory := calc.NewDefaultFactory()

	t.Run("Single calculator mode", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		PrintExecutionMode([]calc.Calculator{factory.MustGet("karatsuba")}, &buf)
		if !strings.Contains(buf.String(), "Single calculation with the karatsuba algorithm") {
			t.Errorf("unexpected output %q", buf.String())
		}
	})

	t.Run("Multiple calculators mode", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		PrintExecutionMode(factory.GetAll(), &buf)
		if !strings.Contains(buf.String(), "Parallel comparison") {
			t.Errorf("unexpected output %q", buf.String())
		}
	})
}
