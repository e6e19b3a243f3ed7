package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/ui"
)

// cpuFeatures lists the SIMD extensions detected on this machine.
func cpuFeatures() string {
	var f []string
	switch runtime.GOARCH {
	case "amd64", "386":
		for _, feat := range []struct {
			name string
			ok   bool
		}{
			{"sse4.2", cpu.X86.HasSSE42},
			{"avx2", cpu.X86.HasAVX2},
			{"bmi2", cpu.X86.HasBMI2},
			{"avx512f", cpu.X86.HasAVX512F},
		} {
			if feat.ok {
				f = append(f, feat.name)
			}
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			f = append(f, "asimd")
		}
		if cpu.ARM64.HasSVE {
			f = append(f, "sve")
		}
	}
	if len(f) == 0 {
		return "none detected"
	}
	return strings.Join(f, ", ")
}

// PrintExecutionConfig displays the operands' sizes, the timeout, the
// environment and the multiplication thresholds.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Operands of %s%d%s and %s%d%s digits, operation %s%s%s, timeout %s%s%s.\n",
		ui.ColorMagenta(), len(cfg.X), ui.ColorReset(),
		ui.ColorMagenta(), len(cfg.Y), ui.ColorReset(),
		ui.ColorMagenta(), cfg.Op, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors (%s), Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), cpuFeatures(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	parallel := fmt.Sprintf("%d digits", cfg.Threshold)
	if cfg.Sequential {
		parallel = "disabled"
	}
	fmt.Fprintf(out, "Multiplication: parallel=%s%s%s, max tasks=%s%d%s, gc=%s%s%s.\n",
		ui.ColorCyan(), parallel, ui.ColorReset(),
		ui.ColorCyan(), cfg.MaxTasks, ui.ColorReset(),
		ui.ColorCyan(), cfg.GCMode, ui.ColorReset())
}

// PrintExecutionMode displays whether one calculator runs or several are
// compared.
func PrintExecutionMode(calculators []calc.Calculator, out io.Writer) {
	var modeDesc string
	if len(calculators) > 1 {
		modeDesc = "Parallel comparison of all algorithms"
	} else {
		modeDesc = fmt.Sprintf("Single calculation with the %s%s%s algorithm",
			ui.ColorGreen(), calculators[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
