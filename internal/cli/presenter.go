package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with the
// terminal spinner.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan orchestration.ProgressUpdate, numCalculators int, out io.Writer) {
	DisplayProgress(wg, updates, numCalculators, out)
}

// CLIColorProvider implements apperrors.ColorProvider with the active theme.
type CLIColorProvider struct{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// CLIResultPresenter implements orchestration.ResultPresenter for the
// terminal.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
	_ apperrors.ColorProvider         = CLIColorProvider{}
)

func displayDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// PresentComparisonTable prints one row per calculator with its duration and
// status. Columns are padded on visible width so colored cells line up.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	nameWidth, durationWidth := len("Algorithm"), len("Duration")
	for _, res := range results {
		nameWidth = max(nameWidth, len(res.Name))
		durationWidth = max(durationWidth, len(displayDuration(res.Duration)))
	}

	header := func(s string) string { return ui.ColorUnderline() + s + ui.ColorReset() }
	fmt.Fprintf(out, "%s   %s   %s\n",
		ui.PadRight(header("Algorithm"), nameWidth),
		ui.PadRight(header("Duration"), durationWidth),
		header("Status"))

	for _, res := range results {
		status := fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		}
		fmt.Fprintf(out, "%s   %s   %s\n",
			ui.PadRight(ui.ColorBlue()+res.Name+ui.ColorReset(), nameWidth),
			ui.PadRight(ui.ColorYellow()+displayDuration(res.Duration)+ui.ColorReset(), durationWidth),
			status)
	}
}

// PresentResult displays the agreed result.
func (CLIResultPresenter) PresentResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result.Result, result.Op, result.Duration, opts.Verbose, opts.Details, opts.ShowValue, out)
}

// FormatDuration formats a duration for display.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError reports err and returns the matching exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// DisplayMemoryStats shows memory statistics after a calculation.
func DisplayMemoryStats(heapAlloc, totalAlloc uint64, numGC uint32, pauseTotalNs uint64, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(heapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(totalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", numGC)
	if pauseTotalNs > 0 {
		fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(pauseTotalNs)/1e6)
	} else {
		fmt.Fprintf(out, "  GC pause total:  0ms\n")
	}
}
