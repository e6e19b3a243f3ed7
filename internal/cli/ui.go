//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/bigcalc/internal/bigunsigned"
	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

const (
	// TruncationLimit is the digit count from which a result is truncated
	// in standard output.
	TruncationLimit = 100
	// DisplayEdges is the number of digits shown at each end of a truncated
	// result.
	DisplayEdges = 25
	// ProgressRefreshRate is the refresh period of the spinner line.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in cells of the completion bar.
	ProgressBarWidth = 20
)

// Spinner abstracts a terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with a completion bar until updates is
// closed. Each update marks one calculator as finished. It calls wg.Done on
// return.
//
// Parameters:
//   - wg: Signalled when the display has been torn down.
//   - updates: Completion events, closed by the producer.
//   - numCalculators: Number of calculators running.
//   - out: Destination of the spinner.
func DisplayProgress(wg *sync.WaitGroup, updates <-chan orchestration.ProgressUpdate, numCalculators int, out io.Writer) {
	defer wg.Done()
	if numCalculators <= 0 {
		for range updates {
		}
		return
	}

	state := format.NewProgressState(numCalculators)
	start := time.Now()
	s := newSpinner(spinner.WithWriter(out))
	suffix := func() string {
		return " " + format.FormatProgress(state, time.Since(start), ProgressBarWidth)
	}
	s.UpdateSuffix(suffix())
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case u, ok := <-updates:
			if !ok {
				s.Stop()
				fmt.Fprintf(out, "%s\n", suffix()[1:])
				return
			}
			state.MarkDone(u.CalculatorIndex)
			s.UpdateSuffix(suffix())
		case <-ticker.C:
			s.UpdateSuffix(suffix())
		}
	}
}

// resultLabel names the value produced by op.
func resultLabel(op calc.Operation) string {
	switch op {
	case calc.OpAdd:
		return "Sum"
	case calc.OpSub:
		return "Difference"
	case calc.OpMul:
		return "Product"
	default:
		return "Result"
	}
}

// DisplayResult prints a computed value. The value itself is shown only when
// showValue is set; it is truncated to its edges above TruncationLimit
// digits unless verbose is set. details adds the digit count and timing.
func DisplayResult(result *bigunsigned.Uint, op calc.Operation, duration time.Duration, verbose, details, showValue bool, out io.Writer) {
	numDigits := result.Len()
	label := resultLabel(op)

	if details {
		fmt.Fprintf(out, "\n%s--- Detailed result analysis ---%s\n", ui.ColorBold(), ui.ColorReset())
		fmt.Fprintf(out, "Calculation time        : %s%s%s\n", ui.ColorGreen(), format.FormatExecutionDuration(duration), ui.ColorReset())
		fmt.Fprintf(out, "Number of digits        : %s%s%s\n", ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(numDigits)), ui.ColorReset())
	}

	if !showValue {
		fmt.Fprintf(out, "\n%s (%s digits). Use -c to print the value.\n", label, format.FormatNumberString(fmt.Sprint(numDigits)))
		return
	}

	fmt.Fprintf(out, "\n%s--- Calculated value ---%s\n", ui.ColorBold(), ui.ColorReset())
	s := result.String()
	if verbose || numDigits <= TruncationLimit {
		fmt.Fprintf(out, "%s = %s%s%s\n", label, ui.ColorGreen(), format.FormatNumberString(s), ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "%s = %s%s...%s%s (truncated)\n",
		label, ui.ColorGreen(), s[:DisplayEdges], s[numDigits-DisplayEdges:], ui.ColorReset())
	fmt.Fprintf(out, "Tip: use %s-v%s to print the full value.\n", ui.ColorYellow(), ui.ColorReset())
}
