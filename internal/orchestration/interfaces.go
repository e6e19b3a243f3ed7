package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/bigcalc/internal/bigunsigned"
	"github.com/agbru/bigcalc/internal/calc"
)

// CalculationResult is the outcome of one calculator on one operation. It is
// the shared domain type between orchestration and presentation layers.
type CalculationResult struct {
	// Name is the calculator that produced the result.
	Name string
	// Op is the operation performed.
	Op calc.Operation
	// Result is nil if an error occurred.
	Result *bigunsigned.Uint
	// Duration is the wall time of the calculation.
	Duration time.Duration
	// Err contains any error that occurred during the calculation.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Op        calc.Operation
	Verbose   bool
	Details   bool
	ShowValue bool
}

// ProgressUpdate reports that one calculator has finished.
type ProgressUpdate struct {
	CalculatorIndex int
	Name            string
	Duration        time.Duration
	Failed          bool
}

// ProgressReporter displays calculation activity. Implementations consume
// updates until the channel is closed and then call wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, updates <-chan ProgressUpdate, numCalculators int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, updates <-chan ProgressUpdate, numCalculators int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, updates <-chan ProgressUpdate, numCalculators int, out io.Writer) {
	f(wg, updates, numCalculators, out)
}

// NullProgressReporter drains the updates without displaying anything.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range updates {
	}
}

// ResultPresenter presents calculation results.
type ResultPresenter interface {
	// PresentComparisonTable displays the comparison summary table.
	PresentComparisonTable(results []CalculationResult, out io.Writer)
	// PresentResult displays the agreed result.
	PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler handles calculation errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
