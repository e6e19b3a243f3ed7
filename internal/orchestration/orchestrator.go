package orchestration

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/bigcalc/internal/bigunsigned"
	"github.com/agbru/bigcalc/internal/calc"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// Request describes one operation to run on every selected calculator.
type Request struct {
	Op      calc.Operation
	X, Y    *bigunsigned.Uint
	Options bigunsigned.Options
}

// ExecuteCalculations runs req on every calculator concurrently and returns
// one result per calculator, in input order. Calculator failures are
// reported in the results, never as a returned error.
//
// Parameters:
//   - ctx: Cancellation and deadline for all calculators.
//   - calculators: The calculators to execute.
//   - req: The operation and its operands.
//   - progressReporter: Activity display (NullProgressReporter for quiet mode).
//   - out: The writer handed to the progress reporter.
//
// Returns:
//   - []CalculationResult: A slice containing the results of each calculation.
func ExecuteCalculations(ctx context.Context, calculators []calc.Calculator, req Request, progressReporter ProgressReporter, out io.Writer) []CalculationResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]CalculationResult, len(calculators))
	updates := make(chan ProgressUpdate, len(calculators))

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, updates, len(calculators), out)

	for i, c := range calculators {
		g.Go(func() error {
			start := time.Now()
			z, err := c.Compute(ctx, req.Op, req.X, req.Y, req.Options)
			results[i] = CalculationResult{
				Name: c.Name(), Op: req.Op, Result: z, Duration: time.Since(start), Err: err,
			}
			updates <- ProgressUpdate{CalculatorIndex: i, Name: c.Name(), Duration: results[i].Duration, Failed: err != nil}
			return nil
		})
	}

	_ = g.Wait()
	close(updates)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults sorts results (successes first, then by
// duration), checks that every successful calculator produced the same
// value and presents the summary.
//
// Parameters:
//   - results: The results to analyze. Sorted in place.
//   - opts: Presentation options.
//   - presenter: The result presenter for display formatting.
//   - errHandler: Reports the failure when no calculator succeeded.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []CalculationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	slices.SortStableFunc(results, func(a, b CalculationResult) int {
		if (a.Err == nil) != (b.Err == nil) {
			if a.Err == nil {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Duration, b.Duration)
	})

	if len(results) == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No calculator was selected.\n")
		return apperrors.ExitErrorConfig
	}

	if len(results) > 1 {
		presenter.PresentComparisonTable(results, out)
	}

	best := results[0]
	if best.Err != nil {
		if len(results) > 1 {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No calculator could complete the operation.\n")
		}
		return errHandler.HandleError(best.Err, best.Duration, out)
	}

	for _, res := range results[1:] {
		if res.Err == nil && !res.Result.Equal(best.Result) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %s and %s disagree.\n", best.Name, res.Name)
			return apperrors.ExitErrorMismatch
		}
	}

	if len(results) > 1 {
		fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	}
	presenter.PresentResult(best, opts, out)
	return apperrors.ExitSuccess
}
