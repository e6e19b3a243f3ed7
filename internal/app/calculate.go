package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/agbru/bigcalc/internal/bigunsigned"
	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/cli"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/tui"
	"github.com/agbru/bigcalc/internal/ui"
)

// runCalculate orchestrates the execution of the CLI calculation command.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	x, err := parseOperand("x", a.Config.X)
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, out, cli.CLIColorProvider{})
	}
	y, err := parseOperand("y", a.Config.Y)
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, out, cli.CLIColorProvider{})
	}
	ops, err := a.operations()
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, out, cli.CLIColorProvider{})
	}

	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	calculatorsToRun := a.instrumentedCalculators()
	if !a.Config.Quiet && !a.Config.TUI {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(calculatorsToRun, out)
	}

	mode, _ := calc.ParseGCMode(a.Config.GCMode)
	gc := calc.NewGCController(mode, max(x.Len(), y.Len()))
	gc.SetLogger(logging.NewLogger(a.ErrWriter, "gc").Zerolog())

	exitCode := runUnderGC(gc, func() int {
		if a.Config.TUI {
			job := tui.Job{Calculators: calculatorsToRun, Ops: ops, X: x, Y: y, Options: a.Config.ToMulOptions()}
			return tui.Run(ctx, job, tui.Options{In: a.In, Out: out, Headless: !isTerminal(out)})
		}
		return a.runOperations(ctx, calculatorsToRun, ops, x, y, out)
	})
	if a.Config.Details && !a.Config.Quiet {
		stats := gc.Stats()
		cli.DisplayMemoryStats(stats.HeapAlloc, stats.TotalAlloc, stats.NumGC, stats.PauseTotalNs, out)
	}
	return exitCode
}

// runUnderGC runs fn between gc.Begin and gc.End. End runs even when fn
// panics, so the collector is never left suspended.
func runUnderGC(gc *calc.GCController, fn func() int) int {
	gc.Begin()
	defer gc.End()
	return fn()
}

// runOperations runs every operation in turn and returns the first failing
// exit code.
func (a *Application) runOperations(ctx context.Context, calculators []calc.Calculator, ops []calc.Operation, x, y *bigunsigned.Uint, out io.Writer) int {
	exitCode := apperrors.ExitSuccess
	for i, op := range ops {
		if len(ops) > 1 && !a.Config.Quiet {
			fmt.Fprintf(out, "\n%s--- %s ---%s\n", ui.ColorBold(), op, ui.ColorReset())
		}
		outputCfg := cli.OutputConfig{
			OutputFile: a.Config.OutputFile,
			Quiet:      a.Config.Quiet,
			Verbose:    a.Config.Verbose,
			ShowValue:  a.Config.ShowValue,
			Append:     i > 0,
		}
		code := a.runOperation(ctx, calculators, op, x, y, outputCfg, out)
		if exitCode == apperrors.ExitSuccess {
			exitCode = code
		}
		if ctx.Err() != nil {
			break
		}
	}
	return exitCode
}

// parseOperand trims surrounding whitespace and parses a decimal operand.
func parseOperand(name, raw string) (*bigunsigned.Uint, error) {
	v, err := bigunsigned.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, apperrors.WrapError(err, "operand %s", name)
	}
	return v, nil
}

// operations expands --op; "all" yields every operation.
func (a *Application) operations() ([]calc.Operation, error) {
	if a.Config.Op == "all" {
		return calc.Operations, nil
	}
	op, err := calc.ParseOperation(a.Config.Op)
	if err != nil {
		return nil, apperrors.NewConfigError("%v", err)
	}
	return []calc.Operation{op}, nil
}

// instrumentedCalculators wraps the selected calculators with error
// classification, tracing and debug logging.
func (a *Application) instrumentedCalculators() []calc.Calculator {
	selected := orchestration.GetCalculatorsToRun(a.Config.Algo, a.Factory)
	logger := logging.NewLogger(a.ErrWriter, "calc").Zerolog()
	wrapped := make([]calc.Calculator, len(selected))
	for i, c := range selected {
		ic := calc.Instrument(c)
		ic.SetLogger(logger)
		wrapped[i] = ic
	}
	return wrapped
}

// runOperation runs one operation on every calculator and reports it.
func (a *Application) runOperation(ctx context.Context, calculators []calc.Calculator, op calc.Operation, x, y *bigunsigned.Uint, outputCfg cli.OutputConfig, out io.Writer) int {
	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	}

	req := orchestration.Request{Op: op, X: x, Y: y, Options: a.Config.ToMulOptions()}
	results := orchestration.ExecuteCalculations(ctx, calculators, req, progressReporter, progressOut)
	return a.analyzeResultsWithOutput(results, op, outputCfg, out)
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.CalculationResult, op calc.Operation, outputCfg cli.OutputConfig, out io.Writer) int {
	if bestResult := findBestResult(results); outputCfg.Quiet && bestResult != nil {
		cli.DisplayQuietResult(out, bestResult.Result)
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	presOpts := orchestration.PresentationOptions{
		Op:        op,
		Verbose:   a.Config.Verbose,
		Details:   a.Config.Details,
		ShowValue: a.Config.ShowValue,
	}
	exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, cli.CLIResultPresenter{}, out)

	// Analysis reorders results, so the best one is looked up afterwards.
	if bestResult := findBestResult(results); bestResult != nil && exitCode == apperrors.ExitSuccess {
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		if outputCfg.OutputFile != "" {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
		}
	}
	return exitCode
}

func findBestResult(results []orchestration.CalculationResult) *orchestration.CalculationResult {
	var bestResult *orchestration.CalculationResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

func (a *Application) saveResultIfNeeded(res *orchestration.CalculationResult, cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteResultToFile(res.Result, res.Op, res.Duration, res.Name, cfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return err
	}
	return nil
}
