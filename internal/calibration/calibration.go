// Package calibration measures the parallel Karatsuba threshold that suits
// the current machine and caches it in a profile file.
package calibration

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/agbru/bigcalc/internal/bigunsigned"
	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

const (
	// DefaultCalibrationDigits is the operand length of a full calibration.
	DefaultCalibrationDigits = 20_000
	// QuickCalibrationDigits is the operand length of auto-calibration.
	QuickCalibrationDigits = 8_000
	// calibrationRuns is the number of timed products per threshold; the
	// fastest one counts.
	calibrationRuns = 3
)

type calibrationResult struct {
	Threshold int
	Duration  time.Duration
	Err       error
}

// RunCalibration benchmarks every threshold from GenerateParallelThresholds,
// prints a summary and saves the winner to cfg.CalibrationProfile (or the
// default profile path). It returns a process exit code.
func RunCalibration(ctx context.Context, cfg config.AppConfig, out io.Writer, reporter orchestration.ProgressReporter) int {
	return runCalibration(ctx, cfg, out, reporter, GenerateParallelThresholds(), DefaultCalibrationDigits)
}

func runCalibration(ctx context.Context, cfg config.AppConfig, out io.Writer, reporter orchestration.ProgressReporter, thresholds []int, digits int) int {
	fmt.Fprintf(out, "%sCalibrating%s parallel multiplication on %d-digit operands (%d thresholds)...\n",
		ui.ColorBold(), ui.ColorReset(), digits, len(thresholds))

	start := time.Now()
	results, err := benchmarkThresholds(ctx, thresholds, digits, cfg.ToMulOptions(), reporter, out)
	if err != nil {
		return apperrors.HandleCalculationError(err, time.Since(start), out, nil)
	}

	best, ok := bestThreshold(results)
	printCalibrationResults(out, results, best)
	if !ok {
		fmt.Fprintf(out, "%sNo threshold completed; profile not saved.%s\n", ui.ColorRed(), ui.ColorReset())
		return apperrors.ExitErrorGeneric
	}

	profile := NewProfile()
	profile.OptimalParallelThreshold = best
	profile.CalibrationDigits = digits
	profile.CalibrationTime = time.Since(start).Round(time.Millisecond).String()

	path := cfg.CalibrationProfile
	if path == "" {
		path = GetDefaultProfilePath()
	}
	if err := profile.SaveProfile(path); err != nil {
		fmt.Fprintf(out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return apperrors.ExitErrorGeneric
	}
	printCalibrationOutput(out, profile, path)
	return apperrors.ExitSuccess
}

// AutoCalibrate runs the quick benchmark and returns cfg with the measured
// threshold. ok is false when the benchmark could not finish.
func AutoCalibrate(ctx context.Context, cfg config.AppConfig, out io.Writer) (updated config.AppConfig, ok bool) {
	results, err := benchmarkThresholds(ctx, GenerateQuickParallelThresholds(), QuickCalibrationDigits,
		cfg.ToMulOptions(), orchestration.NullProgressReporter{}, io.Discard)
	if err != nil {
		return cfg, false
	}
	best, ok := bestThreshold(results)
	if !ok {
		return cfg, false
	}
	cfg.Threshold = best
	cfg.Sequential = best == 0
	fmt.Fprintf(out, "%sAuto-calibration%s: parallel threshold=%s%s%s\n",
		ui.ColorGreen(), ui.ColorReset(), ui.ColorYellow(), thresholdLabel(best), ui.ColorReset())
	return cfg, true
}

// benchmarkThresholds times the product of two random operands of the given
// length under each threshold. Every product is checked against the first
// one computed; a disagreement fails that threshold. Only cancellation of
// ctx is returned as an error.
func benchmarkThresholds(ctx context.Context, thresholds []int, digits int, base bigunsigned.Options, reporter orchestration.ProgressReporter, out io.Writer) ([]calibrationResult, error) {
	rng := rand.New(rand.NewPCG(uint64(digits), uint64(len(thresholds))))
	x, y := randomOperand(rng, digits), randomOperand(rng, digits)
	karatsuba := calc.Instrument(calc.NewKaratsubaCalculator())

	updates := make(chan orchestration.ProgressUpdate, len(thresholds))
	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, updates, len(thresholds), out)
	defer func() {
		close(updates)
		wg.Wait()
	}()

	var reference *bigunsigned.Uint
	results := make([]calibrationResult, 0, len(thresholds))
	for i, th := range thresholds {
		opts := base
		opts.ParallelThreshold = th
		opts.Sequential = th == 0

		res := calibrationResult{Threshold: th}
		for run := 0; run < calibrationRuns; run++ {
			start := time.Now()
			z, err := karatsuba.Compute(ctx, calc.OpMul, x, y, opts)
			elapsed := time.Since(start)
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if err != nil {
				res.Err = err
				break
			}
			if reference == nil {
				reference = z
			} else if !z.Equal(reference) {
				res.Err = fmt.Errorf("threshold %d: product differs from reference", th)
				break
			}
			if run == 0 || elapsed < res.Duration {
				res.Duration = elapsed
			}
		}
		results = append(results, res)
		updates <- orchestration.ProgressUpdate{CalculatorIndex: i, Name: thresholdLabel(th), Duration: res.Duration, Failed: res.Err != nil}
	}
	return results, nil
}

// bestThreshold returns the fastest successful threshold; ties keep the
// earlier entry.
func bestThreshold(results []calibrationResult) (int, bool) {
	best, found := 0, false
	var bestDuration time.Duration
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if !found || r.Duration < bestDuration {
			best, bestDuration, found = r.Threshold, r.Duration, true
		}
	}
	return best, found
}

// randomOperand returns an n-digit value with a nonzero leading digit.
func randomOperand(rng *rand.Rand, n int) *bigunsigned.Uint {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte('0' + rng.IntN(10))
	}
	if n > 0 {
		buf[0] = byte('1' + rng.IntN(9))
	}
	return bigunsigned.MustParse(string(buf))
}

func thresholdLabel(th int) string {
	if th == 0 {
		return "sequential"
	}
	return fmt.Sprintf("%d digits", th)
}
