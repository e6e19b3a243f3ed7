// Package config parses and validates the bigcalc command line. Values come
// from flags first, then BIGCALC_ environment variables, then the calibration
// profile and finally hardware estimates.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/bigunsigned"
	"github.com/agbru/bigcalc/internal/calc"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/parallel"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "BIGCALC_"

// Defaults for flags whose zero value is not meaningful.
const (
	DefaultTimeout   = 5 * time.Minute
	DefaultMaxDigits = 1_000_000
	DefaultOp        = "all"
	DefaultAlgo      = "all"
	DefaultGCMode    = "auto"
	DefaultRateLimit = 100
)

// Operations accepted by --op. "all" computes sum, product and difference.
var Operations = []string{"all", "add", "sub", "mul"}

// AppConfig holds every option that drives one bigcalc run.
type AppConfig struct {
	// X and Y are the decimal operands, most significant digit first.
	X, Y string
	// Op selects add, sub, mul or all.
	Op string
	// Algo selects a registered calculator or "all" to compare them.
	Algo string

	// Threshold is the operand length above which Karatsuba runs in parallel.
	// 0 selects the adaptive estimate.
	Threshold int
	// SkewThreshold is the largest short operand for repeated addition.
	SkewThreshold int
	// SkewMaxLen is the largest long operand for repeated addition.
	SkewMaxLen int
	// NativeMaxDigits is the largest operand multiplied as a uint64.
	NativeMaxDigits int
	// MaxTasks bounds concurrently spawned multiplication tasks.
	MaxTasks int
	// Sequential disables parallel Karatsuba entirely.
	Sequential bool
	// GCMode is auto, aggressive or disabled; see calc.GCController.
	GCMode string

	Timeout    time.Duration
	Verbose    bool
	Details    bool
	Quiet      bool
	ShowValue  bool
	NoColor    bool
	OutputFile string

	// TUI shows the comparison as a live dashboard.
	TUI bool

	// Interactive starts the REPL instead of a one-shot computation.
	Interactive bool
	// Serve is the listen address of the HTTP server; empty disables it.
	Serve string
	// MaxDigits caps operand length accepted by the server.
	MaxDigits int
	// RateLimit is the server's sustained requests per second; 0 disables it.
	RateLimit int

	// Trace exports OpenTelemetry spans to standard error.
	Trace bool

	Calibrate          bool
	AutoCalibrate      bool
	CalibrationProfile string
}

// ToMulOptions converts the tuning fields into multiplication options. A
// positive MaxTasks gets its own limiter; otherwise the process-wide one is
// used.
func (c AppConfig) ToMulOptions() bigunsigned.Options {
	opts := bigunsigned.Options{
		NativeMaxDigits:   c.NativeMaxDigits,
		SkewMaxDigits:     c.SkewThreshold,
		SkewMaxLen:        c.SkewMaxLen,
		ParallelThreshold: c.Threshold,
		Sequential:        c.Sequential,
	}
	if c.MaxTasks > 0 {
		opts.Limiter = parallel.NewLimiter(c.MaxTasks)
	}
	return opts
}

// ParseConfig parses args (without the program name) into an AppConfig.
//
// Parameters:
//   - programName: Name shown in the usage text.
//   - args: Command-line arguments.
//   - errWriter: Destination of usage and parse errors.
//   - availableAlgos: Calculator names accepted by --algo besides "all".
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp when help was requested, or a ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	config := AppConfig{}
	fs.StringVar(&config.X, "x", "", "First operand (decimal digits).")
	fs.StringVar(&config.Y, "y", "", "Second operand (decimal digits).")
	fs.StringVar(&config.Op, "op", DefaultOp, "Operation: "+strings.Join(Operations, ", ")+".")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, "Multiplication algorithm: all, "+strings.Join(availableAlgos, ", ")+".")
	fs.IntVar(&config.Threshold, "threshold", 0, "Operand length (digits) above which Karatsuba runs in parallel. 0 = adaptive.")
	fs.IntVar(&config.SkewThreshold, "skew-threshold", 0, "Largest short operand (digits) multiplied by repeated addition. 0 = default.")
	fs.IntVar(&config.SkewMaxLen, "skew-max-len", 0, "Largest long operand (digits) multiplied by repeated addition. 0 = default.")
	fs.IntVar(&config.NativeMaxDigits, "native-max", 0, "Largest operand (digits, at most 9) multiplied natively. 0 = default.")
	fs.IntVar(&config.MaxTasks, "max-tasks", 0, "Maximum concurrently spawned multiplication tasks. 0 = adaptive.")
	fs.BoolVar(&config.Sequential, "sequential", false, "Disable parallel multiplication.")
	fs.StringVar(&config.GCMode, "gc", DefaultGCMode, "Garbage collector control during large products: auto, aggressive, disabled.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum time per computation.")
	fs.BoolVar(&config.Verbose, "v", false, "Verbose output (shorthand).")
	fs.BoolVar(&config.Verbose, "verbose", false, "Verbose output with debug logging.")
	fs.BoolVar(&config.Details, "d", false, "Show performance details (shorthand).")
	fs.BoolVar(&config.Details, "details", false, "Show performance details and memory statistics.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the results, one per line.")
	fs.BoolVar(&config.ShowValue, "c", false, "Print full values (shorthand).")
	fs.BoolVar(&config.ShowValue, "calculate", false, "Print full values instead of a truncated preview.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file (shorthand).")
	fs.StringVar(&config.OutputFile, "output", "", "Write the results to a file.")
	fs.BoolVar(&config.TUI, "tui", false, "Show the calculator comparison as a live dashboard.")
	fs.BoolVar(&config.Interactive, "i", false, "Interactive mode (shorthand).")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start the interactive REPL.")
	fs.StringVar(&config.Serve, "serve", "", "Serve the HTTP API on the given address (e.g. :8080).")
	fs.IntVar(&config.MaxDigits, "max-digits", DefaultMaxDigits, "Largest operand (digits) accepted by the server.")
	fs.IntVar(&config.RateLimit, "rate-limit", DefaultRateLimit, "Requests per second accepted by the server. 0 = unlimited.")
	fs.BoolVar(&config.Trace, "trace", false, "Export OpenTelemetry spans to standard error.")
	fs.BoolVar(&config.Calibrate, "calibrate", false, "Benchmark parallel thresholds and save a calibration profile.")
	fs.BoolVar(&config.AutoCalibrate, "auto-calibrate", false, "Run a quick threshold benchmark before computing.")
	fs.StringVar(&config.CalibrationProfile, "calibration-profile", "", "Path of the calibration profile.")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags] [x y]\n\n", programName)
		fmt.Fprintf(errWriter, "Computes the sum, difference and product of two unsigned decimal integers.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	applyEnvOverrides(&config, fs)

	rest := fs.Args()
	if config.X == "" && len(rest) > 0 {
		config.X, rest = rest[0], rest[1:]
	}
	if config.Y == "" && len(rest) > 0 {
		config.Y, rest = rest[0], rest[1:]
	}
	if len(rest) > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(rest, " "))
	}

	if err := config.Validate(availableAlgos); err != nil {
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks option ranges and that a one-shot run has both operands.
func (c AppConfig) Validate(availableAlgos []string) error {
	if !slices.Contains(Operations, c.Op) {
		return apperrors.NewConfigError("unknown operation %q (want one of %s)", c.Op, strings.Join(Operations, ", "))
	}
	if c.Algo != "all" && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unknown algorithm %q (want all or one of %s)", c.Algo, strings.Join(availableAlgos, ", "))
	}
	if _, err := calc.ParseGCMode(c.GCMode); err != nil {
		return apperrors.NewConfigError("--gc: %v", err)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("--timeout must be positive, got %s", c.Timeout)
	}
	for _, f := range []struct {
		name  string
		value int
	}{
		{"threshold", c.Threshold},
		{"skew-threshold", c.SkewThreshold},
		{"skew-max-len", c.SkewMaxLen},
		{"native-max", c.NativeMaxDigits},
		{"max-tasks", c.MaxTasks},
		{"rate-limit", c.RateLimit},
	} {
		if f.value < 0 {
			return apperrors.NewConfigError("--%s must not be negative, got %d", f.name, f.value)
		}
	}
	if c.NativeMaxDigits > bigunsigned.DefaultNativeMaxDigits {
		return apperrors.NewConfigError("--native-max must be at most %d, got %d", bigunsigned.DefaultNativeMaxDigits, c.NativeMaxDigits)
	}
	if c.MaxDigits <= 0 {
		return apperrors.NewConfigError("--max-digits must be positive, got %d", c.MaxDigits)
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("--quiet and --verbose are mutually exclusive")
	}
	if c.TUI && (c.Quiet || c.OutputFile != "") {
		return apperrors.NewConfigError("--tui cannot be combined with --quiet or --output")
	}
	if c.Interactive || c.Serve != "" || c.Calibrate {
		return nil
	}
	if c.X == "" || c.Y == "" {
		return apperrors.NewConfigError("two operands are required (use -x and -y or positional arguments)")
	}
	return nil
}
