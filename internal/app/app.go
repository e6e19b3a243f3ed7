// Package app wires configuration, calculators and the output layers into
// the bigcalc command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/calibration"
	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/server"
	"github.com/agbru/bigcalc/internal/telemetry"
	"github.com/agbru/bigcalc/internal/ui"
)

// Application represents the bigcalc application instance.
type Application struct {
	Config    config.AppConfig
	Factory   calc.CalculatorFactory
	ErrWriter io.Writer
	// In feeds the REPL; nil means standard input.
	In io.Reader
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom CalculatorFactory for the application.
func WithFactory(f calc.CalculatorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithInput sets the reader consumed by the REPL.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = calc.NewDefaultFactory()
	}

	programName := "bigcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		// The flag package already reported syntax errors.
		var cfgErr apperrors.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(errWriter, "Error: %v\n", err)
		}
		return nil, err
	}

	if cfgWithProfile, loaded := calibration.LoadCachedCalibration(cfg, cfg.CalibrationProfile); loaded {
		cfg = cfgWithProfile
	} else {
		cfg = config.ApplyAdaptiveThresholds(cfg)
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	level := zerolog.InfoLevel
	if a.Config.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	ui.InitTheme(a.Config.NoColor || !isTerminal(out))

	if a.Config.Trace {
		shutdown, err := telemetry.Setup(a.ErrWriter, Version)
		if err != nil {
			fmt.Fprintf(a.ErrWriter, "Error enabling tracing: %v\n", err)
			return apperrors.ExitErrorConfig
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				fmt.Fprintf(a.ErrWriter, "Error flushing traces: %v\n", err)
			}
		}()
	}

	if a.Config.Calibrate {
		return a.runCalibration(ctx, out)
	}

	a.Config = a.runAutoCalibrationIfEnabled(ctx, out)

	switch {
	case a.Config.Serve != "":
		return a.runServer(ctx)
	case a.Config.Interactive:
		return a.runREPL(out)
	default:
		return a.runCalculate(ctx, out)
	}
}

// runCalibration runs the full calibration mode.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()
	return calibration.RunCalibration(ctx, a.Config, out, cli.CLIProgressReporter{})
}

// runAutoCalibrationIfEnabled runs auto-calibration if enabled.
func (a *Application) runAutoCalibrationIfEnabled(ctx context.Context, out io.Writer) config.AppConfig {
	if a.Config.AutoCalibrate {
		if updated, ok := calibration.AutoCalibrate(ctx, a.Config, out); ok {
			return updated
		}
	}
	return a.Config
}

// runServer serves the HTTP API until SIGINT or SIGTERM.
func (a *Application) runServer(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	logger := logging.NewLogger(a.ErrWriter, "server")
	sec := server.DefaultSecurityConfig()
	sec.MaxDigits = a.Config.MaxDigits
	sec.RequestsPerSecond = float64(a.Config.RateLimit)
	sec.Burst = 2 * a.Config.RateLimit

	srv := server.New(a.Factory, server.Config{
		Addr:        a.Config.Serve,
		DefaultAlgo: a.Config.Algo,
		Timeout:     a.Config.Timeout,
		Options:     a.Config.ToMulOptions(),
		Security:    sec,
	}, logger)
	if err := srv.Start(ctx); err != nil {
		logger.Error("server failed", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive session.
func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		DefaultAlgo: a.Config.Algo,
		Timeout:     a.Config.Timeout,
		Options:     a.Config.ToMulOptions(),
		FullValues:  a.Config.ShowValue,
	})
	if a.In != nil {
		repl.SetInput(a.In)
	}
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// isTerminal reports whether out is an interactive terminal.
func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// ExitCodeFor maps a construction error from New to the process exit code.
func ExitCodeFor(err error) int {
	return apperrors.ExitCodeFor(err)
}
