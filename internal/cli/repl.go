package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/bigunsigned"
	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/sysmon"
	"github.com/agbru/bigcalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultAlgo is the calculator used first; "" or "all" picks the first
	// registered one.
	DefaultAlgo string
	// Timeout bounds each computation.
	Timeout time.Duration
	// Options tunes multiplication.
	Options bigunsigned.Options
	// FullValues disables truncation of long results.
	FullValues bool
}

// REPL is an interactive calculator session. Besides the named commands, a
// line holding two operands prints their sum, product and difference.
type REPL struct {
	config      REPLConfig
	factory     calc.CalculatorFactory
	memory      *metrics.MemoryCollector
	currentAlgo string
	in          io.Reader
	out         io.Writer
}

// NewREPL creates a REPL over the calculators of factory.
func NewREPL(factory calc.CalculatorFactory, config REPLConfig) *REPL {
	currentAlgo := config.DefaultAlgo
	if currentAlgo == "" || currentAlgo == "all" {
		if names := factory.List(); len(names) > 0 {
			currentAlgo = names[0]
		}
	}
	return &REPL{
		config:      config,
		factory:     factory,
		memory:      metrics.NewMemoryCollector(),
		currentAlgo: currentAlgo,
		in:          os.Stdin,
		out:         os.Stdout,
	}
}

// SetInput sets a custom input reader.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start reads and executes commands until exit or EOF.
func (r *REPL) Start() {
	fmt.Fprintln(r.out, ui.Banner(ui.ColorBold()+"bigcalc"+ui.ColorReset(), "Arbitrary-precision unsigned arithmetic"))
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"bigcalc> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if input = strings.TrimSpace(input); input != "" {
			if !r.processCommand(input) {
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			}
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printHelp() {
	cmd := func(name, desc string) {
		fmt.Fprintf(r.out, "  %s%-18s%s - %s\n", ui.ColorYellow(), name, ui.ColorReset(), desc)
	}
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	cmd("<x> <y>", "Print the sum, product and difference of x and y")
	cmd("add <x> <y>", "Compute x + y")
	cmd("sub <x> <y>", "Compute x - y")
	cmd("mul <x> <y>", "Compute x * y")
	cmd("compare <op> <x> <y>", "Run every algorithm and check they agree")
	cmd("algo <name>", "Change algorithm ("+strings.Join(r.factory.List(), ", ")+")")
	cmd("list", "List available algorithms")
	cmd("full", "Toggle full display of long values")
	cmd("status", "Display current configuration")
	cmd("help", "Display this help")
	cmd("exit / quit", "Exit interactive mode")
}

// processCommand executes one line. It returns false when the REPL should
// exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "add", "sub", "mul", "+", "-", "*":
		op, _ := calc.ParseOperation(cmd)
		r.cmdOperation(op, args)
	case "compare", "cmp":
		r.cmdCompare(args)
	case "algo", "a":
		r.cmdAlgo(args)
	case "list", "ls":
		r.cmdList()
	case "full":
		r.cmdFull()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if len(parts) == 2 {
			if x, y, ok := r.parseOperands(parts); ok {
				r.evaluatePair(x, y)
			}
			return true
		}
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

// parseOperands parses exactly two decimal operands, reporting failures.
func (r *REPL) parseOperands(args []string) (x, y *bigunsigned.Uint, ok bool) {
	if len(args) != 2 {
		fmt.Fprintf(r.out, "%sExpected two operands, got %d%s\n", ui.ColorRed(), len(args), ui.ColorReset())
		return nil, nil, false
	}
	var err error
	if x, err = bigunsigned.Parse(args[0]); err != nil {
		fmt.Fprintf(r.out, "%sInvalid operand %q: %v%s\n", ui.ColorRed(), args[0], err, ui.ColorReset())
		return nil, nil, false
	}
	if y, err = bigunsigned.Parse(args[1]); err != nil {
		fmt.Fprintf(r.out, "%sInvalid operand %q: %v%s\n", ui.ColorRed(), args[1], err, ui.ColorReset())
		return nil, nil, false
	}
	return x, y, true
}

func (r *REPL) calculator() (calc.Calculator, bool) {
	c, err := r.factory.Get(r.currentAlgo)
	if err != nil {
		fmt.Fprintf(r.out, "%sAlgorithm not found: %s%s\n", ui.ColorRed(), r.currentAlgo, ui.ColorReset())
		return nil, false
	}
	return c, true
}

func (r *REPL) compute(c calc.Calculator, op calc.Operation, x, y *bigunsigned.Uint) (*bigunsigned.Uint, time.Duration, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()
	start := time.Now()
	z, err := c.Compute(ctx, op, x, y, r.config.Options)
	return z, time.Since(start), err
}

// formatValue renders z, truncated to its edges unless full display is on.
func (r *REPL) formatValue(z *bigunsigned.Uint) string {
	s := z.String()
	if r.config.FullValues || len(s) <= TruncationLimit {
		return s
	}
	return fmt.Sprintf("%s...%s (%s digits)", s[:DisplayEdges], s[len(s)-DisplayEdges:], format.FormatNumberString(fmt.Sprint(len(s))))
}

func (r *REPL) cmdOperation(op calc.Operation, args []string) {
	x, y, ok := r.parseOperands(args)
	if !ok {
		return
	}
	c, ok := r.calculator()
	if !ok {
		return
	}
	z, d, err := r.compute(c, op, x, y)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "  %s = %s%s%s  %s(%s)%s\n",
		resultLabel(op), ui.ColorGreen(), r.formatValue(z), ui.ColorReset(),
		ui.ColorCyan(), format.FormatExecutionDuration(d), ui.ColorReset())
}

// evaluatePair prints the sum, product and difference of x and y. A negative
// difference is reported without suppressing the other two results.
func (r *REPL) evaluatePair(x, y *bigunsigned.Uint) {
	c, ok := r.calculator()
	if !ok {
		return
	}
	start := time.Now()
	for _, op := range calc.Operations {
		z, _, err := r.compute(c, op, x, y)
		if err != nil {
			fmt.Fprintf(r.out, "  %-10s: %s%v%s\n", resultLabel(op), ui.ColorRed(), err, ui.ColorReset())
			continue
		}
		fmt.Fprintf(r.out, "  %-10s: %s%s%s\n", resultLabel(op), ui.ColorGreen(), r.formatValue(z), ui.ColorReset())
	}
	fmt.Fprintf(r.out, "  Total time: %s%s%s\n", ui.ColorCyan(), format.FormatExecutionDuration(time.Since(start)), ui.ColorReset())
}

func (r *REPL) cmdCompare(args []string) {
	if len(args) != 3 {
		fmt.Fprintf(r.out, "%sUsage: compare <add|sub|mul> <x> <y>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	op, err := calc.ParseOperation(strings.ToLower(args[0]))
	if err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	x, y, ok := r.parseOperands(args[1:])
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()
	req := orchestration.Request{Op: op, X: x, Y: y, Options: r.config.Options}
	results := orchestration.ExecuteCalculations(ctx, r.factory.GetAll(), req, orchestration.NullProgressReporter{}, r.out)

	presenter := CLIResultPresenter{}
	opts := orchestration.PresentationOptions{Op: op, Verbose: r.config.FullValues, ShowValue: true}
	orchestration.AnalyzeComparisonResults(results, opts, presenter, presenter, r.out)
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdAlgo(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: algo <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available algorithms: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	name := strings.ToLower(args[0])
	if _, err := r.factory.Get(name); err != nil {
		fmt.Fprintf(r.out, "%sUnknown algorithm: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available algorithms: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	r.currentAlgo = name
	fmt.Fprintf(r.out, "Algorithm changed to: %s%s%s\n", ui.ColorGreen(), name, ui.ColorReset())
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable algorithms:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.factory.List() {
		marker := "  "
		if name == r.currentAlgo {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%s%s\n", marker, ui.ColorYellow(), name, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdFull() {
	r.config.FullValues = !r.config.FullValues
	status := "disabled"
	if r.config.FullValues {
		status = "enabled"
	}
	fmt.Fprintf(r.out, "Full value display: %s%s%s\n", ui.ColorGreen(), status, ui.ColorReset())
}

func (r *REPL) cmdStatus() {
	opts := r.config.Options
	parallel := fmt.Sprintf("%d digits", opts.ParallelThreshold)
	if opts.Sequential {
		parallel = "disabled"
	}
	snap := r.memory.Snapshot()

	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Algorithm:      %s%s%s\n", ui.ColorCyan(), r.currentAlgo, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:        %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Parallel:       %s%s%s\n", ui.ColorCyan(), parallel, ui.ColorReset())
	fmt.Fprintf(r.out, "  Full values:    %s%t%s\n", ui.ColorCyan(), r.config.FullValues, ui.ColorReset())
	fmt.Fprintf(r.out, "  Heap in use:    %s%s%s\n", ui.ColorCyan(), format.FormatBytes(snap.HeapAlloc), ui.ColorReset())
	fmt.Fprintf(r.out, "  GC cycles:      %s%d%s\n", ui.ColorCyan(), snap.NumGC, ui.ColorReset())
	if sys, err := sysmon.Sample(context.Background()); err == nil {
		fmt.Fprintf(r.out, "  System:         %sCPU %.1f%%, memory %.1f%% of %s%s\n",
			ui.ColorCyan(), sys.CPUPercent, sys.MemPercent, format.FormatBytes(sys.MemTotal), ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}
