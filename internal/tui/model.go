package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/bigcalc/internal/bigunsigned"
	"github.com/agbru/bigcalc/internal/calc"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/sysmon"
	"github.com/agbru/bigcalc/internal/ui"
)

const tickInterval = 500 * time.Millisecond

type status int

const (
	statusPending status = iota
	statusDone
	statusFailed
)

func (s status) String() string {
	switch s {
	case statusDone:
		return "done"
	case statusFailed:
		return "failed"
	default:
		return "pending"
	}
}

// verdict compares a row's result with the fastest successful one.
type verdict int

const (
	verdictNone verdict = iota
	verdictMatch
	verdictMismatch
)

type row struct {
	name     string
	status   status
	duration time.Duration
	digits   int
	verdict  verdict
}

// section holds the rows of one operation.
type section struct {
	op   calc.Operation
	rows []row
	err  error
}

// Job is one dashboard session: every operation of Ops runs on every
// calculator.
type Job struct {
	Calculators []calc.Calculator
	Ops         []calc.Operation
	X, Y        *bigunsigned.Uint
	Options     bigunsigned.Options
}

// Model is the root bubbletea model of the comparison dashboard.
type Model struct {
	job      Job
	sections []section
	keymap   KeyMap
	ref      *programRef

	ctx    context.Context
	cancel context.CancelFunc

	start   time.Time
	elapsed time.Duration
	sys     sysmon.Stats
	width   int

	done         bool
	exitCode     int
	exitWhenDone bool
}

// NewModel creates a dashboard with every row pending.
func NewModel(parent context.Context, job Job) Model {
	sections := make([]section, len(job.Ops))
	for i, op := range job.Ops {
		rows := make([]row, len(job.Calculators))
		for j, c := range job.Calculators {
			rows[j] = row{name: c.Name()}
		}
		sections[i] = section{op: op, rows: rows}
	}
	ctx, cancel := context.WithCancel(parent)
	return Model{
		job:      job,
		sections: sections,
		keymap:   DefaultKeyMap(),
		ref:      &programRef{},
		ctx:      ctx,
		cancel:   cancel,
		start:    time.Now(),
		exitCode: apperrors.ExitSuccess,
	}
}

// Init starts the clock, the computation and the cancellation watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startCalculationCmd(m.ref, m.ctx, m.job),
		watchContextCmd(m.ctx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.Quit) {
			m.cancel()
			if !m.done {
				m.finish(apperrors.ExitErrorCanceled)
			}
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case CalculatorDoneMsg:
		if r := m.row(msg.Op, msg.Index, msg.Name); r != nil {
			r.duration = msg.Duration
			r.status = statusDone
			if msg.Failed {
				r.status = statusFailed
			}
		}
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case ResultsMsg:
		m.applyResults(msg.Op, msg.Results)
		return m, nil

	case FinalResultMsg:
		if r := m.row(msg.Op, -1, msg.Result.Name); r != nil && msg.Result.Result != nil {
			r.status = statusDone
			r.duration = msg.Result.Duration
			r.digits = msg.Result.Result.Len()
		}
		return m, nil

	case ErrorMsg:
		if s := m.section(msg.Op); s != nil {
			s.err = msg.Err
		}
		return m, nil

	case RunCompleteMsg:
		m.finish(msg.ExitCode)
		if m.exitWhenDone {
			return m, tea.Quit
		}
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		m.elapsed = time.Since(m.start)
		return m, tea.Batch(sampleSysStatsCmd(m.ctx), tickCmd())

	case SysStatsMsg:
		m.sys = msg.Stats
		return m, nil

	case ContextCancelledMsg:
		if !m.done {
			m.finish(apperrors.ExitCodeFor(msg.Err))
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) finish(code int) {
	m.done = true
	m.exitCode = code
	m.elapsed = time.Since(m.start)
}

func (m Model) section(op calc.Operation) *section {
	for i := range m.sections {
		if m.sections[i].op == op {
			return &m.sections[i]
		}
	}
	return nil
}

// row finds a calculator row by index, falling back to its name.
func (m Model) row(op calc.Operation, index int, name string) *row {
	s := m.section(op)
	if s == nil {
		return nil
	}
	if index >= 0 && index < len(s.rows) && s.rows[index].name == name {
		return &s.rows[index]
	}
	for i := range s.rows {
		if s.rows[i].name == name {
			return &s.rows[i]
		}
	}
	return nil
}

// applyResults checks every successful result against the first one, which
// is the fastest after sorting.
func (m Model) applyResults(op calc.Operation, results []orchestration.CalculationResult) {
	var ref *bigunsigned.Uint
	for _, res := range results {
		if res.Err == nil {
			ref = res.Result
			break
		}
	}
	for _, res := range results {
		r := m.row(op, -1, res.Name)
		if r == nil {
			continue
		}
		r.duration = res.Duration
		if res.Err != nil {
			r.status = statusFailed
			continue
		}
		r.status = statusDone
		r.digits = res.Result.Len()
		r.verdict = verdictMismatch
		if res.Result.Equal(ref) {
			r.verdict = verdictMatch
		}
	}
}

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("bigcalc"))
	fmt.Fprintf(&b, "  x: %s digits  y: %s digits",
		format.FormatNumberString(fmt.Sprint(m.job.X.Len())),
		format.FormatNumberString(fmt.Sprint(m.job.Y.Len())))
	if m.sys.MemTotal > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  cpu %.1f%%  mem %.1f%%", m.sys.CPUPercent, m.sys.MemPercent)))
	}
	b.WriteString("\n")

	nameWidth := len("calculator")
	for _, c := range m.job.Calculators {
		nameWidth = max(nameWidth, len(c.Name()))
	}
	nameWidth += 2

	for _, s := range m.sections {
		b.WriteString("\n" + sectionStyle.Render(s.op.String()) + "\n")
		b.WriteString("  " + headingStyle.Render(ui.PadRight("calculator", nameWidth)+ui.PadRight("status", 10)+ui.PadRight("duration", 12)+ui.PadRight("digits", 10)+"check") + "\n")
		for _, r := range s.rows {
			b.WriteString("  " + ui.PadRight(nameStyle.Render(r.name), nameWidth) + ui.PadRight(r.statusCell(), 10))
			b.WriteString(ui.PadRight(r.durationCell(), 12) + ui.PadRight(r.digitsCell(), 10) + r.verdictCell() + "\n")
		}
		if s.err != nil {
			b.WriteString("  " + failedStyle.Render("error: "+s.err.Error()) + "\n")
		}
	}

	b.WriteString("\n")
	if m.done {
		fmt.Fprintf(&b, "done in %s, exit code %d", format.FormatExecutionDuration(m.elapsed), m.exitCode)
	} else {
		fmt.Fprintf(&b, "running %s", format.FormatExecutionDuration(m.elapsed))
	}
	if !m.exitWhenDone {
		b.WriteString("   " + footerKeyStyle.Render("q") + dimStyle.Render(" quit"))
	}
	return b.String()
}

func (r row) statusCell() string {
	switch r.status {
	case statusDone:
		return doneStyle.Render(r.status.String())
	case statusFailed:
		return failedStyle.Render(r.status.String())
	default:
		return pendingStyle.Render(r.status.String())
	}
}

func (r row) durationCell() string {
	if r.status == statusPending {
		return dimStyle.Render("-")
	}
	return format.FormatExecutionDuration(r.duration)
}

func (r row) digitsCell() string {
	if r.status != statusDone || r.digits == 0 {
		return dimStyle.Render("-")
	}
	return format.FormatNumberString(fmt.Sprint(r.digits))
}

func (r row) verdictCell() string {
	switch r.verdict {
	case verdictMatch:
		return doneStyle.Render("match")
	case verdictMismatch:
		return mismatchStyle.Render("mismatch")
	default:
		return dimStyle.Render("-")
	}
}

// Options controls how Run drives the terminal.
type Options struct {
	// In is the keyboard input. Nil means standard input, or no input at all
	// when Headless is set.
	In io.Reader
	// Out receives the dashboard. Nil means standard output.
	Out io.Writer
	// Headless disables rendering and the signal handler. The program quits
	// once the run completes and the final frame is written to Out.
	Headless bool
}

// Run shows the dashboard until the run completes (headless) or the user
// quits, and returns the exit code of the run.
func Run(ctx context.Context, job Job, opts Options) int {
	initStyles()

	model := NewModel(ctx, job)
	model.exitWhenDone = opts.Headless
	defer model.cancel()

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	progOpts := []tea.ProgramOption{tea.WithOutput(out)}
	switch {
	case opts.Headless:
		progOpts = append(progOpts, tea.WithInput(opts.In), tea.WithoutRenderer(), tea.WithoutSignalHandler())
	case opts.In != nil:
		progOpts = append(progOpts, tea.WithInput(opts.In))
	}

	p := tea.NewProgram(model, progOpts...)
	model.ref.SetProgram(p)

	final, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	m, ok := final.(Model)
	if !ok {
		return apperrors.ExitSuccess
	}
	if opts.Headless {
		fmt.Fprintln(out, m.View())
	}
	return m.exitCode
}

// startCalculationCmd runs the operations in order and reports each one
// through the bridges.
func startCalculationCmd(ref *programRef, ctx context.Context, job Job) tea.Cmd {
	return func() tea.Msg {
		exitCode := apperrors.ExitSuccess
		for _, op := range job.Ops {
			reporter := &TUIProgressReporter{ref: ref, op: op}
			presenter := &TUIResultPresenter{ref: ref, op: op}

			req := orchestration.Request{Op: op, X: job.X, Y: job.Y, Options: job.Options}
			results := orchestration.ExecuteCalculations(ctx, job.Calculators, req, reporter, io.Discard)
			code := orchestration.AnalyzeComparisonResults(results, orchestration.PresentationOptions{Op: op}, presenter, presenter, io.Discard)
			if exitCode == apperrors.ExitSuccess {
				exitCode = code
			}
			if ctx.Err() != nil {
				break
			}
		}
		return RunCompleteMsg{ExitCode: exitCode}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd reads system-wide CPU and memory usage. A failed sample
// leaves the fields it could not read at zero.
func sampleSysStatsCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		s, _ := sysmon.Sample(ctx)
		return SysStatsMsg{Stats: s}
	}
}

// watchContextCmd waits for the run's context to end.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
