package tui

import (
	"io"
	"slices"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/bigcalc/internal/calc"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
)

// programRef is a shared reference to the tea.Program. bubbletea copies the
// model on every Update, so the bridges hold this pointer instead.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program. It is a no-op before SetProgram.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter implements orchestration.ProgressReporter for one
// operation. Each completion becomes a CalculatorDoneMsg.
type TUIProgressReporter struct {
	ref *programRef
	op  calc.Operation
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains updates into the dashboard.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan orchestration.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for u := range updates {
		t.ref.Send(CalculatorDoneMsg{
			Op:       t.op,
			Index:    u.CalculatorIndex,
			Name:     u.Name,
			Duration: u.Duration,
			Failed:   u.Failed,
		})
	}
	t.ref.Send(ProgressDoneMsg{Op: t.op})
}

// TUIResultPresenter sends the analysis of one operation to the dashboard
// instead of writing it out.
type TUIResultPresenter struct {
	ref *programRef
	op  calc.Operation
}

var (
	_ orchestration.ResultPresenter   = (*TUIResultPresenter)(nil)
	_ orchestration.DurationFormatter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler      = (*TUIResultPresenter)(nil)
)

// PresentComparisonTable sends a copy of the sorted results.
func (t *TUIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, _ io.Writer) {
	t.ref.Send(ResultsMsg{Op: t.op, Results: slices.Clone(results)})
}

// PresentResult sends the agreed result.
func (t *TUIResultPresenter) PresentResult(result orchestration.CalculationResult, _ orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(FinalResultMsg{Op: t.op, Result: result})
}

func (t *TUIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError sends err to the dashboard and returns its exit code.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	t.ref.Send(ErrorMsg{Op: t.op, Err: err, Duration: duration})
	return apperrors.HandleCalculationError(err, duration, io.Discard, nil)
}
