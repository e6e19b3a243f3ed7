package tui

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/bigcalc/internal/bigunsigned"
	"github.com/agbru/bigcalc/internal/calc"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/orchestration"
)

// fixedCalculator returns the same value for every operation.
type fixedCalculator struct {
	name  string
	value string
}

func (c fixedCalculator) Name() string { return c.name }

func (c fixedCalculator) Compute(ctx context.Context, _ calc.Operation, _, _ *bigunsigned.Uint, _ bigunsigned.Options) (*bigunsigned.Uint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return bigunsigned.MustParse(c.value), nil
}

func testJob(ops ...calc.Operation) Job {
	return Job{
		Calculators: []calc.Calculator{calc.NewKaratsubaCalculator(), calc.NewSchoolbookCalculator()},
		Ops:         ops,
		X:           bigunsigned.MustParse("12345"),
		Y:           bigunsigned.MustParse("678"),
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNewModel_RowsPending(t *testing.T) {
	m := NewModel(context.Background(), testJob(calc.OpAdd, calc.OpMul))
	defer m.cancel()

	if len(m.sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(m.sections))
	}
	for _, s := range m.sections {
		if len(s.rows) != 2 {
			t.Fatalf("%v rows = %d, want 2", s.op, len(s.rows))
		}
		for _, r := range s.rows {
			if r.status != statusPending || r.verdict != verdictNone {
				t.Errorf("%v/%s = %v/%v, want pending", s.op, r.name, r.status, r.verdict)
			}
		}
	}
	if view := m.View(); !strings.Contains(view, "pending") || !strings.Contains(view, "schoolbook") {
		t.Errorf("initial view:\n%s", view)
	}
}

func TestModel_CalculatorDone(t *testing.T) {
	m := NewModel(context.Background(), testJob(calc.OpAdd, calc.OpMul))
	defer m.cancel()

	m, _ = update(t, m, CalculatorDoneMsg{Op: calc.OpMul, Index: 1, Name: "schoolbook", Duration: 3 * time.Millisecond})
	m, _ = update(t, m, CalculatorDoneMsg{Op: calc.OpMul, Index: 0, Name: "karatsuba", Failed: true})

	if r := m.row(calc.OpMul, -1, "schoolbook"); r.status != statusDone || r.duration != 3*time.Millisecond {
		t.Errorf("schoolbook = %v %v", r.status, r.duration)
	}
	if r := m.row(calc.OpMul, -1, "karatsuba"); r.status != statusFailed {
		t.Errorf("karatsuba = %v, want failed", r.status)
	}
	if r := m.row(calc.OpAdd, -1, "karatsuba"); r.status != statusPending {
		t.Errorf("add row changed to %v", r.status)
	}
	if m.row(calc.OpSub, 0, "karatsuba") != nil {
		t.Error("row found for an operation that is not shown")
	}
}

func TestModel_ResultsVerdicts(t *testing.T) {
	m := NewModel(context.Background(), testJob(calc.OpMul))
	defer m.cancel()

	m, _ = update(t, m, ResultsMsg{Op: calc.OpMul, Results: []orchestration.CalculationResult{
		{Name: "karatsuba", Result: bigunsigned.MustParse("8369910"), Duration: time.Millisecond},
		{Name: "schoolbook", Result: bigunsigned.MustParse("8369911"), Duration: 2 * time.Millisecond},
	}})

	k, s := m.row(calc.OpMul, -1, "karatsuba"), m.row(calc.OpMul, -1, "schoolbook")
	if k.verdict != verdictMatch || k.digits != 7 {
		t.Errorf("karatsuba = %v, %d digits", k.verdict, k.digits)
	}
	if s.verdict != verdictMismatch || s.status != statusDone {
		t.Errorf("schoolbook = %v/%v, want done/mismatch", s.status, s.verdict)
	}
	if view := m.View(); !strings.Contains(view, "mismatch") {
		t.Errorf("view:\n%s", view)
	}
}

func TestModel_ResultsSkipFailures(t *testing.T) {
	m := NewModel(context.Background(), testJob(calc.OpSub))
	defer m.cancel()

	m, _ = update(t, m, ResultsMsg{Op: calc.OpSub, Results: []orchestration.CalculationResult{
		{Name: "schoolbook", Result: bigunsigned.MustParse("11667")},
		{Name: "karatsuba", Err: context.DeadlineExceeded},
	}})
	if r := m.row(calc.OpSub, -1, "karatsuba"); r.status != statusFailed || r.verdict != verdictNone {
		t.Errorf("karatsuba = %v/%v, want failed without verdict", r.status, r.verdict)
	}
	if r := m.row(calc.OpSub, -1, "schoolbook"); r.verdict != verdictMatch {
		t.Errorf("schoolbook verdict = %v, want match", r.verdict)
	}
}

func TestModel_FinalResultAndError(t *testing.T) {
	m := NewModel(context.Background(), testJob(calc.OpAdd, calc.OpSub))
	defer m.cancel()

	m, _ = update(t, m, FinalResultMsg{Op: calc.OpAdd, Result: orchestration.CalculationResult{
		Name: "karatsuba", Result: bigunsigned.MustParse("13023"), Duration: time.Microsecond,
	}})
	if r := m.row(calc.OpAdd, -1, "karatsuba"); r.status != statusDone || r.digits != 5 {
		t.Errorf("karatsuba = %v, %d digits", r.status, r.digits)
	}

	negErr := bigunsigned.MustParse("678").SubAssign(bigunsigned.MustParse("12345"))
	m, _ = update(t, m, ErrorMsg{Op: calc.OpSub, Err: negErr})
	if !strings.Contains(m.View(), "error: "+negErr.Error()) {
		t.Errorf("view lacks the error:\n%s", m.View())
	}
}

func TestModel_RunComplete(t *testing.T) {
	m := NewModel(context.Background(), testJob(calc.OpAdd))
	defer m.cancel()

	interactive, cmd := update(t, m, RunCompleteMsg{ExitCode: apperrors.ExitErrorMismatch})
	if !interactive.done || interactive.exitCode != apperrors.ExitErrorMismatch {
		t.Errorf("done/exit = %v/%d", interactive.done, interactive.exitCode)
	}
	if cmd != nil {
		t.Error("interactive dashboard should wait for the quit key")
	}
	if !strings.Contains(interactive.View(), "exit code 3") {
		t.Errorf("view:\n%s", interactive.View())
	}

	m.exitWhenDone = true
	if _, cmd := update(t, m, RunCompleteMsg{}); !isQuit(cmd) {
		t.Error("headless dashboard should quit when the run completes")
	}
}

func TestModel_QuitKey(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
	} {
		t.Run(msg.String(), func(t *testing.T) {
			m := NewModel(context.Background(), testJob(calc.OpMul))
			m, cmd := update(t, m, msg)
			if !isQuit(cmd) {
				t.Error("quit key did not quit")
			}
			if m.ctx.Err() == nil {
				t.Error("quit key did not cancel the run")
			}
			if m.exitCode != apperrors.ExitErrorCanceled {
				t.Errorf("exit = %d, want %d", m.exitCode, apperrors.ExitErrorCanceled)
			}
		})
	}
}

func TestModel_QuitAfterDoneKeepsExitCode(t *testing.T) {
	m := NewModel(context.Background(), testJob(calc.OpMul))
	m, _ = update(t, m, RunCompleteMsg{ExitCode: apperrors.ExitSuccess})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if m.exitCode != apperrors.ExitSuccess {
		t.Errorf("exit = %d, want 0", m.exitCode)
	}
}

func TestModel_ContextCancelled(t *testing.T) {
	m := NewModel(context.Background(), testJob(calc.OpMul))
	defer m.cancel()

	m, cmd := update(t, m, ContextCancelledMsg{Err: context.DeadlineExceeded})
	if !isQuit(cmd) || m.exitCode != apperrors.ExitErrorTimeout {
		t.Errorf("exit = %d, quit = %v", m.exitCode, isQuit(cmd))
	}
}

func TestModel_TickStopsWhenDone(t *testing.T) {
	m := NewModel(context.Background(), testJob(calc.OpMul))
	defer m.cancel()

	if _, cmd := update(t, m, TickMsg(time.Now())); cmd == nil {
		t.Error("tick while running should schedule the next tick")
	}
	m, _ = update(t, m, RunCompleteMsg{})
	if _, cmd := update(t, m, TickMsg(time.Now())); cmd != nil {
		t.Error("tick after completion should stop")
	}
}

func TestRun_Headless(t *testing.T) {
	var out bytes.Buffer
	code := Run(context.Background(), testJob(calc.Operations...), Options{Out: &out, Headless: true})
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit = %d\n%s", code, out.String())
	}
	view := out.String()
	for _, want := range []string{"karatsuba", "schoolbook", "add", "mul", "sub", "match", "exit code 0"} {
		if !strings.Contains(view, want) {
			t.Errorf("output lacks %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "mismatch") || strings.Contains(view, "pending") {
		t.Errorf("unexpected row state:\n%s", view)
	}
}

func TestRun_HeadlessMismatch(t *testing.T) {
	job := testJob(calc.OpAdd)
	job.Calculators = append(job.Calculators, fixedCalculator{name: "broken", value: "7"})

	var out bytes.Buffer
	if code := Run(context.Background(), job, Options{Out: &out, Headless: true}); code != apperrors.ExitErrorMismatch {
		t.Fatalf("exit = %d, want %d\n%s", code, apperrors.ExitErrorMismatch, out.String())
	}
	if !strings.Contains(out.String(), "mismatch") {
		t.Errorf("output lacks the mismatch:\n%s", out.String())
	}
}

func TestRun_HeadlessNegative(t *testing.T) {
	job := testJob(calc.OpSub)
	job.X, job.Y = job.Y, job.X

	var out bytes.Buffer
	if code := Run(context.Background(), job, Options{Out: &out, Headless: true}); code != apperrors.ExitErrorNegative {
		t.Fatalf("exit = %d, want %d\n%s", code, apperrors.ExitErrorNegative, out.String())
	}
	if !strings.Contains(out.String(), "failed") || !strings.Contains(out.String(), "error:") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestRun_HeadlessCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	if code := Run(ctx, testJob(calc.OpMul), Options{Out: &out, Headless: true}); code != apperrors.ExitErrorCanceled {
		t.Errorf("exit = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}
