package parallel

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLimiterUnbounded(t *testing.T) {
	t.Parallel()
	for _, l := range []*Limiter{nil, NewLimiter(0), NewLimiter(-3)} {
		for range 100 {
			if !l.TryAcquire() {
				t.Fatal("unbounded limiter refused a slot")
			}
		}
		l.Release()
		if l.Limit() != 0 {
			t.Errorf("Limit() = %d, want 0", l.Limit())
		}
	}
}

func TestLimiterBounded(t *testing.T) {
	t.Parallel()
	l := NewLimiter(2)
	if !l.TryAcquire() || !l.TryAcquire() {
		t.Fatal("expected two slots")
	}
	if l.TryAcquire() {
		t.Fatal("third slot granted past the limit")
	}
	l.Release()
	if !l.TryAcquire() {
		t.Fatal("slot not returned by Release")
	}
}

func TestDefaultLimiterIsShared(t *testing.T) {
	t.Parallel()
	if DefaultLimiter() != DefaultLimiter() {
		t.Error("DefaultLimiter returned different instances")
	}
	if DefaultLimiter().Limit() != DefaultTaskLimit() {
		t.Errorf("DefaultLimiter().Limit() = %d, want %d", DefaultLimiter().Limit(), DefaultTaskLimit())
	}
}

func TestGroupRunsInlineWhenSaturated(t *testing.T) {
	t.Parallel()
	l := NewLimiter(1)
	if !l.TryAcquire() {
		t.Fatal("could not take the only slot")
	}
	defer l.Release()

	g := NewGroup(l)
	ran := false
	g.Go(func() { ran = true })
	// Inline execution completes before Go returns.
	if !ran {
		t.Fatal("function did not run inline while the limiter was saturated")
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if spawned, inline := g.Stats(); spawned != 0 || inline != 1 {
		t.Errorf("Stats() = (%d, %d), want (0, 1)", spawned, inline)
	}
}

func TestGroupSpawnsAndJoins(t *testing.T) {
	t.Parallel()
	g := NewGroup(NewLimiter(0))
	var n atomic.Int64
	for range 50 {
		g.Go(func() {
			time.Sleep(time.Millisecond)
			n.Add(1)
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if n.Load() != 50 {
		t.Errorf("completed %d of 50 tasks", n.Load())
	}
}

// TestNestedGroupsDoNotDeadlock recurses far deeper than the limiter allows;
// every level past the bound must fall back to inline execution.
func TestNestedGroupsDoNotDeadlock(t *testing.T) {
	t.Parallel()
	l := NewLimiter(3)
	var leaves atomic.Int64

	var walk func(depth int)
	walk = func(depth int) {
		if depth == 0 {
			leaves.Add(1)
			return
		}
		g := NewGroup(l)
		g.Go(func() { walk(depth - 1) })
		g.Go(func() { walk(depth - 1) })
		if err := g.Wait(); err != nil {
			t.Error(err)
		}
	}

	done := make(chan struct{})
	go func() {
		walk(10)
		close(done)
	}()

	select {
	case <-done:
		if leaves.Load() != 1<<10 {
			t.Errorf("leaves = %d, want %d", leaves.Load(), 1<<10)
		}
	case <-time.After(30 * time.Second):
		t.Fatal("DEADLOCK: nested groups did not complete")
	}
}

func TestGroupCapturesPanic(t *testing.T) {
	t.Parallel()
	sentinel := errors.New("boom")
	g := NewGroup(NewLimiter(0))
	g.Go(func() { panic(sentinel) })
	err := g.Wait()

	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("Wait() = %v, want *PanicError", err)
	}
	if !errors.Is(err, sentinel) {
		t.Errorf("PanicError does not unwrap to the panic value")
	}
	if len(pe.Stack) == 0 {
		t.Error("PanicError has no stack")
	}
}

func TestGroupReleasesSlots(t *testing.T) {
	t.Parallel()
	l := NewLimiter(2)
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g := NewGroup(l)
			g.Go(func() { time.Sleep(100 * time.Microsecond) })
			_ = g.Wait()
		}()
	}
	wg.Wait()
	if !l.TryAcquire() || !l.TryAcquire() {
		t.Error("slots leaked after all groups joined")
	}
}
