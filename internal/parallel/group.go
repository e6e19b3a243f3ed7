package parallel

import (
	"runtime"
	"runtime/debug"
	"sync"

	"golang.org/x/sync/semaphore"
)

// ─────────────────────────────────────────────────────────────────────────────
// Task Limiter
// ─────────────────────────────────────────────────────────────────────────────

// Limiter bounds the number of concurrently running spawned tasks.
// A nil Limiter, or one created with a limit <= 0, is unbounded.
type Limiter struct {
	sem   *semaphore.Weighted
	limit int
}

// NewLimiter creates a limiter allowing at most limit live tasks.
// limit <= 0 means unbounded.
func NewLimiter(limit int) *Limiter {
	if limit <= 0 {
		return &Limiter{}
	}
	return &Limiter{sem: semaphore.NewWeighted(int64(limit)), limit: limit}
}

// DefaultTaskLimit returns the task bound used by DefaultLimiter.
func DefaultTaskLimit() int {
	return runtime.GOMAXPROCS(0) * 4
}

var (
	defaultLimiter     *Limiter
	defaultLimiterOnce sync.Once
)

// DefaultLimiter returns the process-wide limiter, sized by DefaultTaskLimit.
func DefaultLimiter() *Limiter {
	defaultLimiterOnce.Do(func() {
		defaultLimiter = NewLimiter(DefaultTaskLimit())
	})
	return defaultLimiter
}

// Limit returns the configured bound, or 0 when unbounded.
func (l *Limiter) Limit() int {
	if l == nil {
		return 0
	}
	return l.limit
}

// TryAcquire reserves a task slot without blocking.
func (l *Limiter) TryAcquire() bool {
	if l == nil || l.sem == nil {
		return true
	}
	return l.sem.TryAcquire(1)
}

// Release frees a slot obtained from TryAcquire.
func (l *Limiter) Release() {
	if l == nil || l.sem == nil {
		return
	}
	l.sem.Release(1)
}

// ─────────────────────────────────────────────────────────────────────────────
// Spawn / Join
// ─────────────────────────────────────────────────────────────────────────────

// Group runs work functions either on new goroutines or inline, depending on
// slot availability, and joins them with Wait. A Group must not be copied or
// reused after Wait.
type Group struct {
	limiter *Limiter
	wg      sync.WaitGroup
	errs    ErrorCollector
	spawned int
	inline  int
}

// NewGroup returns a Group scheduling through l.
func NewGroup(l *Limiter) *Group {
	return &Group{limiter: l}
}

// Go runs fn. When the limiter grants a slot fn runs on its own goroutine,
// otherwise it runs to completion before Go returns.
func (g *Group) Go(fn func()) {
	if !g.limiter.TryAcquire() {
		g.inline++
		fn()
		return
	}
	g.spawned++
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer g.limiter.Release()
		defer func() {
			if r := recover(); r != nil {
				g.errs.SetError(&PanicError{Value: r, Stack: debug.Stack()})
			}
		}()
		fn()
	}()
}

// Wait blocks until every spawned function has returned. It reports the first
// panic recovered from a spawned function as a *PanicError.
func (g *Group) Wait() error {
	g.wg.Wait()
	return g.errs.Err()
}

// Stats reports how many functions were spawned and how many ran inline.
// Only meaningful from the goroutine that calls Go.
func (g *Group) Stats() (spawned, inline int) {
	return g.spawned, g.inline
}
