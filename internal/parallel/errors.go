package parallel

import (
	"fmt"
	"sync"
)

// ErrorCollector records the first non-nil error reported by concurrent
// goroutines. The zero value is ready to use.
type ErrorCollector struct {
	mu  sync.Mutex
	err error
}

// SetError stores err if it is the first non-nil error seen.
func (c *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.mu.Unlock()
}

// Err returns the first recorded error, or nil.
func (c *ErrorCollector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// PanicError carries a panic recovered from a spawned task so it can be
// re-raised in the joining goroutine.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in spawned task: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
