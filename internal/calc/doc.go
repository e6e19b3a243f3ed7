// Package calc exposes the arithmetic engine behind a Calculator interface
// so that the drivers (CLI, REPL, HTTP server, calibration) can run, compare
// and instrument several multiplication algorithms uniformly.
//
// Every Calculator shares the addition and subtraction of bigunsigned; they
// differ only in how products are formed:
//
//   - "karatsuba": the adaptive four-tier engine with parallel recursion.
//   - "sequential": the same engine with parallel recursion disabled.
//   - "schoolbook": the quadratic long multiplication, kept as a reference.
//
// Instrumented wraps any Calculator with timeout handling, tracing, metrics
// and debug logging.
package calc
