// Package orchestration runs one operation across several calculators
// concurrently and aggregates the results for comparison. It decouples the
// drivers from presentation through the ProgressReporter and ResultPresenter
// interfaces.
package orchestration
