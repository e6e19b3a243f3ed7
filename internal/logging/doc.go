// Package logging provides the structured logging interface used by the
// bigcalc application layers. The zerolog adapter is the production backend;
// the standard library adapter serves tests and embedders that already own a
// *log.Logger.
package logging
