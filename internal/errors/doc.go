// Package apperrors defines structured application error types and maps
// them, together with the arithmetic sentinels of the core packages, onto
// process exit codes.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Wrapping types implement Unwrap() so errors.Is() and errors.As() see the
// original cause.
package apperrors
