// Package format turns durations, byte counts, digit strings and completion
// counts into display strings. Functions here perform no I/O.
package format
