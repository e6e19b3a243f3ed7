package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the logging interface shared by the application layers.
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
	Debug(msg string, fields ...Field)
	Printf(format string, v ...any)
	Println(v ...any)
}

// Field is a structured key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// String returns a string field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int returns an int field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Uint64 returns a uint64 field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 returns a float64 field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Bool returns a bool field.
func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

// Duration returns a duration field.
func Duration(key string, value time.Duration) Field { return Field{Key: key, Value: value} }

// Err returns an error field under the "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// ─────────────────────────────────────────────────────────────────────────────
// Zerolog Adapter
// ─────────────────────────────────────────────────────────────────────────────

// ZerologAdapter implements Logger on top of a zerolog.Logger.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewDefaultLogger returns a console logger writing to stderr.
func NewDefaultLogger() *ZerologAdapter {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return &ZerologAdapter{logger: zerolog.New(out).With().Timestamp().Logger()}
}

// NewLogger returns a JSON logger writing to w, tagging every entry with
// the given component name.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	return &ZerologAdapter{
		logger: zerolog.New(w).With().Timestamp().Str("component", component).Logger(),
	}
}

// Zerolog exposes the underlying logger for packages that log natively.
func (l *ZerologAdapter) Zerolog() zerolog.Logger { return l.logger }

func (l *ZerologAdapter) Info(msg string, fields ...Field) {
	applyFields(l.logger.Info(), fields).Msg(msg)
}

func (l *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	applyFields(l.logger.Error().Err(err), fields).Msg(msg)
}

func (l *ZerologAdapter) Debug(msg string, fields ...Field) {
	applyFields(l.logger.Debug(), fields).Msg(msg)
}

func (l *ZerologAdapter) Printf(format string, v ...any) {
	l.logger.Info().Msgf(format, v...)
}

func (l *ZerologAdapter) Println(v ...any) {
	l.logger.Info().Msg(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

func applyFields(e *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			e = e.Str(f.Key, v)
		case int:
			e = e.Int(f.Key, v)
		case int64:
			e = e.Int64(f.Key, v)
		case uint64:
			e = e.Uint64(f.Key, v)
		case float64:
			e = e.Float64(f.Key, v)
		case bool:
			e = e.Bool(f.Key, v)
		case time.Duration:
			e = e.Dur(f.Key, v)
		case error:
			e = e.AnErr(f.Key, v)
		default:
			e = e.Interface(f.Key, v)
		}
	}
	return e
}

// ─────────────────────────────────────────────────────────────────────────────
// Standard Library Adapter
// ─────────────────────────────────────────────────────────────────────────────

// StdLoggerAdapter implements Logger on top of a *log.Logger, rendering
// fields as key=value pairs.
type StdLoggerAdapter struct {
	logger *log.Logger
}

// NewStdLoggerAdapter wraps a standard library logger.
func NewStdLoggerAdapter(logger *log.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: logger}
}

func (l *StdLoggerAdapter) Info(msg string, fields ...Field) {
	l.logger.Println("[INFO]", msg+formatFields(fields))
}

func (l *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	l.logger.Println("[ERROR]", msg+formatFields(append([]Field{Err(err)}, fields...)))
}

func (l *StdLoggerAdapter) Debug(msg string, fields ...Field) {
	l.logger.Println("[DEBUG]", msg+formatFields(fields))
}

func (l *StdLoggerAdapter) Printf(format string, v ...any) { l.logger.Printf(format, v...) }

func (l *StdLoggerAdapter) Println(v ...any) { l.logger.Println(v...) }

func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&sb, " %s=%v", f.Key, f.Value)
	}
	return sb.String()
}
