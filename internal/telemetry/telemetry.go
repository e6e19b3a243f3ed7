// Package telemetry installs an OpenTelemetry tracer provider that writes
// finished spans as JSON. Without Setup, spans go to the global no-op
// provider.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ServiceName identifies bigcalc spans.
const ServiceName = "bigcalc"

// ErrNilWriter is returned by Setup when no destination is given.
var ErrNilWriter = errors.New("telemetry: nil writer")

// Setup registers a global tracer provider exporting spans to w and returns
// the function that flushes and stops it. Call shutdown before exiting or
// buffered spans are lost.
//
// Example:
//
//	shutdown, err := telemetry.Setup(os.Stderr, version)
//	if err != nil {
//	    return err
//	}
//	defer shutdown(context.Background())
func Setup(w io.Writer, version string) (shutdown func(context.Context) error, err error) {
	tp, err := NewProvider(w, version)
	if err != nil {
		return nil, err
	}
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// NewProvider builds the provider used by Setup without registering it.
func NewProvider(w io.Writer, version string) (*sdktrace.TracerProvider, error) {
	if w == nil {
		return nil, ErrNilWriter
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("create exporter: %w", err)
	}
	res := resource.NewWithAttributes(
		"",
		attribute.String("service.name", ServiceName),
		attribute.String("service.version", version),
	)
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	), nil
}
