// Package otel wires OpenTelemetry tracing for the command-line tools.
package otel

import (
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Vaishnavi-Vyavahare/Maid-Hiring-System/internal/platform/config"
)

// Environment variables controlling export.
const (
	EnvEndpoint = config.EnvPrefix + "OTEL_ENDPOINT"
	EnvEnabled  = config.EnvPrefix + "OTEL_ENABLED"
)

// InstrumentationName names the tracer used by the catalog tools.
const InstrumentationName = "github.com/Vaishnavi-Vyavahare/Maid-Hiring-System"

// ShutdownFunc flushes pending spans and releases the exporter.
type ShutdownFunc func(context.Context) error

// Setup initialises tracing for serviceName.
//
// Export is opt-in: when MAID_HIRING_OTEL_ENDPOINT is empty or
// MAID_HIRING_OTEL_ENABLED is "false", Setup registers nothing and returns a
// no-op shutdown.
func Setup(ctx context.Context, serviceName string) (ShutdownFunc, error) {
	noop := func(context.Context) error { return nil }

	if !Enabled() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(os.Getenv(EnvEndpoint)),
	)
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Enabled reports whether the environment asks for span export.
func Enabled() bool {
	if strings.EqualFold(strings.TrimSpace(os.Getenv(EnvEnabled)), "false") {
		return false
	}
	return strings.TrimSpace(os.Getenv(EnvEndpoint)) != ""
}

// Tracer returns the tracer of the globally registered provider. Until Setup
// registers one it is a no-op tracer.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// LogErrors routes errors raised inside the OpenTelemetry SDK, such as failed
// span exports, to logger instead of the standard library log.
func LogErrors(logger *zap.Logger) {
	if logger == nil {
		return
	}
	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
		logger.Warn("otel error", zap.Error(err))
	}))
}
