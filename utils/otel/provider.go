package otel

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config holds OpenTelemetry initialization settings.
type Config struct {
	ServiceName  string
	OTLPEndpoint string
	Enabled      bool
}

// ConfigFromEnv reads OTel settings from the environment.
func ConfigFromEnv() Config {
	enabled := true
	switch strings.ToLower(os.Getenv("OTEL_ENABLED")) {
	case "false", "0", "no":
		enabled = false
	}

	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "csrf-hub"
	}

	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:4318"
	}

	return Config{
		ServiceName:  serviceName,
		OTLPEndpoint: endpoint,
		Enabled:      enabled,
	}
}

// noopShutdown is returned when OTel is disabled or init fails.
func noopShutdown(context.Context) error { return nil }

// InitProvider sets up trace and log providers exporting via OTLP/HTTP
// and installs them globally. The returned shutdown function flushes
// both providers.
func InitProvider(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return noopShutdown, nil
	}

	endpoint, insecure, err := parseEndpoint(cfg.OTLPEndpoint)
	if err != nil {
		return noopShutdown, err
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
	)

	traceOpts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpoint)}
	if insecure {
		traceOpts = append(traceOpts, otlptracehttp.WithInsecure())
	}
	traceExporter, err := otlptracehttp.New(ctx, traceOpts...)
	if err != nil {
		return noopShutdown, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	logOpts := []otlploghttp.Option{otlploghttp.WithEndpoint(endpoint)}
	if insecure {
		logOpts = append(logOpts, otlploghttp.WithInsecure())
	}
	logExporter, err := otlploghttp.New(ctx, logOpts...)
	if err != nil {
		return noopShutdown, fmt.Errorf("failed to create log exporter: %w", err)
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	loggerProvider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
		sdklog.WithResource(res),
	)
	global.SetLoggerProvider(loggerProvider)

	return func(ctx context.Context) error {
		return errors.Join(
			tracerProvider.Shutdown(ctx),
			loggerProvider.Shutdown(ctx),
		)
	}, nil
}

// parseEndpoint splits an OTLP endpoint URL into host:port and a
// scheme-derived insecure flag.
func parseEndpoint(raw string) (string, bool, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false, fmt.Errorf("invalid OTLP endpoint %q: %w", raw, err)
	}
	if u.Host == "" {
		return "", false, fmt.Errorf("invalid OTLP endpoint %q: missing host", raw)
	}
	return u.Host, u.Scheme != "https", nil
}
