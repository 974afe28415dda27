package trace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// EnvEndpoint names the environment variable that enables export when no
// endpoint is configured.
const EnvEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"

// DefaultServiceName is the service name reported when none is configured.
const DefaultServiceName = "menukit"

// ErrNoEndpoint is returned when tracing is enabled without an endpoint.
var ErrNoEndpoint = errors.New("trace: enabled but no otlp endpoint configured")

// Config selects where spans are exported.
type Config struct {
	Enabled     bool
	ServiceName string
	Endpoint    string
}

// Provider owns an OTLP tracer provider.
type Provider struct {
	provider *sdktrace.TracerProvider
}

// NewProvider creates an OTLP/HTTP provider. Tracing is on when cfg.Enabled
// is set or OTEL_EXPORTER_OTLP_ENDPOINT is present; the endpoint comes from
// cfg first. It returns a nil Provider when tracing is off.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	env := os.Getenv(EnvEndpoint)
	if !cfg.Enabled && env == "" {
		return nil, nil
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = env
	}
	if endpoint == "" {
		return nil, ErrNoEndpoint
	}

	// A bare host:port is sent over plain HTTP.
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpointURL(endpoint)}
	if !strings.Contains(endpoint, "://") {
		opts = []otlptracehttp.Option{
			otlptracehttp.WithEndpoint(endpoint),
			otlptracehttp.WithInsecure(),
		}
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating otlp exporter: %w", err)
	}

	name := cfg.ServiceName
	if name == "" {
		name = os.Getenv("OTEL_SERVICE_NAME")
	}
	if name == "" {
		name = DefaultServiceName
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(name),
	)

	return &Provider{
		provider: sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
		),
	}, nil
}

// Tracer returns the tracer used by Recorder.
func (p *Provider) Tracer() oteltrace.Tracer {
	return p.provider.Tracer(TracerName)
}

// Shutdown flushes and closes the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
