package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName = "ctxflow-dataflow-engine"

	metricContextsCreated    = "context.created.total"
	metricContextsStabilised = "context.stabilised.total"
	metricContextsReclaimed  = "context.reclaimed.total"
	metricLiveContexts       = "context.live"
	metricNodeDuration       = "node.processing.duration"
	metricContextDuration    = "context.analysis.duration"
)

// Provider manages OpenTelemetry setup and provides access to tracers and meters.
type Provider struct {
	meterProvider  *sdkmetric.MeterProvider
	tracerProvider trace.TracerProvider
	meter          metric.Meter
	tracer         trace.Tracer

	contextsCreated    metric.Int64Counter
	contextsStabilised metric.Int64Counter
	contextsReclaimed  metric.Int64Counter
	liveContexts       metric.Int64UpDownCounter
	nodeDuration       metric.Float64Histogram
	contextDuration    metric.Float64Histogram

	mu sync.RWMutex
}

// Config holds telemetry configuration
type Config struct {
	// ServiceName is the name of the service for telemetry
	ServiceName string

	// ServiceVersion is the version of the service
	ServiceVersion string

	// Environment (e.g., "production", "staging", "development")
	Environment string

	// EnableTracing enables distributed tracing
	EnableTracing bool

	// EnableMetrics enables metrics collection
	EnableMetrics bool
}

// DefaultConfig returns default telemetry configuration
func DefaultConfig() Config {
	return Config{
		ServiceName:    serviceName,
		ServiceVersion: "0.1.0",
		Environment:    "development",
		EnableTracing:  true,
		EnableMetrics:  true,
	}
}

// NewProvider creates a new telemetry provider with Prometheus metrics exporter.
// It initializes OpenTelemetry with the given configuration and returns a provider
// that can be used to create tracers and record metrics.
func NewProvider(ctx context.Context, config Config) (*Provider, error) {
	provider := &Provider{}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
			attribute.String("environment", config.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	if config.EnableMetrics {
		if err := provider.initMetrics(res); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	if config.EnableTracing {
		provider.initTracing()
	}

	return provider, nil
}

// initMetrics initializes the metrics provider with a Prometheus exporter.
func (p *Provider) initMetrics(res *resource.Resource) error {
	exporter, err := prometheus.New()
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	p.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(p.meterProvider)
	p.meter = p.meterProvider.Meter(serviceName)

	if err := p.createMetricInstruments(); err != nil {
		return fmt.Errorf("failed to create metric instruments: %w", err)
	}

	return nil
}

// initTracing initializes the tracing provider. In production this should be
// configured with an exporter (OTLP, Jaeger, etc.); for now it uses whatever
// global tracer provider the host process has installed.
func (p *Provider) initTracing() {
	p.tracerProvider = otel.GetTracerProvider()
	p.tracer = p.tracerProvider.Tracer(serviceName)
}

func (p *Provider) createMetricInstruments() error {
	var err error

	p.contextsCreated, err = p.meter.Int64Counter(
		metricContextsCreated,
		metric.WithDescription("Total number of analysis contexts created"),
	)
	if err != nil {
		return err
	}

	p.contextsStabilised, err = p.meter.Int64Counter(
		metricContextsStabilised,
		metric.WithDescription("Total number of analysis contexts that reached their boundary fixpoint"),
	)
	if err != nil {
		return err
	}

	p.contextsReclaimed, err = p.meter.Int64Counter(
		metricContextsReclaimed,
		metric.WithDescription("Total number of analysis contexts reclaimed by on-the-fly memory reclamation"),
	)
	if err != nil {
		return err
	}

	p.liveContexts, err = p.meter.Int64UpDownCounter(
		metricLiveContexts,
		metric.WithDescription("Number of analysis contexts currently holding per-node tables"),
	)
	if err != nil {
		return err
	}

	p.nodeDuration, err = p.meter.Float64Histogram(
		metricNodeDuration,
		metric.WithDescription("Time spent processing one control-flow node"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	p.contextDuration, err = p.meter.Float64Histogram(
		metricContextDuration,
		metric.WithDescription("Wall-clock time from a context's creation to it reaching its boundary fixpoint"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	return nil
}

// Tracer returns the tracer for creating spans
func (p *Provider) Tracer() trace.Tracer {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tracer
}

// Meter returns the meter for recording metrics
func (p *Provider) Meter() metric.Meter {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.meter
}

// RecordContextCreated records a new context entering the live set.
func (p *Provider) RecordContextCreated(ctx context.Context, method string) {
	if p.meter == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String("method", method)}
	p.contextsCreated.Add(ctx, 1, metric.WithAttributes(attrs...))
	p.liveContexts.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordContextStabilised records a context reaching its boundary fixpoint.
func (p *Provider) RecordContextStabilised(ctx context.Context, method string) {
	if p.meter == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String("method", method)}
	p.contextsStabilised.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordContextReclaimed records a context's per-node tables being freed.
func (p *Provider) RecordContextReclaimed(ctx context.Context, method string) {
	if p.meter == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String("method", method)}
	p.contextsReclaimed.Add(ctx, 1, metric.WithAttributes(attrs...))
	p.liveContexts.Add(ctx, -1, metric.WithAttributes(attrs...))
}

// RecordNodeProcessed records the time spent transferring one control-flow
// node within one context.
func (p *Provider) RecordNodeProcessed(ctx context.Context, method string, duration time.Duration) {
	if p.meter == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String("method", method)}
	p.nodeDuration.Record(ctx, float64(duration.Microseconds())/1000.0, metric.WithAttributes(attrs...))
}

// RecordContextDuration records the time from a context's creation to it
// reaching its boundary fixpoint.
func (p *Provider) RecordContextDuration(ctx context.Context, method string, duration time.Duration) {
	if p.meter == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String("method", method)}
	p.contextDuration.Record(ctx, float64(duration.Microseconds())/1000.0, metric.WithAttributes(attrs...))
}

// Shutdown gracefully shuts down the telemetry provider
func (p *Provider) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown meter provider: %w", err)
		}
	}

	return nil
}
