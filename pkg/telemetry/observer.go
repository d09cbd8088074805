package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ctxflow/dataflow/pkg/observer"
)

// TelemetryObserver implements observer.Observer and records telemetry data
// for an analysis run's context lifecycle events.
type TelemetryObserver struct {
	provider *Provider

	contextSpans      map[int64]trace.Span
	contextStartTimes map[int64]time.Time
}

// NewTelemetryObserver creates a new telemetry observer
func NewTelemetryObserver(provider *Provider) *TelemetryObserver {
	return &TelemetryObserver{
		provider:          provider,
		contextSpans:      make(map[int64]trace.Span),
		contextStartTimes: make(map[int64]time.Time),
	}
}

// OnEvent handles lifecycle events and records telemetry data
func (o *TelemetryObserver) OnEvent(ctx context.Context, event observer.Event) {
	switch event.Type {
	case observer.EventContextCreated:
		o.handleContextCreated(ctx, event)
	case observer.EventContextAnalysed:
		o.handleContextAnalysed(ctx, event)
	case observer.EventContextReclaimed:
		o.handleContextReclaimed(ctx, event)
	}
}

func (o *TelemetryObserver) handleContextCreated(ctx context.Context, event observer.Event) {
	_, span := o.provider.Tracer().Start(ctx, "context.analyse",
		trace.WithAttributes(
			attribute.String("method", event.Method),
			attribute.Int64("context.id", event.ContextID),
			attribute.String("run.id", event.RunID),
		),
	)
	o.contextSpans[event.ContextID] = span
	o.contextStartTimes[event.ContextID] = event.Timestamp

	o.provider.RecordContextCreated(ctx, event.Method)
}

func (o *TelemetryObserver) handleContextAnalysed(ctx context.Context, event observer.Event) {
	o.provider.RecordContextStabilised(ctx, event.Method)

	if started, ok := o.contextStartTimes[event.ContextID]; ok {
		o.provider.RecordContextDuration(ctx, event.Method, event.Timestamp.Sub(started))
		delete(o.contextStartTimes, event.ContextID)
	}

	span, ok := o.contextSpans[event.ContextID]
	if !ok {
		return
	}
	span.SetStatus(codes.Ok, fmt.Sprintf("context %d stabilised", event.ContextID))
	span.End()
}

func (o *TelemetryObserver) handleContextReclaimed(ctx context.Context, event observer.Event) {
	o.provider.RecordContextReclaimed(ctx, event.Method)
	delete(o.contextSpans, event.ContextID)
}
