package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Generation tracks one generation invocation end to end: it owns the
// invocation span and the request-level metrics.
type Generation struct {
	Backend   string
	StartTime time.Time
	Metrics   *Metrics

	span trace.Span
}

// StartGeneration opens the invocation span and starts the clock.
// A nil Metrics silently skips metric recording.
func StartGeneration(ctx context.Context, backend string, metrics *Metrics) (context.Context, *Generation) {
	ctx, span := StartSpan(ctx, SpanGenerate)
	span.SetAttributes(attribute.String(AttrBackend, backend))
	if metrics != nil {
		metrics.RecordRequestStart(ctx)
	}
	return ctx, &Generation{
		Backend:   backend,
		StartTime: time.Now(),
		Metrics:   metrics,
		span:      span,
	}
}

// SetPromptID attaches the remote job identifier once it is known.
func (g *Generation) SetPromptID(id string) {
	if id != "" {
		g.span.SetAttributes(attribute.String(AttrPromptID, id))
	}
}

// End closes the span and records the end-to-end request metric.
func (g *Generation) End(ctx context.Context, status string, err error) {
	duration := time.Since(g.StartTime)

	if err != nil {
		g.span.RecordError(err)
		g.span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	}
	g.span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	g.span.End()

	if g.Metrics != nil {
		g.Metrics.RecordRequestEnd(ctx, g.Backend, "generate", status, duration)
	}
}

// Duration returns the elapsed time since the invocation started.
func (g *Generation) Duration() time.Duration {
	return time.Since(g.StartTime)
}
