// Package trace records menu interactions as OpenTelemetry spans and
// exports them over OTLP.
package trace

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"menukit/internal/binder"
	"menukit/internal/menu"
)

// TracerName is the instrumentation scope of menu spans.
const TracerName = "menukit/menu"

// SpanOpen is the name of the span covering one expanded period.
const SpanOpen = "menu.open"

// Recorder is a binder.Observer that opens a span when the menu expands, adds
// an event per selection and ends the span when the menu collapses.
type Recorder struct {
	tracer oteltrace.Tracer
	ctx    context.Context

	mu   sync.Mutex
	span oteltrace.Span
}

var _ binder.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder. Spans are parented to ctx.
func NewRecorder(ctx context.Context, tracer oteltrace.Tracer) *Recorder {
	return &Recorder{tracer: tracer, ctx: ctx}
}

func (r *Recorder) OnExpand(s menu.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.span != nil {
		r.span.End()
	}
	_, r.span = r.tracer.Start(r.ctx, SpanOpen,
		oteltrace.WithAttributes(
			attribute.String("menu.id", s.MenuID),
			attribute.String("menu.button.id", s.ButtonID),
			attribute.Int("menu.items", len(s.Items)),
		),
	)
}

func (r *Recorder) OnSelect(sel menu.Selection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.span == nil {
		return
	}
	r.span.AddEvent("select", oteltrace.WithAttributes(
		attribute.Int("menu.active", sel.Active),
		attribute.String("menu.value", sel.Value),
	))
	r.span.SetAttributes(attribute.Bool("menu.selected", true))
}

func (r *Recorder) OnCollapse(s menu.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.span == nil {
		return
	}
	r.span.SetAttributes(attribute.Int("menu.active", s.Active))
	r.span.SetStatus(codes.Ok, "")
	r.span.End()
	r.span = nil
}

// Flush ends a span left open by a menu that never collapsed.
func (r *Recorder) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.span != nil {
		r.span.SetAttributes(attribute.Bool("menu.abandoned", true))
		r.span.End()
		r.span = nil
	}
}
