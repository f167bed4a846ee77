// Package telemetry bridges the statechart Trace hook to OpenTelemetry and
// provides a no-op tracer for tests.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	statechart "github.com/stateforward/go-statechart"
)

// Trace returns a statechart.Trace that opens one span per evaluator step,
// tagged with the qualified names of the elements involved. Install it with
// statechart.WithTrace:
//
//	statechart.WithTrace(machine, telemetry.Trace(otel.Tracer("statechart")))
func Trace(tracer trace.Tracer) statechart.Trace {
	return func(step string, elements ...statechart.Element) func() {
		attributes := make([]attribute.KeyValue, 0, len(elements))
		for i, element := range elements {
			attributes = append(attributes, attribute.String(
				fmt.Sprintf("statechart.element.%d", i),
				element.QualifiedName(),
			))
		}
		_, span := tracer.Start(context.Background(), step, trace.WithAttributes(attributes...))
		return func() {
			span.End()
		}
	}
}

type Provider struct {
	trace.TracerProvider
}

var (
	provider    = &Provider{}
	tracer      = &Tracer{}
	span        = &Span{}
	spanContext = trace.SpanContext{}
)

// NewProvider returns a no-op tracer provider.
func NewProvider() *Provider {
	return provider
}

func (provider *Provider) Tracer(name string, options ...trace.TracerOption) trace.Tracer {
	return tracer
}

type Tracer struct {
	trace.Tracer
}

func (tracer *Tracer) Start(ctx context.Context, name string, options ...trace.SpanStartOption) (context.Context, trace.Span) {
	return ctx, span
}

type Span struct {
	trace.Span
}

func (span *Span) End(options ...trace.SpanEndOption)                  {}
func (span *Span) AddEvent(name string, options ...trace.EventOption)  {}
func (span *Span) AddLink(link trace.Link)                             {}
func (span *Span) IsRecording() bool                                   { return false }
func (span *Span) RecordError(err error, options ...trace.EventOption) {}
func (span *Span) SetAttributes(kv ...attribute.KeyValue)              {}
func (span *Span) SetName(name string)                                 {}
func (span *Span) SetStatus(code codes.Code, description string)       {}
func (span *Span) SpanContext() trace.SpanContext                      { return spanContext }
func (span *Span) TracerProvider() trace.TracerProvider                { return provider }
