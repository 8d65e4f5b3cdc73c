package observe

import (
	"context"

	"github.com/vango-dev/elmen"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for builder spans.
const defaultTracerName = "elmen"

// Span and attribute names.
const (
	SpanName      = "elmen.build"
	AttrTag       = "elmen.tag"
	AttrOp        = "elmen.op"
	AttrStatus    = "elmen.status"
	AttrOpCount   = "elmen.op_count"
	AttrErrorOp   = "elmen.error_op"
	AttrErrorKind = "elmen.error_kind"
)

// TracingConfig configures the OpenTelemetry observer.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "elmen").
	TracerName string

	// Tracer overrides the tracer resolved from the global provider.
	Tracer trace.Tracer

	// Attributes are added to every builder span.
	Attributes []attribute.KeyValue
}

// TracingOption configures the OpenTelemetry observer.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracer sets the tracer directly.
func WithTracer(tracer trace.Tracer) TracingOption {
	return func(c *TracingConfig) {
		c.Tracer = tracer
	}
}

// WithAttributes adds attributes to every builder span.
func WithAttributes(attrs ...attribute.KeyValue) TracingOption {
	return func(c *TracingConfig) {
		c.Attributes = append(c.Attributes, attrs...)
	}
}

// Tracing is an elmen.Observer that traces builders with OpenTelemetry.
type Tracing struct {
	tracer trace.Tracer
	attrs  []attribute.KeyValue
}

var _ elmen.Observer = (*Tracing)(nil)

// NewTracing creates the tracing observer. Without WithTracer it uses the
// global OpenTelemetry tracer provider, so configure it before building:
//
//	otel.SetTracerProvider(tp)
func NewTracing(opts ...TracingOption) *Tracing {
	config := TracingConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Tracer == nil {
		config.Tracer = otel.Tracer(config.TracerName)
	}
	return &Tracing{tracer: config.Tracer, attrs: config.Attributes}
}

// Begin implements elmen.Observer.
func (t *Tracing) Begin(ctx context.Context, tag string) elmen.Span {
	attrs := append([]attribute.KeyValue{attribute.String(AttrTag, tag)}, t.attrs...)
	ctx, span := t.tracer.Start(ctx, SpanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	return &traceSpan{ctx: ctx, span: span}
}

type traceSpan struct {
	ctx   context.Context
	span  trace.Span
	ops   int
	ended bool
}

var _ elmen.ContextSpan = (*traceSpan)(nil)

// Context returns the context holding the builder span.
func (s *traceSpan) Context() context.Context { return s.ctx }

func (s *traceSpan) Op(name string, err error) {
	s.ops++
	s.span.AddEvent(name, trace.WithAttributes(
		attribute.String(AttrOp, name),
		attribute.String(AttrStatus, status(err)),
	))
	if err != nil {
		s.span.RecordError(err, trace.WithAttributes(
			attribute.String(AttrErrorOp, name),
			attribute.String(AttrErrorKind, kindLabel(err)),
		))
	}
}

func (s *traceSpan) End(err error) {
	if s.ended {
		return
	}
	s.ended = true
	if err != nil {
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.SetAttributes(attribute.Int(AttrOpCount, s.ops))
	s.span.End()
}
