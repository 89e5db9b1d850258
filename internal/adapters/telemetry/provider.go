// Package telemetry traces restore runs with OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
)

// OTelTracer is a concrete implementation of ports.Tracer using OpenTelemetry.
type OTelTracer struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// NewOTelTracer creates a tracer with its own provider. Ended spans are handed to
// the given processors.
func NewOTelTracer(name string, processors ...sdktrace.SpanProcessor) *OTelTracer {
	opts := make([]sdktrace.TracerProviderOption, 0, len(processors))
	for _, p := range processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}
	provider := sdktrace.NewTracerProvider(opts...)
	return &OTelTracer{
		provider: provider,
		tracer:   provider.Tracer(name),
	}
}

// Shutdown flushes and stops the span processors.
func (t *OTelTracer) Shutdown(ctx context.Context) error {
	return t.provider.Shutdown(ctx)
}

// Start creates a new span.
func (t *OTelTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	attrs := make([]attribute.KeyValue, 0, len(cfg.Attributes))
	for k, v := range cfg.Attributes {
		attrs = append(attrs, attributeFor(k, v))
	}

	ctx, span := t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))

	operationID, _ := cfg.Attributes[OperationIDAttribute].(string)
	s := &OTelSpan{span: span}
	s.diagnostics = NewDiagnosticBatcher(operationID, 0, 0, func(b DiagnosticBatch) {
		span.AddEvent(DiagnosticsEvent, trace.WithAttributes(batchAttributes(b)...))
	})
	return ctx, s
}

func batchAttributes(b DiagnosticBatch) []attribute.KeyValue {
	errs, warnings := b.Counts()
	messages := make([]string, 0, len(b.Diagnostics))
	for _, d := range b.Diagnostics {
		msg := d.Message
		if d.Code != "" {
			msg = d.Code + ": " + msg
		}
		messages = append(messages, msg)
	}
	return []attribute.KeyValue{
		attribute.String(OperationIDAttribute, b.OperationID),
		attribute.Int("restore.error_count", errs),
		attribute.Int("restore.warning_count", warnings),
		attribute.StringSlice("restore.codes", b.Codes()),
		attribute.StringSlice("restore.messages", messages),
	}
}

const (
	// OperationIDAttribute carries the restore operation id on spans and diagnostic events.
	OperationIDAttribute = "restore.operation_id"
	// DiagnosticsEvent names the span events holding batched diagnostics.
	DiagnosticsEvent = "restore.diagnostics"
)

// OTelSpan is a concrete implementation of ports.Span using OpenTelemetry.
type OTelSpan struct {
	span        trace.Span
	diagnostics *DiagnosticBatcher
}

// End flushes pending diagnostics and completes the span.
func (s *OTelSpan) End() {
	_ = s.diagnostics.Close()
	s.span.End()
}

// RecordError records an error for the span.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	s.span.SetAttributes(attributeFor(key, value))
}

// Report records d as part of a diagnostics event of the span. Diagnostics reported
// after End are dropped.
func (s *OTelSpan) Report(d domain.Diagnostic) {
	_ = s.diagnostics.Add(d)
}

func attributeFor(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case []string:
		return attribute.StringSlice(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}
