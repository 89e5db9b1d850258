package ports

import (
	"context"

	"go.trai.ch/restore/internal/core/domain"
)

// SpanConfig holds the options of a new span.
type SpanConfig struct {
	Attributes map[string]any
}

// SpanOption configures a span.
type SpanOption func(*SpanConfig)

// WithAttributes sets attributes on a span at start.
func WithAttributes(attrs map[string]any) SpanOption {
	return func(c *SpanConfig) {
		c.Attributes = attrs
	}
}

// Tracer starts spans for restore operations.
//
//go:generate mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks
type Tracer interface {
	// Start creates a span and a context carrying it.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
}

// Span is a unit of traced work.
type Span interface {
	// Report records a diagnostic produced while the span is open.
	Report(d domain.Diagnostic)
	// End completes the span.
	End()
	// RecordError marks the span as failed.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}
