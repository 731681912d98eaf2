package middleware

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Vehmloewff/storable"
)

// Default tracer name for storable cells.
const defaultTracerName = "storable"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "storable").
	TracerName string

	// IncludeValues records the old and new values as span attributes.
	// May contain sensitive information - disabled by default.
	IncludeValues bool

	// Filter determines which changes to trace.
	// Return true to trace the change, false to skip.
	// If nil, all changes are traced.
	Filter func(ev storable.Event) bool

	// AttributeExtractor extracts custom attributes from the event.
	// Called for each traced change.
	AttributeExtractor func(ev storable.Event) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithIncludeValues enables recording old and new values on spans.
func WithIncludeValues(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeValues = include
	}
}

// WithEventFilter sets a filter function for changes.
func WithEventFilter(filter func(ev storable.Event) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ev storable.Event) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// defaultOTelConfig returns the default OpenTelemetry configuration.
func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:    defaultTracerName,
		IncludeValues: false,
		Filter:        nil,
	}
}

// OpenTelemetry creates middleware that traces every notification pass.
//
// The middleware:
//   - Creates a span per pass named after the cell
//   - Records cell id, cell name, and subscriber count as attributes
//   - Optionally records the old and new values (WithIncludeValues)
//
// Passes are synchronous and have no inbound context, so spans are roots.
//
// The tracer comes from the global OpenTelemetry tracer provider. Configure
// it in your main() before creating cells:
//
//	tp := sdktrace.NewTracerProvider(
//	    sdktrace.WithBatcher(exporter),
//	)
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) storable.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// Resolve tracer from global provider
	config.tracer = otel.Tracer(config.TracerName)

	return func(ev storable.Event, next func()) {
		// Apply filter if configured
		if config.Filter != nil && !config.Filter(ev) {
			next()
			return
		}

		// Build span attributes
		attrs := []attribute.KeyValue{
			attribute.Int64("storable.cell_id", int64(ev.ID)),
			attribute.Int("storable.subscribers", ev.Subscribers),
		}
		if ev.Name != "" {
			attrs = append(attrs, attribute.String("storable.cell_name", ev.Name))
		}
		if config.IncludeValues {
			attrs = append(attrs,
				attribute.String("storable.old_value", fmt.Sprintf("%v", ev.Old)),
				attribute.String("storable.new_value", fmt.Sprintf("%v", ev.New)),
			)
		}

		// Add custom attributes
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(ev)...)
		}

		_, span := config.tracer.Start(
			context.Background(),
			formatSpanName(ev),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		next()

		span.SetStatus(codes.Ok, "")
	}
}

// formatSpanName creates a span name from the event. Names stay bounded:
// unnamed cells share one span name.
func formatSpanName(ev storable.Event) string {
	if ev.Name == "" {
		return "storable.notify"
	}
	return fmt.Sprintf("storable.notify %s", ev.Name)
}
