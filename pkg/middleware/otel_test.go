package middleware

import (
	"testing"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Vehmloewff/storable"
)

func TestOpenTelemetryMiddleware_DeliveryStillRuns(t *testing.T) {
	delivered := 0
	cell := storable.New(0).
		WithName("traced").
		WithMiddleware(OpenTelemetry())
	cell.Subscribe(func(_ int, initial bool) {
		if !initial {
			delivered++
		}
	})

	cell.Set(1)
	cell.Set(2)

	if delivered != 2 {
		t.Fatalf("expected 2 deliveries through the tracing middleware, got %d", delivered)
	}
}

func TestOpenTelemetryMiddleware_FilterSkipsTracing(t *testing.T) {
	extracted := 0
	delivered := 0

	cell := storable.New(0).
		WithName("noisy").
		WithMiddleware(OpenTelemetry(
			WithEventFilter(func(ev storable.Event) bool { return ev.Name != "noisy" }),
			WithAttributeExtractor(func(ev storable.Event) []attribute.KeyValue {
				extracted++
				return []attribute.KeyValue{attribute.String("test.attr", "ok")}
			}),
		))
	cell.Subscribe(func(_ int, initial bool) {
		if !initial {
			delivered++
		}
	})

	cell.Set(1)

	if delivered != 1 {
		t.Fatalf("expected delivery even when tracing is skipped, got %d", delivered)
	}
	if extracted != 0 {
		t.Fatalf("extractor must not run for filtered changes, ran %d times", extracted)
	}
}

func TestOpenTelemetryMiddleware_AttributeExtractorRuns(t *testing.T) {
	extracted := 0

	cell := storable.New(0).
		WithMiddleware(OpenTelemetry(
			WithIncludeValues(true),
			WithAttributeExtractor(func(ev storable.Event) []attribute.KeyValue {
				extracted++
				return []attribute.KeyValue{
					attribute.Int("test.new", ev.New.(int)),
				}
			}),
		))

	cell.Set(7)
	cell.Set(7) // suppressed: no event, no extraction

	if extracted != 1 {
		t.Fatalf("expected the extractor to run once per committed change, got %d", extracted)
	}
}
