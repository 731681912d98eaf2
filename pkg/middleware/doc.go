// Package middleware provides production-grade observability middleware for
// storable cells.
//
// This package includes:
//   - Prometheus metrics middleware
//   - OpenTelemetry tracing middleware
//   - slog change logging middleware
//
// All of them return a storable.Middleware and attach to a cell with
// WithMiddleware:
//
//	count := storable.New(0).
//	    WithName("jobs_in_flight").
//	    WithMiddleware(
//	        middleware.Prometheus(),
//	        middleware.Logger(nil),
//	    )
//
// Cells only invoke middleware for committed changes, so suppressed sets
// cost nothing and never show up in metrics or traces.
//
// # Prometheus Metrics
//
// The Prometheus middleware collects:
//   - storable_sets_total: Counter of committed changes per cell
//   - storable_notify_duration_seconds: Histogram of notification pass duration
//   - storable_pass_subscribers: Gauge of subscribers seen by the latest pass
//
// Metrics are labeled by cell name; give metered cells a WithName or they
// all share the "unnamed" label. Expose them the usual way:
//
//	http.Handle("/metrics", promhttp.Handler())
//	go http.ListenAndServe(":9090", nil)
//
// # OpenTelemetry
//
// The OpenTelemetry middleware starts a span per notification pass using
// the global tracer provider. Configure the provider in main() before
// creating cells:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
package middleware
