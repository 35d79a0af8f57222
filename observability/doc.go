// Package observability bootstraps OpenTelemetry tracing and metrics
// export for applications embedding the eventsource toolkit.
//
// InitTracer and InitMeter install global OTLP/HTTP providers; the
// client package picks them up through the global otel API and records
// connection spans and stream counters without further wiring.
package observability
