package client

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/kbukum/eventsource/client"

// metrics holds the OpenTelemetry instruments for one client. Providers
// come from the global otel registry, so an application that never
// initializes observability gets no-op instruments.
type metrics struct {
	tracer            trace.Tracer
	connects          metric.Int64Counter
	reconnects        metric.Int64Counter
	events            metric.Int64Counter
	heartbeatTimeouts metric.Int64Counter
}

func newMetrics() *metrics {
	meter := otel.Meter(instrumentationName)

	connects, _ := meter.Int64Counter("eventsource.client.connects",
		metric.WithDescription("Successful stream connections"),
	)
	reconnects, _ := meter.Int64Counter("eventsource.client.reconnects",
		metric.WithDescription("Reconnection attempts scheduled after a disconnect"),
	)
	events, _ := meter.Int64Counter("eventsource.client.events",
		metric.WithDescription("Decoded events delivered to handlers"),
	)
	heartbeatTimeouts, _ := meter.Int64Counter("eventsource.client.heartbeat_timeouts",
		metric.WithDescription("Connections aborted by the heartbeat watchdog"),
	)

	return &metrics{
		tracer:            otel.Tracer(instrumentationName),
		connects:          connects,
		reconnects:        reconnects,
		events:            events,
		heartbeatTimeouts: heartbeatTimeouts,
	}
}

// startAttempt opens a span covering one connection attempt.
func (m *metrics) startAttempt(ctx context.Context, url, connID string) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "eventsource.connect",
		trace.WithAttributes(
			attribute.String("url", url),
			attribute.String("conn_id", connID),
		),
	)
}

func (m *metrics) recordConnect(ctx context.Context) {
	m.connects.Add(ctx, 1)
}

func (m *metrics) recordReconnect(ctx context.Context) {
	m.reconnects.Add(ctx, 1)
}

func (m *metrics) recordEvent(ctx context.Context, name string) {
	m.events.Add(ctx, 1, metric.WithAttributes(attribute.String("event_name", name)))
}

func (m *metrics) recordHeartbeatTimeout(ctx context.Context) {
	m.heartbeatTimeouts.Add(ctx, 1)
}
