package observability

import (
	"context"
	"testing"
	"time"
)

func TestDefaultConfigs(t *testing.T) {
	tc := DefaultTracerConfig("svc")
	if tc.ServiceName != "svc" || tc.Endpoint == "" || tc.SampleRate != 1.0 {
		t.Errorf("tracer config = %+v", tc)
	}

	mc := DefaultMeterConfig("svc")
	if mc.ServiceName != "svc" || mc.Interval <= 0 {
		t.Errorf("meter config = %+v", mc)
	}
}

func TestInitTracerAndMeter(t *testing.T) {
	// The OTLP/HTTP exporters do not dial until the first export, so
	// initialization succeeds without a collector listening.
	ctx := context.Background()
	shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	tp, err := InitTracer(ctx, DefaultTracerConfig("svc"))
	if err != nil {
		t.Fatalf("InitTracer: %v", err)
	}
	defer func() { _ = tp.Shutdown(shutdownCtx) }()

	mp, err := InitMeter(ctx, DefaultMeterConfig("svc"))
	if err != nil {
		t.Fatalf("InitMeter: %v", err)
	}
	defer func() { _ = mp.Shutdown(shutdownCtx) }()

	_, span := StartSpan(ctx, "test")
	span.End()
}
