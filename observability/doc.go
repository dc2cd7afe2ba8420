// Package observability provides OpenTelemetry tracing and metrics integration
// for comprehensive service observability.
//
// Tracing:
//
//	cfg := observability.DefaultTracerConfig("renderd")
//	tp, err := observability.InitTracer(ctx, &cfg)
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanGenerate)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, &meterCfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("renderd"))
//	metrics.RecordStage(ctx, "comfy", "poll", "ok", duration)
//
// Health Checks:
//
//	health := observability.NewServiceHealth("renderd", "1.0.0")
//	health.AddComponent(observability.Health{Name: "comfy", Status: observability.HealthStatusUp})
package observability
