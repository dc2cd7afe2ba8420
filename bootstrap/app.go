package bootstrap

import (
	"context"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/storyforge/renderkit/logger"
	"github.com/storyforge/renderkit/observability"
	"github.com/storyforge/renderkit/provider"
	"github.com/storyforge/renderkit/render"
	"github.com/storyforge/renderkit/render/comfy"
	"github.com/storyforge/renderkit/render/runpod"
	"github.com/storyforge/renderkit/version"
)

// App wires configuration, logging, telemetry, and the backend manager
// for a generation service.
type App struct {
	Cfg     *Config
	Logger  *logger.Logger
	Manager *provider.Manager[render.Provider]
	Metrics *observability.Metrics

	tracer *sdktrace.TracerProvider
	meter  *sdkmetric.MeterProvider
}

// NewApp builds a ready-to-use application from configuration: it
// validates the config, initializes logging and optional telemetry, and
// registers every enabled backend with the manager.
func NewApp(ctx context.Context, cfg *Config, opts ...Option) (*App, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	app := &App{Cfg: cfg}

	o := resolveOptions(opts)
	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(cfg.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	app.Logger.Info("starting", logger.Fields(
		"service", cfg.Name,
		"version", version.Short(),
		"environment", cfg.Environment,
	))

	if cfg.Telemetry.Enabled {
		if err := app.initTelemetry(ctx); err != nil {
			return nil, err
		}
	}

	if err := app.initBackends(); err != nil {
		return nil, err
	}
	return app, nil
}

func (a *App) initTelemetry(ctx context.Context) error {
	tcfg := observability.DefaultTracerConfig(a.Cfg.Name)
	tcfg.ServiceVersion = version.Version
	tcfg.Environment = a.Cfg.Environment
	tcfg.Insecure = a.Cfg.Telemetry.Insecure
	if a.Cfg.Telemetry.Endpoint != "" {
		tcfg.Endpoint = a.Cfg.Telemetry.Endpoint
	}
	tp, err := observability.InitTracer(ctx, &tcfg)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	a.tracer = tp

	mcfg := observability.DefaultMeterConfig(a.Cfg.Name)
	mcfg.ServiceVersion = version.Version
	mcfg.Environment = a.Cfg.Environment
	mcfg.Insecure = a.Cfg.Telemetry.Insecure
	if a.Cfg.Telemetry.Endpoint != "" {
		mcfg.Endpoint = a.Cfg.Telemetry.Endpoint
	}
	mp, err := observability.InitMeter(ctx, &mcfg)
	if err != nil {
		return fmt.Errorf("init meter: %w", err)
	}
	a.meter = mp

	metrics, err := observability.NewMetrics(observability.Meter(a.Cfg.Name))
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	a.Metrics = metrics
	return nil
}

func (a *App) initBackends() error {
	var m *provider.Manager[render.Provider]
	if a.Cfg.Selector == SelectorHealth {
		m = render.NewManager(render.WithSelector(&provider.HealthCheckSelector[render.Provider]{}))
	} else {
		m = render.NewManager()
	}

	if a.Cfg.ComfyEnabled() {
		cfg := a.Cfg.Comfy
		m.Register(comfy.ProviderName, func(_ map[string]any) (render.Provider, error) {
			p, err := comfy.NewProvider(cfg)
			if err != nil {
				return nil, err
			}
			if a.Metrics != nil {
				p.WithMetrics(a.Metrics)
			}
			return p, nil
		})
		if err := m.Initialize(comfy.ProviderName, nil); err != nil {
			return err
		}
	}

	if a.Cfg.RunpodEnabled() {
		cfg := a.Cfg.Runpod
		m.Register(runpod.ProviderName, func(_ map[string]any) (render.Provider, error) {
			p, err := runpod.NewProvider(cfg)
			if err != nil {
				return nil, err
			}
			if a.Metrics != nil {
				p.WithMetrics(a.Metrics)
			}
			return p, nil
		})
		if err := m.Initialize(runpod.ProviderName, nil); err != nil {
			return err
		}
	}

	a.Manager = m
	return nil
}

// Health probes every initialized backend and reports aggregate
// service health. An unreachable backend degrades the service while a
// fallback remains; all backends unreachable takes it down.
func (a *App) Health(ctx context.Context) *observability.ServiceHealth {
	sh := observability.NewServiceHealth(a.Cfg.Name, version.Short())

	for _, name := range a.Manager.Available() {
		p, err := a.Manager.GetByName(name)
		if err != nil {
			continue
		}
		component := observability.Health{Name: name, Status: observability.HealthStatusUp}
		if !p.IsAvailable(ctx) {
			component.Status = observability.HealthStatusDown
			component.Message = "backend unreachable"
		}
		sh.AddComponent(component)
	}
	return sh
}

// Shutdown flushes and stops the telemetry providers.
func (a *App) Shutdown(ctx context.Context) error {
	var firstErr error
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if a.meter != nil {
		if err := a.meter.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
