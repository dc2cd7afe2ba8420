// Package bootstrap assembles a generation service from configuration:
// logging, optional OTLP telemetry, and a backend manager with every
// enabled backend registered and initialized.
//
// Typical usage:
//
//	cfg, err := bootstrap.Load()
//	app, err := bootstrap.NewApp(ctx, cfg)
//	backend, err := app.Manager.Get(ctx)
//	outcome, err := backend.Generate(ctx, req)
//	defer app.Shutdown(ctx)
package bootstrap
