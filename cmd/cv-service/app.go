package main

import (
	"context"
	"log/slog"

	"github.com/BrettScheepers/fightsight/internal/api"
	"github.com/BrettScheepers/fightsight/internal/clients"
	"github.com/BrettScheepers/fightsight/internal/config"
	"github.com/BrettScheepers/fightsight/internal/probe"
	"github.com/BrettScheepers/fightsight/internal/telemetry"
)

// AppContext holds all constructed application dependencies shared across
// subcommands. It is built once in PersistentPreRunE and referenced by
// server.go.
type AppContext struct {
	cfg          *config.Config
	otelProvider *telemetry.Provider
	checker      *probe.Checker
	router       *api.Router
}

// buildAppContext constructs all application dependencies from cfg:
//  1. Initialises the OTEL provider (best-effort, non-fatal)
//  2. Creates one circuit breaker per dependency client
//  3. Creates the probe checker over the three platform dependencies
//  4. Creates the HTTP router
func buildAppContext(cfg *config.Config) (*AppContext, error) {
	app := &AppContext{cfg: cfg}

	// OTEL is best-effort: a missing collector must never block startup.
	// When OTLPEndpoint is empty, telemetry is disabled entirely — the
	// default for local development, where no collector is running.
	if cfg.Telemetry.OTLPEndpoint == "" {
		slog.Info("OTEL telemetry disabled (no endpoint configured)")
	} else {
		tp, err := telemetry.InitProvider(
			context.Background(),
			cfg.Telemetry.OTLPEndpoint,
			cfg.Telemetry.ServiceName,
			cfg.Telemetry.OTLPInsecure,
		)
		if err != nil {
			slog.Warn("OTEL provider init failed — telemetry disabled", "err", err)
		} else {
			app.otelProvider = tp
		}
	}

	// One circuit breaker per client so each dependency trips independently.
	pg := clients.NewPostgresClient(cfg.Deps.Postgres, clients.NewCircuitBreaker("postgres"))
	redis := clients.NewRedisClient(cfg.Deps.Redis, clients.NewCircuitBreaker("redis"))
	nats := clients.NewNATSClient(cfg.Deps.NATS, clients.NewCircuitBreaker("nats"))

	app.checker = probe.NewChecker(map[string]probe.Prober{
		"postgres": pg,
		"redis":    redis,
		"nats":     nats,
	})
	app.router = api.NewRouter(cfg.CORS, app.checker)

	return app, nil
}
