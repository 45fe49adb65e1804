package clients

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sony/gobreaker"

	"github.com/BrettScheepers/fightsight/internal/config"
	"github.com/BrettScheepers/fightsight/internal/probe"
)

const postgresProbeName = "postgres"

// dbPinger abstracts the pgxpool.Pool methods used in Probe so that tests
// can inject a fake without standing up a real database.
type dbPinger interface {
	Ping(ctx context.Context) error
	Close()
}

// PostgresClient probes the analysis-metadata database. The pool is opened
// lazily per probe and closed afterwards; the service holds no long-lived
// database connection.
type PostgresClient struct {
	cfg     config.PostgresConfig
	cb      *gobreaker.CircuitBreaker
	connect func(ctx context.Context, cfg config.PostgresConfig) (dbPinger, error)
}

// NewPostgresClient creates a PostgresClient. No connection is made at
// construction time.
func NewPostgresClient(cfg config.PostgresConfig, cb *gobreaker.CircuitBreaker) *PostgresClient {
	return &PostgresClient{
		cfg:     cfg,
		cb:      cb,
		connect: realConnect,
	}
}

// Probe opens a pool and pings the server. The attempt is wrapped in the
// circuit breaker; after 3 consecutive failures the breaker opens and
// subsequent probes fail fast with "circuit open".
func (c *PostgresClient) Probe(ctx context.Context) probe.Result {
	start := time.Now()

	_, err := c.cb.Execute(func() (any, error) {
		pool, err := c.connect(ctx, c.cfg)
		if err != nil {
			return nil, fmt.Errorf("connect: %w", err)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			return nil, fmt.Errorf("ping: %w", err)
		}
		return nil, nil
	})

	latency := time.Since(start).Milliseconds()

	if err != nil {
		errMsg := err.Error()
		if errors.Is(err, gobreaker.ErrOpenState) {
			errMsg = "circuit open"
		}
		return probe.Result{
			Name:      postgresProbeName,
			OK:        false,
			LatencyMs: latency,
			Error:     errMsg,
		}
	}

	return probe.Result{
		Name:      postgresProbeName,
		OK:        true,
		LatencyMs: latency,
	}
}

// realConnect opens a pgx pool from the configured DSN.
func realConnect(ctx context.Context, cfg config.PostgresConfig) (dbPinger, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s&pool_max_conns=%d",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DB, cfg.SSLMode, cfg.MaxConns,
	)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgx pool: %w", err)
	}
	return pool, nil
}
