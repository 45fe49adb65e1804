// Package probe aggregates health probes of the platform dependencies the
// CV service sits in front of. It backs the deep health endpoint only; the
// liveness endpoint never reaches into this package.
package probe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of probing a single dependency.
type Result struct {
	Name      string `json:"name"`
	OK        bool   `json:"ok"`
	LatencyMs int64  `json:"latencyMs"`
	Error     string `json:"error,omitempty"`
}

// Prober is implemented by the dependency clients in internal/clients.
type Prober interface {
	Probe(ctx context.Context) Result
}

// Checker fans a deep health check out across all registered dependencies.
type Checker struct {
	deps map[string]Prober
}

// NewChecker builds a Checker over the given named dependencies. The map key
// is the name the result is reported under.
func NewChecker(deps map[string]Prober) *Checker {
	return &Checker{deps: deps}
}

// Run probes every dependency concurrently and returns a map of dependency
// name to Result. A failing probe never cancels its siblings; callers decide
// overall health from the individual results.
func (c *Checker) Run(ctx context.Context) map[string]Result {
	ctx, span := otel.Tracer("cv-service").Start(ctx, "health.deep")
	defer span.End()

	results := make(map[string]Result, len(c.deps))
	var mu sync.Mutex
	var g errgroup.Group

	for name, dep := range c.deps {
		g.Go(func() error {
			r := dep.Probe(ctx)
			mu.Lock()
			results[name] = r
			mu.Unlock()
			return nil
		})
	}

	// Every goroutine returns nil; Wait only synchronizes.
	_ = g.Wait()

	healthy := 0
	for _, r := range results {
		if r.OK {
			healthy++
		}
	}
	span.SetAttributes(
		attribute.Int("health.deps.total", len(results)),
		attribute.Int("health.deps.healthy", healthy),
	)

	return results
}

// AllOK reports whether every result in the map passed.
func AllOK(results map[string]Result) bool {
	for _, r := range results {
		if !r.OK {
			return false
		}
	}
	return true
}
