package clients

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sony/gobreaker"

	"github.com/BrettScheepers/fightsight/internal/config"
	"github.com/BrettScheepers/fightsight/internal/probe"
)

const natsProbeName = "nats"

// ingestStream is the JetStream stream carrying uploaded fight footage.
// The CV service consumes it; provisioning is owned by the platform, so a
// missing stream is tolerated by the probe.
const ingestStream = "VIDEO_INGEST"

// jsContext is the subset of nats.JetStreamContext used by the probe.
// Defining an interface here allows test doubles to be injected without a
// live NATS server.
type jsContext interface {
	StreamInfo(stream string, opts ...nats.JSOpt) (*nats.StreamInfo, error)
}

// NATSClient probes the video-ingest messaging dependency.
type NATSClient struct {
	url   string
	cb    *gobreaker.CircuitBreaker
	newJS func(url string) (jsContext, func(), error)
}

// NewNATSClient constructs a NATSClient. Connections are opened lazily
// inside Probe.
func NewNATSClient(cfg config.NATSConfig, cb *gobreaker.CircuitBreaker) *NATSClient {
	return &NATSClient{
		url:   cfg.URL,
		cb:    cb,
		newJS: realNewJS,
	}
}

// Probe verifies NATS connectivity. A missing ingest stream means NATS is up
// but the platform hasn't provisioned it yet — that is not a probe failure.
func (c *NATSClient) Probe(ctx context.Context) probe.Result {
	start := time.Now()

	_, err := c.cb.Execute(func() (any, error) {
		js, cleanup, err := c.newJS(c.url)
		if err != nil {
			return nil, fmt.Errorf("connecting to NATS: %w", err)
		}
		defer cleanup()

		_, infoErr := js.StreamInfo(ingestStream)
		if infoErr != nil && !errors.Is(infoErr, nats.ErrStreamNotFound) {
			return nil, fmt.Errorf("stream info: %w", infoErr)
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
			Name:      natsProbeName,
			OK:        false,
			LatencyMs: latency,
			Error:     errMsg,
		}
	}

	return probe.Result{
		Name:      natsProbeName,
		OK:        true,
		LatencyMs: latency,
	}
}

// realNewJS opens a real NATS connection and returns a JetStreamContext plus
// a cleanup function that closes the connection.
func realNewJS(url string) (jsContext, func(), error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, func() {}, fmt.Errorf("nats connect %s: %w", url, err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, func() {}, fmt.Errorf("nats jetstream context: %w", err)
	}

	return js, func() { nc.Close() }, nil
}
