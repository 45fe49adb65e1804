package clients

import (
	"context"
	"errors"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
)

// mockJS is a test double for jsContext.
type mockJS struct {
	infoErr error
}

func (m *mockJS) StreamInfo(_ string, _ ...nats.JSOpt) (*nats.StreamInfo, error) {
	if m.infoErr != nil {
		return nil, m.infoErr
	}
	return &nats.StreamInfo{}, nil
}

func TestNATSProbe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		connectErr error
		infoErr    error
		wantOK     bool
		wantErrSub string
	}{
		{
			name:   "success — stream exists",
			wantOK: true,
		},
		{
			name:    "success — stream not provisioned yet",
			infoErr: nats.ErrStreamNotFound,
			wantOK:  true,
		},
		{
			name:       "failure — connect refused",
			connectErr: errors.New("dial tcp: connection refused"),
			wantOK:     false,
			wantErrSub: "connecting to NATS",
		},
		{
			name:       "failure — stream info error",
			infoErr:    errors.New("jetstream not enabled"),
			wantOK:     false,
			wantErrSub: "stream info",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := &NATSClient{
				url: "nats://localhost:4222",
				cb:  NewCircuitBreaker("nats-test-" + tc.name),
				newJS: func(_ string) (jsContext, func(), error) {
					if tc.connectErr != nil {
						return nil, func() {}, tc.connectErr
					}
					return &mockJS{infoErr: tc.infoErr}, func() {}, nil
				},
			}

			result := client.Probe(context.Background())

			assert.Equal(t, natsProbeName, result.Name)
			assert.Equal(t, tc.wantOK, result.OK)
			if tc.wantErrSub != "" {
				assert.Contains(t, result.Error, tc.wantErrSub)
			}
		})
	}
}

func TestNATSProbeCircuitBreaker_OpensAfterThreeFailures(t *testing.T) {
	t.Parallel()

	client := &NATSClient{
		url: "nats://localhost:4222",
		cb:  NewCircuitBreaker("nats-cb-open-test"),
		newJS: func(_ string) (jsContext, func(), error) {
			return nil, func() {}, errors.New("dial tcp: connection refused")
		},
	}

	for range 3 {
		result := client.Probe(context.Background())
		assert.False(t, result.OK)
		assert.NotEqual(t, "circuit open", result.Error)
	}

	result := client.Probe(context.Background())
	assert.False(t, result.OK)
	assert.Equal(t, "circuit open", result.Error)
}
