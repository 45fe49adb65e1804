package telemetry

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitProvider_UnreachableCollector(t *testing.T) {
	// Verifies InitProvider does not panic or error when the collector is down.
	// The gRPC dial is non-blocking so the connection attempt happens in the
	// background — from the caller's perspective setup always succeeds.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	p, err := InitProvider(ctx, "localhost:19999", "cv-service-test", true)
	require.NoError(t, err)
	require.NotNil(t, p)

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer shutCancel()
	assert.NoError(t, p.Shutdown(shutCtx))
}

func TestTraceHandler_NoSpanPassesThrough(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewTraceHandler(slog.NewJSONHandler(&buf, nil)))

	logger.Info("hello", "k", "v")

	out := buf.String()
	assert.Contains(t, out, `"msg":"hello"`)
	assert.Contains(t, out, `"k":"v"`)
	// No active span — no trace correlation attrs.
	assert.NotContains(t, out, "trace_id")
}

func TestTeeHandler_FansOutToAllChildren(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	logger := slog.New(NewTeeHandler(
		slog.NewJSONHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	))

	logger.Warn("fanout", "sink", "both")

	for _, buf := range []*bytes.Buffer{&a, &b} {
		assert.Contains(t, buf.String(), `"msg":"fanout"`)
		assert.Contains(t, buf.String(), `"sink":"both"`)
	}
}

func TestTeeHandler_RespectsChildLevels(t *testing.T) {
	t.Parallel()

	var debugSink, warnSink bytes.Buffer
	tee := NewTeeHandler(
		slog.NewJSONHandler(&debugSink, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&warnSink, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	logger := slog.New(tee)

	logger.Debug("quiet")

	assert.True(t, tee.Enabled(context.Background(), slog.LevelDebug))
	assert.Contains(t, debugSink.String(), `"msg":"quiet"`)
	assert.Empty(t, strings.TrimSpace(warnSink.String()))
}

func TestTeeHandler_WithAttrsPropagates(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewTeeHandler(slog.NewJSONHandler(&buf, nil)))
	logger = logger.With("service", "cv-service")

	logger.Info("attributed")

	assert.Contains(t, buf.String(), `"service":"cv-service"`)
}
