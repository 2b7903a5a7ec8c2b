package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/shelfsync/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	logger := logging.Default()
	require.NotNil(t, logger)
	assert.Same(t, logger, logging.Default(), "default logger should be stable")
}

func TestNewLoggerFromConfig(t *testing.T) {
	t.Run("discard output", func(t *testing.T) {
		logger := logging.NewLoggerFromConfig(&logging.Config{Level: "warn", Output: "discard", Format: "json"})
		assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
	})

	t.Run("invalid level falls back to info", func(t *testing.T) {
		logger := logging.NewLoggerFromConfig(&logging.Config{Level: "chatty", Output: "discard"})
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		logger := logging.NewLoggerFromConfig(nil)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})
}

func TestContextFields(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	ctx := logging.WithLogger(context.Background(), &base)
	ctx = logging.WithRunID(ctx, "run-1")
	ctx = logging.WithBrand(ctx, "Adidas")
	ctx = logging.WithProduct(ctx, "10086")
	ctx = logging.WithOperation(ctx, "collect")

	logging.FromContext(ctx).Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "run-1", entry["run_id"])
	assert.Equal(t, "Adidas", entry["brand"])
	assert.Equal(t, "10086", entry["product_id"])
	assert.Equal(t, "collect", entry["operation"])
	assert.Equal(t, "run-1", logging.RunID(ctx))
}

func TestFromContextWithoutLogger(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Same(t, logging.Default(), logging.FromContext(nil))
	assert.Equal(t, "", logging.RunID(context.Background()))
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)
	ctx := logging.WithLogger(context.Background(), &base)
	ctx = logging.WithFields(ctx, map[string]any{"page": 3, "remaining": int64(7), "dry_run": true})

	logging.Ctx(ctx).Info().Msg("page")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.EqualValues(t, 3, entry["page"])
	assert.EqualValues(t, 7, entry["remaining"])
	assert.Equal(t, true, entry["dry_run"])
}

func TestCaptureLoggingForTest(t *testing.T) {
	captured := logging.CaptureLoggingForTest(t)

	logging.Info().Str("brand", "Vans").Msg("collected")
	logging.Warn().Msg("slow page")

	captured.AssertContains(t, "collected")
	captured.AssertContains(t, `"brand":"Vans"`)
	captured.AssertNotContains(t, "panic")
	assert.Equal(t, 2, captured.Count())
}
