package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/soltixdb/hotsax/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	return entry
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.DebugLevel).With("component", "finder")

	logger.Info("discord admitted", "position", 42, "error", errors.New("boom"))

	entry := decodeLine(t, &buf)
	assert.Equal(t, "discord admitted", entry["message"])
	assert.Equal(t, "finder", entry["component"])
	assert.Equal(t, float64(42), entry["position"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "info", entry["level"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.WarnLevel)

	logger.Debug("hidden")
	logger.Info("hidden")
	assert.Zero(t, buf.Len())
	assert.False(t, logger.Enabled(zerolog.DebugLevel))
	assert.True(t, logger.Enabled(zerolog.ErrorLevel))

	logger.Warn("shown")
	assert.NotZero(t, buf.Len())
}

func TestLogger_WithContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.DebugLevel)

	ctx := WithJobID(WithRequestID(context.Background(), "req-1"), "job-1")
	logger.WithContext(ctx).Info("scoped")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "job-1", entry["job_id"])
	assert.Equal(t, "req-1", RequestID(ctx))
}

func TestFromContext_FallsBackToGlobal(t *testing.T) {
	assert.Same(t, Global(), FromContext(context.Background()))

	nop := NewNop()
	assert.Same(t, nop, FromContext(WithLogger(context.Background(), nop)))
}

func TestNewFromConfig(t *testing.T) {
	logger, err := NewFromConfig(config.LoggingConfig{Level: "debug", Format: "json", OutputPath: "stderr"})
	require.NoError(t, err)
	assert.True(t, logger.Enabled(zerolog.DebugLevel))

	logger, err = NewFromConfig(config.LoggingConfig{Level: "bogus", OutputPath: t.TempDir() + "/logs/app.log"})
	require.NoError(t, err)
	assert.False(t, logger.Enabled(zerolog.DebugLevel))
}

func TestFiberMiddleware_SetsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.DebugLevel)

	app := fiber.New()
	app.Use(FiberMiddleware(logger, "/health"))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString(RequestID(c.UserContext()))
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", resp.Header.Get(RequestIDHeader))

	entry := decodeLine(t, &buf)
	assert.Equal(t, "Request completed", entry["message"])
	assert.Equal(t, "fixed-id", entry["request_id"])

	buf.Reset()
	resp, err = app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
	assert.Zero(t, buf.Len())
}
