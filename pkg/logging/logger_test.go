package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewConsoleHandler(&buf, slog.LevelInfo, false))

	logger.Debug("hidden")
	logger.Info("listening", "addr", ":8080")
	logger.Error("turn failed", "error", errors.New("boom"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "listening")
	assert.Contains(t, out, "addr=:8080")
	assert.Contains(t, out, "boom")
	assert.NotContains(t, out, "\x1b[", "colour must be off")
}

func TestFileHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewFileHandler(&buf, slog.LevelDebug))
	logger.Debug("tool call", "tool", "salesDashboard")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "tool=salesDashboard")
}
