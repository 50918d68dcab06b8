package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	context_ "github.com/mkrupp/homecase-sessiongate/internal/infra/context"
)

func TestConsoleHandler_PkgLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	handler := &ConsoleHandler{
		Output:    &buf,
		Level:     LevelWarn,
		PkgLevels: map[string]slog.Level{"svc.loginsvc": LevelDebug},
	}

	slog.New(handler).With(loggerKey, "svc.loginsvc.flow").Debug("visible")
	slog.New(handler).With(loggerKey, "svc.sessionsvc.controller").Debug("hidden")
	slog.New(handler).With(loggerKey, "svc.sessionsvc.controller").Warn("loud")

	out := buf.String()
	assert.Contains(t, out, "visible")
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "loud")
}

func TestTracingHandler_AddsContextValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(NewTracingHandler(slog.NewJSONHandler(&buf, nil)))

	ctx := context_.WithTraceID(context.Background(), "trace-1")
	ctx = context_.WithIdentifier(ctx, "bob")
	logger.InfoContext(ctx, "hello")

	assert.Contains(t, buf.String(), `"trace":{"id":"trace-1"}`)
	assert.Contains(t, buf.String(), `"user":{"identifier":"bob"}`)
}

func TestLoggerConfig_getPkgLevels(t *testing.T) {
	t.Parallel()

	cfg := LoggerConfig{Filter: "svc.loginsvc:debug, repo:warn,broken"}

	assert.Equal(t, map[string]slog.Level{
		"svc.loginsvc": LevelDebug,
		"repo":         LevelWarn,
	}, cfg.getPkgLevels())
}
