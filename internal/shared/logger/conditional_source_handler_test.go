package logger

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/resinfo/internal/shared/config"
)

func TestConditionalSourceHandler(t *testing.T) {
	warnAndError := []slog.Level{slog.LevelWarn, slog.LevelError}
	all := []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}

	tests := []struct {
		name       string
		level      slog.Level
		levels     []slog.Level
		wantSource bool
	}{
		{name: "info is plain by default", level: slog.LevelInfo, levels: warnAndError, wantSource: false},
		{name: "warn carries source", level: slog.LevelWarn, levels: warnAndError, wantSource: true},
		{name: "error carries source", level: slog.LevelError, levels: warnAndError, wantSource: true},
		{name: "debug is plain by default", level: slog.LevelDebug, levels: warnAndError, wantSource: false},
		{name: "info carries source in debug mode", level: slog.LevelInfo, levels: all, wantSource: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			log := slog.New(NewConditionalSourceHandler(base, tt.levels...))

			log.Log(context.Background(), tt.level, "poll tick")

			assert.Equal(t, tt.wantSource, bytes.Contains(buf.Bytes(), []byte("source=")), buf.String())
		})
	}
}

func TestConditionalSourceHandler_KeepsAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, nil)
	log := slog.New(NewConditionalSourceHandler(base, slog.LevelError))

	log.With("topic", "ping").WithGroup("probe").Info("fallback used", "host", "google.com")

	out := buf.String()
	assert.NotContains(t, out, "source=")
	assert.Contains(t, out, "topic=ping")
	assert.Contains(t, out, "probe.host=google.com")
}

func TestConditionalSourceHandler_RespectsBaseLevel(t *testing.T) {
	base := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo})
	handler := NewConditionalSourceHandler(base, slog.LevelError)

	ctx := context.Background()
	assert.True(t, handler.Enabled(ctx, slog.LevelInfo))
	assert.True(t, handler.Enabled(ctx, slog.LevelError))
	assert.False(t, handler.Enabled(ctx, slog.LevelDebug))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestInit_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resinfo.log")
	cfg := &config.LoggerConfig{Level: "warn", Format: "json", OutputPath: path}

	require.NoError(t, Init(cfg, false))
	t.Cleanup(func() { Logger = nil })

	assert.False(t, Get().Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, Get().Enabled(context.Background(), slog.LevelWarn))
}
