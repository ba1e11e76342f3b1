package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Config{Level: tt.in}.SlogLevel(), tt.in)
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, ok := RequestIDFromContext(ctx)
	assert.False(t, ok)

	id := GenerateRequestID()
	require.NotEmpty(t, id)
	ctx = WithRequestID(ctx, id)

	got, ok := RequestIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestInit_JSONIncludesServiceAttrs(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", ServiceName: "minehub", Environment: "test"}, &buf)
	defer slog.SetDefault(slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil)))

	FromContext(WithRequestID(context.Background(), "req-1")).Info("hello")

	out := buf.String()
	assert.Contains(t, out, `"service":"minehub"`)
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"msg":"hello"`)
}
