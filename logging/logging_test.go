package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", DebugLevel, false},
		{"INFO", InfoLevel, false},
		{"", InfoLevel, false},
		{"warning", WarnLevel, false},
		{"error", ErrorLevel, false},
		{"fatal", FatalLevel, false},
		{"verbose", InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultLoggerRoutesByLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewDefaultLoggerWithWriters(&out, &errOut)
	logger.SetLevel(DebugLevel)

	logger.Debug("debug line")
	logger.Info("info line", Fields{"frames": 3})
	logger.Warn("warn line")
	logger.Error(errors.New("boom"), "error line")

	assert.Contains(t, out.String(), "[DEBUG] debug line")
	assert.Contains(t, out.String(), "[INFO] info line frames=3")
	assert.NotContains(t, out.String(), "warn line")
	assert.Contains(t, errOut.String(), "[WARN] warn line")
	assert.Contains(t, errOut.String(), "[ERROR] error line: boom")
}

func TestDefaultLoggerLevelFilter(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewDefaultLoggerWithWriters(&out, &errOut)
	logger.SetLevel(WarnLevel)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "shown")
}

func TestDefaultLoggerFatalExits(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewDefaultLoggerWithWriters(&out, &errOut)

	code := -1
	logger.exit = func(c int) { code = c }
	logger.Fatal(errors.New("bad"), "giving up")

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "[FATAL] giving up: bad")
}

func TestDefaultLoggerWithFields(t *testing.T) {
	var out bytes.Buffer
	base := NewDefaultLoggerWithWriters(&out, &out)
	child := base.WithFields(Fields{"component": "mfcc", "b": 2})

	child.Info("hello", Fields{"a": 1})
	base.Info("plain")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "hello a=1 b=2 component=mfcc"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "[INFO] plain"), lines[1])
}

func TestContextFields(t *testing.T) {
	ctx := ContextWithFields(context.Background(), Fields{"file": "a.wav"})
	ctx = ContextWithFields(ctx, Fields{"command": "extract"})

	fields, ok := FieldsFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, Fields{"file": "a.wav", "command": "extract"}, fields)

	_, ok = FieldsFromContext(context.Background())
	assert.False(t, ok)

	var out bytes.Buffer
	logger := NewDefaultLoggerWithWriters(&out, &out)
	logger.WithContext(ctx).Info("ctx")
	assert.Contains(t, out.String(), "command=extract file=a.wav")
}

func TestSetGlobalLoggerNil(t *testing.T) {
	prev := GetGlobalLogger()
	t.Cleanup(func() { SetGlobalLogger(prev) })

	SetGlobalLogger(nil)
	assert.IsType(t, &NoOpLogger{}, GetGlobalLogger())
	assert.NotPanics(t, func() {
		Info("dropped")
		WithFields(Fields{"x": 1}).Warn("dropped")
	})
}

func TestZapLoggerObserved(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLoggerFromZap(zap.New(core))

	child := logger.WithFields(Fields{"component": "pitch"})
	child.Info("detected", Fields{"hz": 440.0})
	child.Error(errors.New("boom"), "failed")

	logger.SetLevel(WarnLevel)
	child.Info("suppressed")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "detected", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "pitch", ctx["component"])
	assert.Equal(t, 440.0, ctx["hz"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestZapLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewZapLogger("json", &buf)
	require.NoError(t, err)

	logger.Debug("hidden at info")
	logger.WithFields(Fields{"frames": 12}).Info("done")
	require.NoError(t, logger.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "done", record["msg"])
	assert.Equal(t, "info", record["level"])
	assert.Equal(t, float64(12), record["frames"])
}

func TestZapLoggerUnknownFormat(t *testing.T) {
	_, err := NewZapLogger("xml", &bytes.Buffer{})
	assert.Error(t, err)
}
