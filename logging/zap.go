package logging

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements Logger on top of a zap.Logger
type ZapLogger struct {
	logger *zap.Logger
	level  zap.AtomicLevel
}

// NewZapLogger builds a zap-backed logger writing to w.
// format is "json" or "text" (zap's console encoder).
func NewZapLogger(format string, w io.Writer) (*ZapLogger, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch format {
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case "", "text", "console":
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		return nil, fmt.Errorf("unknown log format: %q", format)
	}

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)

	return &ZapLogger{logger: zap.New(core), level: level}, nil
}

// NewZapLoggerFromZap wraps an existing zap.Logger. Records are filtered by
// both the wrapped core and SetLevel.
func NewZapLoggerFromZap(logger *zap.Logger) *ZapLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapLogger{
		logger: logger,
		level:  zap.NewAtomicLevelAt(zapcore.DebugLevel),
	}
}

// Zap returns the underlying zap.Logger
func (z *ZapLogger) Zap() *zap.Logger {
	return z.logger
}

// Sync flushes buffered log entries
func (z *ZapLogger) Sync() error {
	return z.logger.Sync()
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.FatalLevel
	}
}

func toZapFields(err error, fields []Fields) []zap.Field {
	merged := make(Fields)
	for _, f := range fields {
		maps.Copy(merged, f)
	}

	out := make([]zap.Field, 0, len(merged)+1)
	if err != nil {
		out = append(out, zap.Error(err))
	}
	for _, k := range slices.Sorted(maps.Keys(merged)) {
		out = append(out, zap.Any(k, merged[k]))
	}
	return out
}

func (z *ZapLogger) log(level Level, err error, msg string, fields []Fields) {
	zl := toZapLevel(level)
	if !z.level.Enabled(zl) {
		return
	}
	if ce := z.logger.Check(zl, msg); ce != nil {
		ce.Write(toZapFields(err, fields)...)
	}
}

func (z *ZapLogger) Debug(msg string, fields ...Fields) {
	z.log(DebugLevel, nil, msg, fields)
}

func (z *ZapLogger) Info(msg string, fields ...Fields) {
	z.log(InfoLevel, nil, msg, fields)
}

func (z *ZapLogger) Warn(msg string, fields ...Fields) {
	z.log(WarnLevel, nil, msg, fields)
}

func (z *ZapLogger) Error(err error, msg string, fields ...Fields) {
	z.log(ErrorLevel, err, msg, fields)
}

func (z *ZapLogger) Fatal(err error, msg string, fields ...Fields) {
	z.log(FatalLevel, err, msg, fields)
}

func (z *ZapLogger) WithFields(fields Fields) Logger {
	return &ZapLogger{
		logger: z.logger.With(toZapFields(nil, []Fields{fields})...),
		level:  z.level,
	}
}

func (z *ZapLogger) WithContext(ctx context.Context) Logger {
	if fields, ok := FieldsFromContext(ctx); ok {
		return z.WithFields(fields)
	}
	return z
}

// SetLevel changes the level of this logger and every logger derived from it
func (z *ZapLogger) SetLevel(level Level) {
	z.level.SetLevel(toZapLevel(level))
}
