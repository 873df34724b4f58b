// Package logger is a thin facade over zap so the rest of the service never imports it directly.
package logger

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Field = zap.Field

type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	Debugf(template string, args ...any)
	Infof(template string, args ...any)
	Warnf(template string, args ...any)
	Errorf(template string, args ...any)

	// With returns a child logger that carries fields on every entry.
	With(fields ...Field) Logger
	// Named returns a child logger with name appended to the logger name.
	Named(name string) Logger

	Sync() error
}

type zapLogger struct {
	z *zap.Logger
	s *zap.SugaredLogger
}

// New builds a zap logger. pretty selects the colored development encoder,
// otherwise entries are JSON. Unknown levels fall back to info.
func New(level string, pretty bool) Logger {
	cfg := zap.NewProductionConfig()
	if pretty {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	z, err := cfg.Build(zap.AddStacktrace(zapcore.FatalLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: falling back to nop: %v\n", err)
		z = zap.NewNop()
	}
	return fromZap(z)
}

// NewNop returns a logger that discards everything.
func NewNop() Logger { return fromZap(zap.NewNop()) }

func fromZap(z *zap.Logger) Logger { return &zapLogger{z: z, s: z.Sugar()} }

func (l *zapLogger) Debug(msg string, fields ...Field) { l.z.Debug(msg, fields...) }
func (l *zapLogger) Info(msg string, fields ...Field)  { l.z.Info(msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...Field)  { l.z.Warn(msg, fields...) }
func (l *zapLogger) Error(msg string, fields ...Field) { l.z.Error(msg, fields...) }

func (l *zapLogger) Debugf(t string, args ...any) { l.s.Debugf(t, args...) }
func (l *zapLogger) Infof(t string, args ...any)  { l.s.Infof(t, args...) }
func (l *zapLogger) Warnf(t string, args ...any)  { l.s.Warnf(t, args...) }
func (l *zapLogger) Errorf(t string, args ...any) { l.s.Errorf(t, args...) }

func (l *zapLogger) With(fields ...Field) Logger { return fromZap(l.z.With(fields...)) }
func (l *zapLogger) Named(name string) Logger     { return fromZap(l.z.Named(name)) }

func (l *zapLogger) Sync() error { return l.z.Sync() }

// Field constructors, so callers need not import zap.
func String(key, val string) Field                 { return zap.String(key, val) }
func Int(key string, val int) Field                { return zap.Int(key, val) }
func Bool(key string, val bool) Field              { return zap.Bool(key, val) }
func Time(key string, val time.Time) Field         { return zap.Time(key, val) }
func Duration(key string, val time.Duration) Field { return zap.Duration(key, val) }
func Err(err error) Field                          { return zap.Error(err) }
