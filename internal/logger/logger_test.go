package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewFallsBackToInfo(t *testing.T) {
	for _, level := range []string{"", "verbose", "info"} {
		l, ok := New(level, false).(*zapLogger)
		if !ok {
			t.Fatalf("New(%q) returned %T", level, l)
		}
		if l.z.Core().Enabled(zapcore.DebugLevel) {
			t.Errorf("level %q: debug should be disabled", level)
		}
		if !l.z.Core().Enabled(zapcore.InfoLevel) {
			t.Errorf("level %q: info should be enabled", level)
		}
	}

	l := New("debug", true).(*zapLogger)
	if !l.z.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level should enable debug entries")
	}
}

func TestWithAndNamed(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := fromZap(zap.New(core)).Named("http").With(String("request_id", "abc"))

	l.Info("bookmark created", Int("count", 1), Err(errors.New("boom")))
	l.Debugf("listed %d bookmarks", 2)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	first := entries[0]
	if first.LoggerName != "http" {
		t.Errorf("logger name = %q, want http", first.LoggerName)
	}
	fields := first.ContextMap()
	if fields["request_id"] != "abc" || fields["count"] != int64(1) || fields["error"] != "boom" {
		t.Errorf("fields = %v", fields)
	}
	if entries[1].Message != "listed 2 bookmarks" {
		t.Errorf("message = %q", entries[1].Message)
	}
}

func TestNopDiscards(t *testing.T) {
	l := NewNop()
	l.Info("ignored")
	l.Named("x").With(Bool("b", true)).Warn("ignored")
	if err := l.Sync(); err != nil {
		t.Errorf("Sync() = %v", err)
	}
}
