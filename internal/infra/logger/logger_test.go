package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMaskEmail(t *testing.T) {
	cases := map[string]string{
		"john.doe@example.com": "joh***@example.com",
		"ab@parkit.co":         "ab***@parkit.co",
		"@parkit.co":           "***@parkit.co",
		"not-an-email":         "***",
		"":                     "",
	}
	for in, want := range cases {
		if got := MaskEmail(in); got != want {
			t.Fatalf("MaskEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMaskIP(t *testing.T) {
	cases := map[string]string{
		"192.168.1.100": "192.168.*.*",
		"2001:0db8:85a3:0000:0000:8a2e:0370:7334": "2001:0db8:85a3:0000:*:*:*:*",
		"localhost": "***",
	}
	for in, want := range cases {
		if got := MaskIP(in); got != want {
			t.Fatalf("MaskIP(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("development", "loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	lg, err := New("production", "warn")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if lg.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("expected info to be disabled at warn level")
	}
}

func TestFromContextAddsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	ctx := context.WithValue(context.Background(), RequestIDKey{}, "req-1")
	ctx = context.WithValue(ctx, TraceIDKey{}, "trace-1")
	FromContext(ctx, base).Info("hello")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if entries[0].ContextMap()["request_id"] != "req-1" {
		t.Fatalf("expected request_id field, got %v", entries[0].ContextMap())
	}
	if entries[0].ContextMap()["trace_id"] != "trace-1" {
		t.Fatalf("expected trace_id field, got %v", entries[0].ContextMap())
	}
}

func TestFromContextWithoutIDsReturnsBase(t *testing.T) {
	base := zap.NewNop()
	if got := FromContext(context.Background(), base); got != base {
		t.Fatalf("expected base logger to be returned unchanged")
	}
}
