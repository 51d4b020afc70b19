package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v; want %v", in, got, want)
		}
	}
}

func TestWithContext(t *testing.T) {
	if WithContext(context.Background()) != Get() {
		t.Fatalf("expected default logger for bare context")
	}

	scoped := Get().With("request_id", "abc")
	ctx := NewContext(context.Background(), scoped)
	if WithContext(ctx) != scoped {
		t.Fatalf("expected scoped logger from context")
	}
}
