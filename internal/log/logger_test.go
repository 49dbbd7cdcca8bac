package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerAddsComponentOnce(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, Component: ComponentApp, Output: &buf}).WithComponent(ComponentLedger)

	l.Info("appended", FieldCategory, "Food")

	out := buf.String()
	if strings.Count(out, "component=") != 1 || !strings.Contains(out, "component=ledger") {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(out, "category=Food") {
		t.Fatalf("missing field in %q", out)
	}
}

func TestLoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelWarn, Output: &buf})
	l.Info("hidden")
	l.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestFromContext(t *testing.T) {
	fallback := New(DefaultConfig())
	if FromContext(context.Background(), fallback) != fallback {
		t.Fatal("expected fallback for a bare context")
	}
	l := New(DefaultConfig()).WithComponent(ComponentTelegram)
	ctx := WithLogger(context.Background(), l)
	if FromContext(ctx, fallback) != l {
		t.Fatal("logger not recovered from context")
	}
}

func TestLogFields(t *testing.T) {
	f := NewFields().WithOperation(OpAppend).WithChat(1, 2, "").WithError(nil, ErrorTypeNetwork)
	if _, ok := f[FieldUsername]; ok {
		t.Error("empty username should be omitted")
	}
	if _, ok := f[FieldError]; ok {
		t.Error("nil error should be omitted")
	}
	if len(f.ToSlice()) != 2*len(f) {
		t.Errorf("ToSlice length mismatch: %v", f.ToSlice())
	}
}
