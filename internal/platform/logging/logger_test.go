package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
)

func TestNew_JSONWritesKeyValueFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(LevelInfo, FormatJSON, &buf).With("run_id", "run-1")
	logger.InfoContext(context.Background(), "candidate skipped", "player_id", int64(8478402), "error", errors.New("boom"))
	logger.Debug("hidden below level")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one log line, got=%d: %q", len(lines), buf.String())
	}

	var decoded map[string]any
	if err := sonic.UnmarshalString(lines[0], &decoded); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if decoded["msg"] != "candidate skipped" {
		t.Fatalf("unexpected msg: %v", decoded["msg"])
	}
	if decoded["run_id"] != "run-1" {
		t.Fatalf("unexpected run_id: %v", decoded["run_id"])
	}
	if decoded["error"] != "boom" {
		t.Fatalf("unexpected error field: %v", decoded["error"])
	}
	if decoded["level"] != "INFO" {
		t.Fatalf("unexpected level: %v", decoded["level"])
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]Level{
		"debug":   LevelDebug,
		"WARN":    LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q)=%s want=%s", raw, got, want)
		}
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if err := logger.Sync(); err != nil {
		t.Fatalf("sync nil logger: %v", err)
	}
}
