package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRun_ConfigErrorPrintsErrorLine(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("DUE_MIN_GOALS", "forty")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1, got=%d", code)
	}
	if !strings.HasPrefix(stdout.String(), "Error: parse DUE_MIN_GOALS") {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
	if strings.Count(stdout.String(), "\n") != 1 {
		t.Fatalf("expected a single error line, got %q", stdout.String())
	}
}
