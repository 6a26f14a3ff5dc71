package pkglog

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var lines []map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var line map[string]any
		if err := json.Unmarshal([]byte(raw), &line); err != nil {
			t.Fatalf("decode %q: %v", raw, err)
		}
		lines = append(lines, line)
	}
	return lines
}

func TestLoggerAddsRequestValues(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "debug")

	ctx := SetSubject(SetCorrelationID(context.Background(), "cid-1"), "1234")
	logger.DebugContext(ctx, "transfer committed", "amount", "50.00")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	line := lines[0]

	for key, want := range map[string]any{
		"severity": "DEBUG",
		"msg":      "transfer committed",
		"amount":   "50.00",
		"service":  "gopay",
		"_cID":     "cid-1",
		"_sub":     "1234",
	} {
		if line[key] != want {
			t.Errorf("%s = %v, want %v", key, line[key], want)
		}
	}
	if _, ok := line["ts"]; !ok {
		t.Error("missing ts")
	}
	if file, _ := line["file"].(string); !strings.HasPrefix(file, "internal/pkg/pkglog/slog_test.go:") {
		t.Errorf("file = %q", file)
	}
}

func TestLoggerOmitsMissingRequestValues(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "info").With("component", "consumer").Info("started")

	line := decodeLines(t, &buf)[0]
	if _, ok := line["_cID"]; ok {
		t.Error("unexpected _cID")
	}
	if _, ok := line["_sub"]; ok {
		t.Error("unexpected _sub")
	}
	if line["component"] != "consumer" || line["service"] != "gopay" {
		t.Errorf("attributes lost through With: %v", line)
	}
}

func TestLoggerHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0]["msg"] != "shown" {
		t.Fatalf("unexpected lines %v", lines)
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	} {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
