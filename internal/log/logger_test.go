package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/campuslogs/crimelog/internal/config"
)

func TestNewLoggerWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	logger.Info("ingest done", "inserted", 42)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["msg"] != "ingest done" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["inserted"] != float64(42) {
		t.Errorf("inserted = %v", entry["inserted"])
	}
}

func TestNewLoggerWithWriter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "WARN")

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message should be filtered at WARN level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("warn message missing")
	}
}

func TestNewLoggerWithWriter_Pretty(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatPretty, "DEBUG")

	logger.Debug("checking page", "page", 3)

	out := buf.String()
	if !strings.Contains(out, "DBG") {
		t.Errorf("missing level label: %q", out)
	}
	if !strings.Contains(out, "checking page") {
		t.Errorf("missing message: %q", out)
	}
	if !strings.Contains(out, "page=") {
		t.Errorf("missing attribute: %q", out)
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	logger.With("component", "fetcher").Info("fetched")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry["component"] != "fetcher" {
		t.Errorf("component = %v", entry["component"])
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"DEBUG":   slog.LevelDebug,
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"WARNING": slog.LevelWarn,
		"ERROR":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
