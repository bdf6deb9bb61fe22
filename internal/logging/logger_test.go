package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWithWriterUsesCanonicalKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, slog.LevelDebug)
	logger.Info("tick", RoutineID("r-1"), Err(errors.New("boom")), Err(nil))
	out := buf.String()
	if !strings.Contains(out, "routine_id=r-1") || !strings.Contains(out, "error=boom") {
		t.Fatalf("unexpected log output: %q", out)
	}
}

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "routined.log")
	logger, closeFn, err := OpenFile(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("open file logger: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("visible", Count(2))
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(raw), "hidden") || !strings.Contains(string(raw), "count=2") {
		t.Fatalf("unexpected log file contents: %q", raw)
	}
}

func TestOpenFileEmptyPathDiscards(t *testing.T) {
	logger, closeFn, err := OpenFile("  ", slog.LevelDebug)
	if err != nil || logger == nil {
		t.Fatalf("expected discard logger, got %v", err)
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
