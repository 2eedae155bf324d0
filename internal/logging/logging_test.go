package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"DEBUG", LevelDebug},
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"", LevelInfo},
		{"WARNING", LevelWarn},
		{"ERROR", LevelError},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	log, err := New(&Config{Level: "WARN", EnableConsole: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	var sb strings.Builder
	log.SetConsole(&sb)

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message")

	out := sb.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below WARN were written: %q", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("WARN and ERROR messages missing: %q", out)
	}
}

func TestSetLevel(t *testing.T) {
	log, err := New(&Config{EnableConsole: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	var sb strings.Builder
	log.SetConsole(&sb)

	log.Debug("hidden")
	log.SetLevel(LevelDebug)
	log.Debug("visible")

	if strings.Contains(sb.String(), "hidden") {
		t.Error("debug message written at INFO level")
	}
	if !strings.Contains(sb.String(), "visible") {
		t.Error("debug message missing after SetLevel")
	}
}

func TestFileLogging(t *testing.T) {
	dir := t.TempDir()
	log, err := New(&Config{Dir: dir, EnableFile: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	log.Info("written to file")
	if err := log.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	name := filepath.Join(dir, "gpypi-"+time.Now().Format("2006-01-02")+".log")
	body, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("log file missing: %v", err)
	}
	if !strings.Contains(string(body), "[INFO] written to file") {
		t.Errorf("unexpected log line: %q", string(body))
	}
}

func TestNilConfig(t *testing.T) {
	log, err := New(nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if log.console == nil {
		t.Error("nil config does not enable console output")
	}
}
