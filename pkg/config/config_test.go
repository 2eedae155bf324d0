package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsDefaults(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}

	if settings.Logging.Level != "INFO" {
		t.Errorf("default log level = %s", settings.Logging.Level)
	}
	if !settings.Logging.EnableConsole {
		t.Error("console logging not enabled by default")
	}
	if settings.PyPI.IndexURL != "https://pypi.org/pypi" {
		t.Errorf("default index URL = %s", settings.PyPI.IndexURL)
	}
	if settings.PyPI.TimeoutSeconds != 30 {
		t.Errorf("default timeout = %d", settings.PyPI.TimeoutSeconds)
	}
	if settings.Paths.IniPath != "/etc/gpypi/gpypi.ini" {
		t.Errorf("default ini path = %s", settings.Paths.IniPath)
	}
}

func TestLoadSettingsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := `
logging:
  level: DEBUG
  dir: /var/log/gpypi
  enable_file: true
pypi:
  index_url: https://test.pypi.org/pypi
paths:
  ini_path: /tmp/gpypi.ini
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}

	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}

	if settings.Logging.Level != "DEBUG" {
		t.Errorf("log level = %s", settings.Logging.Level)
	}
	if settings.Logging.Dir != "/var/log/gpypi" {
		t.Errorf("log dir = %s", settings.Logging.Dir)
	}
	if !settings.Logging.EnableFile {
		t.Error("file logging not enabled")
	}
	if settings.PyPI.IndexURL != "https://test.pypi.org/pypi" {
		t.Errorf("index URL = %s", settings.PyPI.IndexURL)
	}
	if settings.PyPI.TimeoutSeconds != 30 {
		t.Errorf("timeout default lost on overlay: %d", settings.PyPI.TimeoutSeconds)
	}
	if settings.Paths.IniPath != "/tmp/gpypi.ini" {
		t.Errorf("ini path = %s", settings.Paths.IniPath)
	}
}

func TestLoadSettingsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("logging: ["), 0644); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}

	if _, err := LoadSettings(path); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}
