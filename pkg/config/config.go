// Package config provides tool-level settings for gpypi.
//
// Settings cover ambient concerns (logging, index endpoint, file
// locations); package option values live in the ini-backed configuration
// layer under internal/config.
package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings represents the gpypi tool configuration.
type Settings struct {
	Logging LoggingSettings `yaml:"logging"`
	PyPI    PyPISettings    `yaml:"pypi"`
	Paths   PathSettings    `yaml:"paths"`
}

// LoggingSettings configures the logger.
type LoggingSettings struct {
	Level         string `yaml:"level"`
	Dir           string `yaml:"dir"`
	EnableConsole bool   `yaml:"enable_console"`
	EnableFile    bool   `yaml:"enable_file"`
}

// PyPISettings configures the package index client.
type PyPISettings struct {
	IndexURL       string `yaml:"index_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// PathSettings configures file locations.
type PathSettings struct {
	// IniPath is the option configuration file, bootstrapped from a
	// template on first run.
	IniPath string `yaml:"ini_path"`
}

// LoadSettings loads tool settings from a file.
func LoadSettings(path string) (*Settings, error) {
	// Set defaults
	settings := &Settings{
		Logging: LoggingSettings{
			Level:         "INFO",
			EnableConsole: true,
			EnableFile:    false,
		},
		PyPI: PyPISettings{
			IndexURL:       "https://pypi.org/pypi",
			TimeoutSeconds: 30,
		},
		Paths: PathSettings{
			IniPath: "/etc/gpypi/gpypi.ini",
		},
	}

	// If config file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("Settings file not found, using defaults: %s", path)
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	return settings, nil
}
