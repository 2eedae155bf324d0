// Package logging provides leveled logging with portage-style console
// output.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/slchris/gpypi/internal/output"
)

// Level represents log level.
type Level int

const (
	// LevelDebug represents debug level.
	LevelDebug Level = iota
	// LevelInfo represents info level.
	LevelInfo
	// LevelWarn represents warning level.
	LevelWarn
	// LevelError represents error level.
	LevelError
)

// String returns string representation of log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Config holds logging configuration.
type Config struct {
	Level         string
	Dir           string
	EnableConsole bool
	EnableFile    bool
}

// Logger writes leveled messages. Console lines use the portage " * "
// style; file lines carry a timestamp and level tag.
type Logger struct {
	mu      sync.Mutex
	level   Level
	console io.Writer
	file    *os.File
}

// New creates a new Logger instance.
func New(cfg *Config) (*Logger, error) {
	if cfg == nil {
		cfg = &Config{EnableConsole: true}
	}

	l := &Logger{level: parseLevel(cfg.Level)}

	if cfg.EnableConsole {
		l.console = os.Stdout
	}

	if cfg.EnableFile && cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		name := filepath.Join(cfg.Dir, fmt.Sprintf("gpypi-%s.log", time.Now().Format("2006-01-02")))
		file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.file = file
	}

	return l, nil
}

// parseLevel parses log level string.
func parseLevel(s string) Level {
	switch s {
	case "DEBUG", "debug":
		return LevelDebug
	case "INFO", "info", "":
		return LevelInfo
	case "WARN", "warn", "WARNING", "warning":
		return LevelWarn
	case "ERROR", "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// SetConsole redirects console output, mainly for tests.
func (l *Logger) SetConsole(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.console = w
}

// SetLevel sets the log level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) log(level Level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	msg := fmt.Sprintf(format, v...)

	if l.console != nil {
		switch level {
		case LevelWarn:
			output.EWarn(l.console, "%s", msg)
		case LevelError:
			output.EError(l.console, "%s", msg)
		default:
			output.EInfo(l.console, "%s", msg)
		}
	}

	if l.file != nil {
		timestamp := time.Now().Format("2006-01-02 15:04:05")
		fmt.Fprintf(l.file, "[%s] [%s] %s\n", timestamp, level.String(), msg)
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, v ...interface{}) {
	l.log(LevelDebug, format, v...)
}

// Info logs an info message.
func (l *Logger) Info(format string, v ...interface{}) {
	l.log(LevelInfo, format, v...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, v ...interface{}) {
	l.log(LevelWarn, format, v...)
}

// Error logs an error message.
func (l *Logger) Error(format string, v ...interface{}) {
	l.log(LevelError, format, v...)
}

// Close closes the logger.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
