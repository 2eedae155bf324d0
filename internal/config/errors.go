package config

import "fmt"

// ValidationError reports a value that does not satisfy the kind declared
// for its option.
type ValidationError struct {
	Option Option
	Value  interface{}
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Option != "" {
		return fmt.Sprintf("invalid value for option %q: %s (got %v)", e.Option, e.Reason, e.Value)
	}
	return fmt.Sprintf("%s (got %v)", e.Reason, e.Value)
}

// ConfigurationError reports structural misuse of the configuration layer:
// duplicate source names, unknown options, or lookups before any source
// was registered.
type ConfigurationError struct {
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return e.Reason
}

func newConfigurationError(format string, v ...interface{}) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, v...)}
}
