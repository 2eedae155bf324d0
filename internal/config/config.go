package config

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// Config holds option values retrieved from a single source. It is
// populated by one of the From* constructors and read-only afterward.
type Config struct {
	source string
	values map[Option]interface{}
}

func newConfig(source string, values map[Option]interface{}) *Config {
	c := &Config{source: source, values: make(map[Option]interface{}, len(values))}
	for k, v := range values {
		c.values[k] = v
	}
	return c
}

// FromPyPI builds a Config from metadata retrieved by a PyPI query.
func FromPyPI(metadata map[Option]interface{}) *Config {
	return newConfig("pypi", metadata)
}

// FromSetupScript builds a Config from keywords passed to the package's
// setup script.
func FromSetupScript(keywords map[Option]interface{}) *Config {
	return newConfig("setup_py", keywords)
}

// FromArgs builds a Config from parsed command-line values. Entries whose
// value is nil are discarded rather than stored as sentinels.
func FromArgs(values map[Option]interface{}) *Config {
	filtered := make(map[Option]interface{}, len(values))
	for k, v := range values {
		if v == nil {
			continue
		}
		filtered[k] = v
	}
	return newConfig("argparse", filtered)
}

// FromIni builds a Config from the given section of an ini file. Every key
// must exist in the option schema and every value is run through Validate;
// failures propagate to the caller.
func FromIni(path, section string) (*Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ini file: %w", err)
	}

	values := make(map[Option]interface{})
	for _, key := range file.Section(section).Keys() {
		name := Option(key.Name())
		if _, ok := allowedOptions[name]; !ok {
			return nil, newConfigurationError("no such option in schema: %s", name)
		}
		parsed, err := Validate(name, key.String())
		if err != nil {
			return nil, err
		}
		values[name] = parsed
	}
	return newConfig("ini", values), nil
}

// Source reports which source produced this Config.
func (c *Config) Source() string {
	return c.source
}

// Value returns the stored value for name, if any.
func (c *Config) Value(name Option) (interface{}, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Len returns the number of stored values.
func (c *Config) Len() int {
	return len(c.values)
}

// String implements fmt.Stringer.
func (c *Config) String() string {
	return fmt.Sprintf("<Config %s %v>", c.source, c.values)
}
