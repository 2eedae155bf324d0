package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

// Manager aggregates Config instances from several sources and resolves
// options against them in priority order.
type Manager struct {
	use                  []string
	questionnaireOptions []string
	configs              map[string]*Config
	q                    *Questionnaire
}

// ManagerOption is a functional option for configuring a Manager.
type ManagerOption func(*Manager)

// WithQuestionnaire overrides the questionnaire used for interactive
// fallback. Mainly useful for tests.
func WithQuestionnaire(q *Questionnaire) ManagerOption {
	return func(m *Manager) {
		m.q = q
	}
}

// NewManager creates a Manager resolving sources in the order given by
// use. Options listed in questionnaireOptions fall back to the interactive
// questionnaire instead of the schema default.
func NewManager(use []string, questionnaireOptions []string, opts ...ManagerOption) (*Manager, error) {
	seen := make(map[string]bool, len(use))
	for _, source := range use {
		if seen[source] {
			return nil, newConfigurationError("config source order has non-unique member: %s", source)
		}
		seen[source] = true
	}

	m := &Manager{
		use:                  use,
		questionnaireOptions: questionnaireOptions,
		configs:              make(map[string]*Config),
		q:                    NewQuestionnaire(os.Stdin, os.Stdout),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Register adds the Config for a named source. Registering a source twice
// replaces the earlier Config.
func (m *Manager) Register(source string, c *Config) {
	m.configs[source] = c
}

// Use returns the source priority order.
func (m *Manager) Use() []string {
	return m.use
}

// QuestionnaireOptions returns the options that fall back to interactive
// questioning.
func (m *Manager) QuestionnaireOptions() []string {
	return m.questionnaireOptions
}

// Get resolves the named option. Sources are probed in priority order and
// the first non-nil value wins. When no source yields a value the option
// either goes to the questionnaire or falls back to the schema default.
func (m *Manager) Get(name Option) (interface{}, error) {
	if len(m.configs) == 0 {
		return nil, newConfigurationError("at least one config source must be registered")
	}

	spec, ok := allowedOptions[name]
	if !ok {
		return nil, newConfigurationError("no such option in schema: %s", name)
	}

	for _, source := range m.use {
		cfg, ok := m.configs[source]
		if !ok {
			continue
		}
		if value, ok := cfg.Value(name); ok && value != nil {
			return value, nil
		}
	}

	if m.isQuestionnaireOption(name) {
		return m.q.Ask(name)
	}
	return spec.Default, nil
}

// GetBool resolves a boolean option.
func (m *Manager) GetBool(name Option) (bool, error) {
	value, err := m.Get(name)
	if err != nil {
		return false, err
	}
	return ValidateBool(value)
}

// GetString resolves a string option.
func (m *Manager) GetString(name Option) (string, error) {
	value, err := m.Get(name)
	if err != nil {
		return "", err
	}
	return ValidateString(value)
}

func (m *Manager) isQuestionnaireOption(name Option) bool {
	for _, opt := range m.questionnaireOptions {
		if Option(opt) == name {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (m *Manager) String() string {
	sources := make([]string, 0, len(m.configs))
	for source := range m.configs {
		sources = append(sources, source)
	}
	return fmt.Sprintf("<Manager configs(%v) use(%v)>", sources, m.use)
}

// LoadFromIni builds a Manager from the named section of an ini file and
// registers an "ini" source read from the same file. A missing file is
// bootstrapped from the packaged template first.
func LoadFromIni(path, section string, opts ...ManagerOption) (*Manager, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if werr := WriteTemplate(path); werr != nil {
			return nil, fmt.Errorf("failed to bootstrap config: %w", werr)
		}
		log.Printf("Config was generated at %s", path)
	}

	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ini file: %w", err)
	}

	sec := file.Section(section)
	use := strings.Fields(sec.Key("use").String())
	questionnaireOptions := strings.Fields(sec.Key("questionnaire_options").String())

	m, err := NewManager(use, questionnaireOptions, opts...)
	if err != nil {
		return nil, err
	}

	cfg, err := FromIni(path, "config")
	if err != nil {
		return nil, err
	}
	m.Register("ini", cfg)
	return m, nil
}
