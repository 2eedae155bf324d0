package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// iniTemplate is written verbatim to the target path on first run, when no
// configuration file exists yet.
const iniTemplate = `# gpypi configuration file
#
# [config] holds option values, matched against the option schema.
# [config_manager] controls source priority and interactive fallback.

[config]
overlay = local
category = dev-python

[config_manager]
use = argparse ini pypi setup_py
questionnaire_options = overlay
`

// WriteTemplate copies the packaged configuration template to path,
// creating parent directories as needed.
func WriteTemplate(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(iniTemplate), 0644); err != nil {
		return fmt.Errorf("failed to write config template: %w", err)
	}
	return nil
}
