package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/slchris/gpypi/internal/config"
	"github.com/slchris/gpypi/internal/logging"
	"github.com/slchris/gpypi/internal/output"
	"github.com/slchris/gpypi/internal/portage"
	"github.com/slchris/gpypi/internal/pypi"
	settings "github.com/slchris/gpypi/pkg/config"
)

// app bundles the collaborators shared by the ebuild commands.
type app struct {
	mgr    *config.Manager
	client *pypi.Client
	log    *logging.Logger
	env    *portage.Env
}

// newApp wires settings, logging, the layered config manager and the
// index client for a command invocation.
func newApp(cmd *cobra.Command, args []string) (*app, error) {
	s, err := settings.LoadSettings(settingsPath)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(&logging.Config{
		Level:         s.Logging.Level,
		Dir:           s.Logging.Dir,
		EnableConsole: s.Logging.EnableConsole,
		EnableFile:    s.Logging.EnableFile,
	})
	if err != nil {
		return nil, err
	}

	path := iniPath
	if path == "" {
		path = s.Paths.IniPath
	}

	mgr, err := config.LoadFromIni(path, "config_manager")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	mgr.Register("argparse", argsConfig(cmd.Flags(), cmd.Name(), args))

	nocolors, err := mgr.GetBool(config.OptNoColors)
	if err != nil {
		return nil, err
	}
	output.SetNoColor(nocolors)

	indexURL, err := mgr.GetString(config.OptIndexURL)
	if err != nil {
		return nil, err
	}
	// The settings file can point at a mirror when no source overrides
	// the schema default.
	if indexURL == pypi.DefaultIndexURL && s.PyPI.IndexURL != "" {
		indexURL = s.PyPI.IndexURL
	}

	return &app{
		mgr:    mgr,
		client: pypi.NewClient(indexURL, time.Duration(s.PyPI.TimeoutSeconds)*time.Second),
		log:    logger,
		env:    portage.NewEnv(),
	}, nil
}
