// Package workflow automates Gentoo developer tasks around a freshly
// generated ebuild: metadata.xml generation, echangelog entries and
// repoman runs.
package workflow

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/slchris/gpypi/internal/config"
	"github.com/slchris/gpypi/internal/logging"
)

// commandFunc runs a command inside a directory and returns its combined
// output. Swappable for tests.
type commandFunc func(dir, name string, args ...string) ([]byte, error)

func runCommand(dir, name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Runner executes workflow steps inside an ebuild directory, driven by
// manager options.
type Runner struct {
	mgr *config.Manager
	dir string
	log *logging.Logger
	run commandFunc
}

// NewRunner creates a Runner for the ebuild directory dir.
func NewRunner(mgr *config.Manager, dir string, log *logging.Logger) *Runner {
	return &Runner{mgr: mgr, dir: dir, log: log, run: runCommand}
}

// command executes cmd in the ebuild directory and reports success.
// Failures are logged together with the command output.
func (r *Runner) command(cmd string) bool {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return false
	}
	out, err := r.run(r.dir, fields[0], fields[1:]...)
	if err != nil {
		r.log.Error("Error while running $(%s):", cmd)
		r.log.Error("%s", strings.TrimSpace(string(out)))
		return false
	}
	return true
}

// Echangelog records a changelog entry unless disabled.
func (r *Runner) Echangelog() error {
	disabled, err := r.mgr.GetBool(config.OptEchangelogDisable)
	if err != nil {
		return err
	}
	if disabled {
		r.log.Warn("Skipping echangelog...")
		return nil
	}

	message, err := r.mgr.GetString(config.OptEchangelogMessage)
	if err != nil {
		return err
	}
	if r.command(fmt.Sprintf("echangelog %s", message)) {
		r.log.Info("Created echangelog: %s", message)
	}
	return nil
}

// Repoman runs repoman with the configured commands, at least manifest.
func (r *Runner) Repoman() error {
	commands, err := r.mgr.GetString(config.OptRepomanCommands)
	if err != nil {
		return err
	}
	if r.command(fmt.Sprintf("repoman %s", commands)) {
		if strings.Contains(commands, "manifest") {
			r.log.Info("Updated manifest file")
		}
	}
	return nil
}

// Run executes all workflow steps in order: metadata.xml, echangelog,
// repoman.
func (r *Runner) Run(longDescription string) error {
	if err := r.Metadata(longDescription); err != nil {
		return err
	}
	if err := r.Echangelog(); err != nil {
		return err
	}
	return r.Repoman()
}
