// Package portage inspects the host Portage environment: overlays,
// tree locations and the active keyword.
package portage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Env reads portage-related settings from the process environment. The
// zero value is usable and falls back to conventional defaults.
type Env struct {
	// Portdir overrides $PORTDIR.
	Portdir string
	// OverlayDirs overrides $PORTDIR_OVERLAY entries.
	OverlayDirs []string
	// Arch overrides $ARCH.
	Arch string
}

// NewEnv captures the portage environment variables.
func NewEnv() *Env {
	return &Env{
		Portdir:     os.Getenv("PORTDIR"),
		OverlayDirs: strings.Fields(os.Getenv("PORTDIR_OVERLAY")),
		Arch:        os.Getenv("ARCH"),
	}
}

func (e *Env) portdir() string {
	if e.Portdir != "" {
		return e.Portdir
	}
	return "/usr/portage"
}

// Overlays returns a map of overlay repo names to their paths. The name of
// each tree is read from profiles/repo_name; trees without one are
// skipped.
func (e *Env) Overlays() map[string]string {
	trees := append([]string{e.portdir()}, e.OverlayDirs...)
	overlays := make(map[string]string)
	for _, tree := range trees {
		name, err := repoName(tree)
		if err != nil {
			continue
		}
		overlays[name] = tree
	}
	return overlays
}

func repoName(tree string) (string, error) {
	f, err := os.Open(filepath.Join(tree, "profiles", "repo_name"))
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return "", fmt.Errorf("empty repo_name in %s", tree)
	}
	return strings.TrimSpace(scanner.Text()), nil
}

// OverlayPath resolves an overlay name to its path. Unknown names yield an
// error listing the available overlays.
func (e *Env) OverlayPath(name string) (string, error) {
	overlays := e.Overlays()
	if path, ok := overlays[name]; ok {
		return path, nil
	}

	available := make([]string, 0, len(overlays))
	for overlay := range overlays {
		available = append(available, overlay)
	}
	sort.Strings(available)
	return "", fmt.Errorf("overlay %q does not exist, available: %s", name, strings.Join(available, " "))
}

// MakeEbuildDir creates the category/pn directory for an ebuild inside the
// overlay and returns its path.
func MakeEbuildDir(overlay, category, pn string) (string, error) {
	dir := filepath.Join(overlay, category, pn)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create ebuild directory: %w", err)
	}
	return dir, nil
}

// Keyword returns the unstable keyword for the host arch (for example
// "~amd64"), or an empty string when $ARCH is unset.
func (e *Env) Keyword() string {
	arch := e.Arch
	if arch == "" {
		return ""
	}
	if !strings.HasPrefix(arch, "~") {
		arch = "~" + arch
	}
	return arch
}
