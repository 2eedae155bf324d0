// Package ebuild renders Gentoo ebuild files from resolved configuration
// and PyPI release metadata.
package ebuild

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/slchris/gpypi/internal/compat"
	"github.com/slchris/gpypi/internal/config"
	"github.com/slchris/gpypi/internal/enamer"
	"github.com/slchris/gpypi/internal/pypi"
)

// Ebuild is a renderable ebuild assembled from a config manager and
// release metadata.
type Ebuild struct {
	mgr     *config.Manager
	meta    *pypi.Metadata
	vars    *enamer.Vars
	uri     string
	workDir string

	// Keywords defaults to ~amd64 when the portage environment does not
	// declare an arch.
	Keywords string
	// UnpackedDir points at the unpacked source tree, when available.
	UnpackedDir string
}

// New assembles an Ebuild. Naming overrides (pn, pv, my_pn, my_pv) are
// resolved through the manager; the download URI falls back to the
// release's sdist.
func New(mgr *config.Manager, meta *pypi.Metadata) (*Ebuild, error) {
	uri, err := mgr.GetString(config.OptURI)
	if err != nil {
		return nil, err
	}
	if uri == "" {
		uri = meta.SDistURL()
	}
	if uri == "" {
		return nil, fmt.Errorf("no source distribution found for %s-%s", meta.Info.Name, meta.Info.Version)
	}

	overrides := enamer.Overrides{}
	if overrides.PN, err = mgr.GetString(config.OptPN); err != nil {
		return nil, err
	}
	if overrides.PV, err = mgr.GetString(config.OptPV); err != nil {
		return nil, err
	}
	myPN, err := mgr.GetString(config.OptMyPN)
	if err != nil {
		return nil, err
	}
	if myPN != "" {
		overrides.MyPN = []string{myPN}
	}
	myPV, err := mgr.GetString(config.OptMyPV)
	if err != nil {
		return nil, err
	}
	if myPV != "" {
		overrides.MyPV = []string{myPV}
	}
	if overrides.MyP, err = mgr.GetString(config.OptMyP); err != nil {
		return nil, err
	}

	vars, err := enamer.GetVars(uri, meta.Info.Name, meta.Info.Version, overrides)
	if err != nil {
		return nil, err
	}

	return &Ebuild{
		mgr:      mgr,
		meta:     meta,
		vars:     vars,
		uri:      uri,
		Keywords: "~amd64",
	}, nil
}

// Vars exposes the derived naming variables.
func (e *Ebuild) Vars() *enamer.Vars {
	return e.vars
}

// Name returns the ebuild file name.
func (e *Ebuild) Name() string {
	return e.vars.P + ".ebuild"
}

// Render writes the ebuild text to w.
func (e *Ebuild) Render(w io.Writer) error {
	category, err := e.mgr.GetString(config.OptCategory)
	if err != nil {
		return err
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "# Copyright 1999-%d Gentoo Authors\n", time.Now().Year())
	sb.WriteString("# Distributed under the terms of the GNU General Public License v2\n\n")
	sb.WriteString("EAPI=7\n\n")
	fmt.Fprintf(&sb, "PYTHON_COMPAT=%s\n\n", compat.PythonCompat(e.meta.Info.Classifiers))
	sb.WriteString("inherit distutils-r1\n\n")

	if block := e.myBlock(); block != "" {
		sb.WriteString(block)
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "DESCRIPTION=%q\n", e.meta.Info.Summary)
	fmt.Fprintf(&sb, "HOMEPAGE=%q\n", e.meta.Info.HomePage)
	fmt.Fprintf(&sb, "SRC_URI=%q\n\n", e.vars.SrcURI)

	license := enamer.ConvertLicense(e.meta.Info.Classifiers, e.meta.Info.License)
	fmt.Fprintf(&sb, "LICENSE=%q\n", license)
	sb.WriteString("SLOT=\"0\"\n")
	fmt.Fprintf(&sb, "KEYWORDS=%q\n", e.Keywords)
	sb.WriteString("IUSE=\"\"\n\n")

	deps := Dependencies(e.meta.Info.RequiresDist, category)
	fmt.Fprintf(&sb, "RDEPEND=%q\n", strings.Join(deps, "\n\t"))
	sb.WriteString("DEPEND=\"${RDEPEND}\"\n")

	if e.vars.MyP != "" {
		sb.WriteString("\nS=\"${WORKDIR}/${MY_P}\"\n")
	}

	_, err = io.WriteString(w, sb.String())
	return err
}

// myBlock renders the MY_PN/MY_PV/MY_P assignments when naming differs
// from upstream.
func (e *Ebuild) myBlock() string {
	var sb strings.Builder
	if len(e.vars.MyPN) > 0 {
		fmt.Fprintf(&sb, "MY_PN=%q\n", e.vars.MyPN[len(e.vars.MyPN)-1])
	}
	if len(e.vars.MyPV) > 0 {
		fmt.Fprintf(&sb, "MY_PV=%q\n", e.vars.MyPV[len(e.vars.MyPV)-1])
	}
	if e.vars.MyP != "" {
		fmt.Fprintf(&sb, "MY_P=%q\n", e.vars.MyP)
	}
	return sb.String()
}

// Create writes the ebuild into dir, honoring the overwrite option. The
// full path of the written file is returned.
func (e *Ebuild) Create(dir string) (string, error) {
	path := filepath.Join(dir, e.Name())

	overwrite, err := e.mgr.GetBool(config.OptOverwrite)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil && !overwrite {
		return "", fmt.Errorf("ebuild already exists: %s (use overwrite to replace it)", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create ebuild: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := e.Render(f); err != nil {
		return "", fmt.Errorf("failed to render ebuild: %w", err)
	}
	return path, nil
}

// WorkDir returns a unique scratch directory path for unpacking the
// source distribution under base.
func (e *Ebuild) WorkDir(base string) string {
	return filepath.Join(base, fmt.Sprintf("%s-%s", e.vars.P, uuid.New().String()[:8]))
}

// Cleanup removes the scratch directory created by Unpack.
func (e *Ebuild) Cleanup() error {
	if e.workDir == "" {
		return nil
	}
	return os.RemoveAll(e.workDir)
}
