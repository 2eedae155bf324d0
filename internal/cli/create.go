package cli

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slchris/gpypi/internal/config"
	"github.com/slchris/gpypi/internal/ebuild"
	"github.com/slchris/gpypi/internal/portage"
	"github.com/slchris/gpypi/internal/workflow"
)

var createCmd = &cobra.Command{
	Use:   "create <package> [version]",
	Short: "Create an ebuild for a PyPI package and its dependencies",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCreate(cmd, args); err != nil {
			cmd.PrintErrln("Error:", err)
			exitCode = ExitRuntimeError
		}
	},
}

func init() {
	addOptionFlags(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, args)
	if err != nil {
		return err
	}
	defer func() { _ = a.log.Close() }()

	version := ""
	if len(args) > 1 {
		version = args[1]
	}

	noDeps, err := a.mgr.GetBool(config.OptNoDeps)
	if err != nil {
		return err
	}

	c := &creator{app: a, noDeps: noDeps, visited: make(map[string]bool)}
	return c.create(cmd.Context(), args[0], version)
}

// creator walks a package and, unless disabled, its dependency closure,
// writing one ebuild per package.
type creator struct {
	*app
	noDeps  bool
	visited map[string]bool
}

func (c *creator) create(ctx context.Context, name, version string) error {
	key := strings.ToLower(name)
	if c.visited[key] {
		return nil
	}
	c.visited[key] = true

	meta, err := c.client.ReleaseMetadata(ctx, name, version)
	if err != nil {
		return err
	}
	c.mgr.Register("pypi", config.FromPyPI(map[config.Option]interface{}{
		config.OptURI: sdistOrNil(meta.SDistURL()),
	}))

	eb, err := ebuild.New(c.mgr, meta)
	if err != nil {
		return err
	}
	if keyword := c.env.Keyword(); keyword != "" {
		eb.Keywords = keyword
	}

	overlayName, err := c.mgr.GetString(config.OptOverlay)
	if err != nil {
		return err
	}
	overlayPath, err := c.env.OverlayPath(overlayName)
	if err != nil {
		return err
	}
	category, err := c.mgr.GetString(config.OptCategory)
	if err != nil {
		return err
	}

	dir, err := portage.MakeEbuildDir(overlayPath, category, eb.Vars().PN)
	if err != nil {
		return err
	}
	path, err := eb.Create(dir)
	if err != nil {
		return err
	}
	c.log.Info("ebuild saved to %s", path)

	// Unpack the source distribution to pick up the full description for
	// metadata.xml. Failures degrade to the index summary.
	longDescription := meta.Info.Summary
	if unpacked, err := eb.Unpack(ctx, c.client, os.TempDir()); err != nil {
		c.log.Warn("Could not unpack source distribution: %v", err)
	} else {
		c.log.Debug("Unpacked source distribution to %s", unpacked)
		if desc := ebuild.ReadLongDescription(unpacked); desc != "" {
			longDescription = desc
		}
	}
	defer func() { _ = eb.Cleanup() }()

	if err := workflow.NewRunner(c.mgr, dir, c.log).Run(longDescription); err != nil {
		return err
	}

	if c.noDeps {
		return nil
	}
	for _, dep := range ebuild.DependencyNames(meta.Info.RequiresDist) {
		// Dependency failures should not abort the whole run.
		if err := c.create(ctx, dep, ""); err != nil {
			c.log.Error("Skipping dependency %s: %v", dep, err)
		}
	}
	return nil
}

// sdistOrNil keeps an absent sdist out of the pypi source so lower
// priority sources and defaults still apply.
func sdistOrNil(url string) interface{} {
	if url == "" {
		return nil
	}
	return url
}
