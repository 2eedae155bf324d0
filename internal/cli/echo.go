package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slchris/gpypi/internal/config"
	"github.com/slchris/gpypi/internal/ebuild"
	"github.com/slchris/gpypi/internal/output"
)

var echoCmd = &cobra.Command{
	Use:   "echo <package> [version]",
	Short: "Print the generated ebuild to stdout without writing it",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runEcho(cmd, args); err != nil {
			cmd.PrintErrln("Error:", err)
			exitCode = ExitRuntimeError
		}
	},
}

func init() {
	addOptionFlags(echoCmd)
}

func runEcho(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, args)
	if err != nil {
		return err
	}
	defer func() { _ = a.log.Close() }()

	version := ""
	if len(args) > 1 {
		version = args[1]
	}

	meta, err := a.client.ReleaseMetadata(cmd.Context(), args[0], version)
	if err != nil {
		return err
	}
	a.mgr.Register("pypi", config.FromPyPI(map[config.Option]interface{}{
		config.OptURI: sdistOrNil(meta.SDistURL()),
	}))

	eb, err := ebuild.New(a.mgr, meta)
	if err != nil {
		return err
	}
	if keyword := a.env.Keyword(); keyword != "" {
		eb.Keywords = keyword
	}

	format, err := a.mgr.GetString(config.OptFormat)
	if err != nil {
		return err
	}
	if format == "none" || format == "" {
		return eb.Render(os.Stdout)
	}
	if format != "ansi" {
		a.log.Warn("Unsupported format %q, printing plain", format)
		return eb.Render(os.Stdout)
	}

	background, err := a.mgr.GetString(config.OptBackground)
	if err != nil {
		return err
	}
	var sb strings.Builder
	if err := eb.Render(&sb); err != nil {
		return err
	}
	output.HighlightBash(os.Stdout, sb.String(), background)
	return nil
}
