package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/slchris/gpypi/internal/config"
)

// stringFlags maps flag names to the schema options they set.
var stringFlags = map[string]config.Option{
	"pn":         config.OptPN,
	"pv":         config.OptPV,
	"my-pn":      config.OptMyPN,
	"my-pv":      config.OptMyPV,
	"my-p":       config.OptMyP,
	"uri":        config.OptURI,
	"index-url":  config.OptIndexURL,
	"overlay":    config.OptOverlay,
	"category":   config.OptCategory,
	"format":     config.OptFormat,
	"background": config.OptBackground,
}

// boolFlags maps boolean flag names to the schema options they set.
var boolFlags = map[string]config.Option{
	"overwrite": config.OptOverwrite,
	"no-deps":   config.OptNoDeps,
	"nocolors":  config.OptNoColors,
}

// addOptionFlags registers the option flags shared by ebuild commands.
func addOptionFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("pn", "", "PN to use when naming the ebuild")
	flags.String("pv", "", "PV to use when naming the ebuild")
	flags.String("my-pn", "", "MY_PN used in the ebuild")
	flags.String("my-pv", "", "MY_PV used in the ebuild")
	flags.String("my-p", "", "MY_P used in the ebuild")
	flags.String("uri", "", "SRC_URI of the package")
	flags.String("index-url", "", "base URL for the package index")
	flags.String("overlay", "", "overlay to use by name")
	flags.String("category", "", "portage category for the ebuild")
	flags.String("format", "", "format when printing to stdout")
	flags.String("background", "", "terminal background used for formatting")
	flags.Bool("overwrite", false, "overwrite an existing ebuild")
	flags.Bool("no-deps", false, "don't create ebuilds for needed dependencies")
	flags.Bool("nocolors", false, "disable colorful output")
}

// argsConfig builds the command-line Config source. Only flags the user
// actually set are included; everything else stays absent so lower
// priority sources can supply a value.
func argsConfig(flags *pflag.FlagSet, command string, args []string) *config.Config {
	values := map[config.Option]interface{}{
		config.OptCommand: command,
	}
	if len(args) > 0 {
		values[config.OptPackage] = args[0]
	}
	if len(args) > 1 {
		values[config.OptVersion] = args[1]
	}

	for name, option := range stringFlags {
		if flags.Changed(name) {
			if v, err := flags.GetString(name); err == nil {
				values[option] = v
			}
		}
	}
	for name, option := range boolFlags {
		if flags.Changed(name) {
			if v, err := flags.GetBool(name); err == nil {
				values[option] = v
			}
		}
	}
	return config.FromArgs(values)
}
