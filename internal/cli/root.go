// Package cli implements the gpypi command surface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes returned by Run.
const (
	ExitSuccess      = 0
	ExitRuntimeError = 1
	ExitUsageError   = 2
)

var (
	settingsPath string
	iniPath      string
)

var rootCmd = &cobra.Command{
	Use:   "gpypi",
	Short: "Generate Gentoo ebuilds from PyPI metadata",
	Long: "gpypi queries the PyPI package index and generates Gentoo ebuild files,\n" +
		"resolving configuration across PyPI metadata, an ini file, command-line\n" +
		"flags and interactive prompts.",
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "/etc/gpypi/settings.yaml", "path to tool settings file")
	rootCmd.PersistentFlags().StringVar(&iniPath, "config", "", "path to the gpypi ini file (overrides settings)")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(echoCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print gpypi version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "gpypi version %s\n", version)
	},
}
