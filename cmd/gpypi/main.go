// Command gpypi generates Gentoo ebuild files from PyPI package metadata.
package main

import (
	"os"

	"github.com/slchris/gpypi/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
