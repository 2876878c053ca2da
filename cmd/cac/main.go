// Command cac compresses crafting rotations into shareable codes.
package main

import (
	"fmt"
	"os"

	"github.com/xiv-cac/cac/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cac: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
