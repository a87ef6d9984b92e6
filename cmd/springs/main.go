// Command springs counts damaged-spring arrangements.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/springs/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
