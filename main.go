package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/stencil-labs/stencil/internal/cli"
	"github.com/stencil-labs/stencil/internal/dispatch"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(version, commit, date); err != nil {
		// The dispatched command already reported its own failure.
		var exitErr *dispatch.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
