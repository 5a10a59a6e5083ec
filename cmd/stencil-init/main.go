// Command stencil-init creates a new project directory. It is published as
// the @stencil-cli/init package and dispatched by `stencil init`.
package main

import (
	"context"
	"os"

	"github.com/stencil-labs/stencil/pkg/command"
)

func main() {
	os.Exit(command.Run(context.Background(), &initCommand{}))
}
