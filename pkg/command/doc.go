// Package command is the contract for entry points dispatched by the
// stencil CLI. A command decodes the payload the CLI hands it, checks its
// environment, then runs Init and Exec in order. The first failing step
// aborts the rest.
//
//	func main() {
//		os.Exit(command.Run(context.Background(), &myCommand{}))
//	}
package command
