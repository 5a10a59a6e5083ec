// Package dispatch maps a CLI command name to its backing package, makes
// sure that package is installed, and runs its entry point in a child
// process. The child's exit code becomes the CLI's exit code.
package dispatch
