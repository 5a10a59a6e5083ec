package dispatch

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/stencil-labs/stencil/internal/branding"
)

// Command is one entry of the static command table.
type Command struct {
	// Name is the CLI subcommand.
	Name string
	// Package is the registry package that implements it.
	Package string
	Use     string
	Short   string
	// Flags registers the command's options. The package registers the
	// same flags when it runs standalone. Nil means no options.
	Flags func(fs *pflag.FlagSet)
}

var commands = []Command{
	{
		Name:    "init",
		Package: branding.CommandPackage("init"),
		Use:     "init [projectName]",
		Short:   "Create a new project",
		Flags:   InitFlags,
	},
}

// InitFlags registers the options of the init command.
func InitFlags(fs *pflag.FlagSet) {
	fs.BoolP("force", "f", false, "Initialize even if the target directory is not empty")
}

// Commands returns the command table.
func Commands() []Command {
	out := make([]Command, len(commands))
	copy(out, commands)
	return out
}

// Lookup finds a command by name.
func Lookup(name string) (Command, bool) {
	for _, c := range commands {
		if c.Name == name {
			return c, true
		}
	}
	return Command{}, false
}

// parentKey is the framework back-reference that must never reach a child.
const parentKey = "parent"

// Sanitize returns a copy of options without private keys (prefixed with
// "_") and without the parent back-reference.
func Sanitize(options map[string]any) map[string]any {
	out := make(map[string]any, len(options))
	for k, v := range options {
		if strings.HasPrefix(k, "_") || k == parentKey {
			continue
		}
		out[k] = v
	}
	return out
}
