package command

import (
	"io"
	"strconv"

	"github.com/spf13/pflag"
)

// Flagger is implemented by commands that take options on the command
// line. The CLI registers the same flags on its subcommand, so a payload
// built from a standalone run matches one sent by the CLI.
type Flagger interface {
	Flags(fs *pflag.FlagSet)
}

// ParseArgs parses argv with the flags cmd declares and returns the
// positional arguments and the options record. A command without flags
// still rejects unknown flags.
func ParseArgs(name string, argv []string, cmd Command) ([]string, map[string]any, error) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if f, ok := cmd.(Flagger); ok {
		f.Flags(fs)
	}
	if err := fs.Parse(argv); err != nil {
		return nil, nil, err
	}
	args := fs.Args()
	if args == nil {
		args = []string{}
	}
	return args, Options(fs), nil
}

// Options turns the flags of fs into an options record, defaults included.
// Cobra's help flag is not an option.
func Options(fs *pflag.FlagSet) map[string]any {
	options := map[string]any{}
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "help" {
			return
		}
		options[f.Name] = flagValue(f)
	})
	return options
}

func flagValue(f *pflag.Flag) any {
	raw := f.Value.String()
	switch f.Value.Type() {
	case "bool":
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	case "int", "int64":
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
	case "stringSlice", "stringArray":
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			if s := sv.GetSlice(); s != nil {
				return s
			}
			return []string{}
		}
	}
	return raw
}
