package dispatch

import "fmt"

// UnknownCommandError is returned for a name missing from the command table.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Name)
}

// DependencyResolutionError wraps a failure to resolve or install the
// package backing a command.
type DependencyResolutionError struct {
	Package string
	Err     error
}

func (e *DependencyResolutionError) Error() string {
	return fmt.Sprintf("resolving %s: %v", e.Package, e.Err)
}

func (e *DependencyResolutionError) Unwrap() error { return e.Err }

// EntryPointMissingError is returned when the installed package has no
// manifest or declares no main module.
type EntryPointMissingError struct {
	Package string
	Dir     string
	Err     error
}

func (e *EntryPointMissingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no entry point for %s in %s: %v", e.Package, e.Dir, e.Err)
	}
	return fmt.Sprintf("no entry point for %s in %s: package.json has no main field", e.Package, e.Dir)
}

func (e *EntryPointMissingError) Unwrap() error { return e.Err }

// ExitError carries a non-zero exit code of the dispatched command.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %s exited with code %d", e.Command, e.Code)
}
