package installer

import "fmt"

// InstallError reports a failed package fetch: registry, download,
// verification, or filesystem failure.
type InstallError struct {
	Name    string
	Version string
	Err     error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("installing %s@%s: %v", e.Name, e.Version, e.Err)
}

func (e *InstallError) Unwrap() error {
	return e.Err
}
